package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/gin-gonic/gin"
)

var (
	recordsCreatedTotal atomic.Uint64
	recordsUpdatedTotal atomic.Uint64
	uploadsTotal        atomic.Uint64
	downloadsTotal      atomic.Uint64

	uploadSize = newHistogram([]float64{1 << 10, 64 << 10, 256 << 10, 1 << 20, 5 << 20, 20 << 20, 100 << 20})
)

// IncRecordsCreated increments the created-records counter.
func IncRecordsCreated() {
	recordsCreatedTotal.Add(1)
}

// IncRecordsUpdated increments the updated-records counter.
func IncRecordsUpdated() {
	recordsUpdatedTotal.Add(1)
}

// IncDownloads increments the served-downloads counter.
func IncDownloads() {
	downloadsTotal.Add(1)
}

// ObserveUploadBytes counts an upload and records its size.
func ObserveUploadBytes(size int64) {
	uploadsTotal.Add(1)
	if size < 0 {
		size = 0
	}
	uploadSize.Observe(float64(size))
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders metrics in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	writeCounter(&buf, "reimbursement_records_created_total", "Total reimbursement records created", recordsCreatedTotal.Load())
	writeCounter(&buf, "reimbursement_records_updated_total", "Total reimbursement record updates applied", recordsUpdatedTotal.Load())
	writeCounter(&buf, "uploads_total", "Total supporting documents uploaded", uploadsTotal.Load())
	writeCounter(&buf, "downloads_total", "Total supporting documents served", downloadsTotal.Load())
	writeHistogram(&buf, "upload_size_bytes", "Uploaded document size in bytes", uploadSize.Snapshot())
	return buf.String()
}

type histogram struct {
	mu      sync.Mutex
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

type histogramSnapshot struct {
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

func newHistogram(buckets []float64) *histogram {
	return &histogram{
		buckets: buckets,
		counts:  make([]uint64, len(buckets)),
	}
}

// Observe records value in the first bucket whose bound it does not exceed.
func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
			return
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	var cumulative uint64
	for i, bound := range snap.buckets {
		cumulative += snap.counts[i]
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), cumulative)
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, snap.count)
	fmt.Fprintf(buf, "%s_sum %s\n", name, formatFloat(snap.sum))
	fmt.Fprintf(buf, "%s_count %d\n", name, snap.count)
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}
