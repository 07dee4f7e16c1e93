package status

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func newStatusRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(NewService(NewMemoryRepo())).RegisterRoutes(r.Group("/api"))
	return r
}

func TestStatusEndpoints(t *testing.T) {
	router := newStatusRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/status", bytes.NewBufferString(`{"client_name":"uptime-monitor"}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var created Check
	if err := json.Unmarshal(resp.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.ClientName != "uptime-monitor" || created.ID == "" {
		t.Fatalf("unexpected check %+v", created)
	}

	list := httptest.NewRecorder()
	router.ServeHTTP(list, httptest.NewRequest(http.MethodGet, "/api/status", nil))
	if list.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", list.Code)
	}
	var checks []Check
	if err := json.Unmarshal(list.Body.Bytes(), &checks); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(checks) != 1 {
		t.Fatalf("expected 1 check, got %d", len(checks))
	}
}

func TestStatusCreateMissingClientName(t *testing.T) {
	router := newStatusRouter()

	for _, body := range []string{`{}`, `{"client_name":""}`, `not json`} {
		req := httptest.NewRequest(http.MethodPost, "/api/status", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != http.StatusBadRequest {
			t.Fatalf("body %s: expected 400, got %d", body, resp.Code)
		}
	}
}
