package uploads

import (
	"errors"
	"mime"
	"net/http"

	"github.com/gin-gonic/gin"

	"nta-reimbursement/internal/shared/metrics"
	"nta-reimbursement/internal/shared/server/middleware"
	"nta-reimbursement/internal/shared/server/respond"
	"nta-reimbursement/internal/shared/telemetry"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches upload routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/upload", h.upload)
	rg.GET("/download/:filename", h.download)
}

func (h *Handler) upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "file is required", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "unable to read file", nil)
		return
	}
	defer file.Close()

	stored, err := h.Svc.Upload(c.Request.Context(), fileHeader.Filename, fileHeader.Size, file)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, respond.CodeValidation, err.Error(), nil)
		default:
			telemetry.Error("upload.save_failed", map[string]any{
				"original_name": fileHeader.Filename,
				"error":         err,
			})
			respond.Error(c, http.StatusInternalServerError, respond.CodeInternal, "failed to store file", nil)
		}
		return
	}

	c.Set(middleware.StoredNameKey, stored.StoredName)
	metrics.ObserveUploadBytes(stored.Size)
	respond.OK(c, stored)
}

func (h *Handler) download(c *gin.Context) {
	name := c.Param("filename")
	c.Set(middleware.StoredNameKey, name)

	obj, err := h.Svc.Download(c.Request.Context(), name)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, respond.CodeNotFound, "file not found", nil)
		default:
			telemetry.Error("upload.open_failed", map[string]any{
				"stored_name": name,
				"error":       err,
			})
			respond.Error(c, http.StatusInternalServerError, respond.CodeInternal, "failed to read file", nil)
		}
		return
	}
	defer obj.Body.Close()

	metrics.IncDownloads()
	c.DataFromReader(http.StatusOK, obj.Size, "application/octet-stream", obj.Body, map[string]string{
		"Content-Disposition": contentDisposition(name),
	})
}

// contentDisposition quotes name so separators in a stored extension stay
// inside the filename parameter.
func contentDisposition(name string) string {
	if v := mime.FormatMediaType("attachment", map[string]string{"filename": name}); v != "" {
		return v
	}
	return "attachment"
}
