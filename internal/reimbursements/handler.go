package reimbursements

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"nta-reimbursement/internal/shared/metrics"
	"nta-reimbursement/internal/shared/server/middleware"
	"nta-reimbursement/internal/shared/server/respond"
	"nta-reimbursement/internal/shared/telemetry"
)

const maxBodySize = 1 << 20

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches reimbursement routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/template-data", h.template)
	rg.POST("/reimbursement", h.create)
	rg.GET("/reimbursement", h.list)
	rg.GET("/reimbursement/:id", h.get)
	rg.PUT("/reimbursement/:id", h.update)
}

func (h *Handler) template(c *gin.Context) {
	f, err := h.Svc.TemplateValues(c.Request.Context())
	if err != nil {
		telemetry.Error("reimbursement.template_failed", map[string]any{"error": err})
		respond.Error(c, http.StatusInternalServerError, respond.CodeInternal, "failed to load template data", nil)
		return
	}
	respond.OK(c, ReferenceValues(f))
}

func (h *Handler) create(c *gin.Context) {
	patch, ok := h.readPatch(c)
	if !ok {
		return
	}

	rec, err := h.Svc.Create(c.Request.Context(), patch)
	if err != nil {
		h.fail(c, "create", "", err)
		return
	}

	c.Set(middleware.RecordIDKey, rec.ID)
	metrics.IncRecordsCreated()
	respond.Created(c, rec)
}

func (h *Handler) update(c *gin.Context) {
	id := c.Param("id")
	c.Set(middleware.RecordIDKey, id)

	patch, ok := h.readPatch(c)
	if !ok {
		return
	}

	rec, err := h.Svc.Update(c.Request.Context(), id, patch)
	if err != nil {
		h.fail(c, "update", id, err)
		return
	}

	metrics.IncRecordsUpdated()
	respond.OK(c, rec)
}

func (h *Handler) get(c *gin.Context) {
	id := c.Param("id")
	c.Set(middleware.RecordIDKey, id)

	rec, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, "get", id, err)
		return
	}
	respond.OK(c, rec)
}

func (h *Handler) list(c *gin.Context) {
	limit := 0
	offset := 0
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}
	if v := c.Query("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			offset = parsed
		}
	}

	recs, err := h.Svc.List(c.Request.Context(), limit, offset)
	if err != nil {
		h.fail(c, "list", "", err)
		return
	}
	respond.OK(c, recs)
}

// readPatch decodes the request body. It writes the error response itself and
// reports false when the body is unusable.
func (h *Handler) readPatch(c *gin.Context) (Patch, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxBodySize))
	if err != nil {
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "unable to read request body", nil)
		return Patch{}, false
	}

	patch, ignored, err := ParsePatch(body)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, err.Error(), nil)
		return Patch{}, false
	}
	if len(ignored) > 0 {
		telemetry.Warn("reimbursement.ignored_fields", map[string]any{
			"request_id": middleware.RequestIDFromContext(c),
			"fields":     ignored,
		})
	}
	return patch, true
}

func (h *Handler) fail(c *gin.Context, op, id string, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, respond.CodeNotFound, "reimbursement record not found", nil)
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, err.Error(), nil)
	default:
		telemetry.Error("reimbursement."+op+"_failed", map[string]any{
			"record_id": id,
			"error":     err,
		})
		respond.Error(c, http.StatusInternalServerError, respond.CodeInternal, "failed to "+op+" reimbursement record", nil)
	}
}
