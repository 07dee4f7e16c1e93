package status

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

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

// RegisterRoutes attaches status routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/status", h.create)
	rg.GET("/status", h.list)
}

type createRequest struct {
	ClientName string `json:"client_name" binding:"required"`
}

func (h *Handler) create(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "client_name is required", nil)
		return
	}

	check, err := h.Svc.Create(c.Request.Context(), req.ClientName)
	if err != nil {
		if errors.Is(err, ErrInvalidInput) {
			respond.Error(c, http.StatusBadRequest, respond.CodeValidation, err.Error(), nil)
			return
		}
		telemetry.Error("status.create_failed", map[string]any{"error": err})
		respond.Error(c, http.StatusInternalServerError, respond.CodeInternal, "failed to create status check", nil)
		return
	}
	respond.OK(c, check)
}

func (h *Handler) list(c *gin.Context) {
	checks, err := h.Svc.List(c.Request.Context())
	if err != nil {
		telemetry.Error("status.list_failed", map[string]any{"error": err})
		respond.Error(c, http.StatusInternalServerError, respond.CodeInternal, "failed to list status checks", nil)
		return
	}
	respond.OK(c, checks)
}
