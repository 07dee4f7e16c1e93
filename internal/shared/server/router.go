package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"nta-reimbursement/internal/reimbursements"
	"nta-reimbursement/internal/shared/config"
	"nta-reimbursement/internal/shared/metrics"
	"nta-reimbursement/internal/shared/server/middleware"
	"nta-reimbursement/internal/shared/server/respond"
	"nta-reimbursement/internal/status"
	"nta-reimbursement/internal/uploads"
)

// ServiceName is reported by the root endpoint.
const ServiceName = "NTA Expense Reimbursement System"

// RouterDeps holds the handlers mounted under the API prefix. Nil handlers
// are skipped.
type RouterDeps struct {
	Config               config.Config
	ReimbursementHandler *reimbursements.Handler
	UploadHandler        *uploads.Handler
	StatusHandler        *status.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	cfg := deps.Config
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
	)

	prefix := cfg.APIPrefix
	if prefix == "" {
		prefix = "/api"
	}
	api := r.Group(prefix)
	api.GET("/", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"message": ServiceName})
	})
	api.GET("/metrics", metrics.Handler())

	if deps.ReimbursementHandler != nil {
		deps.ReimbursementHandler.RegisterRoutes(api)
	}
	if deps.UploadHandler != nil {
		deps.UploadHandler.RegisterRoutes(api)
	}
	if deps.StatusHandler != nil {
		deps.StatusHandler.RegisterRoutes(api)
	}

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
