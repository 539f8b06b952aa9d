package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"codenote-backend/internal/analysis"
	"codenote-backend/internal/notes"
	"codenote-backend/internal/services/health"
	"codenote-backend/internal/shared/config"
	"codenote-backend/internal/shared/metrics"
	"codenote-backend/internal/shared/server/middleware"
	"codenote-backend/internal/shared/server/respond"
	"codenote-backend/internal/stats"
)

const maxBodyBytes = 10 << 20 // 10MB

// RouterDeps holds handlers needed to build the router.
type RouterDeps struct {
	Config          config.Config
	Health          *health.Service
	NoteHandler     *notes.Handler
	StatsHandler    *stats.Handler
	AnalysisHandler *analysis.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}
	respond.UseJSONFieldNames()

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.BodyLimit(maxBodyBytes),
	)

	healthSvc := deps.Health
	if healthSvc == nil {
		healthSvc = health.NewService(nil)
	}
	r.GET("/health", func(c *gin.Context) {
		respond.OK(c, healthSvc.Status())
	})
	r.GET("/health/ready", func(c *gin.Context) {
		if err := healthSvc.Ready(c.Request.Context()); err != nil {
			respond.Error(c, http.StatusServiceUnavailable, "not_ready", "document store unavailable", nil)
			return
		}
		respond.OK(c, healthSvc.Status())
	})
	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api")
	if deps.NoteHandler != nil {
		deps.NoteHandler.RegisterRoutes(api)
	}
	if deps.StatsHandler != nil {
		deps.StatsHandler.RegisterRoutes(api)
	}
	if deps.AnalysisHandler != nil {
		deps.AnalysisHandler.RegisterRoutes(api)
	}

	r.NoRoute(func(c *gin.Context) {
		respond.Error(c, http.StatusNotFound, "not_found", "route not found", nil)
	})

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":4000"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
