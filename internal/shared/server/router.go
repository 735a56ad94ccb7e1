package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stackfast/internal/blueprints"
	"stackfast/internal/services/health"
	"stackfast/internal/shared/metrics"
	"stackfast/internal/shared/server/middleware"
	"stackfast/internal/shared/server/respond"
)

// RouterDeps carries the handlers and HTTP policy the router needs.
type RouterDeps struct {
	Blueprints      *blueprints.Handler
	Health          *health.Service
	CORSOrigins     []string
	RateLimitPerMin int
	Limiter         *middleware.RateLimiter
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.CORSOrigins),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, deps.Health.Status(c.Request.Context()))
	})

	if deps.Blueprints != nil {
		guard := middleware.RateLimit(middleware.RateLimitConfig{
			Limiter: deps.Limiter,
			Rules: map[string]middleware.RateLimitRule{
				"DEFAULT": middleware.PerMinute(deps.RateLimitPerMin),
			},
		})
		deps.Blueprints.RegisterRoutes(api, guard)
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
