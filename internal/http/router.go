// README: HTTP router registration.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"wayfarer/internal/http/handlers"
	"wayfarer/internal/http/middleware"
	"wayfarer/internal/infra"
)

type RouterDeps struct {
	Planner   handlers.Planner
	Analyzer  handlers.QueryAnalyzer
	Plans     handlers.PlanStore
	Quota     handlers.Quota
	Verifier  infra.TokenVerifier
	Redis     *redis.Client
	RateLimit middleware.RateLimitConfig
	Plan      handlers.PlanHandlerConfig
	Logger    *zap.Logger
}

func NewRouter(deps RouterDeps) *gin.Engine {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := gin.New()
	r.Use(middleware.Recovery(logger), middleware.Logging(logger))

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	prefs := handlers.NewPreferenceHandler(deps.Analyzer)
	r.GET("/api/categories", prefs.Categories)

	api := r.Group("/api", middleware.Auth(deps.Verifier))
	if deps.Redis != nil {
		api.Use(middleware.RateLimit(deps.Redis, deps.RateLimit, logger))
	}
	api.POST("/preferences/similarity", prefs.Similarity)

	plans := handlers.NewPlanHandler(deps.Planner, deps.Plans, deps.Quota, deps.Plan, logger)
	api.POST("/plans", plans.Create)
	api.GET("/plans", plans.List)
	api.GET("/plans/:id", plans.Get)
	api.GET("/quota", plans.Quota)

	return r
}
