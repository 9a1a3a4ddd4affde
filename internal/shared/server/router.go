package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"interview-coach/internal/shared/config"
	"interview-coach/internal/shared/metrics"
	"interview-coach/internal/shared/server/middleware"
	"interview-coach/internal/shared/server/respond"
)

// RouteRegistrar is implemented by every domain handler.
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// RouterDeps carries the handlers mounted by NewRouter.
type RouterDeps struct {
	Config   config.Config
	Handlers []RouteRegistrar
}

// NewRouter constructs the Gin engine with middleware and routes registered.
// Domain routes are served under /api/v1 and, for older clients, at the root.
func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.RateLimit(rateLimitConfig(deps.Config)),
	)

	health := func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	}
	r.GET("/health", health)
	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", health)

	root := r.Group("")
	for _, h := range deps.Handlers {
		if h == nil {
			continue
		}
		h.RegisterRoutes(api)
		h.RegisterRoutes(root)
	}

	return r
}

func rateLimitConfig(cfg config.Config) middleware.RateLimitConfig {
	rules := map[string]middleware.RateLimitRule{}
	if cfg.RateLimitRPS > 0 && cfg.RateLimitBurst > 0 {
		rules["DEFAULT"] = middleware.RateLimitRule{Rate: cfg.RateLimitRPS, Burst: cfg.RateLimitBurst}
	}
	return middleware.RateLimitConfig{Rules: rules, DefaultGroup: "DEFAULT"}
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
