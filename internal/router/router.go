package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	authHandler "github.com/gmao-ics/techniciens-api/internal/handler/auth"
	healthHandler "github.com/gmao-ics/techniciens-api/internal/handler/health"
	promHandler "github.com/gmao-ics/techniciens-api/internal/handler/prometheus"
	technicienHandler "github.com/gmao-ics/techniciens-api/internal/handler/technicien"
	"github.com/gmao-ics/techniciens-api/internal/middleware"
)

type Config struct {
	Production bool
	RateLimit  rate.Limit
	RateBurst  int
	CORSConfig middleware.CORSConfig
}

type Router struct {
	engine *gin.Engine
}

func NewRouter(
	auth *middleware.AuthMiddleware,
	authH *authHandler.Handler,
	technicienH *technicienHandler.Handler,
	healthH *healthHandler.Handler,
	config Config,
) *Router {
	if config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.RegisterValidators()

	engine := gin.New()
	metrics := promHandler.New()

	engine.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		metrics.Middleware(),
		middleware.ErrorHandler(config.Production),
		middleware.CORS(config.CORSConfig),
	)

	healthH.RegisterRoutes(engine)
	engine.GET("/metrics", metrics.Handler())

	rateLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		Rate:  config.RateLimit,
		Burst: config.RateBurst,
	})

	api := engine.Group("/api")
	api.Use(rateLimiter.RateLimit())

	authH.RegisterRoutes(api)
	technicienH.RegisterRoutes(api, auth)

	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error":  "route not found",
			"method": c.Request.Method,
			"url":    c.Request.URL.Path,
		})
	})

	return &Router{engine: engine}
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
