package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/filmvibe/app-discover-api/internal/api/handlers"
	"github.com/filmvibe/app-discover-api/internal/catalog"
	"github.com/filmvibe/app-discover-api/internal/config"
	middlewares "github.com/filmvibe/app-discover-api/internal/middleware"
)

// Deps are the services the router exposes.
type Deps struct {
	Catalog   catalog.Source
	Discover  handlers.Discoverer
	Recommend handlers.Recommender
	Cache     handlers.CacheAdmin
}

func SetupRouter(cfg *config.Config, deps Deps) *gin.Engine {
	handlers.RegisterValidators()

	r := gin.New()
	r.Use(
		gin.Recovery(),
		middlewares.RequestID(),
		middlewares.RequestTiming(),
		middlewares.RequestLogger(),
		corsMiddleware(),
		middlewares.ExtractUserContext(cfg.Auth.JWTSecret == ""),
		middlewares.OptionalJWT(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer),
	)

	healthHandler := handlers.NewHealthHandler(deps.Catalog.Name(), deps.Catalog)
	discoverHandler := handlers.NewDiscoverHandler(deps.Discover)
	recommendHandler := handlers.NewRecommendHandler(deps.Recommend)
	adminHandler := handlers.NewAdminHandler(deps.Cache)

	r.GET("/liveness", healthHandler.Liveness)
	r.GET("/readiness", healthHandler.Readiness)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/v1")
	{
		api.GET("/discover", discoverHandler.Discover)
		api.GET("/recommendations", recommendHandler.Recommend)
		api.GET("/vibes", recommendHandler.ListVibes)

		admin := api.Group("/admin", middlewares.RequireRole(middlewares.RoleAdmin))
		{
			admin.DELETE("/cache", adminHandler.ClearCache)
			admin.GET("/cache/stats", adminHandler.CacheStats)
		}
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, DELETE, OPTIONS")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
