package rest

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sireesha-siri/geotag-plants/internal/server/config"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Auth    *AuthHandler
	Plants  *PlantHandler
	Uploads *UploadHandler
}

// NewRouter wires routes, middlewares, and handlers.
func NewRouter(cfg *config.Config, log *zap.Logger, h Handlers) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(RequestLogger(log))
	r.Use(Recovery(log))

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowCredentials = false
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	api := r.Group("/api/v1")

	api.GET("/health", func(ctx *gin.Context) {
		Success(ctx, http.StatusOK, gin.H{"status": "ok"})
	})

	authGroup := api.Group("/auth")
	authGroup.Use(RateLimit(cfg.AuthRatePerMinute))
	authGroup.POST("/register", h.Auth.Register)
	authGroup.POST("/login", h.Auth.Login)
	authGroup.POST("/refresh", h.Auth.Refresh)

	protected := api.Group("")
	protected.Use(AuthRequired([]byte(cfg.SecretKey)))
	protected.GET("/plants", h.Plants.List)
	protected.POST("/plants", h.Plants.Create)
	protected.DELETE("/plants/:id", h.Plants.Delete)
	protected.POST("/plants/coordinates", h.Plants.Coordinates)
	protected.POST("/uploads/presign", h.Uploads.Presign)

	r.NoRoute(func(ctx *gin.Context) {
		Error(ctx, http.StatusNotFound, "not found")
	})

	return r
}
