package http

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/aislescan/aislescan-api/pkg/logger"
)

type RouterDeps struct {
	Logger         logger.Logger
	AuthHandler    *AuthHandler
	ProfileHandler *ProfileHandler
	ScanHandler    *ScanHandler
	HealthHandler  *HealthHandler
	AuthMiddleware gin.HandlerFunc
	CORSOrigins    []string
}

// NewRouter wires every route. Tests build the same router over in-memory
// stores, so the table here is the single source of truth for the surface.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(ErrorMiddleware(deps.Logger))
	router.Use(newCORS(deps.CORSOrigins))

	router.GET("/health", deps.HealthHandler.Check)

	auth := router.Group("/auth")
	{
		auth.POST("/signup", deps.AuthHandler.Signup)
		auth.POST("/login", deps.AuthHandler.Login)
		auth.GET("/verify", deps.AuthMiddleware, deps.AuthHandler.Verify)
	}

	profile := router.Group("/profile", deps.AuthMiddleware)
	{
		profile.GET("", deps.ProfileHandler.GetProfile)
		profile.PUT("", deps.ProfileHandler.UpdateProfile)
	}

	scans := router.Group("/scans", deps.AuthMiddleware)
	{
		scans.POST("", deps.ScanHandler.SaveScan)
		scans.GET("", deps.ScanHandler.ListScans)
		scans.GET("/stats", deps.ScanHandler.ScanStats)
		scans.GET("/:id", deps.ScanHandler.GetScan)
	}

	return router
}

func newCORS(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Authorization", "Content-Type"},
	}
	if len(origins) == 1 && origins[0] == "*" {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}
