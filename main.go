package main

import (
	"net/http"
	"os"

	"taproom-admin-api/config"
	"taproom-admin-api/handlers"
	"taproom-admin-api/routes"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

func main() {
	cfg := config.Load()
	config.InitLogger(cfg)

	// Set Gin mode
	mode := os.Getenv("GIN_MODE")
	if mode == "" && cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	config.InitDB(cfg)
	config.InitStorage(cfg)
	config.EnsureBootstrapAdmin(cfg)

	// Create Gin router with default middleware (logger + recovery)
	r := gin.Default()

	// CORS middleware for the dashboard frontend
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	// Health check endpoint
	r.GET("/health", handlers.Health)

	// Uploaded media
	r.Static(cfg.MediaBaseURL, config.Media.Dir())

	// Register all routes
	routes.SetupRoutes(r)

	log.Infof("Server running on http://localhost:%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}
