// Package api assembles the gin router for the ingestion service.
package api

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/gotools/internal/handlers"
	"github.com/jonesrussell/gotools/internal/logger"
)

const corsMaxAgeHours = 12

// Deps carries everything the router needs.
type Deps struct {
	Importer  handlers.Importer
	Scheduler handlers.CrawlStarter
	Store     handlers.ToolStore
	Logger    logger.Logger

	// CORSOrigins lists allowed origins; empty disables CORS entirely.
	CORSOrigins []string
}

func NewRouter(deps Deps) *gin.Engine {
	router := gin.New()

	if len(deps.CORSOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins: deps.CORSOrigins,
			AllowMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowHeaders: []string{
				"Origin", "Content-Type", "Content-Length", "Accept-Encoding",
				"Authorization", "accept", "origin", "Cache-Control", "X-Requested-With",
			},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           corsMaxAgeHours * time.Hour,
		}))
	}

	router.Use(ginLogger(deps.Logger))
	router.Use(gin.Recovery())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	importHandler := handlers.NewImportHandler(deps.Importer, deps.Logger)
	crawlHandler := handlers.NewCrawlHandler(deps.Scheduler, deps.Logger)
	adminHandler := handlers.NewAdminHandler(deps.Store, deps.Scheduler, deps.Logger)

	v1 := router.Group("/api/v1")
	v1.POST("/import", importHandler.Import)
	v1.POST("/crawl", crawlHandler.Start)
	v1.GET("/crawl", crawlHandler.Status)
	v1.DELETE("/tools", adminHandler.DeleteBySource)
	v1.GET("/stats", adminHandler.Stats)

	return router
}

func ginLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()

		log.Info("HTTP request",
			logger.String("method", method),
			logger.String("path", path),
			logger.Int("status_code", statusCode),
			logger.String("client_ip", c.ClientIP()),
			logger.Duration("duration", duration),
		)
	}
}
