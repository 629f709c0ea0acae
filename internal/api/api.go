// Package api implements the HTTP API serving harvested skill metadata.
package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/goharvest/internal/domain"
	"github.com/jonesrussell/goharvest/internal/logger"
)

// RecordSource provides read access to the most recent harvest results.
type RecordSource interface {
	Results() *domain.ResultSet
}

// SetupRouter creates and configures the Gin router with all routes.
func SetupRouter(log logger.Interface, source RecordSource) *gin.Engine {
	if log == nil {
		log = logger.NewNoOp()
	}

	// Disable Gin's default logging
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(loggingMiddleware(log))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	v1.GET("/skills", func(c *gin.Context) {
		c.JSON(http.StatusOK, source.Results())
	})

	v1.GET("/skills/:name", func(c *gin.Context) {
		name := c.Param("name")

		record, ok := source.Results().Get(name)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "skill not found", "name": name})
			return
		}

		c.JSON(http.StatusOK, record)
	})

	return router
}

// loggingMiddleware creates a middleware that logs HTTP requests.
func loggingMiddleware(log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		log.Info("HTTP Request",
			"method", c.Request.Method,
			"path", path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
		)
	}
}
