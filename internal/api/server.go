package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/golocator/internal/api/middleware"
	"github.com/jonesrussell/golocator/internal/config"
	"github.com/jonesrussell/golocator/internal/logger"
)

// NewRouter builds the gin engine with middleware and routes.
func NewRouter(log logger.Interface, handler *LocatorsHandler) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(requestLogger(log))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	handler.RegisterRoutes(v1)

	return router
}

// requestLogger logs every request with its correlation id and duration.
func requestLogger(log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.WithRequestID(middleware.GetRequestID(c)).Debug("request handled",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

// NewHTTPServer wraps the router in an http.Server with the configured
// timeouts.
func NewHTTPServer(cfg *config.ServerConfig, router *gin.Engine) *http.Server {
	return &http.Server{
		Addr:         cfg.Address,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
}
