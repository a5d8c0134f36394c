// Package httpapi exposes meshes and their flow links over HTTP with gin.
package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// NewRouter builds the gin engine with all routes registered.
func NewRouter(h *Handler, logger zerolog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/v1")
	{
		v1.POST("/meshes", h.createMesh)
		v1.GET("/meshes", h.listMeshes)
		v1.GET("/meshes/:id", h.getMesh)
		v1.DELETE("/meshes/:id", h.deleteMesh)
		v1.POST("/meshes/:id/flowlinks", h.generateFlowLinks)
		v1.GET("/meshes/:id/flowlinks", h.listFlowLinks)
		v1.POST("/flowlinks/batch", h.generateBatch)
	}
	return r
}

// requestLogger writes one line per request; server errors log at error level.
func requestLogger(logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		evt := logger.Info()
		if status >= http.StatusInternalServerError {
			evt = logger.Error()
			if len(c.Errors) > 0 {
				evt = evt.Str("error", c.Errors.String())
			}
		}
		evt.Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Msg("request")
	}
}
