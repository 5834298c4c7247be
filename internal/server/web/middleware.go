package web

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// requestLogger emits one access-log line per request with a fresh
// request id.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := uuid.NewString()

		c.Next()

		s.logger.Info(c.Request.Context(), "request handled",
			"request_id", requestID,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start).String(),
		)
	}
}

// recovered is the catch-all boundary: an unhandled panic anywhere in
// request processing becomes a logged, generic 500 and the process keeps
// serving.
func (s *Server) recovered(c *gin.Context, err any) {
	s.logger.Error(c.Request.Context(), "panic recovered",
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"error", fmt.Sprintf("%v", err),
	)
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}

// corsMiddleware accepts requests from the configured origins only.
// Requests without an Origin header (same-origin or non-browser clients)
// pass through untouched; a disallowed origin is rejected before any
// handler runs.
func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOriginFunc:  originAllowed(allowedOrigins),
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
	})
}

// originAllowed matches origins exactly, tolerating a single trailing
// slash on the request side. No wildcards, no prefix or substring
// matching.
func originAllowed(allowed []string) func(string) bool {
	return func(origin string) bool {
		for _, a := range allowed {
			if origin == a || origin == a+"/" {
				return true
			}
		}
		return false
	}
}
