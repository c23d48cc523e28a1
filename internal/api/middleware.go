package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"inspection-service/internal/logging"
)

func RequestLoggingMiddleware(logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := uuid.New().String()
		c.Set("request_id", requestID)
		c.Writer.Header().Set("X-Request-ID", requestID)

		path := c.Request.URL.Path
		method := c.Request.Method
		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()
		logger.Infof("Request: %s %s, Status: %d, Latency: %v, request_id=%s",
			method, path, status, latency, requestID)
	}
}
