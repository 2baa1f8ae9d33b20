package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/amoreau/flightlog-backend-go/pkg/logger"
)

// Logger middleware logs HTTP requests
func Logger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		if raw != "" {
			path = path + "?" + raw
		}

		fields := []logger.Field{
			logger.String("method", c.Request.Method),
			logger.String("path", path),
			logger.String("client_ip", c.ClientIP()),
			logger.Int("status", c.Writer.Status()),
			logger.Duration("latency", latency),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, logger.String("errors", c.Errors.String()))
		}

		log.Info("http request", fields...)
	}
}
