package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ZapLogger logs API paths (/api/*) at info level and other paths at debug level.
// Server errors are logged at error level with the handler errors attached.
func ZapLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		dur := time.Since(start)

		// Use debug level for all paths except /api/*
		path := c.Request.URL.Path
		isAPIPath := strings.HasPrefix(path, "/api/")

		fields := []interface{}{
			"method", c.Request.Method,
			"path", path,
			"status", c.Writer.Status(),
			"latency", dur.String(),
			"clientIP", c.ClientIP(),
			"requestID", c.GetString("request_id"),
		}
		if who, ok := CurrentIdentity(c); ok {
			fields = append(fields, "userID", who.UserID)
		}

		switch {
		case c.Writer.Status() >= 500:
			log.Sugar().Errorw("HTTP", append(fields, "errors", c.Errors.String())...)
		case isAPIPath:
			log.Sugar().Infow("HTTP", fields...)
		default:
			log.Sugar().Debugw("HTTP", fields...)
		}
	}
}
