package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/timeasy-io/timeasy/internal/pkg/utils"
)

const RequestIDHeader = "X-Request-Id"

// RequestID echoes the caller's X-Request-Id or generates one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := strings.TrimSpace(c.GetHeader(RequestIDHeader))
		if rid == "" {
			if k, err := utils.GenerateKey("req-", 20); err == nil {
				rid = k
			}
		}
		c.Set("request_id", rid)
		c.Header(RequestIDHeader, rid)
		c.Next()
	}
}
