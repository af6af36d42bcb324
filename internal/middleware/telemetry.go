package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const TraceIDHeader = "X-Trace-Id"

// OtelTracing starts a server span for requests whose path has one of the
// given prefixes. Health checks and metric scrapes are left untraced.
func OtelTracing(serviceName string, prefixes ...string) gin.HandlerFunc {
	return otelgin.Middleware(serviceName, otelgin.WithFilter(func(r *http.Request) bool {
		for _, p := range prefixes {
			if strings.HasPrefix(r.URL.Path, p) {
				return true
			}
		}
		return false
	}))
}

// TraceID answers with the trace id of the request span and tags the span
// with the request id set by RequestID.
func TraceID() gin.HandlerFunc {
	return func(c *gin.Context) {
		span := trace.SpanFromContext(c.Request.Context())
		if sc := span.SpanContext(); sc.IsValid() {
			c.Header(TraceIDHeader, sc.TraceID().String())
			if rid := c.GetString("request_id"); rid != "" {
				span.SetAttributes(attribute.String("request.id", rid))
			}
		}
		c.Next()
	}
}
