package middleware

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Tracing instruments every request with an OpenTelemetry server span.
// otelgin handles propagation and span lifecycle, this wrapper only
// fixes the service name.
func Tracing() gin.HandlerFunc {
	return otelgin.Middleware("ikada-backend")
}

// SpanErrorMarker runs after the handler chain and marks the active
// span when the response is an error, and attaches the request ID so
// traces can be joined with logs.
func SpanErrorMarker() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		span := trace.SpanFromContext(c.Request.Context())
		if !span.IsRecording() {
			return
		}

		if requestID := GetRequestID(c); requestID != "" {
			span.SetAttributes(attribute.String("http.request_id", requestID))
		}

		status := c.Writer.Status()
		if status >= 500 {
			span.SetStatus(codes.Error, "server error")
		}
		if userID := GetJWTUserID(c); userID != "" {
			span.SetAttributes(attribute.String("enduser.id", userID))
		}

		for _, ginErr := range c.Errors {
			span.RecordError(ginErr.Err)
		}
	}
}
