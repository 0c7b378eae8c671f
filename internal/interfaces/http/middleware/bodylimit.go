package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ikada/backend/internal/interfaces/http/dto"
)

// DefaultMaxBodySize caps request bodies at 8 MiB, large enough for
// CSV imports while keeping abusive payloads out.
const DefaultMaxBodySize = 8 << 20

// BodyLimit rejects requests whose declared or actual body size exceeds
// maxBytes. Reads past the limit fail inside the handler via
// http.MaxBytesReader.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBodySize
	}
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge,
				dto.NewErrorResponseWithRequestID(dto.ErrCodeRequestTooLarge, "Request body too large", GetRequestID(c)))
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
