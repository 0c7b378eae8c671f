package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ikada/backend/internal/interfaces/http/dto"
)

// RequirePermission creates middleware that checks for a specific permission
func RequirePermission(permission string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetJWTClaims(c)
		if claims == nil {
			handlePermissionDenied(c, "Authentication required")
			return
		}

		if !claims.HasPermission(permission) {
			handlePermissionDenied(c, "Insufficient permissions")
			return
		}

		c.Next()
	}
}

// RequireAnyPermission creates middleware that checks for any of the specified permissions
func RequireAnyPermission(permissions ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetJWTClaims(c)
		if claims == nil {
			handlePermissionDenied(c, "Authentication required")
			return
		}

		if !claims.HasAnyPermission(permissions...) {
			handlePermissionDenied(c, "Insufficient permissions")
			return
		}

		c.Next()
	}
}

// RequireResource derives the required permission from the resource name
// and the HTTP method, so "alumni" with a GET request checks
// "alumni:read". Wildcard grants are honored by Claims.HasPermission.
func RequireResource(resource string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetJWTClaims(c)
		if claims == nil {
			handlePermissionDenied(c, "Authentication required")
			return
		}

		action := methodToAction(c.Request.Method)
		permission := resource + ":" + action

		if !claims.HasPermission(permission) {
			handlePermissionDenied(c, "Insufficient permissions for "+permission)
			return
		}

		c.Next()
	}
}

func methodToAction(method string) string {
	switch strings.ToUpper(method) {
	case http.MethodGet, http.MethodHead:
		return "read"
	case http.MethodPost:
		return "create"
	case http.MethodPut, http.MethodPatch:
		return "update"
	case http.MethodDelete:
		return "delete"
	default:
		return "access"
	}
}

func handlePermissionDenied(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusForbidden,
		dto.NewErrorResponseWithRequestID(dto.ErrCodeForbidden, message, GetRequestID(c)))
}
