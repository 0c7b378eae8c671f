package dto

import (
	"net/http"
	"strings"
)

// General error codes used by middleware and handlers. Domain errors
// keep their own codes (INVALID_CREDENTIALS, QUOTA_EXCEEDED, ...) and
// are mapped to a status by GetHTTPStatus.
const (
	ErrCodeUnknown    = "ERR_UNKNOWN"
	ErrCodeInternal   = "ERR_INTERNAL"
	ErrCodeValidation = "ERR_VALIDATION"

	ErrCodeUnauthorized = "ERR_UNAUTHORIZED"
	ErrCodeForbidden    = "ERR_FORBIDDEN"

	ErrCodeNotFound      = "ERR_NOT_FOUND"
	ErrCodeAlreadyExists = "ERR_ALREADY_EXISTS"
	ErrCodeConflict      = "ERR_CONFLICT"

	ErrCodeBadRequest  = "ERR_BAD_REQUEST"
	ErrCodeInvalidJSON = "ERR_INVALID_JSON"

	ErrCodeRateLimited     = "ERR_RATE_LIMITED"
	ErrCodeRequestTooLarge = "ERR_REQUEST_TOO_LARGE"
)

// errorCodeStatus maps codes that the suffix rules below would get wrong
var errorCodeStatus = map[string]int{
	ErrCodeUnknown:    http.StatusInternalServerError,
	ErrCodeInternal:   http.StatusInternalServerError,
	ErrCodeValidation: http.StatusBadRequest,

	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,

	ErrCodeNotFound:      http.StatusNotFound,
	ErrCodeAlreadyExists: http.StatusBadRequest,
	ErrCodeConflict:      http.StatusBadRequest,

	ErrCodeBadRequest:  http.StatusBadRequest,
	ErrCodeInvalidJSON: http.StatusBadRequest,

	ErrCodeRateLimited:     http.StatusTooManyRequests,
	ErrCodeRequestTooLarge: http.StatusRequestEntityTooLarge,

	// Authentication
	"UNAUTHORIZED":        http.StatusUnauthorized,
	"INVALID_CREDENTIALS": http.StatusUnauthorized,
	"ACCOUNT_DEACTIVATED": http.StatusUnauthorized,
	"TOKEN_EXPIRED":       http.StatusUnauthorized,
	"TOKEN_INVALID":       http.StatusUnauthorized,
	"TOKEN_ERROR":         http.StatusUnauthorized,
	"TOKEN_MAX_REFRESH":   http.StatusUnauthorized,
	"INVALID_SIGNATURE":   http.StatusUnauthorized,
	"INVALID_PASSWORD":    http.StatusUnauthorized,

	// Authorization
	"FORBIDDEN":           http.StatusForbidden,
	"ALUMNI_NOT_VERIFIED": http.StatusForbidden,

	// Business-rule conflicts. These are final rejections, not transient
	// races, and surface as 400 like other validation failures.
	"ALREADY_EXISTS":     http.StatusBadRequest,
	"ALREADY_REGISTERED": http.StatusBadRequest,
	"ROLE_IN_USE":        http.StatusBadRequest,
	"DUPLICATE_NAME":     http.StatusBadRequest,
	"HAS_CHILDREN":       http.StatusBadRequest,
	"HAS_PRODUCTS":       http.StatusBadRequest,
	"MAX_DEPTH_EXCEEDED": http.StatusBadRequest,
	"CIRCULAR_REFERENCE": http.StatusBadRequest,

	// Optimistic lock failures are retryable and keep 409.
	"CONCURRENCY_CONFLICT": http.StatusConflict,

	// Upstream failures
	"GATEWAY_ERROR":       http.StatusBadGateway,
	"UPLOAD_URL_FAILED":   http.StatusBadGateway,
	"DOWNLOAD_URL_FAILED": http.StatusBadGateway,
	"GATEWAY_UNAVAILABLE": http.StatusServiceUnavailable,

	"NOT_FOUND":      http.StatusNotFound,
	"INTERNAL_ERROR": http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status for an error code. Codes not in
// the explicit table are classified by shape: *_NOT_FOUND is 404,
// DUPLICATE_*, HAS_*, INVALID_* and MISSING_* are 400, and everything
// else (state machine rejections like ALREADY_CLOSED or QUOTA_EXCEEDED)
// is 422.
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeStatus[code]; ok {
		return status
	}

	switch {
	case strings.HasSuffix(code, "_NOT_FOUND"):
		return http.StatusNotFound
	case strings.HasPrefix(code, "DUPLICATE_"), strings.HasPrefix(code, "HAS_"),
		strings.HasPrefix(code, "INVALID_"), strings.HasPrefix(code, "MISSING_"),
		strings.HasPrefix(code, "UNKNOWN_"), strings.HasPrefix(code, "IMPORT_"):
		return http.StatusBadRequest
	default:
		return http.StatusUnprocessableEntity
	}
}
