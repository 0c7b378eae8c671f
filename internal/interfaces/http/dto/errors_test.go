package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatus_ExplicitCodes(t *testing.T) {
	tests := []struct {
		code   string
		status int
	}{
		{ErrCodeNotFound, http.StatusNotFound},
		{ErrCodeInternal, http.StatusInternalServerError},
		{ErrCodeRateLimited, http.StatusTooManyRequests},
		{"INVALID_CREDENTIALS", http.StatusUnauthorized},
		{"INVALID_SIGNATURE", http.StatusUnauthorized},
		{"ALUMNI_NOT_VERIFIED", http.StatusForbidden},
		{"ALREADY_REGISTERED", http.StatusBadRequest},
		{"CONCURRENCY_CONFLICT", http.StatusConflict},
		{"GATEWAY_ERROR", http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.status, GetHTTPStatus(tt.code))
		})
	}
}

func TestGetHTTPStatus_ClassifiedByShape(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, GetHTTPStatus("SYUBIYAH_NOT_FOUND"))
	assert.Equal(t, http.StatusBadRequest, GetHTTPStatus("DUPLICATE_EMAIL"))
	assert.Equal(t, http.StatusBadRequest, GetHTTPStatus("HAS_DONATIONS"))
	assert.Equal(t, http.StatusBadRequest, GetHTTPStatus("INVALID_YEAR"))
	assert.Equal(t, http.StatusBadRequest, GetHTTPStatus("MISSING_ANSWER"))
	assert.Equal(t, http.StatusBadRequest, GetHTTPStatus("IMPORT_MISSING_COLUMNS"))
	assert.Equal(t, http.StatusUnprocessableEntity, GetHTTPStatus("QUOTA_EXCEEDED"))
	assert.Equal(t, http.StatusUnprocessableEntity, GetHTTPStatus("ALREADY_CLOSED"))
	assert.Equal(t, http.StatusUnprocessableEntity, GetHTTPStatus("REGISTRATION_CLOSED"))
}

// Every category tree rejection is a 400 per the documented API contract.
func TestGetHTTPStatus_CategoryRejections(t *testing.T) {
	for _, code := range []string{
		"DUPLICATE_NAME",
		"HAS_CHILDREN",
		"HAS_PRODUCTS",
		"MAX_DEPTH_EXCEEDED",
		"CIRCULAR_REFERENCE",
		"INVALID_PARENT",
	} {
		assert.Equal(t, http.StatusBadRequest, GetHTTPStatus(code), code)
	}
}

func TestNewSuccessResponseWithMeta(t *testing.T) {
	resp := NewSuccessResponseWithMeta([]string{"a"}, 5, 1, 2)
	assert.True(t, resp.Success)
	assert.Equal(t, int64(5), resp.Meta.Total)
	assert.Equal(t, 3, resp.Meta.TotalPages)
}

func TestNewErrorResponseWithRequestID(t *testing.T) {
	resp := NewErrorResponseWithRequestID(ErrCodeNotFound, "Alumni not found", "req-123")
	assert.False(t, resp.Success)
	assert.Equal(t, ErrCodeNotFound, resp.Error.Code)
	assert.Equal(t, "req-123", resp.Error.RequestID)
}

func TestNewValidationErrorResponse(t *testing.T) {
	resp := NewValidationErrorResponse("Request validation failed", "req-123", []ValidationDetail{
		{Field: "email", Message: "Invalid email format"},
	})
	assert.Equal(t, ErrCodeValidation, resp.Error.Code)
	assert.Len(t, resp.Error.Details, 1)
}

func TestListRequest_Normalize(t *testing.T) {
	var req ListRequest
	req.Normalize()
	assert.Equal(t, 1, req.Page)
	assert.Equal(t, 20, req.PageSize)
}
