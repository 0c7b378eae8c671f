package middleware

import (
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/ikada/backend/internal/interfaces/http/dto"
)

// SetupValidator configures the gin binding validator so error messages
// report JSON field names instead of Go struct field names.
func SetupValidator() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "" {
				name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
			}
			if name == "-" {
				return ""
			}
			return name
		})
	}
}

// FormatValidationErrors converts validator errors into per-field details
func FormatValidationErrors(err error) []dto.ValidationDetail {
	var details []dto.ValidationDetail

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return []dto.ValidationDetail{{Field: "request", Message: err.Error()}}
	}

	for _, fieldErr := range validationErrors {
		details = append(details, dto.ValidationDetail{
			Field:   fieldErr.Field(),
			Message: getValidationMessage(fieldErr),
		})
	}
	return details
}

// HandleValidationError writes a 400 response for binding failures
func HandleValidationError(c *gin.Context, err error) {
	details := FormatValidationErrors(err)
	c.JSON(http.StatusBadRequest,
		dto.NewValidationErrorResponse("Request validation failed", GetRequestID(c), details))
}

func getValidationMessage(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Must be a valid email address"
	case "min":
		if fieldErr.Kind() == reflect.String {
			return "Must be at least " + fieldErr.Param() + " characters long"
		}
		return "Must be at least " + fieldErr.Param()
	case "max":
		if fieldErr.Kind() == reflect.String {
			return "Must be at most " + fieldErr.Param() + " characters long"
		}
		return "Must be at most " + fieldErr.Param()
	case "uuid":
		return "Must be a valid UUID"
	case "oneof":
		return "Must be one of: " + fieldErr.Param()
	case "url":
		return "Must be a valid URL"
	case "gt":
		return "Must be greater than " + fieldErr.Param()
	case "gte":
		return "Must be greater than or equal to " + fieldErr.Param()
	case "datetime":
		return "Must be a valid date in format " + fieldErr.Param()
	default:
		return "Invalid value"
	}
}
