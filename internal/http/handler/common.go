package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/agenciaworcode-source/dashboard-expatur/internal/domain"
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("filterdate", validFilterDate)
	return v
}

// validFilterDate accepts the two date forms the dashboard understands:
// a bare YYYY-MM-DD day or a full RFC 3339 instant.
func validFilterDate(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if _, err := time.Parse(time.RFC3339, value); err == nil {
		return true
	}
	_, err := time.Parse("2006-01-02", value)
	return err == nil
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// respondWithError sends a standardized JSON error response
func respondWithError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, domain.APIError{Error: message})
}

// respondValidationError flattens validator errors into a single error message
func respondValidationError(w http.ResponseWriter, err error) {
	if ve, ok := err.(validator.ValidationErrors); ok {
		parts := make([]string, 0, len(ve))
		for _, fe := range ve {
			parts = append(parts, formatValidationError(fe))
		}
		respondWithError(w, http.StatusBadRequest, strings.Join(parts, "; "))
		return
	}
	respondWithError(w, http.StatusBadRequest, err.Error())
}

// formatValidationError creates a human-readable validation error message
func formatValidationError(fe validator.FieldError) string {
	field := toJSONFieldName(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "filterdate":
		return fmt.Sprintf("%s must be a YYYY-MM-DD date or an RFC 3339 timestamp", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// toJSONFieldName converts a Go struct field name to its JSON equivalent (camelCase)
func toJSONFieldName(field string) string {
	if len(field) == 0 {
		return field
	}
	return strings.ToLower(field[:1]) + field[1:]
}
