package common

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	admindomain "github.com/sngm3741/halal-food-club/api/internal/admin/domain"
	publicdomain "github.com/sngm3741/halal-food-club/api/internal/public/domain"
)

// WriteJSON serializes payload to JSON with status and logs on failure.
func WriteJSON(logger *log.Logger, w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil && logger != nil {
		logger.Printf("encode JSON response: %v", err)
	}
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
	Code  string `json:"code,omitempty"`
}

// WriteError writes a plain error message.
func WriteError(logger *log.Logger, w http.ResponseWriter, status int, message string) {
	WriteJSON(logger, w, status, ErrorResponse{Error: message})
}

// WriteDomainError maps lifecycle and discovery errors to HTTP statuses.
// Unknown errors are logged with action and reported as 500.
func WriteDomainError(logger *log.Logger, w http.ResponseWriter, action string, err error) {
	var adminValidation *admindomain.ValidationError
	var publicValidation *publicdomain.ValidationError

	switch {
	case errors.As(err, &adminValidation):
		WriteJSON(logger, w, http.StatusBadRequest, ErrorResponse{Error: adminValidation.Error(), Field: adminValidation.Field, Code: "validation"})
	case errors.As(err, &publicValidation):
		WriteJSON(logger, w, http.StatusBadRequest, ErrorResponse{Error: publicValidation.Error(), Field: publicValidation.Field, Code: "validation"})
	case errors.Is(err, admindomain.ErrPaymentRequired):
		WriteJSON(logger, w, http.StatusPaymentRequired, ErrorResponse{Error: admindomain.ErrPaymentRequired.Error(), Code: "payment_required"})
	case errors.Is(err, admindomain.ErrNotFound), errors.Is(err, publicdomain.ErrNotFound):
		WriteJSON(logger, w, http.StatusNotFound, ErrorResponse{Error: "not found", Code: "not_found"})
	case errors.Is(err, admindomain.ErrDuplicatePayment):
		WriteJSON(logger, w, http.StatusConflict, ErrorResponse{Error: err.Error(), Code: "duplicate_payment"})
	case errors.Is(err, admindomain.ErrInvalidTransition):
		WriteJSON(logger, w, http.StatusConflict, ErrorResponse{Error: err.Error(), Code: "invalid_transition"})
	case errors.Is(err, admindomain.ErrStateConflict):
		WriteJSON(logger, w, http.StatusConflict, ErrorResponse{Error: "submission changed concurrently, retry", Code: "conflict"})
	default:
		if logger != nil {
			logger.Printf("%s failed: %v", action, err)
		}
		WriteJSON(logger, w, http.StatusInternalServerError, ErrorResponse{Error: action + " failed"})
	}
}
