package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"blogapi/internal/repository"
	"blogapi/internal/service"
)

// ErrorResponse is the standard error body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ValidationErrorResponse carries per-field validation messages.
type ValidationErrorResponse struct {
	Errors map[string][]string `json:"errors"`
}

func WriteError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}

func WriteJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// writeValidationError renders a 422 with one message list per field.
func writeValidationError(w http.ResponseWriter, err error) {
	fieldErrors := map[string][]string{}

	var validationErrors validator.ValidationErrors
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &validationErrors):
		for _, fe := range validationErrors {
			field := fe.Field()
			var message string
			switch fe.Tag() {
			case "required":
				message = fmt.Sprintf("The %s field is required.", field)
			case "email":
				message = fmt.Sprintf("The %s field must be a valid email address.", field)
			case "min":
				message = fmt.Sprintf("The %s field must be at least %s characters.", field, fe.Param())
			default:
				message = fmt.Sprintf("The %s field is invalid.", field)
			}
			fieldErrors[field] = append(fieldErrors[field], message)
		}
	case errors.As(err, &typeErr):
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		fieldErrors[field] = append(fieldErrors[field],
			fmt.Sprintf("The %s field must be of type %s.", field, typeErr.Type))
	}

	WriteJSON(w, ValidationErrorResponse{Errors: fieldErrors}, http.StatusUnprocessableEntity)
}

// writeDecodeError distinguishes a wrong-typed field, which is a
// validation failure, from a body that is not JSON at all.
func writeDecodeError(w http.ResponseWriter, err error) {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		writeValidationError(w, err)
		return
	}
	WriteError(w, "Invalid request body", http.StatusBadRequest)
}

// writeServiceError maps the error taxonomy onto HTTP statuses. Absent
// and not-visible posts both arrive here as ErrNotFound, so the outward
// signal never distinguishes them.
func (h *Handlers) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrUnauthenticated):
		WriteError(w, "Unauthenticated", http.StatusUnauthorized)
	case errors.Is(err, repository.ErrInvalidCredentials):
		WriteError(w, "Invalid credentials", http.StatusUnauthorized)
	case errors.Is(err, service.ErrForbidden):
		WriteError(w, "Forbidden", http.StatusForbidden)
	case errors.Is(err, repository.ErrNotFound):
		WriteError(w, "Not found", http.StatusNotFound)
	case errors.Is(err, service.ErrEmailTaken):
		WriteError(w, "Email already registered", http.StatusConflict)
	default:
		h.Logger.Error("request failed", zap.Error(err))
		WriteError(w, "Internal server error", http.StatusInternalServerError)
	}
}
