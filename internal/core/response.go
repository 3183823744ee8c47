// CatalogHQ | 2026
// response.go

package core

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// Envelope is the uniform JSON shape returned by every endpoint.
type Envelope struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Data    any                 `json:"data,omitempty"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

func writeEnvelope(w http.ResponseWriter, status int, env Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	//nolint:errcheck // best-effort response write
	_ = json.NewEncoder(w).Encode(env)
}

func OK(w http.ResponseWriter, message string, data any) {
	writeEnvelope(w, http.StatusOK, Envelope{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func Created(w http.ResponseWriter, message string, data any) {
	writeEnvelope(w, http.StatusCreated, Envelope{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func Error(w http.ResponseWriter, status int, message string) {
	writeEnvelope(w, status, Envelope{
		Success: false,
		Message: message,
	})
}

func BadRequest(w http.ResponseWriter, message string) {
	Error(w, http.StatusBadRequest, message)
}

func Unauthorized(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Unauthenticated"
	}
	Error(w, http.StatusUnauthorized, message)
}

func Forbidden(w http.ResponseWriter, message string) {
	Error(w, http.StatusForbidden, message)
}

func NotFound(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Resource not found"
	}
	Error(w, http.StatusNotFound, message)
}

func ValidationFailed(w http.ResponseWriter, fields map[string][]string, message string) {
	if message == "" {
		message = "The given data was invalid"
	}
	writeEnvelope(w, http.StatusUnprocessableEntity, Envelope{
		Success: false,
		Message: message,
		Errors:  fields,
	})
}

// InternalServerError logs the fault with operation context and returns a
// generic envelope so no internal detail leaks to the client.
func InternalServerError(w http.ResponseWriter, op string, err error) {
	slog.Error("internal error", "operation", op, "error", err)
	Error(w, http.StatusInternalServerError, "Something went wrong")
}

// StorageFailed maps a file-store failure to its fixed 500 envelope.
func StorageFailed(w http.ResponseWriter, op string, err error) {
	slog.Error("storage error", "operation", op, "error", err)
	Error(w, http.StatusInternalServerError, "File storage operation failed")
}

// FormatValidationError flattens validator.v10 struct errors into the
// envelope's field→messages shape.
func FormatValidationError(err error) map[string][]string {
	fields := make(map[string][]string)

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		fields["_"] = []string{err.Error()}
		return fields
	}

	for _, fe := range verrs {
		field := fe.Field()
		var msg string
		switch fe.Tag() {
		case "required":
			msg = "This field is required"
		case "email":
			msg = "Must be a valid email address"
		case "min":
			msg = "Must be at least " + fe.Param() + " characters"
		case "max":
			msg = "Must be at most " + fe.Param() + " characters"
		default:
			msg = "Invalid value"
		}
		fields[field] = append(fields[field], msg)
	}

	return fields
}
