package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/hyperengineering/reviewlens/internal/review"
)

// errorBody is the JSON error envelope returned to clients.
type errorBody struct {
	Error string `json:"error"`
}

// WriteError writes a JSON {error} response with the given status.
func WriteError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(errorBody{Error: message}); err != nil {
		slog.Error("failed to encode error response", "error", err)
	}
}

// writeJSON writes v as a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// asValidationError unwraps err into a client-caused validation failure.
func asValidationError(err error) (*review.ValidationError, bool) {
	var verr *review.ValidationError
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}
