package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"storefront/internal/model"

	"github.com/rs/zerolog"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but don't expose it to the client
		return
	}
}

// writeError writes an error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string, logger zerolog.Logger) {
	logger.Error().Str("error", message).Int("status", status).Msg("handler error")
	writeJSON(w, status, ErrorResponse{Error: message})
}

// writeDomainError maps a service error onto an HTTP status using the
// storefront error taxonomy.
func writeDomainError(w http.ResponseWriter, err error, logger zerolog.Logger) {
	code := model.CodeOf(err)

	status := http.StatusBadGateway
	switch code {
	case model.ErrCodeUnauthenticated:
		status = http.StatusUnauthorized
	case model.ErrCodeDuplicateItem:
		status = http.StatusConflict
	case model.ErrCodeInvalidRequest, model.ErrCodeNotFound, model.ErrCodeInvalidInput:
		status = http.StatusBadRequest
	}

	logger.Debug().Err(err).Str("code", code).Int("status", status).Msg("request failed")
	writeJSON(w, status, ErrorResponse{Error: err.Error(), Code: code})
}

// bearerToken extracts the Bearer token from the Authorization header,
// or returns "" when the caller is anonymous.
func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if after, ok := strings.CutPrefix(auth, "Bearer "); ok {
		return after
	}
	return ""
}
