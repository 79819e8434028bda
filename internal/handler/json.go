// Package handler provides the HTTP surface of the catalog server. The
// handlers are thin: they decode requests, call the catalogs and map the
// domain error taxonomy onto HTTP status codes.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/rrivasl/catalog/internal/domain"
)

// errorResponse is the JSON body of every error reply.
type errorResponse struct {
	Error      string   `json:"error"`
	Violations []string `json:"violations,omitempty"`
}

// writeJSON sends a JSON response with the given status code and data.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error().Err(err).Msg("write JSON response")
	}
}

// writeError sends a JSON error response with the given status and message.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// readJSON decodes the request body into dst.
func readJSON(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}

// writeDomainError maps the catalog error taxonomy onto HTTP statuses:
// validation failures are 400 with the full violation list, duplicate keys
// are 409, missing entities are 404, and anything unexpected is 500.
func writeDomainError(w http.ResponseWriter, err error) {
	if ve, ok := domain.AsValidation(err); ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:      "validation failed",
			Violations: ve.Violations,
		})
		return
	}

	switch {
	case errors.Is(err, domain.ErrDuplicateEmail),
		errors.Is(err, domain.ErrDuplicateUsername),
		errors.Is(err, domain.ErrDuplicateProductCode):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrProductNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrNegativeStock):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		log.Error().Err(err).Msg("unexpected error")
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
