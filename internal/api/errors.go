package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mxbcash/mxbcash/internal/ledger"
)

// ErrorResponse represents an API error response.
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description,omitempty"`
}

// writeJSON writes a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeJSONError writes a JSON error response.
func writeJSONError(w http.ResponseWriter, status int, code, description string) {
	writeJSON(w, status, ErrorResponse{
		Error:            code,
		ErrorDescription: description,
	})
}

// writeError maps a ledger error onto the HTTP error taxonomy.
func writeError(w http.ResponseWriter, err error) {
	var (
		notFound      *ledger.NotFoundError
		validation    *ledger.ValidationError
		conflict      *ledger.ConflictError
		configuration *ledger.ConfigurationError
	)
	switch {
	case errors.As(err, &notFound):
		writeJSONError(w, http.StatusNotFound, "not_found", notFound.Error())
	case errors.As(err, &validation):
		writeJSONError(w, http.StatusUnprocessableEntity, "validation_error", validation.Error())
	case errors.As(err, &conflict):
		writeJSONError(w, http.StatusConflict, "conflict", conflict.Error())
	case errors.As(err, &configuration):
		writeJSONError(w, http.StatusBadRequest, "configuration_error", configuration.Error())
	default:
		writeJSONError(w, http.StatusInternalServerError, "server_error", "internal server error")
	}
}
