// Package handlers contains the REST endpoints. Every response uses the
// same envelope; errors are translated from the apperrors taxonomy to HTTP
// status codes in one place.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/campushub/showcase-api/pkg/apperrors"
)

// Envelope is the uniform response body. Count is only present on list
// responses.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Count   *int        `json:"count,omitempty"`
}

// WriteData writes a success envelope and returns any encoding error.
func WriteData(w http.ResponseWriter, statusCode int, data interface{}) error {
	return writeEnvelope(w, statusCode, Envelope{Success: true, Data: data})
}

// WriteList writes a success envelope with the list length in count.
func WriteList(w http.ResponseWriter, statusCode int, data interface{}, count int) error {
	return writeEnvelope(w, statusCode, Envelope{Success: true, Data: data, Count: &count})
}

// WriteError writes a failure envelope and returns any encoding error.
func WriteError(w http.ResponseWriter, statusCode int, message string) error {
	return writeEnvelope(w, statusCode, Envelope{Success: false, Error: message})
}

func writeEnvelope(w http.ResponseWriter, statusCode int, env Envelope) error {
	w.Header().Set("Content-Type", "application/json")
	if statusCode != http.StatusOK {
		w.WriteHeader(statusCode)
	}
	return json.NewEncoder(w).Encode(env)
}

// HandleError maps a service error onto the envelope. Unrecognized errors
// are logged and reported as a generic server error so internals never leak
// to callers.
func HandleError(w http.ResponseWriter, logger *zap.Logger, err error) {
	var status int
	message := err.Error()

	switch {
	case errors.Is(err, apperrors.ErrValidation), errors.Is(err, apperrors.ErrInvalidTransition):
		status = http.StatusBadRequest
	case errors.Is(err, apperrors.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, apperrors.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, apperrors.ErrNotFound):
		status = http.StatusNotFound
	default:
		status = http.StatusInternalServerError
		message = "internal server error"
		logger.Error("Request failed", zap.Error(err))
	}

	if err := WriteError(w, status, message); err != nil {
		logger.Error("Failed to write error response", zap.Error(err))
	}
}

// ParseID extracts and parses the named UUID path value. On failure it
// writes a 400 envelope and returns ok=false.
func ParseID(w http.ResponseWriter, r *http.Request, name string, logger *zap.Logger) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		if err := WriteError(w, http.StatusBadRequest, "invalid "+name); err != nil {
			logger.Error("Failed to write error response", zap.Error(err))
		}
		return uuid.Nil, false
	}
	return id, true
}

// DecodeJSON reads the request body into dst. On failure it writes a 400
// envelope and returns false.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}, logger *zap.Logger) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if err := WriteError(w, http.StatusBadRequest, "invalid request body"); err != nil {
			logger.Error("Failed to write error response", zap.Error(err))
		}
		return false
	}
	return true
}
