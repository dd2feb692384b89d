package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/gophauth/internal/common"
)

// Error is the body of every non-2xx response.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error codes.
const (
	ErrCodeBadRequest   = "bad_request"
	ErrCodeValidation   = "validation_error"
	ErrCodeUnauthorized = "unauthorised"
	ErrCodeForbidden    = "forbidden"
	ErrCodeNotFound     = "not_found"
	ErrCodeConflict     = "conflict"
	ErrCodeInternal     = "internal_error"
	ErrCodeUnavailable  = "unavailable"
)

// writeJSON writes a JSON response with the given status code and payload.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		//nolint:errcheck // the client may already be gone
		json.NewEncoder(w).Encode(v)
	}
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, Error{Code: code, Message: message})
}

func writeBadRequest(w http.ResponseWriter, message string) {
	writeError(w, http.StatusBadRequest, ErrCodeBadRequest, message)
}

// classify maps a service error onto an HTTP status and error code.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, common.ErrorValidation):
		return http.StatusBadRequest, ErrCodeValidation
	case errors.Is(err, common.ErrInvalidCredentials), errors.Is(err, common.ErrInvalidToken):
		return http.StatusUnauthorized, ErrCodeUnauthorized
	case errors.Is(err, common.ErrUnauthenticated), errors.Is(err, common.ErrForbidden):
		return http.StatusForbidden, ErrCodeForbidden
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound, ErrCodeNotFound
	case errors.Is(err, common.ErrorAlreadyExists):
		return http.StatusConflict, ErrCodeConflict
	default:
		return http.StatusInternalServerError, ErrCodeInternal
	}
}

// messages holds per-endpoint response texts keyed by the sentinel they
// answer. Validation errors fall back to the error text; anything else
// unlisted falls back to the status text.
type messages map[error]string

func (m messages) lookup(err error, status int) string {
	for sentinel, msg := range m {
		if errors.Is(err, sentinel) {
			return msg
		}
	}
	if errors.Is(err, common.ErrorValidation) {
		return err.Error()
	}
	return http.StatusText(status)
}

// writeServiceError answers err using the endpoint's messages. Internal
// errors never carry their detail to the client.
func writeServiceError(w http.ResponseWriter, err error, m messages) {
	status, code := classify(err)
	writeError(w, status, code, m.lookup(err, status))
}
