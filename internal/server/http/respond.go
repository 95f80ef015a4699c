package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/campusxchange/server/internal/errs"
)

// writeJSON encodes v with the given status code.
func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps sentinel errors onto HTTP status codes. Validation
// reasons are surfaced verbatim; everything else stays generic so
// internals never leak to the client.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, errs.ErrValidation):
		writeJSON(w, http.StatusBadRequest, errBody(err.Error()))
	case errors.Is(err, errs.ErrUnauthorized):
		writeJSON(w, http.StatusUnauthorized, errBody("unauthorized"))
	case errors.Is(err, errs.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errBody("not found"))
	case errors.Is(err, errs.ErrSelfRequest):
		writeJSON(w, http.StatusConflict, errBody(errs.ErrSelfRequest.Error()))
	case errors.Is(err, errs.ErrAlreadyExists):
		writeJSON(w, http.StatusConflict, errBody("already exists"))
	case errors.Is(err, errs.ErrRateLimited):
		writeJSON(w, http.StatusTooManyRequests, errBody("rate limited, try again later"))
	default:
		writeJSON(w, http.StatusInternalServerError, errBody("couldn't save, try again"))
	}
}

func errBody(msg string) map[string]string {
	return map[string]string{"error": msg}
}
