package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/babburibeiro/WebAppCashUp/internal/core"
	"github.com/babburibeiro/WebAppCashUp/internal/log"
	"github.com/babburibeiro/WebAppCashUp/internal/storage"
)

// maxBodyBytes caps JSON request bodies. The largest legitimate payload
// is an onboarding survey, far below this.
const maxBodyBytes = 1 << 20

// errorResponse is the JSON shape of every error reply.
type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.ErrorContext(r.Context(), "encode response",
			log.FieldError, err, log.FieldPath, r.URL.Path)
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFromError(err)
	if status >= 500 {
		s.logger.ErrorContext(r.Context(), "request failed",
			log.FieldError, err, log.FieldMethod, r.Method, log.FieldPath, r.URL.Path)
	}
	s.writeJSON(w, r, status, errorResponse{Error: err.Error()})
}

// statusFromError maps domain and storage errors to HTTP statuses.
// Validation failures are 422, missing records 404, everything else
// a 500.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, core.ErrInvalidAmount),
		errors.Is(err, core.ErrInvalidDate),
		errors.Is(err, core.ErrInvalidMonthKey),
		errors.Is(err, core.ErrEmptyDescription),
		errors.Is(err, core.ErrEmptyName),
		errors.Is(err, core.ErrInvalidType),
		errors.Is(err, core.ErrUnknownCategory),
		errors.Is(err, core.ErrInvalidDay):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// decodeJSON reads a size-limited JSON body into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return err
	}
	return nil
}

// badRequest reports a malformed body or parameter as a 400.
func (s *Server) badRequest(w http.ResponseWriter, r *http.Request, err error) {
	s.writeJSON(w, r, http.StatusBadRequest, errorResponse{Error: "invalid request: " + err.Error()})
}
