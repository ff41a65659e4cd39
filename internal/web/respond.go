package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"movpress/internal/logging"
	"movpress/internal/services"
)

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Warn("encode response", logging.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, errorResponse{Error: message})
}

// statusFor maps taxonomy errors onto HTTP statuses. Validation problems are
// the client's fault; encoder failures are reported as a bad gateway since
// the external process is the upstream here.
func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrInvalidArgument), errors.Is(err, services.ErrMissingInput):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrEncodingFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
