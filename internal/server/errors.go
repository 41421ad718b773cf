package server

import (
	"encoding/json"
	"net/http"

	tocerr "github.com/matzehuels/tocview/pkg/errors"
)

type errorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// statusFor maps an error code to an HTTP status.
func statusFor(err error) int {
	switch {
	case tocerr.IsNotFound(err):
		return http.StatusNotFound
	case tocerr.IsInvalid(err):
		return http.StatusBadRequest
	case tocerr.Is(err, tocerr.ErrCodeUnsupported):
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	id := requestIDFromContext(r.Context())

	msg := tocerr.UserMessage(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "id", id, "path", r.URL.Path, "error", err)
		msg = "internal server error"
	}

	writeJSON(w, status, errorResponse{
		Error:     msg,
		Code:      string(tocerr.GetCode(err)),
		RequestID: id,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
