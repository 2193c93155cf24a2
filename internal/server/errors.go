package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/matzehuels/codelabs/pkg/errors"
)

var errNotFoundRoute = errors.New(errors.ErrCodeNotFound, "no such page")

// StatusFor maps an error to an HTTP status by its class.
func StatusFor(err error) int {
	switch errors.ClassOf(err) {
	case errors.ClassInvalid:
		return http.StatusBadRequest
	case errors.ClassNotFound:
		return http.StatusNotFound
	case errors.ClassUpstream:
		return http.StatusBadGateway
	case errors.ClassTimeout:
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}

type errorBody struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// fail writes err as JSON under /api and as plain text elsewhere. Internal
// details are only logged.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusFor(err)
	msg := errors.UserMessage(err)
	if status >= 500 {
		s.logger.Error("request failed", "path", r.URL.Path, "err", err, "request_id", RequestIDFrom(r.Context()))
		msg = http.StatusText(status)
	}

	if strings.HasPrefix(r.URL.Path, "/api/") {
		writeJSON(w, status, errorBody{
			Error:     msg,
			Code:      string(errors.GetCode(err)),
			RequestID: RequestIDFrom(r.Context()),
		})
		return
	}
	http.Error(w, msg, status)
}

// writeJSON encodes v before writing the header, so a value that cannot be
// encoded becomes a 500 instead of an empty response.
func writeJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}
