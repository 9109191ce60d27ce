package httputil

import (
	"net/http"
	"strings"

	"github.com/TykTechnologies/tyk-rpc-router/headers"
)

// EntityTooLarge responds with HTTP 413 Request Entity Too Large.
// The function is used for a response when blocking requests by size.
func EntityTooLarge(w http.ResponseWriter, _ *http.Request) {
	status := http.StatusRequestEntityTooLarge
	http.Error(w, http.StatusText(status), status)
}

// NotFound responds with HTTP 404.
func NotFound(w http.ResponseWriter, _ *http.Request) {
	status := http.StatusNotFound
	http.Error(w, http.StatusText(status), status)
}

// BadGateway responds with HTTP 502. It is used when a backend gave no
// response at all.
func BadGateway(w http.ResponseWriter, _ *http.Request) {
	status := http.StatusBadGateway
	http.Error(w, http.StatusText(status), status)
}

// MethodNotAllowed responds with HTTP 405 and sets the Allow header.
func MethodNotAllowed(allowed ...string) http.HandlerFunc {
	allow := strings.Join(allowed, ", ")
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set(headers.Allow, allow)
		status := http.StatusMethodNotAllowed
		http.Error(w, http.StatusText(status), status)
	}
}

// StatusRecorder wraps a ResponseWriter and remembers the status written.
type StatusRecorder struct {
	http.ResponseWriter
	status  int
	written int64
}

// NewStatusRecorder wraps w.
func NewStatusRecorder(w http.ResponseWriter) *StatusRecorder {
	return &StatusRecorder{ResponseWriter: w}
}

// WriteHeader records status and forwards it.
func (s *StatusRecorder) WriteHeader(status int) {
	if s.status == 0 {
		s.status = status
	}
	s.ResponseWriter.WriteHeader(status)
}

// Write forwards b, recording an implicit 200.
func (s *StatusRecorder) Write(b []byte) (int, error) {
	if s.status == 0 {
		s.status = http.StatusOK
	}
	n, err := s.ResponseWriter.Write(b)
	s.written += int64(n)
	return n, err
}

// Flush forwards to the wrapped writer when it supports flushing.
func (s *StatusRecorder) Flush() {
	if f, ok := s.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Unwrap returns the wrapped writer for http.ResponseController.
func (s *StatusRecorder) Unwrap() http.ResponseWriter {
	return s.ResponseWriter
}

// Status returns the written status, 200 if only a body was written and
// 0 if nothing was written.
func (s *StatusRecorder) Status() int {
	return s.status
}

// BytesWritten returns the number of body bytes written.
func (s *StatusRecorder) BytesWritten() int64 {
	return s.written
}
