package web

import (
	"io"
	"net/http"
)

// Stream is a Responder for binary or streaming bodies. Return *Stream from
// a handler to bypass encoding; Body is copied to the client as-is and
// closed afterwards if it is an io.Closer.
type Stream struct {
	ContentType string
	Status      int
	Body        io.Reader
}

// Respond implements Responder. The status defaults to 200.
func (s *Stream) Respond(*Head) Future[Body] {
	h := make(http.Header)
	if s.ContentType != "" {
		h.Set("Content-Type", s.ContentType)
	}
	status := s.Status
	if status == 0 {
		status = http.StatusOK
	}
	return Ready(Body{Status: status, Header: h, Stream: s.Body})
}
