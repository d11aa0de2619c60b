package web

import (
	"io"
	"net/http"
	"strconv"
)

// CookieSetter is optionally implemented by response types to set cookies.
type CookieSetter interface {
	Cookies() []*http.Cookie
}

// HeaderSetter is optionally implemented by response types to set response headers.
type HeaderSetter interface {
	SetHeaders(h http.Header)
}

// Body is what a Responder produces: a status, headers and content.
// Stream, when set, is copied to the client after Data.
type Body struct {
	Status int
	Header http.Header
	Data   []byte
	Stream io.Reader
}

// Size returns the length of Data, or -1 when the body is streamed.
func (b *Body) Size() int {
	if b.Stream != nil {
		return -1
	}
	return len(b.Data)
}

// Respond implements Responder, so a prebuilt Body can be returned from a handler.
func (b Body) Respond(*Head) Future[Body] {
	return Ready(b)
}

// Response is the request head reattached to the body produced for it.
type Response struct {
	head *Head
	Body
}

// NewResponse attaches body to the request head.
func NewResponse(head *Head, body Body) *Response {
	if body.Status == 0 {
		body.Status = http.StatusOK
	}
	if body.Header == nil {
		body.Header = make(http.Header)
	}
	return &Response{head: head, Body: body}
}

// Head returns the head of the request this response answers.
func (r *Response) Head() *Head { return r.head }

// Write sends the response to w.
func (r *Response) Write(w http.ResponseWriter) error {
	h := w.Header()
	for k, vs := range r.Header {
		h[k] = vs
	}
	if r.Stream == nil && r.Status != http.StatusNoContent && r.Status != http.StatusNotModified {
		h.Set("Content-Length", strconv.Itoa(len(r.Data)))
	}
	w.WriteHeader(r.Status)

	if len(r.Data) > 0 {
		if _, err := w.Write(r.Data); err != nil {
			return err
		}
	}
	if r.Stream != nil {
		if c, ok := r.Stream.(io.Closer); ok {
			defer c.Close() //nolint:errcheck // best-effort close after copy
		}
		if _, err := io.Copy(w, r.Stream); err != nil {
			return err
		}
	}
	return nil
}
