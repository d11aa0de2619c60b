package web

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
)

// ErrPayloadTaken is returned when a request payload is taken more than once.
var ErrPayloadTaken = errors.New("payload already taken")

// Head is the immutable part of an incoming request: method, URL, headers,
// protocol version, connection metadata, path values and context. The body
// is not reachable through the head; it travels separately as a Payload.
type Head struct {
	req *http.Request
}

// Method returns the request method.
func (h *Head) Method() string { return h.req.Method }

// URL returns the request URL.
func (h *Head) URL() *url.URL { return h.req.URL }

// Path returns the request URL path.
func (h *Head) Path() string { return h.req.URL.Path }

// Header returns the request headers.
func (h *Head) Header() http.Header { return h.req.Header }

// Proto returns the protocol version, e.g. "HTTP/1.1".
func (h *Head) Proto() string { return h.req.Proto }

// Host returns the requested host.
func (h *Head) Host() string { return h.req.Host }

// RemoteAddr returns the network address of the client.
func (h *Head) RemoteAddr() string { return h.req.RemoteAddr }

// PathValue returns the value of the named path wildcard matched by the router.
func (h *Head) PathValue(name string) string { return h.req.PathValue(name) }

// Context returns the request context.
func (h *Head) Context() context.Context { return h.req.Context() }

// Cookie returns the named cookie.
func (h *Head) Cookie(name string) (*http.Cookie, error) { return h.req.Cookie(name) }

// Raw returns the underlying *http.Request. Its Body is always http.NoBody;
// read the body through the request's Payload.
func (h *Head) Raw() *http.Request { return h.req }

// Payload is the single-consumption body stream of a request.
type Payload struct {
	body  io.ReadCloser
	taken bool
}

// Take hands the body stream to the caller. Only the first call succeeds.
func (p *Payload) Take() (io.ReadCloser, error) {
	if p.taken {
		return nil, ErrPayloadTaken
	}
	p.taken = true
	return p.body, nil
}

// Taken reports whether the body stream has been handed out.
func (p *Payload) Taken() bool { return p.taken }

// Limit caps the number of bytes readable from the body. Reads past the cap
// fail with *http.MaxBytesError.
func (p *Payload) Limit(maxBytes int64) {
	if p.body == nil || p.taken {
		return
	}
	p.body = http.MaxBytesReader(nil, p.body, maxBytes)
}

// Request is an incoming request envelope: a head plus its payload.
type Request struct {
	head    *Head
	payload *Payload
}

// NewRequest splits r into a Request envelope. The body of r moves into the
// payload; the head keeps a shallow copy of r with an empty body.
func NewRequest(r *http.Request) *Request {
	body := r.Body
	if body == nil {
		body = http.NoBody
	}
	hr := r.WithContext(r.Context())
	hr.Body = http.NoBody
	return &Request{
		head:    &Head{req: hr},
		payload: &Payload{body: body},
	}
}

// Head returns the request head.
func (r *Request) Head() *Head { return r.head }

// Payload returns the request payload.
func (r *Request) Payload() *Payload { return r.payload }

// Split returns the head and payload, the form in which extractors consume a request.
func (r *Request) Split() (*Head, *Payload) { return r.head, r.payload }

// WithContext returns a shallow copy of r whose head carries ctx. The
// payload is shared with r.
func (r *Request) WithContext(ctx context.Context) *Request {
	return &Request{
		head:    &Head{req: r.head.req.WithContext(ctx)},
		payload: r.payload,
	}
}
