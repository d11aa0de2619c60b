package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for request extraction.
var (
	ErrBindPath   = errors.New("bind path")
	ErrBindQuery  = errors.New("bind query")
	ErrBindHeader = errors.New("bind header")
	ErrBindCookie = errors.New("bind cookie")
	ErrBindBody   = errors.New("bind body")
	ErrBindValue  = errors.New("bind context value")
	ErrMissing    = errors.New("missing value")
)

// StatusCoder is implemented by errors or responses that carry an HTTP status code.
type StatusCoder interface {
	StatusCode() int
}

// ProblemDetail is an RFC 9457 problem details response.
//
//nolint:errname // RFC 9457 standard name
type ProblemDetail struct {
	Type     string            `json:"type,omitempty"`
	Title    string            `json:"title,omitempty"`
	Status   int               `json:"status"`
	Detail   string            `json:"detail,omitempty"`
	Instance string            `json:"instance,omitempty"`
	Errors   []ValidationError `json:"errors,omitempty"`
}

// Error returns the detail message (or title if detail is empty).
func (p *ProblemDetail) Error() string {
	if p.Detail != "" {
		return p.Detail
	}
	return p.Title
}

// StatusCode returns the HTTP status code.
func (p *ProblemDetail) StatusCode() int { return p.Status }

// ValidationError describes a single field validation failure.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Value   any    `json:"value,omitempty"`
}

// HTTPError is an error with an HTTP status code.
type HTTPError struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// Error returns the error message.
func (e *HTTPError) Error() string { return e.Message }

// StatusCode returns the HTTP status code.
func (e *HTTPError) StatusCode() int { return e.Status }

// Error returns an error with the given HTTP status code and message.
func Error(status int, message string) error {
	return &HTTPError{Status: status, Message: message}
}

// Errorf returns a formatted error with the given HTTP status code.
func Errorf(status int, format string, args ...any) error {
	return &HTTPError{Status: status, Message: fmt.Sprintf(format, args...)}
}

// BindError reports a failed extraction. Kind is one of the ErrBind sentinels,
// Name the parameter involved (empty for bodies).
type BindError struct {
	Kind   error
	Name   string
	Err    error
	Status int
}

func (e *BindError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("%v: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%v: %s: %v", e.Kind, e.Name, e.Err)
}

// Unwrap returns both the kind and the cause, so errors.Is matches either.
func (e *BindError) Unwrap() []error { return []error{e.Kind, e.Err} }

// StatusCode returns the HTTP status code, 400 unless set otherwise.
func (e *BindError) StatusCode() int {
	if e.Status != 0 {
		return e.Status
	}
	var mbe *http.MaxBytesError
	if errors.As(e.Err, &mbe) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusBadRequest
}

// ErrorStatus extracts the HTTP status code from an error. Returns
// http.StatusInternalServerError if the error does not implement StatusCoder
// or carries a code that is not a 4xx or 5xx.
func ErrorStatus(err error) int {
	var sc StatusCoder
	if errors.As(err, &sc) {
		if code := sc.StatusCode(); isErrorStatus(code) {
			return code
		}
		return http.StatusInternalServerError
	}
	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusInternalServerError
}

func isErrorStatus(code int) bool {
	return code >= http.StatusBadRequest && code <= 599
}

// ErrorRenderer turns a failure into a response for the given request head.
// Implementations must always return a response.
type ErrorRenderer interface {
	RenderError(err error, head *Head) *Response
}

// ErrorRendererFunc adapts a function into an ErrorRenderer.
type ErrorRendererFunc func(err error, head *Head) *Response

// RenderError calls f(err, head).
func (f ErrorRendererFunc) RenderError(err error, head *Head) *Response { return f(err, head) }

// ProblemRenderer renders errors as RFC 9457 problem details.
type ProblemRenderer struct{}

// RenderError implements ErrorRenderer.
func (ProblemRenderer) RenderError(err error, head *Head) *Response {
	status := ErrorStatus(err)

	// If the error is already a ProblemDetail, use it directly.
	var pd *ProblemDetail
	if !errors.As(err, &pd) {
		pd = &ProblemDetail{
			Type:   "about:blank",
			Title:  http.StatusText(status),
			Status: status,
			Detail: err.Error(),
		}
	} else if !isErrorStatus(pd.Status) {
		fixed := *pd
		fixed.Status = status
		pd = &fixed
	}

	data, merr := json.Marshal(pd)
	if merr != nil {
		data = []byte(http.StatusText(pd.Status))
	}
	header := make(http.Header)
	header.Set("Content-Type", "application/problem+json")
	return NewResponse(head, Body{Status: pd.Status, Header: header, Data: append(data, '\n')})
}

// DefaultErrorRenderer is used when no renderer is configured.
var DefaultErrorRenderer ErrorRenderer = ProblemRenderer{}

// renderError applies r, falling back to the default renderer and, if that
// misbehaves too, to a bare 500.
func renderError(r ErrorRenderer, err error, head *Head) *Response {
	if r != nil {
		if resp := r.RenderError(err, head); resp != nil {
			return resp
		}
	}
	if resp := DefaultErrorRenderer.RenderError(err, head); resp != nil {
		return resp
	}
	return NewResponse(head, Body{Status: http.StatusInternalServerError})
}

type rendererKey struct{}

func withRenderer(ctx context.Context, r ErrorRenderer) context.Context {
	return context.WithValue(ctx, rendererKey{}, r)
}

// rendererFrom returns the renderer of the serving router, for transforms
// that answer a request themselves.
func rendererFrom(ctx context.Context) ErrorRenderer {
	if r, ok := ctx.Value(rendererKey{}).(ErrorRenderer); ok {
		return r
	}
	return DefaultErrorRenderer
}
