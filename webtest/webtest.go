// Package webtest provides test helpers for services built with package web:
// a request builder, a synchronous service call, and a typed HTTP client.
package webtest

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/bjaus/web"
)

// CallTimeout bounds Call.
var CallTimeout = 5 * time.Second

// RequestBuilder assembles a *web.Request without a server.
type RequestBuilder struct {
	r *http.Request
}

// NewRequest starts a request for method and target, as httptest.NewRequest.
func NewRequest(method, target string) *RequestBuilder {
	return &RequestBuilder{r: httptest.NewRequest(method, target, nil)}
}

// PathValue sets a path wildcard value, as a router would on match.
func (b *RequestBuilder) PathValue(name, value string) *RequestBuilder {
	b.r.SetPathValue(name, value)
	return b
}

// Header sets a request header.
func (b *RequestBuilder) Header(key, value string) *RequestBuilder {
	b.r.Header.Set(key, value)
	return b
}

// Cookie adds a request cookie.
func (b *RequestBuilder) Cookie(c *http.Cookie) *RequestBuilder {
	b.r.AddCookie(c)
	return b
}

// Body sets the request body and its content type.
func (b *RequestBuilder) Body(contentType string, data []byte) *RequestBuilder {
	b.r.Body = io.NopCloser(bytes.NewReader(data))
	b.r.ContentLength = int64(len(data))
	b.r.Header.Set("Content-Type", contentType)
	return b
}

// JSON sets v, encoded as JSON, as the request body.
func (b *RequestBuilder) JSON(t testing.TB, v any) *RequestBuilder {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err, "webtest: marshal request body")
	return b.Body("application/json", data)
}

// Context replaces the request context.
func (b *RequestBuilder) Context(ctx context.Context) *RequestBuilder {
	b.r = b.r.WithContext(ctx)
	return b
}

// Build returns the request envelope.
func (b *RequestBuilder) Build() *web.Request {
	return web.NewRequest(b.r)
}

// Call waits for svc to be ready, calls it with req and drives the returned
// future to completion. It fails the test if either step does not finish
// within CallTimeout.
func Call(t testing.TB, svc web.Service, req *web.Request) *web.Response {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), CallTimeout)
	defer cancel()

	require.NoError(t, web.AwaitReady(ctx, svc), "webtest: service not ready")
	resp, err := web.Block(ctx, svc.Call(req))
	require.NoError(t, err, "webtest: call")
	require.NotNil(t, resp, "webtest: nil response")
	return resp
}

// Client wraps an httptest.Server for end to end tests.
type Client struct {
	Server *httptest.Server
}

// NewClient starts a test server for h, closed when the test ends.
func NewClient(t testing.TB, h http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return &Client{Server: srv}
}

// Response holds a decoded response.
type Response[T any] struct {
	Status  int
	Headers http.Header
	Body    *T
	Raw     []byte
}

// Get sends a typed GET request.
func Get[Resp any](t testing.TB, c *Client, path string) *Response[Resp] {
	t.Helper()
	return do[Resp](t, c, http.MethodGet, path, nil)
}

// Post sends a typed POST request with a JSON body.
func Post[Req, Resp any](t testing.TB, c *Client, path string, body *Req) *Response[Resp] {
	t.Helper()
	return do[Resp](t, c, http.MethodPost, path, body)
}

// Put sends a typed PUT request with a JSON body.
func Put[Req, Resp any](t testing.TB, c *Client, path string, body *Req) *Response[Resp] {
	t.Helper()
	return do[Resp](t, c, http.MethodPut, path, body)
}

// Patch sends a typed PATCH request with a JSON body.
func Patch[Req, Resp any](t testing.TB, c *Client, path string, body *Req) *Response[Resp] {
	t.Helper()
	return do[Resp](t, c, http.MethodPatch, path, body)
}

// Delete sends a typed DELETE request.
func Delete[Resp any](t testing.TB, c *Client, path string) *Response[Resp] {
	t.Helper()
	return do[Resp](t, c, http.MethodDelete, path, nil)
}

func do[Resp any](t testing.TB, c *Client, method, path string, body any) *Response[Resp] {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err, "webtest: marshal request body")
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(context.Background(), method, c.Server.URL+path, reqBody)
	require.NoError(t, err, "webtest: create request")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.Server.Client().Do(req)
	require.NoError(t, err, "webtest: execute request")
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			t.Errorf("webtest: close body: %v", closeErr)
		}
	}()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "webtest: read body")

	result := &Response[Resp]{
		Status:  resp.StatusCode,
		Headers: resp.Header,
		Raw:     raw,
	}
	if len(raw) > 0 && resp.StatusCode < http.StatusBadRequest {
		var decoded Resp
		if err := json.Unmarshal(raw, &decoded); err == nil {
			result.Body = &decoded
		}
	}
	return result
}
