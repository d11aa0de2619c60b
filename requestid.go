package web

import (
	"context"

	"github.com/google/uuid"
)

type requestIDKey struct{}

// RequestIDConfig configures the RequestID transform.
type RequestIDConfig struct {
	Header    string        // default: "X-Request-ID"
	Generator func() string // default: random UUID
}

// RequestID returns a transform that assigns a request ID to each request.
// The ID is read from the request header (if present) or generated.
// It is stored in the context and set on the response header.
func RequestID(cfg ...RequestIDConfig) Transform {
	c := RequestIDConfig{
		Header:    "X-Request-ID",
		Generator: uuid.NewString,
	}
	if len(cfg) > 0 {
		if cfg[0].Header != "" {
			c.Header = cfg[0].Header
		}
		if cfg[0].Generator != nil {
			c.Generator = cfg[0].Generator
		}
	}

	return func(next Service) Service {
		return wrap(next, func(req *Request) Future[*Response] {
			head := req.Head()
			id := head.Header().Get(c.Header)
			if id == "" {
				id = c.Generator()
			}

			ctx := context.WithValue(head.Context(), requestIDKey{}, id)
			return mapResponse(next.Call(req.WithContext(ctx)), func(resp *Response) *Response {
				resp.Header.Set(c.Header, id)
				return resp
			})
		})
	}
}

// GetRequestID returns the request ID stored in ctx by RequestID.
func GetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}
	return ""
}
