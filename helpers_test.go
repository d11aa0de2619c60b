package web_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/bjaus/web"
	"github.com/bjaus/web/webtest"
)

// lit extracts a constant.
func lit[T any](v T) web.Extractor[T] {
	return web.ExtractorFunc[T](func(*web.Head, *web.Payload) web.Future[T] {
		return web.Ready(v)
	})
}

func newRequest(method, target string) *web.Request {
	return webtest.NewRequest(method, target).Build()
}

func call(t *testing.T, svc web.Service, req *web.Request) *web.Response {
	t.Helper()
	return webtest.Call(t, svc, req)
}

// ok is a service that answers 200 with body "ok".
func ok() web.Service {
	return web.Adapt(web.Func0(func(context.Context) (web.Responder, error) {
		return web.Text(http.StatusOK, "ok"), nil
	}), web.None())
}

// serviceFunc is a Service that is always ready and always drained.
type serviceFunc func(req *web.Request) web.Future[*web.Response]

func (f serviceFunc) Call(req *web.Request) web.Future[*web.Response] { return f(req) }
func (serviceFunc) PollReady(*web.Waker) (bool, error)                { return true, nil }
func (serviceFunc) PollShutdown(*web.Waker) bool                      { return true }

// respond is a service that answers status with a plain-text body.
func respond(status int, body string) web.Service {
	return web.Adapt(web.Func0(func(context.Context) (web.Responder, error) {
		return web.Text(status, body), nil
	}), web.None())
}

const (
	webtestTimeout = 2 * time.Second
	pollInterval   = 5 * time.Millisecond
)
