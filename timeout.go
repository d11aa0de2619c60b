package web

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"time"
)

// Timeout returns a transform that puts a deadline on the request context.
// If the wrapped service has not produced a response when the deadline
// passes, its future is dropped and a 503 Service Unavailable is rendered.
//
// The deadline is only enforced between polls. Handlers built with Func0,
// Func1 or FuncN run inline inside Poll, so Timeout cannot interrupt them;
// they see the deadline only through their context. Wrap a handler in Async
// for the 503 to be rendered while it is still running.
func Timeout(d time.Duration) Transform {
	return func(next Service) Service {
		return wrap(next, func(req *Request) Future[*Response] {
			ctx, cancel := context.WithTimeout(req.Head().Context(), d)
			return &timeoutFuture{
				head:   req.Head(),
				ctx:    ctx,
				cancel: cancel,
				inner:  next.Call(req.WithContext(ctx)),
			}
		})
	}
}

type timeoutFuture struct {
	head   *Head
	ctx    context.Context
	cancel context.CancelFunc
	inner  Future[*Response]

	waker atomic.Pointer[Waker]
	stop  func() bool
	resp  *Response
	err   error
	done  bool
}

func (f *timeoutFuture) Poll(w *Waker) (*Response, bool, error) {
	if f.done {
		return f.resp, true, f.err
	}

	resp, ok, err := f.inner.Poll(w)
	if ok {
		return f.finish(resp, err)
	}
	if errors.Is(f.ctx.Err(), context.DeadlineExceeded) {
		return f.finish(renderError(rendererFrom(f.head.Context()), &HTTPError{
			Status:  http.StatusServiceUnavailable,
			Message: "request timed out",
		}, f.head), nil)
	}

	f.waker.Store(w)
	if f.stop == nil {
		f.stop = context.AfterFunc(f.ctx, func() { f.waker.Load().Wake() })
	}
	return nil, false, nil
}

func (f *timeoutFuture) finish(resp *Response, err error) (*Response, bool, error) {
	if f.stop != nil {
		f.stop()
	}
	f.cancel()
	f.inner = nil
	f.resp, f.err, f.done = resp, err, true
	return resp, true, err
}
