package web

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
)

// Service is a unit of request processing that can be composed into a chain.
//
// PollReady reports, without blocking, whether the service can accept a
// call; when it cannot, it wakes w once it may. PollShutdown reports whether
// the service has drained its in-flight work, waking w on progress.
type Service interface {
	Call(req *Request) Future[*Response]
	PollReady(w *Waker) (bool, error)
	PollShutdown(w *Waker) bool
}

// HandlerService is a Service that can produce independent replicas of
// itself, for workers that share no mutable state.
type HandlerService interface {
	Service
	CloneHandler() HandlerService
}

// Transform wraps a Service to produce another with the same shape.
type Transform func(next Service) Service

// Chain applies transforms to svc. The first transform is the outermost,
// so it sees the request first and the response last.
func Chain(svc Service, transforms ...Transform) Service {
	for i := len(transforms) - 1; i >= 0; i-- {
		svc = transforms[i](svc)
	}
	return svc
}

// wrapped overrides Call of an inner service and passes readiness and shutdown through.
type wrapped struct {
	Service
	call func(req *Request) Future[*Response]
}

func (s wrapped) Call(req *Request) Future[*Response] { return s.call(req) }

// wrap returns next with its Call replaced by call.
func wrap(next Service, call func(req *Request) Future[*Response]) Service {
	return wrapped{Service: next, call: call}
}

// mapResponse returns a future that applies fn to f's response once ready.
func mapResponse(f Future[*Response], fn func(*Response) *Response) Future[*Response] {
	return FutureFunc[*Response](func(w *Waker) (*Response, bool, error) {
		resp, ok, err := f.Poll(w)
		if !ok || err != nil {
			return resp, ok, err
		}
		return fn(resp), true, nil
	})
}

// AwaitReady blocks until svc reports readiness or ctx is done.
func AwaitReady(ctx context.Context, svc Service) error {
	w := NewWaker()
	for {
		ok, err := svc.PollReady(w)
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
		select {
		case <-w.C():
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// AwaitShutdown blocks until svc reports it has drained or ctx is done.
func AwaitShutdown(ctx context.Context, svc Service) error {
	w := NewWaker()
	for !svc.PollShutdown(w) {
		select {
		case <-w.C():
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// Serve adapts svc into an http.Handler. Each request waits for readiness,
// then its dispatch is driven to completion on the serving goroutine.
func Serve(svc Service) http.Handler {
	return serve(svc, nil, nil, nil)
}

func serve(svc Service, codecs *codecSet, renderer ErrorRenderer, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if codecs != nil {
			ctx = withCodecs(ctx, codecs)
		}
		if renderer != nil {
			ctx = withRenderer(ctx, renderer)
		}
		if ctx != r.Context() {
			r = r.WithContext(ctx)
		}

		if err := AwaitReady(ctx, svc); err != nil {
			serveError(w, r, logger, "service not ready", err, http.StatusServiceUnavailable)
			return
		}

		resp, err := Block(ctx, svc.Call(NewRequest(r)))
		if err != nil {
			serveError(w, r, logger, "dispatch failed", err, http.StatusInternalServerError)
			return
		}

		if err := resp.Write(w); err != nil {
			logger.DebugContext(ctx, "write response", "err", err, "path", r.URL.Path)
		}
	})
}

func serveError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, msg string, err error, status int) {
	// A client that went away gets nothing written.
	if errors.Is(err, context.Canceled) {
		return
	}
	logger.ErrorContext(r.Context(), msg, "err", err, "method", r.Method, "path", r.URL.Path)
	http.Error(w, http.StatusText(status), status)
}
