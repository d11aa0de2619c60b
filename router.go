package web

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"
)

// Router is the central type that holds routes, transforms, and configuration.
// It implements http.Handler.
type Router struct {
	transforms []Transform
	routes     []*route

	renderer ErrorRenderer
	encoders []Encoder
	decoders []Decoder
	logger   *slog.Logger

	readHeaderTimeout time.Duration
	shutdownTimeout   time.Duration

	mu      sync.Mutex
	built   bool
	mux     *http.ServeMux
	running []Service
}

// RouterOption configures a Router.
type RouterOption func(*Router)

// WithRenderer sets the error renderer used by every route of the router and
// by transforms that answer requests themselves.
func WithRenderer(er ErrorRenderer) RouterOption {
	return func(r *Router) {
		r.renderer = er
	}
}

// WithEncoder registers an additional response encoder.
func WithEncoder(enc Encoder) RouterOption {
	return func(r *Router) {
		r.encoders = append(r.encoders, enc)
	}
}

// WithDecoder registers an additional request body decoder.
func WithDecoder(dec Decoder) RouterOption {
	return func(r *Router) {
		r.decoders = append(r.decoders, dec)
	}
}

// WithLogger sets the logger for serving errors. Default: slog.Default().
func WithLogger(l *slog.Logger) RouterOption {
	return func(r *Router) {
		r.logger = l
	}
}

// WithReadHeaderTimeout sets the server's read header timeout. Default: 10s.
func WithReadHeaderTimeout(d time.Duration) RouterOption {
	return func(r *Router) {
		r.readHeaderTimeout = d
	}
}

// WithShutdownTimeout bounds the graceful shutdown in ListenAndServe. Default: 30s.
func WithShutdownTimeout(d time.Duration) RouterOption {
	return func(r *Router) {
		r.shutdownTimeout = d
	}
}

// New creates a new Router with the given options.
func New(opts ...RouterOption) *Router {
	r := &Router{
		renderer:          DefaultErrorRenderer,
		logger:            slog.Default(),
		readHeaderTimeout: 10 * time.Second,
		shutdownTimeout:   30 * time.Second,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Router) options() []RouterOption {
	return []RouterOption{
		WithRenderer(r.renderer),
		WithLogger(r.logger),
		WithReadHeaderTimeout(r.readHeaderTimeout),
		WithShutdownTimeout(r.shutdownTimeout),
		func(c *Router) {
			c.encoders = append([]Encoder(nil), r.encoders...)
			c.decoders = append([]Decoder(nil), r.decoders...)
		},
	}
}

// Use adds transforms applied to every route. The first transform added is
// the outermost. Transforms are applied when the router first serves, so
// Use may be called before or after routes are registered.
func (r *Router) Use(t ...Transform) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.transforms = append(r.transforms, t...)
}

// ServeHTTP implements http.Handler.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.handler().ServeHTTP(w, req)
}

// handler builds the mux on first use. Routes registered later panic.
func (r *Router) handler() http.Handler {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.built {
		return r.mux
	}

	codecs := newCodecSet(r.encoders, r.decoders)
	r.mux = http.NewServeMux()
	r.running = make([]Service, 0, len(r.routes))
	for _, rt := range r.routes {
		if rt.raw != nil {
			r.mux.Handle(rt.muxPattern(), rt.raw)
			continue
		}
		transforms := append(append([]Transform(nil), r.transforms...), rt.transforms...)
		svc := Chain(rt.svc, transforms...)
		r.running = append(r.running, svc)
		r.mux.Handle(rt.muxPattern(), serve(svc, codecs, r.renderer, r.logger))
	}
	r.built = true
	return r.mux
}

// addRoute implements Registrar.
func (r *Router) addRoute(rt *route) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.built {
		panic(fmt.Sprintf("web: route %s %s registered after the router started serving", rt.method, rt.pattern))
	}
	r.routes = append(r.routes, rt)
}

func (r *Router) errorRenderer() ErrorRenderer { return r.renderer }

// Routes lists the registered routes in registration order.
func (r *Router) Routes() []RouteInfo {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]RouteInfo, len(r.routes))
	for i, rt := range r.routes {
		out[i] = rt.info()
	}
	return out
}

// Clone returns a router with the same configuration and routes, where each
// route that is a HandlerService holds an independent clone of its handler.
// The clone has not started serving, so more routes may be added to it.
func (r *Router) Clone() *Router {
	c := New(r.options()...)

	r.mu.Lock()
	defer r.mu.Unlock()
	c.transforms = append([]Transform(nil), r.transforms...)
	c.routes = make([]*route, len(r.routes))
	for i, rt := range r.routes {
		c.routes[i] = rt.clone()
	}
	return c
}

// Shutdown waits until every route service has drained its in-flight work,
// or ctx is done.
func (r *Router) Shutdown(ctx context.Context) error {
	r.mu.Lock()
	running := r.running
	r.mu.Unlock()

	for _, svc := range running {
		if err := AwaitShutdown(ctx, svc); err != nil {
			return err
		}
	}
	return nil
}

// ListenAndServe starts an HTTP server on the given address.
// It blocks until the context is cancelled, then shuts down gracefully.
func (r *Router) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: r.readHeaderTimeout,
		ErrorLog:          slog.NewLogLogger(r.logger.Handler(), slog.LevelError),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.shutdownTimeout)
		defer cancel()
		return errors.Join(srv.Shutdown(shutdownCtx), r.Shutdown(shutdownCtx))
	}
}
