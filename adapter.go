package web

import (
	"net/http"
	"reflect"
)

// AdapterOption configures an Adapter.
type AdapterOption func(*adapterConfig)

type adapterConfig struct {
	status   int
	renderer ErrorRenderer
}

// WithStatus sets the default status of successful responses. Without it,
// handlers returning Void (or nil) respond 204 and all others 200.
func WithStatus(code int) AdapterOption {
	return func(c *adapterConfig) {
		c.status = code
	}
}

// WithErrorRenderer sets the renderer for extraction and response failures.
func WithErrorRenderer(r ErrorRenderer) AdapterOption {
	return func(c *adapterConfig) {
		if r != nil {
			c.renderer = r
		}
	}
}

// Adapter binds a Handler to the Extractor for its parameter and exposes
// the pair as a Service.
type Adapter[T, O any] struct {
	handler Handler[T, O]
	extract Extractor[T]
	adapterConfig
}

// Adapt wraps h and ex into an Adapter.
func Adapt[T, O any](h Handler[T, O], ex Extractor[T], opts ...AdapterOption) *Adapter[T, O] {
	cfg := adapterConfig{renderer: DefaultErrorRenderer}
	for _, opt := range opts {
		opt(&cfg)
	}

	// Determine default status: Void output → 204, otherwise 200.
	if cfg.status == 0 {
		if reflect.TypeFor[O]() == reflect.TypeFor[Void]() || reflect.TypeFor[O]() == reflect.TypeFor[*Void]() {
			cfg.status = http.StatusNoContent
		} else {
			cfg.status = http.StatusOK
		}
	}

	return &Adapter[T, O]{handler: h, extract: ex, adapterConfig: cfg}
}

// Call starts processing req. The returned future always resolves to a
// response: extraction and response failures are rendered, never returned.
func (a *Adapter[T, O]) Call(req *Request) Future[*Response] {
	head, payload := req.Split()
	return &dispatch[T, O]{
		handler:  a.handler.Clone(),
		status:   a.status,
		renderer: a.renderer,
		extract:  a.extract.Extract(head, payload),
		head:     head,
	}
}

// PollReady implements Service. An adapter is always ready.
func (a *Adapter[T, O]) PollReady(*Waker) (bool, error) { return true, nil }

// PollShutdown implements Service. An adapter holds no in-flight state.
func (a *Adapter[T, O]) PollShutdown(*Waker) bool { return true }

// CloneHandler returns an adapter holding an independent clone of the handler.
func (a *Adapter[T, O]) CloneHandler() HandlerService {
	return &Adapter[T, O]{
		handler:       a.handler.Clone(),
		extract:       a.extract,
		adapterConfig: a.adapterConfig,
	}
}
