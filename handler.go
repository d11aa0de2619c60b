package web

import "context"

//go:generate go run ./internal/genarity

// Void is the parameter of a handler that takes no extracted values, and
// the output of a handler with no response body (results in 204 No Content).
type Void struct{}

// Handler is a duplicable callable from an extracted parameter T to a
// Future of its output O. Handlers over several parameters take a TupleN.
//
// Call must not do work itself; the returned future does it when polled.
// Clone returns an independent copy; stateless handlers return themselves.
type Handler[T, O any] interface {
	Call(ctx context.Context, param T) Future[O]
	Clone() Handler[T, O]
}

// HandlerFunc adapts a function returning a future into a Handler.
type HandlerFunc[T, O any] func(ctx context.Context, param T) Future[O]

// Call calls f(ctx, param).
func (f HandlerFunc[T, O]) Call(ctx context.Context, param T) Future[O] { return f(ctx, param) }

// Clone returns f; functions carry no state of their own to duplicate.
func (f HandlerFunc[T, O]) Clone() Handler[T, O] { return f }

// Func0 adapts a function with no parameters. It pairs with the None extractor.
func Func0[O any](fn func(ctx context.Context) (O, error)) Handler[Void, O] {
	return HandlerFunc[Void, O](func(ctx context.Context, _ Void) Future[O] {
		return Lazy(func() (O, error) { return fn(ctx) })
	})
}

// Func1 adapts a function with one parameter. It pairs with any Extractor[A].
func Func1[A, O any](fn func(ctx context.Context, a A) (O, error)) Handler[A, O] {
	return HandlerFunc[A, O](func(ctx context.Context, a A) Future[O] {
		return Lazy(func() (O, error) { return fn(ctx, a) })
	})
}

type asyncHandler[T, O any] struct {
	inner Handler[T, O]
}

func (h asyncHandler[T, O]) Call(ctx context.Context, param T) Future[O] {
	inner := h.inner
	return Spawn(ctx, func(ctx context.Context) (O, error) {
		return Block(ctx, inner.Call(ctx, param))
	})
}

func (h asyncHandler[T, O]) Clone() Handler[T, O] {
	return asyncHandler[T, O]{inner: h.inner.Clone()}
}

// Async runs each invocation of h on its own goroutine, so a handler that
// blocks leaves the dispatch pending instead of holding the poller.
func Async[T, O any](h Handler[T, O]) Handler[T, O] {
	return asyncHandler[T, O]{inner: h}
}
