package web

import (
	"context"
	"sync"
)

// Waker signals that a pending Future may be able to make progress.
// The zero value is not usable; create one with NewWaker.
type Waker struct {
	ch chan struct{}
}

// NewWaker returns a Waker whose wake-ups coalesce into a single pending signal.
func NewWaker() *Waker {
	return &Waker{ch: make(chan struct{}, 1)}
}

// Wake signals the waker. It never blocks and is safe for concurrent use.
func (w *Waker) Wake() {
	if w == nil {
		return
	}
	select {
	case w.ch <- struct{}{}:
	default:
	}
}

// C returns the channel that receives a value after Wake.
func (w *Waker) C() <-chan struct{} { return w.ch }

// Future is a value that becomes available later.
//
// Poll never blocks. It returns ready == false while the value is not yet
// available, after arranging for w to be woken once progress is possible.
// Once ready, v and err hold the outcome.
type Future[T any] interface {
	Poll(w *Waker) (v T, ready bool, err error)
}

// FutureFunc adapts a poll function into a Future.
type FutureFunc[T any] func(w *Waker) (T, bool, error)

// Poll calls f(w).
func (f FutureFunc[T]) Poll(w *Waker) (T, bool, error) { return f(w) }

type readyFuture[T any] struct {
	v   T
	err error
}

func (f readyFuture[T]) Poll(*Waker) (T, bool, error) { return f.v, true, f.err }

// Ready returns a Future that is immediately resolved with v.
func Ready[T any](v T) Future[T] {
	return readyFuture[T]{v: v}
}

// Fail returns a Future that is immediately resolved with err.
func Fail[T any](err error) Future[T] {
	return readyFuture[T]{err: err}
}

// lazyFuture runs fn inline on the first poll and caches the outcome.
type lazyFuture[T any] struct {
	fn   func() (T, error)
	done bool
	v    T
	err  error
}

func (f *lazyFuture[T]) Poll(*Waker) (T, bool, error) {
	if !f.done {
		f.v, f.err = f.fn()
		f.fn = nil
		f.done = true
	}
	return f.v, true, f.err
}

// Lazy returns a Future that calls fn on its first poll, on the polling
// goroutine, and resolves with its result. fn runs at most once.
func Lazy[T any](fn func() (T, error)) Future[T] {
	return &lazyFuture[T]{fn: fn}
}

// spawnFuture runs fn on its own goroutine, started by the first poll.
type spawnFuture[T any] struct {
	ctx   context.Context
	fn    func(ctx context.Context) (T, error)
	start sync.Once

	mu    sync.Mutex
	waker *Waker
	done  bool
	v     T
	err   error
}

func (f *spawnFuture[T]) Poll(w *Waker) (T, bool, error) {
	f.start.Do(func() { go f.run() })

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.done {
		return f.v, true, f.err
	}
	f.waker = w
	var zero T
	return zero, false, nil
}

func (f *spawnFuture[T]) run() {
	v, err := f.fn(f.ctx)

	f.mu.Lock()
	f.v, f.err, f.done = v, err, true
	w := f.waker
	f.mu.Unlock()

	w.Wake()
}

// Spawn returns a Future that runs fn on a new goroutine once first polled.
// The poller is woken when fn returns. Cancel ctx to abandon the work.
func Spawn[T any](ctx context.Context, fn func(ctx context.Context) (T, error)) Future[T] {
	return &spawnFuture[T]{ctx: ctx, fn: fn}
}

// Block drives f to completion on the calling goroutine, sleeping between
// polls until woken. It returns ctx.Err() if ctx is done first; the future
// is then abandoned.
func Block[T any](ctx context.Context, f Future[T]) (T, error) {
	w := NewWaker()
	for {
		v, ok, err := f.Poll(w)
		if ok {
			return v, err
		}
		select {
		case <-w.C():
		case <-ctx.Done():
			var zero T
			return zero, ctx.Err()
		}
	}
}
