package web

import (
	"context"
	"sync"
)

// InFlight returns a transform that bounds the number of dispatches in
// progress at once. While limit are in flight, PollReady reports not ready and
// wakes the caller when one completes. A Call made while the bound is reached
// stays pending until a slot frees up, so concurrent callers that were all
// granted readiness still never exceed limit. PollShutdown reports drained
// only once nothing is in flight. A non-positive limit disables the bound.
func InFlight(limit int) Transform {
	return func(next Service) Service {
		if limit <= 0 {
			return next
		}
		return &inFlight{next: next, limit: limit}
	}
}

type inFlight struct {
	next  Service
	limit int

	mu      sync.Mutex
	n       int
	waiting []*Waker
}

func (s *inFlight) Call(req *Request) Future[*Response] {
	c := &inFlightCall{s: s, req: req, ctx: req.Head().Context()}
	if s.acquire(nil) {
		c.start()
	}
	return c
}

// acquire takes a slot if one is free. Otherwise w, when non-nil, is woken
// on the next release.
func (s *inFlight) acquire(w *Waker) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.n < s.limit {
		s.n++
		return true
	}
	if w != nil {
		s.waiting = append(s.waiting, w)
	}
	return false
}

// inFlightCall is one dispatch through an inFlight. inner is nil until the
// call holds a slot.
type inFlightCall struct {
	s     *inFlight
	req   *Request
	ctx   context.Context
	inner Future[*Response]

	release func()
	stop    func() bool
}

func (c *inFlightCall) start() {
	var once sync.Once
	c.release = func() { once.Do(c.s.release) }
	// An abandoned dispatch is released when its request context ends.
	c.stop = context.AfterFunc(c.ctx, c.release)
	c.inner = c.s.next.Call(c.req)
}

func (c *inFlightCall) Poll(w *Waker) (*Response, bool, error) {
	if c.inner == nil {
		if err := c.ctx.Err(); err != nil {
			return nil, true, err
		}
		if !c.s.acquire(w) {
			return nil, false, nil
		}
		c.start()
	}

	resp, ok, err := c.inner.Poll(w)
	if ok {
		c.stop()
		c.release()
	}
	return resp, ok, err
}

func (s *inFlight) release() {
	s.mu.Lock()
	s.n--
	waiting := s.waiting
	s.waiting = nil
	s.mu.Unlock()

	for _, w := range waiting {
		w.Wake()
	}
}

func (s *inFlight) PollReady(w *Waker) (bool, error) {
	s.mu.Lock()
	if s.n >= s.limit {
		s.waiting = append(s.waiting, w)
		s.mu.Unlock()
		return false, nil
	}
	s.mu.Unlock()
	return s.next.PollReady(w)
}

func (s *inFlight) PollShutdown(w *Waker) bool {
	s.mu.Lock()
	if s.n > 0 {
		s.waiting = append(s.waiting, w)
		s.mu.Unlock()
		return false
	}
	s.mu.Unlock()
	return s.next.PollShutdown(w)
}

// inFlightCount reports the number of dispatches in progress.
func (s *inFlight) inFlightCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.n
}
