package web

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stepFuture is pending for the first `pending` polls, then resolves.
type stepFuture[T any] struct {
	pending int
	v       T
	err     error
	polls   int
}

func (f *stepFuture[T]) Poll(w *Waker) (T, bool, error) {
	f.polls++
	if f.polls <= f.pending {
		w.Wake()
		var zero T
		return zero, false, nil
	}
	return f.v, true, f.err
}

// stageTrace records every stage a dispatch goes through.
type stageTrace struct {
	extract *stepFuture[int]
	invoke  *stepFuture[Responder]
	respond *stepFuture[Body]
	calls   int
}

func newStageTrace(extractPending, invokePending, respondPending int) *stageTrace {
	p := &stageTrace{
		extract: &stepFuture[int]{pending: extractPending, v: 41},
		respond: &stepFuture[Body]{pending: respondPending, v: Body{Status: http.StatusAccepted, Data: []byte("42")}},
	}
	p.invoke = &stepFuture[Responder]{
		pending: invokePending,
		v: ResponderFunc(func(*Head) Future[Body] {
			return p.respond
		}),
	}
	return p
}

func (p *stageTrace) adapter() *Adapter[int, Responder] {
	h := HandlerFunc[int, Responder](func(_ context.Context, param int) Future[Responder] {
		p.calls++
		return p.invoke
	})
	ex := ExtractorFunc[int](func(*Head, *Payload) Future[int] { return p.extract })
	return Adapt[int, Responder](h, ex)
}

func testRequest() *Request {
	return NewRequest(httptest.NewRequest(http.MethodGet, "/", nil))
}

func TestDispatch_single_poll_when_everything_is_ready(t *testing.T) {
	t.Parallel()

	p := newStageTrace(0, 0, 0)
	f := p.adapter().Call(testRequest())

	resp, ok, err := f.Poll(NewWaker())
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, http.StatusAccepted, resp.Status)
	assert.Equal(t, "42", string(resp.Data))
	assert.Equal(t, 1, p.extract.polls)
	assert.Equal(t, 1, p.invoke.polls)
	assert.Equal(t, 1, p.respond.polls)
	assert.Equal(t, 1, p.calls)
}

func TestDispatch_pending_in_each_phase(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		extract, invoke, respond int
		wantPhase                phase
		wantCalls                int
	}{
		"extracting": {extract: 1, wantPhase: extracting, wantCalls: 0},
		"invoking":   {invoke: 1, wantPhase: invoking, wantCalls: 1},
		"responding": {respond: 1, wantPhase: responding, wantCalls: 1},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			p := newStageTrace(tc.extract, tc.invoke, tc.respond)
			d := p.adapter().Call(testRequest()).(*dispatch[int, Responder])
			w := NewWaker()

			_, ok, err := d.Poll(w)
			require.NoError(t, err)
			assert.False(t, ok)
			assert.Equal(t, tc.wantPhase, d.phase)
			assert.Equal(t, tc.wantCalls, p.calls)
			assert.NotNil(t, d.head, "head is held until the dispatch finishes")

			select {
			case <-w.C():
			default:
				t.Fatal("pending sub-future did not arrange a wake-up")
			}

			resp, ok, err := d.Poll(w)
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, http.StatusAccepted, resp.Status)
			assert.Equal(t, terminal, d.phase)
			assert.Equal(t, 1, p.calls)
		})
	}
}

func TestDispatch_drops_finished_sub_futures(t *testing.T) {
	t.Parallel()

	p := newStageTrace(0, 0, 1)
	d := p.adapter().Call(testRequest()).(*dispatch[int, Responder])

	_, ok, _ := d.Poll(NewWaker())
	require.False(t, ok)
	assert.Nil(t, d.extract)
	assert.Nil(t, d.invoke)
	assert.NotNil(t, d.respond)

	_, ok, _ = d.Poll(NewWaker())
	require.True(t, ok)
	assert.Nil(t, d.respond)
	assert.Nil(t, d.head)
}

func TestDispatch_repoll_after_completion(t *testing.T) {
	t.Parallel()

	p := newStageTrace(0, 0, 0)
	f := p.adapter().Call(testRequest())

	first, ok, err := f.Poll(NewWaker())
	require.NoError(t, err)
	require.True(t, ok)

	second, ok, err := f.Poll(NewWaker())
	require.NoError(t, err)
	require.True(t, ok)

	assert.Same(t, first, second)
	assert.Equal(t, 1, p.calls)
	assert.Equal(t, 1, p.respond.polls)
}

func TestDispatch_extraction_failure(t *testing.T) {
	t.Parallel()

	p := newStageTrace(0, 0, 0)
	p.extract.err = &BindError{Kind: ErrBindPath, Name: "id", Err: ErrMissing}

	resp, ok, err := p.adapter().Call(testRequest()).Poll(NewWaker())
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, http.StatusBadRequest, resp.Status)
	assert.Equal(t, "application/problem+json", resp.Header.Get("Content-Type"))
	assert.Zero(t, p.calls)
	assert.Zero(t, p.invoke.polls)
}

func TestDispatch_responder_failure(t *testing.T) {
	t.Parallel()

	p := newStageTrace(0, 0, 0)
	p.respond.err = Error(http.StatusConflict, "cannot render")

	resp, ok, err := p.adapter().Call(testRequest()).Poll(NewWaker())
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, http.StatusConflict, resp.Status)
	assert.Contains(t, string(resp.Data), "cannot render")
	assert.Equal(t, 1, p.calls)
}

func TestDispatch_handler_error_is_rendered(t *testing.T) {
	t.Parallel()

	p := newStageTrace(0, 0, 0)
	p.invoke.err = errors.New("handler broke")

	resp, ok, err := p.adapter().Call(testRequest()).Poll(NewWaker())
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, http.StatusInternalServerError, resp.Status)
	assert.Equal(t, 1, p.calls)
	assert.Zero(t, p.respond.polls)
}

func TestDispatch_head_is_consumed_once(t *testing.T) {
	t.Parallel()

	p := newStageTrace(0, 0, 0)
	d := p.adapter().Call(testRequest()).(*dispatch[int, Responder])

	_, ok, _ := d.Poll(NewWaker())
	require.True(t, ok)
	assert.Panics(t, func() { d.takeHead() })
}

func TestPhase_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "extracting", extracting.String())
	assert.Equal(t, "invoking", invoking.String())
	assert.Equal(t, "responding", responding.String())
	assert.Equal(t, "terminal", terminal.String())
}
