package web_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/web"
)

func TestTimeout(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	t.Cleanup(func() { close(release) })

	tests := map[string]struct {
		timeout    time.Duration
		svc        web.Service
		wantStatus int
	}{
		"context has deadline set": {
			timeout: 5 * time.Second,
			svc: web.Adapt(web.Func0(func(ctx context.Context) (web.Responder, error) {
				deadline, ok := ctx.Deadline()
				if !ok || time.Until(deadline) <= 0 {
					return web.NoContent(), nil
				}
				return web.Text(http.StatusOK, "deadline"), nil
			}), web.None()),
			wantStatus: http.StatusOK,
		},
		"normal requests complete": {
			timeout:    5 * time.Second,
			svc:        respond(http.StatusAccepted, "done"),
			wantStatus: http.StatusAccepted,
		},
		"slow handler times out": {
			timeout: 20 * time.Millisecond,
			svc: web.Adapt(web.Async(web.Func0(func(context.Context) (web.Responder, error) {
				<-release
				return web.NoContent(), nil
			})), web.None()),
			wantStatus: http.StatusServiceUnavailable,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			resp := call(t, web.Chain(tc.svc, web.Timeout(tc.timeout)), newRequest(http.MethodGet, "/"))
			assert.Equal(t, tc.wantStatus, resp.Status)
		})
	}
}

func TestTimeout_renders_problem(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	t.Cleanup(func() { close(release) })

	svc := web.Adapt(web.Async(web.Func0(func(context.Context) (web.Void, error) {
		<-release
		return web.Void{}, nil
	})), web.None())

	start := time.Now()
	resp := call(t, web.Chain(svc, web.Timeout(10*time.Millisecond)), newRequest(http.MethodGet, "/"))

	assert.Less(t, time.Since(start), 2*time.Second)
	require.Equal(t, http.StatusServiceUnavailable, resp.Status)

	var pd web.ProblemDetail
	require.NoError(t, json.Unmarshal(resp.Data, &pd))
	assert.Equal(t, "request timed out", pd.Detail)
}

func TestTimeout_inline_handler_runs_to_completion(t *testing.T) {
	t.Parallel()

	var sawDeadline bool
	svc := web.Adapt(web.Func0(func(ctx context.Context) (web.Responder, error) {
		time.Sleep(30 * time.Millisecond)
		sawDeadline = ctx.Err() != nil
		return web.Text(http.StatusOK, "finished"), nil
	}), web.None())

	resp := call(t, web.Chain(svc, web.Timeout(5*time.Millisecond)), newRequest(http.MethodGet, "/"))

	assert.Equal(t, http.StatusOK, resp.Status)
	assert.Equal(t, "finished", string(resp.Data))
	assert.True(t, sawDeadline, "the handler sees the expired context")
}
