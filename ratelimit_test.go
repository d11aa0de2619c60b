package web_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bjaus/web"
	"github.com/bjaus/web/webtest"
)

func TestRateLimit(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		rate           float64
		burst          int
		numReqs        int
		wantOK         int
		wantLimited    int
		wantRetryAfter string
	}{
		"requests within rate succeed": {
			rate:    100,
			burst:   10,
			numReqs: 5,
			wantOK:  5,
		},
		"requests exceeding rate get 429": {
			rate:           1,
			burst:          1,
			numReqs:        5,
			wantOK:         1,
			wantLimited:    4,
			wantRetryAfter: "1",
		},
		"slow rate sets longer retry": {
			rate:           0.1,
			burst:          1,
			numReqs:        2,
			wantOK:         1,
			wantLimited:    1,
			wantRetryAfter: "10",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			svc := web.Chain(ok(), web.RateLimit(web.RateLimitConfig{Rate: tc.rate, Burst: tc.burst}))

			okCount, limited := 0, 0
			for range tc.numReqs {
				resp := call(t, svc, newRequest(http.MethodGet, "/"))
				switch resp.Status {
				case http.StatusOK:
					okCount++
				case http.StatusTooManyRequests:
					limited++
					assert.Equal(t, tc.wantRetryAfter, resp.Header.Get("Retry-After"))
					assert.Equal(t, "application/problem+json", resp.Header.Get("Content-Type"))
				}
			}

			assert.Equal(t, tc.wantOK, okCount)
			assert.Equal(t, tc.wantLimited, limited)
		})
	}
}

func TestRateLimit_custom_key_func(t *testing.T) {
	t.Parallel()

	svc := web.Chain(ok(), web.RateLimit(web.RateLimitConfig{
		Rate:  1,
		Burst: 1,
		KeyFunc: func(head *web.Head) string {
			return head.Header().Get("X-User-ID")
		},
	}))

	user := func(id string) *web.Request {
		return webtest.NewRequest(http.MethodGet, "/").Header("X-User-ID", id).Build()
	}

	assert.Equal(t, http.StatusOK, call(t, svc, user("a")).Status)
	assert.Equal(t, http.StatusTooManyRequests, call(t, svc, user("a")).Status)
	assert.Equal(t, http.StatusOK, call(t, svc, user("b")).Status, "other keys have their own budget")
}

func TestRateLimit_remote_addr_without_port(t *testing.T) {
	t.Parallel()

	svc := web.Chain(ok(), web.RateLimit(web.RateLimitConfig{Rate: 1, Burst: 1}))

	build := func() *web.Request {
		req := webtest.NewRequest(http.MethodGet, "/").Build()
		req.Head().Raw().RemoteAddr = "not-a-host-port"
		return req
	}

	assert.Equal(t, http.StatusOK, call(t, svc, build()).Status)
	assert.Equal(t, http.StatusTooManyRequests, call(t, svc, build()).Status)
}

func TestRateLimit_uses_router_renderer(t *testing.T) {
	t.Parallel()

	r := web.New(web.WithRenderer(web.ErrorRendererFunc(func(err error, head *web.Head) *web.Response {
		return web.NewResponse(head, web.Body{Status: web.ErrorStatus(err), Data: []byte("slow down")})
	})))
	r.Use(web.RateLimit(web.RateLimitConfig{Rate: 1, Burst: 1}))
	web.HandleService(r, http.MethodGet, "/", ok())

	c := webtest.NewClient(t, r)
	first := webtest.Get[struct{}](t, c, "/")
	second := webtest.Get[struct{}](t, c, "/")

	assert.Equal(t, http.StatusOK, first.Status)
	assert.Equal(t, http.StatusTooManyRequests, second.Status)
	assert.Equal(t, "slow down", string(second.Raw))
	assert.Equal(t, "1", second.Headers.Get("Retry-After"))
}
