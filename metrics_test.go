package web_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/web"
)

func TestMetrics(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	r := web.New()
	r.Use(web.Metrics(reg))
	web.Get(r, "/items/{id}", web.Func1(func(_ context.Context, id int) (*item, error) {
		return &item{ID: id}, nil
	}), web.Path[int]("id"))

	for _, path := range []string{"/items/1", "/items/2", "/items/x"} {
		serveRecorded(r, httptest.NewRequest(http.MethodGet, path, nil))
	}

	expected := `
# HELP http_requests_total Total number of HTTP requests by route, method and status.
# TYPE http_requests_total counter
http_requests_total{code="200",method="GET",route="GET /items/{id}"} 2
http_requests_total{code="400",method="GET",route="GET /items/{id}"} 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "http_requests_total"))
	n, err := testutil.GatherAndCount(reg, "http_request_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	mfs, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range mfs {
		if mf.GetName() == "http_requests_in_flight" {
			assert.Zero(t, mf.GetMetric()[0].GetGauge().GetValue())
		}
	}
}

func TestMetrics_unmatched_route_label(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	call(t, web.Chain(ok(), web.Metrics(reg)), newRequest(http.MethodPost, "/direct"))

	expected := `
# HELP http_requests_total Total number of HTTP requests by route, method and status.
# TYPE http_requests_total counter
http_requests_total{code="200",method="POST",route="unmatched"} 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "http_requests_total"))
}

func TestMetrics_abandoned_request_leaves_gauge(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	svc := web.Chain(pendingService(), web.Metrics(reg))

	ctx, cancel := context.WithCancel(context.Background())
	req := httptest.NewRequest(http.MethodGet, "/", nil).WithContext(ctx)
	svc.Call(web.NewRequest(req))

	inFlight := func() float64 {
		mfs, err := reg.Gather()
		require.NoError(t, err)
		for _, mf := range mfs {
			if mf.GetName() == "http_requests_in_flight" {
				return mf.GetMetric()[0].GetGauge().GetValue()
			}
		}
		return -1
	}
	assert.InDelta(t, 1, inFlight(), 0)

	cancel()
	assert.Eventually(t, func() bool { return inFlight() == 0 }, webtestTimeout, pollInterval)
}

func TestMetricsHandler(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	call(t, web.Chain(ok(), web.Metrics(reg)), newRequest(http.MethodGet, "/"))

	r := web.New()
	web.Raw(r, http.MethodGet, "/metrics", web.MetricsHandler(reg))
	rec := serveRecorded(r, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `http_requests_total{code="200",method="GET",route="unmatched"} 1`)
}
