package web

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	inFlight prometheus.Gauge
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests by route, method and status.",
		}, []string{"route", "method", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"}),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Number of HTTP requests being served.",
		}),
	}
	reg.MustRegister(m.requests, m.duration, m.inFlight)
	return m
}

// Metrics returns a transform that records a request counter, a duration
// histogram and an in-flight gauge on reg. Requests are labelled by the
// route pattern that matched them, not the raw path.
//
// The collectors are registered once, when Metrics is called; use the same
// transform for every route sharing reg.
func Metrics(reg prometheus.Registerer) Transform {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := newMetrics(reg)

	return func(next Service) Service {
		return wrap(next, func(req *Request) Future[*Response] {
			head := req.Head()
			route := head.Raw().Pattern
			if route == "" {
				route = "unmatched"
			}
			start := time.Now()
			m.inFlight.Inc()
			var once sync.Once
			leave := func() { once.Do(m.inFlight.Dec) }
			stop := context.AfterFunc(head.Context(), leave)

			return mapResponse(next.Call(req), func(resp *Response) *Response {
				stop()
				leave()
				m.requests.WithLabelValues(route, head.Method(), strconv.Itoa(resp.Status)).Inc()
				m.duration.WithLabelValues(route, head.Method()).Observe(time.Since(start).Seconds())
				return resp
			})
		})
	}
}

// MetricsHandler serves the metrics gathered by g in the Prometheus
// exposition format.
func MetricsHandler(g prometheus.Gatherer) http.Handler {
	if g == nil {
		g = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
