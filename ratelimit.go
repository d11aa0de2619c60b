package web

import (
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimitConfig configures the RateLimit transform.
type RateLimitConfig struct {
	Rate            float64                 // requests per second
	Burst           int                     // max burst
	KeyFunc         func(head *Head) string // default: remote IP
	CleanupInterval time.Duration           // how often to prune idle limiters (default: 1m)
	MaxIdle         time.Duration           // remove limiters idle longer than this (default: 5m)
}

// RateLimit returns a transform that applies per-key rate limiting. Requests
// over the limit get a rendered 429 Too Many Requests with a Retry-After header.
func RateLimit(cfg RateLimitConfig) Transform {
	if cfg.KeyFunc == nil {
		cfg.KeyFunc = remoteHost
	}
	if cfg.CleanupInterval <= 0 {
		cfg.CleanupInterval = time.Minute
	}
	if cfg.MaxIdle <= 0 {
		cfg.MaxIdle = 5 * time.Minute
	}
	retryAfter := "1"
	if cfg.Rate > 0 && cfg.Rate < 1 {
		retryAfter = strconv.FormatFloat(1/cfg.Rate, 'f', 0, 64)
	}

	l := &limiterSet{
		limit: rate.Limit(cfg.Rate),
		burst: cfg.Burst,
		byKey: make(map[string]*limiterEntry),
	}

	return func(next Service) Service {
		return wrap(next, func(req *Request) Future[*Response] {
			head := req.Head()
			if l.allow(cfg.KeyFunc(head), time.Now(), cfg.CleanupInterval, cfg.MaxIdle) {
				return next.Call(req)
			}
			resp := renderError(rendererFrom(head.Context()), &HTTPError{
				Status:  http.StatusTooManyRequests,
				Message: http.StatusText(http.StatusTooManyRequests),
			}, head)
			resp.Header.Set("Retry-After", retryAfter)
			return Ready(resp)
		})
	}
}

func remoteHost(head *Head) string {
	host, _, err := net.SplitHostPort(head.RemoteAddr())
	if err != nil {
		return head.RemoteAddr()
	}
	return host
}

type limiterSet struct {
	limit rate.Limit
	burst int

	mu          sync.Mutex
	byKey       map[string]*limiterEntry
	lastCleanup time.Time
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func (l *limiterSet) allow(key string, now time.Time, cleanupInterval, maxIdle time.Duration) bool {
	l.mu.Lock()
	// Lazy cleanup of idle limiters.
	if now.Sub(l.lastCleanup) >= cleanupInterval {
		for k, e := range l.byKey {
			if now.Sub(e.lastSeen) > maxIdle {
				delete(l.byKey, k)
			}
		}
		l.lastCleanup = now
	}

	entry, ok := l.byKey[key]
	if !ok {
		entry = &limiterEntry{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.byKey[key] = entry
	}
	entry.lastSeen = now
	l.mu.Unlock()

	return entry.limiter.AllowN(now, 1)
}
