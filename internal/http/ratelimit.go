package httpx

import (
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// LimiterConfig configures per-client throttling of credential submissions.
type LimiterConfig struct {
	// PerMinute is the sustained rate. Zero disables limiting.
	PerMinute int
	Burst     int
	// IdleTTL is how long an idle client's bucket is kept (default 10m).
	IdleTTL time.Duration
}

type clientBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// ClientLimiter hands out one token bucket per client address. Idle buckets are
// pruned lazily on access, so no background goroutine needs stopping.
type ClientLimiter struct {
	perMinute int
	limit     rate.Limit
	burst     int
	ttl       time.Duration
	now       func() time.Time

	mu        sync.Mutex
	buckets   map[string]*clientBucket
	lastPrune time.Time
}

// NewClientLimiter returns nil when cfg disables limiting; a nil limiter allows everything.
func NewClientLimiter(cfg LimiterConfig) *ClientLimiter {
	if cfg.PerMinute <= 0 {
		return nil
	}
	if cfg.Burst < 1 {
		cfg.Burst = 1
	}
	if cfg.IdleTTL <= 0 {
		cfg.IdleTTL = 10 * time.Minute
	}
	return &ClientLimiter{
		perMinute: cfg.PerMinute,
		limit:     rate.Limit(float64(cfg.PerMinute) / 60.0),
		burst:     cfg.Burst,
		ttl:       cfg.IdleTTL,
		now:       time.Now,
		buckets:   make(map[string]*clientBucket),
	}
}

// Allow reports whether the client may proceed now.
func (l *ClientLimiter) Allow(client string) bool {
	if l == nil {
		return true
	}
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastPrune) > l.ttl {
		for key, b := range l.buckets {
			if now.Sub(b.lastSeen) > l.ttl {
				delete(l.buckets, key)
			}
		}
		l.lastPrune = now
	}

	b, ok := l.buckets[client]
	if !ok {
		b = &clientBucket{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.buckets[client] = b
	}
	b.lastSeen = now
	return b.limiter.AllowN(now, 1)
}

// Len returns the number of tracked clients.
func (l *ClientLimiter) Len() int {
	if l == nil {
		return 0
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

// RetryAfter estimates the seconds until one more request is allowed.
func (l *ClientLimiter) RetryAfter() int {
	if l == nil || l.perMinute <= 0 {
		return 1
	}
	return max(1, (60+l.perMinute-1)/l.perMinute)
}

// Limit wraps next; rejected requests are handed to onLimited with Retry-After already set.
func (l *ClientLimiter) Limit(next, onLimited http.HandlerFunc) http.HandlerFunc {
	if l == nil {
		return next
	}
	return func(w http.ResponseWriter, r *http.Request) {
		if !l.Allow(clientAddr(r)) {
			w.Header().Set("Retry-After", strconv.Itoa(l.RetryAfter()))
			onLimited(w, r)
			return
		}
		next(w, r)
	}
}

func clientAddr(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
