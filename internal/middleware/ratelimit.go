package middleware

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/yigit/gradtracker/internal/pkg/apperrors"
)

// visitorTTL is how long an idle client keeps its limiter state
const visitorTTL = 10 * time.Minute

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPRateLimiter keeps one token bucket per client key
type IPRateLimiter struct {
	mu        sync.Mutex
	visitors  map[string]*visitor
	limit     rate.Limit
	burst     int
	interval  time.Duration
	now       func() time.Time
	lastSweep time.Time
}

// NewIPRateLimiter allows perMinute requests per key, refilled evenly
func NewIPRateLimiter(perMinute int) *IPRateLimiter {
	if perMinute < 1 {
		perMinute = 1
	}
	interval := time.Minute / time.Duration(perMinute)
	return &IPRateLimiter{
		visitors:  make(map[string]*visitor),
		limit:     rate.Every(interval),
		burst:     perMinute,
		interval:  interval,
		now:       time.Now,
		lastSweep: time.Now(),
	}
}

// Allow consumes one token for key
func (l *IPRateLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.sweep(now)

	v, ok := l.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.visitors[key] = v
	}
	v.lastSeen = now
	return v.limiter.AllowN(now, 1)
}

// sweep drops idle visitors; callers hold l.mu
func (l *IPRateLimiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < visitorTTL {
		return
	}
	for key, v := range l.visitors {
		if now.Sub(v.lastSeen) > visitorTTL {
			delete(l.visitors, key)
		}
	}
	l.lastSweep = now
}

// Middleware rejects requests over the limit with 429
func (l *IPRateLimiter) Middleware() gin.HandlerFunc {
	retryAfter := strconv.Itoa(max(1, int(l.interval.Round(time.Second)/time.Second)))
	return func(c *gin.Context) {
		if !l.Allow(c.ClientIP()) {
			c.Header("Retry-After", retryAfter)
			HandleAPIError(c, apperrors.ErrRateLimited)
			return
		}
		c.Next()
	}
}

// RateLimit limits requests per client IP; perMinute <= 0 disables it
func RateLimit(perMinute int) gin.HandlerFunc {
	if perMinute <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	return NewIPRateLimiter(perMinute).Middleware()
}
