// Package cache provides the short-lived response cache used by search.
// The backend is chosen by configuration: an in-process expirable LRU,
// a shared redis instance, or a no-op cache.
package cache

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
)

// Supported drivers
const (
	DriverMemory = "memory"
	DriverRedis  = "redis"
	DriverNone   = "none"
)

// Defaults applied when options leave a value unset
const (
	DefaultTTL  = 30 * time.Second
	DefaultSize = 1024
)

var (
	cacheHitsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gradtracker_cache_hits_total",
		Help: "Number of response cache hits.",
	}, []string{"backend"})
	cacheMissesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gradtracker_cache_misses_total",
		Help: "Number of response cache misses.",
	}, []string{"backend"})
)

// Cache stores opaque values under string keys for a bounded time.
// Implementations must be safe for concurrent use. A failing backend
// behaves like a miss; callers never see cache errors.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte)
	Delete(ctx context.Context, key string)
}

// RedisOptions configures the redis backend
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

// Options selects and sizes a cache backend
type Options struct {
	Driver string
	TTL    time.Duration
	Size   int
	Redis  RedisOptions
}

func (o Options) withDefaults() Options {
	if o.TTL <= 0 {
		o.TTL = DefaultTTL
	}
	if o.Size <= 0 {
		o.Size = DefaultSize
	}
	o.Driver = strings.ToLower(strings.TrimSpace(o.Driver))
	if o.Driver == "" {
		o.Driver = DriverMemory
	}
	return o
}

// New builds the configured cache. The returned cleanup function releases
// backend resources and is always non-nil. If redis is selected but cannot
// be reached, New logs a warning and falls back to the memory backend.
func New(ctx context.Context, opts Options, lgr zerolog.Logger) (Cache, func(), error) {
	opts = opts.withDefaults()
	noop := func() {}

	switch opts.Driver {
	case DriverNone:
		lgr.Info().Msg("Response cache disabled")
		return NewNoop(), noop, nil

	case DriverMemory:
		lgr.Info().Dur("ttl", opts.TTL).Int("size", opts.Size).Msg("Using in-memory response cache")
		return Instrument(NewMemory(opts.Size, opts.TTL), DriverMemory), noop, nil

	case DriverRedis:
		rc, err := NewRedis(ctx, opts.Redis, opts.TTL, lgr)
		if err != nil {
			lgr.Warn().Err(err).Str("addr", opts.Redis.Addr).
				Msg("Redis unavailable, falling back to in-memory response cache")
			return Instrument(NewMemory(opts.Size, opts.TTL), DriverMemory), noop, nil
		}
		lgr.Info().Dur("ttl", opts.TTL).Str("addr", opts.Redis.Addr).Msg("Using redis response cache")
		return Instrument(rc, DriverRedis), func() { _ = rc.Close() }, nil

	default:
		return nil, noop, fmt.Errorf("unknown cache driver %q", opts.Driver)
	}
}

// instrumented counts hits and misses of the wrapped cache
type instrumented struct {
	next   Cache
	hits   prometheus.Counter
	misses prometheus.Counter
}

// Instrument wraps c with Prometheus hit/miss counters labelled by backend
func Instrument(c Cache, backend string) Cache {
	return &instrumented{
		next:   c,
		hits:   cacheHitsTotal.WithLabelValues(backend),
		misses: cacheMissesTotal.WithLabelValues(backend),
	}
}

func (i *instrumented) Get(ctx context.Context, key string) ([]byte, bool) {
	val, ok := i.next.Get(ctx, key)
	if ok {
		i.hits.Inc()
		return val, true
	}
	i.misses.Inc()
	return nil, false
}

func (i *instrumented) Set(ctx context.Context, key string, value []byte) {
	i.next.Set(ctx, key, value)
}

func (i *instrumented) Delete(ctx context.Context, key string) {
	i.next.Delete(ctx, key)
}
