package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const defaultRedisPrefix = "gradtracker:"

// Redis shares cached values between service instances
type Redis struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	log    zerolog.Logger
}

// NewRedis connects to redis and verifies the connection with PING
func NewRedis(ctx context.Context, opts RedisOptions, ttl time.Duration, lgr zerolog.Logger) (*Redis, error) {
	if opts.Addr == "" {
		return nil, errors.New("redis address is not configured")
	}
	if opts.Prefix == "" {
		opts.Prefix = defaultRedisPrefix
	}

	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return &Redis{
		client: client,
		prefix: opts.Prefix,
		ttl:    ttl,
		log:    lgr,
	}, nil
}

func (r *Redis) key(k string) string {
	return r.prefix + k
}

// Get returns the cached value; redis errors other than a miss are logged
func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := r.client.Get(ctx, r.key(key)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.log.Warn().Err(err).Str("key", key).Msg("Redis GET failed")
		}
		return nil, false
	}
	return val, true
}

// Set stores value with the configured TTL
func (r *Redis) Set(ctx context.Context, key string, value []byte) {
	if err := r.client.Set(ctx, r.key(key), value, r.ttl).Err(); err != nil {
		r.log.Warn().Err(err).Str("key", key).Msg("Redis SET failed")
	}
}

// Delete removes key
func (r *Redis) Delete(ctx context.Context, key string) {
	if err := r.client.Del(ctx, r.key(key)).Err(); err != nil {
		r.log.Warn().Err(err).Str("key", key).Msg("Redis DEL failed")
	}
}

// Close closes the underlying client
func (r *Redis) Close() error {
	return r.client.Close()
}
