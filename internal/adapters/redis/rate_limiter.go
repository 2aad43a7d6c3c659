package redis

// Package redis provides Redis-based adapters for callyn-backend.

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/milestone2github/callyn-backend/internal/ports"
)

var _ ports.RateLimiter = (*RateLimiter)(nil)

// RateLimiterOptions configures a fixed-window limiter.
type RateLimiterOptions struct {
	Limit  int
	Window time.Duration
	Prefix string
	Now    func() time.Time
}

// RateLimiter counts requests per key in fixed windows shared by every replica.
type RateLimiter struct {
	client redis.UniversalClient
	limit  int64
	window time.Duration
	prefix string
	now    func() time.Time
}

// NewRateLimiter creates a Redis-backed fixed-window rate limiter.
func NewRateLimiter(client redis.UniversalClient, opts RateLimiterOptions) (*RateLimiter, error) {
	if client == nil {
		return nil, errors.New("redis client is required")
	}
	if opts.Limit <= 0 {
		return nil, errors.New("limit must be > 0")
	}
	if opts.Window <= 0 {
		return nil, errors.New("window must be > 0")
	}
	prefix := opts.Prefix
	if prefix == "" {
		prefix = "ratelimit:"
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &RateLimiter{
		client: client,
		limit:  int64(opts.Limit),
		window: opts.Window,
		prefix: prefix,
		now:    now,
	}, nil
}

// Allow increments the caller's counter for the current window.
func (l *RateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	if key == "" {
		key = "unknown"
	}
	bucket := l.now().UnixNano() / int64(l.window)
	redisKey := l.prefix + key + ":" + strconv.FormatInt(bucket, 10)

	var incr *redis.IntCmd
	_, err := l.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, redisKey)
		pipe.Expire(ctx, redisKey, l.window)
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("redis incr: %w", err)
	}
	return incr.Val() <= l.limit, nil
}
