package gateway

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// Limiter enforces a fixed-window request quota per caller. Counters
// live in redis so multiple gateway replicas share one budget; when
// redis is down or not configured, a per-process token bucket takes
// over so the gateway keeps serving.
type Limiter struct {
	rdb      *redis.Client
	requests int
	window   time.Duration
	log      zerolog.Logger

	mu    sync.Mutex
	local map[string]*rate.Limiter
}

func NewLimiter(rdb *redis.Client, requests, windowSeconds int, logger *zerolog.Logger) *Limiter {
	return &Limiter{
		rdb:      rdb,
		requests: requests,
		window:   time.Duration(windowSeconds) * time.Second,
		log:      logger.With().Str("component", "ratelimit").Logger(),
		local:    make(map[string]*rate.Limiter),
	}
}

// Allow reports whether the caller identified by key may proceed.
func (l *Limiter) Allow(ctx context.Context, key string) bool {
	if l.requests <= 0 {
		return true
	}
	if l.rdb != nil {
		allowed, err := l.allowRedis(ctx, key)
		if err == nil {
			return allowed
		}
		l.log.Warn().Err(err).Msg("redis unavailable, using local limiter")
	}
	return l.allowLocal(key)
}

func (l *Limiter) allowRedis(ctx context.Context, key string) (bool, error) {
	counter := "ratelimit:" + key

	count, err := l.rdb.Incr(ctx, counter).Result()
	if err != nil {
		return false, err
	}
	if count == 1 {
		if err := l.rdb.Expire(ctx, counter, l.window).Err(); err != nil {
			return false, err
		}
	}
	return count <= int64(l.requests), nil
}

func (l *Limiter) allowLocal(key string) bool {
	l.mu.Lock()
	lim, ok := l.local[key]
	if !ok {
		perSecond := float64(l.requests) / l.window.Seconds()
		lim = rate.NewLimiter(rate.Limit(perSecond), l.requests)
		l.local[key] = lim
	}
	l.mu.Unlock()
	return lim.Allow()
}
