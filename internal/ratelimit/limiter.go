package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mysterymeet/backend/internal/config"
	"github.com/mysterymeet/backend/internal/storage"
)

// RateLimiter defines the contract for enforcing rate limits.
type RateLimiter interface {
	// AllowJoin checks if a user can attempt another join right now.
	AllowJoin(ctx context.Context, userID string) (bool, error)

	// AllowEventCreation checks if a user can create another event.
	AllowEventCreation(ctx context.Context, userID string) (bool, error)

	// AllowIPRequest checks if an IP can make a request.
	AllowIPRequest(ctx context.Context, ip string) (bool, error)
}

type Limiter struct {
	redis  storage.RedisClient
	config config.RateLimitConfig
}

func NewLimiter(redisClient storage.RedisClient, config config.RateLimitConfig) *Limiter {
	return &Limiter{
		redis:  redisClient,
		config: config,
	}
}

// AllowJoin checks if a user can attempt another join
func (l *Limiter) AllowJoin(ctx context.Context, userID string) (bool, error) {
	key := fmt.Sprintf("ratelimit:join:%s", userID)
	return l.checkSlidingWindow(ctx, key, l.config.JoinsPerMin, 60)
}

// AllowEventCreation checks if a user can create another event
func (l *Limiter) AllowEventCreation(ctx context.Context, userID string) (bool, error) {
	key := fmt.Sprintf("ratelimit:user:%s:events", userID)

	count, err := l.redis.Incr(ctx, key)
	if err != nil {
		return false, fmt.Errorf("failed to check event creation rate limit: %w", err)
	}

	// Set expiration on first increment (1 hour)
	if count == 1 {
		l.redis.Expire(ctx, key, time.Hour)
	}

	return count <= int64(l.config.EventsPerHour), nil
}

// AllowIPRequest checks if an IP can make a request
func (l *Limiter) AllowIPRequest(ctx context.Context, ip string) (bool, error) {
	key := fmt.Sprintf("ratelimit:ip:%s:requests", ip)
	return l.checkSlidingWindow(ctx, key, l.config.RequestsPerMinute, 60)
}

// checkSlidingWindow implements a sliding window rate limiter using sorted sets
func (l *Limiter) checkSlidingWindow(ctx context.Context, key string, maxCount int, windowSec int) (bool, error) {
	now := time.Now().UnixNano()
	windowStart := now - int64(windowSec)*int64(time.Second)

	// Remove old entries outside the window
	if err := l.redis.ZRemRangeByScore(ctx, key, "-inf", fmt.Sprintf("%d", windowStart)); err != nil {
		return false, fmt.Errorf("failed to clean old entries: %w", err)
	}

	// Count entries in current window
	count, err := l.redis.ZCard(ctx, key)
	if err != nil {
		return false, fmt.Errorf("failed to count entries: %w", err)
	}

	if count >= int64(maxCount) {
		return false, nil
	}

	// Add new entry
	if err := l.redis.ZAdd(ctx, key, redis.Z{
		Score:  float64(now),
		Member: fmt.Sprintf("%d", now),
	}); err != nil {
		return false, fmt.Errorf("failed to add entry: %w", err)
	}

	// Set expiration
	l.redis.Expire(ctx, key, time.Duration(windowSec)*time.Second)

	return true, nil
}

// NoopLimiter allows everything. Used when Redis is disabled (memory-backend
// deployments).
type NoopLimiter struct{}

func (NoopLimiter) AllowJoin(ctx context.Context, userID string) (bool, error) {
	return true, nil
}

func (NoopLimiter) AllowEventCreation(ctx context.Context, userID string) (bool, error) {
	return true, nil
}

func (NoopLimiter) AllowIPRequest(ctx context.Context, ip string) (bool, error) {
	return true, nil
}
