package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/Goodnessmbakara/skillsverse/pkg/apperror"
	"github.com/redis/go-redis/v9"
)

// LimitError is returned when an action is attempted inside its window.
type LimitError struct {
	RetryAfter time.Duration
}

func (e *LimitError) Error() string {
	return fmt.Sprintf("rate limit exceeded, retry after %s", e.RetryAfter)
}

func (e *LimitError) Unwrap() error {
	return apperror.ErrRateLimitExceeded
}

// Limiter allows one action per user and window. A nil redis client allows
// everything.
type Limiter struct {
	rdb *redis.Client
}

func New(rdb *redis.Client) *Limiter {
	return &Limiter{rdb: rdb}
}

func key(userID uint, action string) string {
	return fmt.Sprintf("rate_limit:user:%d:%s", userID, action)
}

// Allow claims the window for userID and action. It returns a *LimitError
// when the window is already held.
func (l *Limiter) Allow(ctx context.Context, userID uint, action string, window time.Duration) error {
	if l == nil || l.rdb == nil || window <= 0 {
		return nil
	}

	wasSet, err := l.rdb.SetNX(ctx, key(userID, action), "locked", window).Result()
	if err != nil {
		return fmt.Errorf("failed to check rate limit in redis: %w", err)
	}
	if wasSet {
		return nil
	}

	ttl, err := l.rdb.TTL(ctx, key(userID, action)).Result()
	if err != nil || ttl <= 0 {
		ttl = window
	}
	return &LimitError{RetryAfter: ttl}
}

// Reset releases the window, e.g. when the guarded action failed.
func (l *Limiter) Reset(ctx context.Context, userID uint, action string) error {
	if l == nil || l.rdb == nil {
		return nil
	}
	return l.rdb.Del(ctx, key(userID, action)).Err()
}
