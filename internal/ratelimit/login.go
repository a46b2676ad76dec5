package ratelimit

import (
	"context"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
)

// LoginLimiter throttles login attempts per account with a redis
// fixed-window counter. A nil client disables throttling entirely, so the
// API stays usable without redis in development.
type LoginLimiter struct {
	rdb    *redis.Client
	max    int
	window time.Duration
}

func NewLoginLimiter(rdb *redis.Client, max int, window time.Duration) *LoginLimiter {
	if max <= 0 {
		max = 10
	}
	if window <= 0 {
		window = time.Minute
	}
	return &LoginLimiter{rdb: rdb, max: max, window: window}
}

// Allow reports whether another attempt for this email may proceed.
// Redis failures do not lock users out; they allow and are left to the
// caller to log.
func (l *LoginLimiter) Allow(ctx context.Context, email string) (bool, error) {
	if l.rdb == nil {
		return true, nil
	}

	key := Key(email)

	count, err := l.rdb.Incr(ctx, key).Result()
	if err != nil {
		return true, err
	}
	if count == 1 {
		if err := l.rdb.Expire(ctx, key, l.window).Err(); err != nil {
			return true, err
		}
	}

	return count <= int64(l.max), nil
}

func Key(email string) string {
	return "login_attempts:" + strings.ToLower(strings.TrimSpace(email))
}
