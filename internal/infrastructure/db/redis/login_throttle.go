package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultMaxAttempts = 5
	defaultWindow      = 15 * time.Minute
)

// LoginThrottle counts login attempts per key in Redis. The counter expires
// window after the first attempt and a successful login clears it.
// Key format: login:attempts:<key>
type LoginThrottle struct {
	client      *redis.Client
	maxAttempts int
	window      time.Duration
}

// NewLoginThrottle creates a LoginThrottle wrapping the given Redis client.
// Non-positive limits fall back to 5 attempts per 15 minutes.
func NewLoginThrottle(client *redis.Client, maxAttempts int, window time.Duration) *LoginThrottle {
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}
	if window <= 0 {
		window = defaultWindow
	}
	return &LoginThrottle{client: client, maxAttempts: maxAttempts, window: window}
}

// Attempt counts one attempt for key and reports whether it stays within
// maxAttempts. INCR and EXPIRE NX run in one MULTI so concurrent callers
// each see a distinct count.
func (t *LoginThrottle) Attempt(ctx context.Context, key string) (bool, error) {
	k := t.key(key)
	var count *redis.IntCmd
	_, err := t.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		count = pipe.Incr(ctx, k)
		pipe.ExpireNX(ctx, k, t.window)
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("throttle attempt: %w", err)
	}
	return count.Val() <= int64(t.maxAttempts), nil
}

// Reset clears the attempts recorded for key.
func (t *LoginThrottle) Reset(ctx context.Context, key string) error {
	return t.client.Del(ctx, t.key(key)).Err()
}

func (t *LoginThrottle) key(key string) string {
	return fmt.Sprintf("login:attempts:%s", key)
}
