package redis

import (
	"context"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Runs against a live Redis when VIDLY_TEST_REDIS_ADDR is set.
func newTestThrottle(t *testing.T, max int, window time.Duration) *LoginThrottle {
	t.Helper()
	addr := os.Getenv("VIDLY_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("VIDLY_TEST_REDIS_ADDR not set")
	}
	client, err := Connect(t.Context(), Config{Addr: addr})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return NewLoginThrottle(client, max, window)
}

func TestLoginThrottle_LocksAfterMaxAttempts(t *testing.T) {
	throttle := newTestThrottle(t, 2, time.Minute)
	ctx := t.Context()
	key := uuid.NewString() + "@example.com"
	t.Cleanup(func() { _ = throttle.Reset(context.Background(), key) })

	for i := 0; i < 2; i++ {
		allowed, err := throttle.Attempt(ctx, key)
		require.NoError(t, err)
		assert.True(t, allowed, "attempt %d", i+1)
	}
	allowed, err := throttle.Attempt(ctx, key)
	require.NoError(t, err)
	assert.False(t, allowed)

	ttl, err := throttle.client.TTL(ctx, throttle.key(key)).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
	assert.LessOrEqual(t, ttl, time.Minute)

	require.NoError(t, throttle.Reset(ctx, key))
	allowed, err = throttle.Attempt(ctx, key)
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestLoginThrottle_ConcurrentAttemptsCountedOnce(t *testing.T) {
	throttle := newTestThrottle(t, 3, time.Minute)
	ctx := t.Context()
	key := uuid.NewString() + "@example.com"
	t.Cleanup(func() { _ = throttle.Reset(context.Background(), key) })

	const callers = 10
	var wg sync.WaitGroup
	var allowedCount atomic.Int32
	for range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			allowed, err := throttle.Attempt(ctx, key)
			assert.NoError(t, err)
			if allowed {
				allowedCount.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(3), allowedCount.Load())
	n, err := throttle.client.Get(ctx, throttle.key(key)).Int()
	require.NoError(t, err)
	assert.Equal(t, callers, n)
}

func TestNewLoginThrottle_Defaults(t *testing.T) {
	throttle := NewLoginThrottle(nil, 0, 0)
	assert.Equal(t, defaultMaxAttempts, throttle.maxAttempts)
	assert.Equal(t, defaultWindow, throttle.window)
	assert.Equal(t, "login:attempts:a@b.co", throttle.key("a@b.co"))
}
