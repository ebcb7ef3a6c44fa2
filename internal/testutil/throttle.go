package testutil

import (
	"context"
	"sync"
)

// Throttle is an in-memory ports.LoginThrottle allowing Max attempts per key.
// The window never expires.
type Throttle struct {
	mu       sync.Mutex
	Max      int
	attempts map[string]int
}

func NewThrottle(max int) *Throttle {
	return &Throttle{Max: max, attempts: make(map[string]int)}
}

func (t *Throttle) Attempt(_ context.Context, key string) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.attempts[key]++
	return t.attempts[key] <= t.Max, nil
}

func (t *Throttle) Reset(_ context.Context, key string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.attempts, key)
	return nil
}

// Attempts reports the attempts counted for key since the last reset.
func (t *Throttle) Attempts(key string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.attempts[key]
}
