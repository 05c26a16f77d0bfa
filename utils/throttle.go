package utils

import (
	"context"
	"sync"
	"time"
)

// Throttle spaces out requests to the source site by a fixed delay.
type Throttle struct {
	mu          sync.Mutex
	delay       time.Duration
	lastRequest time.Time
}

// NewThrottle creates a Throttle; a zero delay makes Wait a no-op.
func NewThrottle(delay time.Duration) *Throttle {
	return &Throttle{delay: delay}
}

// Wait blocks until delay has passed since the previous call returned.
// The first call never blocks.
func (t *Throttle) Wait(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.lastRequest.IsZero() {
		if remaining := t.delay - time.Since(t.lastRequest); remaining > 0 {
			timer := time.NewTimer(remaining)
			defer timer.Stop()
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-timer.C:
			}
		}
	}
	t.lastRequest = time.Now()
	return nil
}
