// Package latency provides the suspension points that stand in for network
// round-trips to card networks, wallets and notification providers.
package latency

import (
	"context"
	"time"
)

// Delayer suspends the calling goroutine for d or until ctx is done.
type Delayer interface {
	Wait(ctx context.Context, d time.Duration) error
}

// Timer waits on a real clock.
type Timer struct{}

func (Timer) Wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Instant never waits but still honours cancellation.
type Instant struct{}

func (Instant) Wait(ctx context.Context, _ time.Duration) error {
	return ctx.Err()
}
