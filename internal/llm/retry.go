package llm

import (
	"context"
	"time"
)

// Retry policy for transient provider failures. The orchestrator itself
// never retries; all retry behavior lives here at the call layer.
const (
	maxAttempts  = 3
	initialDelay = 2 * time.Second
)

// withRetry runs fn up to maxAttempts times with exponential backoff,
// respecting context cancellation between attempts.
func withRetry(ctx context.Context, fn func() error) error {
	var err error
	delay := initialDelay
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err = fn(); err == nil {
			return nil
		}
		if attempt == maxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}
	return err
}
