package utils

import (
	"context"
	"fmt"
	"log"
	"time"
)

// DoWithRetry runs fn up to maxRetries times with a fixed interval, bailing
// out early when the context is done.
func DoWithRetry(ctx context.Context, maxRetries int, interval time.Duration, fn func() error) error {
	var err error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		err = fn()
		if err == nil {
			return nil
		}

		log.Printf("[RETRY] attempt %d/%d failed: %v", attempt, maxRetries, err)

		if attempt == maxRetries {
			break
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("context cancelled or timed out: %w", ctx.Err())
		case <-time.After(interval):
		}
	}
	return err
}
