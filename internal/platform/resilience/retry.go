package resilience

import (
	"context"
	"time"
)

// Retry calls fn until it succeeds, returns a non-retryable error, the policy
// runs out of attempts or ctx is done. The last error is returned.
func Retry(ctx context.Context, policy RetryPolicy, retryable func(error) bool, fn func(attempt int) error) error {
	var err error
	for attempt := 0; attempt <= policy.MaxRetries; attempt++ {
		err = fn(attempt)
		if err == nil {
			return nil
		}
		if retryable != nil && !retryable(err) {
			return err
		}
		if attempt == policy.MaxRetries {
			break
		}

		timer := time.NewTimer(policy.Backoff(attempt))
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
	return err
}
