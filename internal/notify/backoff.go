package notify

import (
	"fmt"
	"time"

	"inspection-service/internal/logging"
)

// Backoff is a retry policy: a bounded number of attempts with a fixed wait
// between failures. Substituting a nil-sleep policy makes retrying code
// testable without real waits.
type Backoff struct {
	MaxAttempts int
	Delay       time.Duration
	Sleep       func(time.Duration) // defaults to time.Sleep
}

// DefaultBackoff is the delivery policy required for outbound email: three
// attempts, three seconds apart.
var DefaultBackoff = Backoff{MaxAttempts: 3, Delay: 3 * time.Second}

// Run invokes fn until it succeeds or the attempts are exhausted, waiting
// Delay between failures. The returned error wraps the last failure.
func (b Backoff) Run(logger *logging.Logger, fn func() error) error {
	attempts := b.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	sleep := b.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err := fn(); err != nil {
			lastErr = err
			logger.Errorf("Attempt %d/%d failed: %v", attempt, attempts, err)
			if attempt < attempts {
				sleep(b.Delay)
			}
			continue
		}
		return nil
	}
	return fmt.Errorf("failed after %d attempts: %w", attempts, lastErr)
}
