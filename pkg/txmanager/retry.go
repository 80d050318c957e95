package txmanager

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
)

// ErrSerializationFailure is returned when a transaction keeps aborting on
// serialization conflicts after all retry attempts. No partial state is left
// committed, so callers may retry the whole operation with backoff.
var ErrSerializationFailure = errors.New("txmanager: transaction serialization failure")

const (
	maxTxAttempts = 3
	retryBackoff  = 25 * time.Millisecond
)

// IsRetryable reports whether err is a transient transaction abort that a
// rerun may resolve: PostgreSQL serialization_failure (40001) or
// deadlock_detected (40P01).
func IsRetryable(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return pqErr.Code == "40001" || pqErr.Code == "40P01"
}

// WithRetry runs op, rerunning it on retryable transaction aborts. Each rerun
// starts a fresh transaction and observes the committed state of whichever
// peer won, so business checks (conflicts, balances) re-apply cleanly.
func WithRetry(ctx context.Context, op func() error) error {
	var err error
	for attempt := 1; ; attempt++ {
		err = op()
		if err == nil || !IsRetryable(err) {
			return err
		}
		if attempt >= maxTxAttempts || ctx.Err() != nil {
			return fmt.Errorf("%w: %d attempts: %v", ErrSerializationFailure, attempt, err)
		}
		time.Sleep(retryBackoff * time.Duration(attempt))
	}
}
