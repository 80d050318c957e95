package txmanager

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serializationErr() error {
	return fmt.Errorf("commit transaction: %w", &pq.Error{Code: "40001"})
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"serialization failure", &pq.Error{Code: "40001"}, true},
		{"deadlock detected", &pq.Error{Code: "40P01"}, true},
		{"wrapped serialization failure", serializationErr(), true},
		{"other sql state", &pq.Error{Code: "23505"}, false},
		{"plain error", errors.New("boom"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRetryable(tt.err))
		})
	}
}

func TestWithRetryRerunsUntilSuccess(t *testing.T) {
	calls := 0
	err := WithRetry(context.Background(), func() error {
		calls++
		if calls < 3 {
			return serializationErr()
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestWithRetryReturnsBusinessErrorImmediately(t *testing.T) {
	sentinel := errors.New("room is occupied")
	calls := 0
	err := WithRetry(context.Background(), func() error {
		calls++
		return sentinel
	})

	require.ErrorIs(t, err, sentinel)
	assert.Equal(t, 1, calls)
}

func TestWithRetryExhaustion(t *testing.T) {
	calls := 0
	err := WithRetry(context.Background(), func() error {
		calls++
		return serializationErr()
	})

	require.ErrorIs(t, err, ErrSerializationFailure)
	assert.Equal(t, maxTxAttempts, calls)
}
