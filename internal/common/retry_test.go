package common

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithRetry(t *testing.T) {
	fastOpts := RetryOptions{MaxAttempts: 3, InitialDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond}

	t.Run("succeeds after transient failures", func(t *testing.T) {
		calls := 0
		err := WithRetry(context.Background(), func() error {
			calls++
			if calls < 3 {
				return ErrNetwork
			}
			return nil
		}, fastOpts)

		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("does not retry permanent errors", func(t *testing.T) {
		calls := 0
		err := WithRetry(context.Background(), func() error {
			calls++
			return ErrService
		}, fastOpts)

		require.ErrorIs(t, err, ErrService)
		assert.Equal(t, 1, calls)
	})

	t.Run("exhausts attempts", func(t *testing.T) {
		calls := 0
		err := WithRetry(context.Background(), func() error {
			calls++
			return ErrNetwork
		}, fastOpts)

		require.ErrorIs(t, err, ErrMaxRetries)
		require.ErrorIs(t, err, ErrNetwork)
		assert.Equal(t, 3, calls)
	})

	t.Run("single attempt returns the error untouched", func(t *testing.T) {
		err := WithRetry(context.Background(), func() error {
			return ErrNetwork
		}, RetryOptions{MaxAttempts: 1})

		assert.Equal(t, ErrNetwork, err)
	})

	t.Run("stops on context cancellation", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := WithRetry(ctx, func() error {
			return ErrNetwork
		}, RetryOptions{MaxAttempts: 5, InitialDelay: time.Hour})

		assert.ErrorIs(t, err, context.Canceled)
	})
}
