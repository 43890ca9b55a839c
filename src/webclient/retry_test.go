package webclient

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoWithRetry_SucceedsAfterTransientFailure(t *testing.T) {
	calls := 0
	status, body, err := DoWithRetry(context.Background(), 3, time.Millisecond, func() (int, []byte, error) {
		calls++
		if calls < 3 {
			return 500, nil, fmt.Errorf("status 500")
		}
		return 200, []byte("ok"), nil
	})

	require.NoError(t, err)
	assert.Equal(t, 200, status)
	assert.Equal(t, []byte("ok"), body)
	assert.Equal(t, 3, calls)
}

func TestDoWithRetry_RetriesOnRateLimit(t *testing.T) {
	calls := 0
	_, _, err := DoWithRetry(context.Background(), 2, time.Millisecond, func() (int, []byte, error) {
		calls++
		return 429, nil, nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, calls, "429 must be retried up to the attempt limit")
}

func TestDoWithRetry_DoesNotRetryClientErrors(t *testing.T) {
	calls := 0
	status, _, _ := DoWithRetry(context.Background(), 3, time.Millisecond, func() (int, []byte, error) {
		calls++
		return 400, nil, nil
	})

	assert.Equal(t, 400, status)
	assert.Equal(t, 1, calls)
}

func TestDoWithRetry_StopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := DoWithRetry(ctx, 5, time.Minute, func() (int, []byte, error) {
		return 500, nil, fmt.Errorf("status 500")
	})

	assert.ErrorIs(t, err, context.Canceled)
}
