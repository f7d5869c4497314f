package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/whales-names/whales/util"
)

var errFlaky = errors.New("flaky")

func fast(attempts int) Policy {
	return Policy{Attempts: attempts, Backoff: util.Duration(time.Millisecond)}
}

func TestRunSucceedsAfterRetries(t *testing.T) {
	calls := 0
	err := fast(5).Run(context.Background(), func(attempt int) error {
		calls++
		require.Equal(t, calls, attempt)
		if attempt < 3 {
			return errFlaky
		}
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, 3, calls)
}

func TestRunStopsOnPermanent(t *testing.T) {
	calls := 0
	err := fast(5).Run(context.Background(), func(int) error {
		calls++
		return Permanent(errFlaky)
	})
	require.ErrorIs(t, err, errFlaky)
	require.Equal(t, 1, calls)
}

func TestRunExhausts(t *testing.T) {
	err := fast(3).Run(context.Background(), func(int) error { return errFlaky })
	require.ErrorIs(t, err, ErrMaxAttemptsExceeded)
	require.ErrorIs(t, err, errFlaky)
}

func TestRunContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := Policy{Attempts: -1, Backoff: util.Duration(time.Hour)}.Run(ctx, func(int) error { return errFlaky })
	require.ErrorIs(t, err, context.Canceled)
}

func TestDelay(t *testing.T) {
	p := Policy{Backoff: util.Duration(100 * time.Millisecond), MaxDelay: util.Duration(time.Second)}
	require.Equal(t, 100*time.Millisecond, p.Delay(1))
	require.Equal(t, 150*time.Millisecond, p.Delay(2))
	require.Equal(t, 225*time.Millisecond, p.Delay(3))
	require.Equal(t, time.Second, p.Delay(20))
}
