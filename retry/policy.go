package retry

import (
	"context"
	"errors"
	"time"

	"github.com/whales-names/whales/util"
)

// Policy describes how a failed operation is retried.
type Policy struct {
	Attempts int           `json:"attempts,omitempty" yaml:"attempts,omitempty"` // Maximum number of attempts, negative for unlimited.
	Backoff  util.Duration `json:"backoff,omitempty" yaml:"backoff,omitempty"`   // Delay before the second attempt.
	MaxDelay util.Duration `json:"max_delay,omitempty" yaml:"max_delay,omitempty"`
}

func Basic() Policy {
	return Policy{
		Attempts: 8,
		Backoff:  util.Duration(500 * time.Millisecond),
		MaxDelay: util.Duration(30 * time.Second),
	}
}

func (p Policy) adjust() Policy {
	if p.Attempts == 0 {
		p.Attempts = 8
	}
	p.Backoff = p.Backoff.Or(150 * time.Millisecond)
	p.MaxDelay = p.MaxDelay.Or(20 * p.Backoff.Duration())
	return p
}

// Delay returns the wait before attempt n (starting at 1 for the first retry).
func (p Policy) Delay(n int) time.Duration {
	p = p.adjust()
	delay := p.Backoff.Duration()
	for i := 1; i < n && delay < p.MaxDelay.Duration(); i++ {
		delay += delay >> 1
	}
	return min(delay, p.MaxDelay.Duration())
}

// Run calls f until it succeeds, returns a permanent error, the attempts
// run out or ctx is done. The last error is returned.
func (p Policy) Run(ctx context.Context, f func(attempt int) error) error {
	p = p.adjust()
	for attempt := 1; ; attempt++ {
		err := f(attempt)
		if !Retryable(err) {
			return err
		}
		if p.Attempts > 0 && attempt >= p.Attempts {
			return errors.Join(ErrMaxAttemptsExceeded, err)
		}
		select {
		case <-ctx.Done():
			return errors.Join(ctx.Err(), err)
		case <-time.After(p.Delay(attempt)):
		}
	}
}
