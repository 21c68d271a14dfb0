package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/adampresley/flickralbums/pkg/models"
	"github.com/lestrrat-go/backoff/v2"
)

const (
	DefaultMaxAttempts = 3
	DefaultBaseDelay   = 2 * time.Second
	DefaultMaxDelay    = time.Minute
)

/*
RetryPolicy retries transient failures with exponential backoff. The delay
starts at BaseDelay and doubles on every retry, capped at MaxDelay. The
wait is measured from the end of the failed attempt.
*/
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration

	wait func(ctx context.Context, d time.Duration) error
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: DefaultMaxAttempts,
		BaseDelay:   DefaultBaseDelay,
		MaxDelay:    DefaultMaxDelay,
	}
}

/*
Do calls fn until it succeeds, fails with anything other than a transient
error, or runs out of attempts. Running out of attempts demotes the last
transient error to an operation error. It returns the number of attempts
made.
*/
func (p RetryPolicy) Do(ctx context.Context, name string, fn func() error) (int, error) {
	var (
		err      error
		attempts int
	)

	maxAttempts := p.MaxAttempts

	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}

	wait := p.wait

	if wait == nil {
		wait = sleepContext
	}

	intervals := p.intervals()

	for {
		attempts++

		if err = fn(); err == nil {
			return attempts, nil
		}

		if models.KindOf(err) != models.KindTransient {
			return attempts, err
		}

		if attempts >= maxAttempts {
			break
		}

		delay := intervals.Next()
		slog.Warn("transient failure, retrying", "operation", name, "attempt", attempts, "maxAttempts", maxAttempts, "delay", delay, "error", err)

		if waitErr := wait(ctx, delay); waitErr != nil {
			return attempts, models.NewServiceError(models.KindOperation, name, fmt.Errorf("retry cancelled: %w", errors.Join(waitErr, err)))
		}
	}

	return attempts, models.NewServiceError(models.KindOperation, name, fmt.Errorf("giving up after %d attempts: %w", attempts, err))
}

func (p RetryPolicy) intervals() *backoff.ExponentialInterval {
	baseDelay := p.BaseDelay

	if baseDelay <= 0 {
		baseDelay = DefaultBaseDelay
	}

	return backoff.NewExponentialInterval(
		backoff.WithMinInterval(baseDelay),
		backoff.WithMaxInterval(max(p.MaxDelay, baseDelay)),
		backoff.WithMultiplier(2),
	)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
