package services

import (
	"context"
	"fmt"
	"runtime"
	"testing"
	"time"

	"github.com/adampresley/flickralbums/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastRetry(attempts int) RetryPolicy {
	return RetryPolicy{MaxAttempts: attempts, BaseDelay: time.Millisecond, MaxDelay: 4 * time.Millisecond}
}

func transient(op string) error {
	return models.NewServiceError(models.KindTransient, op, fmt.Errorf("rate limited"))
}

func TestRetryPolicySucceedsAfterTransientFailures(t *testing.T) {
	calls := 0

	attempts, err := fastRetry(3).Do(context.Background(), "add photo", func() error {
		calls++

		if calls < 3 {
			return transient("flickr.photosets.addPhoto")
		}

		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
	assert.Equal(t, 3, calls)
}

func TestRetryPolicyGivesUpAndDemotes(t *testing.T) {
	calls := 0

	attempts, err := fastRetry(3).Do(context.Background(), "add photo", func() error {
		calls++
		return transient("flickr.photosets.addPhoto")
	})

	require.Error(t, err)
	assert.Equal(t, 3, attempts)
	assert.Equal(t, 3, calls)
	assert.Equal(t, models.KindOperation, models.KindOf(err))
	assert.Contains(t, err.Error(), "giving up after 3 attempts")
}

func TestRetryPolicyDoesNotRetryOtherKinds(t *testing.T) {
	for _, kind := range []models.ErrorKind{models.KindOperation, models.KindAlreadySatisfied} {
		calls := 0

		attempts, err := fastRetry(3).Do(context.Background(), "delete album", func() error {
			calls++
			return models.NewServiceError(kind, "flickr.photosets.delete", fmt.Errorf("nope"))
		})

		require.Error(t, err)
		assert.Equal(t, 1, attempts)
		assert.Equal(t, 1, calls)
		assert.Equal(t, kind, models.KindOf(err))
	}
}

func TestRetryPolicyDefaultsToThreeAttempts(t *testing.T) {
	calls := 0

	_, err := RetryPolicy{BaseDelay: time.Millisecond}.Do(context.Background(), "x", func() error {
		calls++
		return transient("x")
	})

	require.Error(t, err)
	assert.Equal(t, DefaultMaxAttempts, calls)
}

func TestRetryPolicyDelayDoublesUpToMax(t *testing.T) {
	delays := []time.Duration{}

	policy := RetryPolicy{MaxAttempts: 6, BaseDelay: time.Second, MaxDelay: 5 * time.Second}
	policy.wait = func(ctx context.Context, d time.Duration) error {
		delays = append(delays, d)
		return nil
	}

	_, err := policy.Do(context.Background(), "upload", func() error {
		return transient("flickr.upload")
	})

	require.Error(t, err)
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second, 4 * time.Second, 5 * time.Second, 5 * time.Second}, delays)
}

func TestRetryPolicyWaitsAfterSlowAttempts(t *testing.T) {
	var (
		finished []time.Time
		started  []time.Time
	)

	policy := RetryPolicy{MaxAttempts: 3, BaseDelay: 20 * time.Millisecond, MaxDelay: time.Second}

	_, err := policy.Do(context.Background(), "upload", func() error {
		started = append(started, time.Now())
		time.Sleep(50 * time.Millisecond)
		finished = append(finished, time.Now())
		return transient("flickr.upload")
	})

	require.Error(t, err)
	require.Len(t, started, 3)
	assert.GreaterOrEqual(t, started[1].Sub(finished[0]), 20*time.Millisecond)
	assert.GreaterOrEqual(t, started[2].Sub(finished[1]), 40*time.Millisecond)
}

func TestRetryPolicyStopsWaitingWhenCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0

	policy := RetryPolicy{MaxAttempts: 3, BaseDelay: time.Hour}

	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	attempts, err := policy.Do(ctx, "add photo", func() error {
		calls++
		return transient("flickr.photosets.addPhoto")
	})

	require.Error(t, err)
	assert.Equal(t, 1, attempts)
	assert.Equal(t, 1, calls)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Contains(t, err.Error(), "retry cancelled")
}

func TestRetryPolicyLeavesNoGoroutinesBehind(t *testing.T) {
	before := runtime.NumGoroutine()

	for range 100 {
		_, err := fastRetry(3).Do(context.Background(), "get page", func() error { return nil })
		require.NoError(t, err)
	}

	assert.LessOrEqual(t, runtime.NumGoroutine(), before+2)
}
