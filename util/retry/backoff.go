package retry

import (
	"context"
	"time"
)

// sleepFunc is swapped out by tests to record the backoff periods.
var sleepFunc = func(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// backoffPeriod is (multiplier*retries)+1 units: linear growth starting at one unit.
func backoffPeriod(retries, multiplier int, unit time.Duration) time.Duration {
	return time.Duration(multiplier*retries+1) * unit
}

// BackoffAndSleep sleeps for the backoff period of the given attempt. It
// returns early with the context error when ctx ends.
func BackoffAndSleep(ctx context.Context, retries int, backoffMultiplier int, durationType time.Duration) error {
	return sleepFunc(ctx, backoffPeriod(retries, backoffMultiplier, durationType))
}
