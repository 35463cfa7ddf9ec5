package retry

import (
	"context"
	"time"

	"github.com/bsv-blockchain/teranode-consensus/errors"
	"github.com/bsv-blockchain/teranode-consensus/ulogger"
)

type Options struct {
	RetryCount          int
	BackoffMultiplier   int
	BackoffDurationType time.Duration
	Message             string
	RetryIf             func(error) bool
}

type Option func(*Options)

func WithRetryCount(retryCount int) Option {
	return func(o *Options) {
		o.RetryCount = retryCount
	}
}

func WithBackoffMultiplier(backoffMultiplier int) Option {
	return func(o *Options) {
		o.BackoffMultiplier = backoffMultiplier
	}
}

func WithBackoffDurationType(durationType time.Duration) Option {
	return func(o *Options) {
		o.BackoffDurationType = durationType
	}
}

func WithMessage(message string) Option {
	return func(o *Options) {
		o.Message = message
	}
}

// WithRetryIf decides which errors are retried. By default only errors for
// which errors.IsRetryableError is true are.
func WithRetryIf(retryIf func(error) bool) Option {
	return func(o *Options) {
		o.RetryIf = retryIf
	}
}

// Retry calls f until it succeeds, fails with an error that is not retried or
// the attempts run out, sleeping between attempts as BackoffAndSleep does.
// The last error is returned.
func Retry[T any](ctx context.Context, logger ulogger.Logger, f func() (T, error), opts ...Option) (T, error) {
	options := &Options{
		RetryCount:          3,
		BackoffMultiplier:   2,
		BackoffDurationType: time.Second,
		RetryIf:             errors.IsRetryableError,
	}

	for _, opt := range opts {
		opt(options)
	}

	var (
		result T
		err    error
	)

	for i := 0; i < options.RetryCount; i++ {
		result, err = f()
		if err == nil || !options.RetryIf(err) {
			return result, err
		}

		if i == options.RetryCount-1 {
			break
		}

		logger.Warnf("%s (attempt %d of %d): %v", options.Message, i+1, options.RetryCount, err)

		if sleepErr := BackoffAndSleep(ctx, i, options.BackoffMultiplier, options.BackoffDurationType); sleepErr != nil {
			return result, errors.NewContextCanceledError("%s: stopped retrying", options.Message, err)
		}
	}

	return result, err
}
