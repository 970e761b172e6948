package retry

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/orgball2608/class-gallery/pkg/logger"
)

// Config describes a fixed-delay retry policy. MaxRetries counts the
// attempts made after the first one.
type Config struct {
	MaxRetries uint64
	Interval   time.Duration
}

func DefaultConfig() Config {
	return Config{
		MaxRetries: 2,
		Interval:   400 * time.Millisecond,
	}
}

// Permanent marks err as not worth retrying.
func Permanent(err error) error {
	return backoff.Permanent(err)
}

func Do(ctx context.Context, log logger.Logger, operationName string, operation func() error, cfg Config) error {
	bo := backoff.NewConstantBackOff(cfg.Interval)

	retryable := backoff.WithMaxRetries(bo, cfg.MaxRetries)
	retryableWithContext := backoff.WithContext(retryable, ctx)

	notify := func(err error, t time.Duration) {
		log.Warn(
			"Operation failed, retrying...",
			"operation", operationName,
			"error", err,
			"next_attempt_in", t.Round(time.Millisecond).String(),
		)
	}

	return backoff.RetryNotify(operation, retryableWithContext, notify)
}

// DoValue is Do for operations that produce a value.
func DoValue[T any](ctx context.Context, log logger.Logger, operationName string, operation func() (T, error), cfg Config) (T, error) {
	var result T
	err := Do(ctx, log, operationName, func() error {
		v, err := operation()
		if err != nil {
			return err
		}
		result = v
		return nil
	}, cfg)
	return result, err
}
