package retry

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	apperrors "github.com/orgball2608/insta-engagement-ingest/pkg/errors"
	"github.com/orgball2608/insta-engagement-ingest/pkg/logger"
)

type Config struct {
	MaxRetries      uint64
	InitialInterval time.Duration
	MaxInterval     time.Duration
	Multiplier      float64

	// MaxRetryAfter caps a server supplied Retry-After hint.
	MaxRetryAfter time.Duration
}

func DefaultConfig() Config {
	return Config{
		MaxRetries:      3,
		InitialInterval: 500 * time.Millisecond,
		MaxInterval:     5 * time.Second,
		Multiplier:      1.5,
		MaxRetryAfter:   time.Minute,
	}
}

// WithMaxRetries returns a copy of cfg with a different retry budget.
func (c Config) WithMaxRetries(n uint64) Config {
	c.MaxRetries = n
	return c
}

func newBackOff(ctx context.Context, cfg Config) (backoff.BackOffContext, *hintedBackOff) {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = cfg.InitialInterval
	bo.MaxInterval = cfg.MaxInterval
	bo.Multiplier = cfg.Multiplier
	bo.MaxElapsedTime = 0
	bo.Reset()

	hinted := &hintedBackOff{BackOff: bo, maxHint: cfg.MaxRetryAfter}
	return backoff.WithContext(backoff.WithMaxRetries(hinted, cfg.MaxRetries), ctx), hinted
}

// hintedBackOff never waits less than the Retry-After carried by the last
// failed attempt.
type hintedBackOff struct {
	backoff.BackOff
	maxHint time.Duration
	lastErr error
}

func (b *hintedBackOff) NextBackOff() time.Duration {
	next := b.BackOff.NextBackOff()
	if next == backoff.Stop {
		return next
	}

	hint := apperrors.RetryAfter(b.lastErr)
	if b.maxHint > 0 && hint > b.maxHint {
		hint = b.maxHint
	}
	return max(next, hint)
}

func (b *hintedBackOff) Reset() {
	b.lastErr = nil
	b.BackOff.Reset()
}

func observe[T any](b *hintedBackOff, operation func() (T, error)) func() (T, error) {
	return func() (T, error) {
		v, err := operation()
		b.lastErr = err
		return v, err
	}
}

func notifier(log logger.Logger, operationName string) backoff.Notify {
	return func(err error, t time.Duration) {
		log.Warn(
			"Operation failed, retrying...",
			"operation", operationName,
			"kind", apperrors.KindOf(err).String(),
			"error", err,
			"next_attempt_in", t.Round(time.Millisecond).String(),
		)
	}
}

func Do(ctx context.Context, log logger.Logger, operationName string, operation func() error, cfg Config) error {
	_, err := DoValue(ctx, log, operationName, func() (struct{}, error) {
		return struct{}{}, operation()
	}, cfg)
	return err
}

// DoValue is Do for operations that produce a value. A rate limited attempt
// is not repeated before its Retry-After has passed.
func DoValue[T any](ctx context.Context, log logger.Logger, operationName string, operation func() (T, error), cfg Config) (T, error) {
	b, hinted := newBackOff(ctx, cfg)
	return backoff.RetryNotifyWithData[T](observe(hinted, operation), b, notifier(log, operationName))
}

// Classified marks err as permanent unless the error policy says it is worth
// another attempt, so Do stops on the first 4xx. Rate limits count as
// retryable here and wait at least their Retry-After.
func Classified(err error) error {
	if err == nil {
		return nil
	}
	switch apperrors.ActionFor(err) {
	case apperrors.ActionRetry, apperrors.ActionWait:
		return err
	}
	return backoff.Permanent(err)
}

// Transient is stricter than Classified: only faults the policy marks for
// retry (transport and 5xx) are attempted again.
func Transient(err error) error {
	if err == nil || apperrors.ActionFor(err) == apperrors.ActionRetry {
		return err
	}
	return backoff.Permanent(err)
}
