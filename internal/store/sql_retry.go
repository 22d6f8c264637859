package store

import (
	"context"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/MKhiriev/go-offline-sync/internal/logger"
)

// RetryConfig describes an exponential backoff with jitter.
type RetryConfig struct {
	MaxAttempts   uint64
	BaseDelay     time.Duration
	MaxDelay      time.Duration
	JitterPercent uint64
}

// ConnectRetryDefaults is used while waiting for PostgreSQL to accept
// connections at startup.
func ConnectRetryDefaults() RetryConfig {
	return RetryConfig{
		MaxAttempts:   10,
		BaseDelay:     100 * time.Millisecond,
		MaxDelay:      30 * time.Second,
		JitterPercent: 10,
	}
}

// QueryRetryDefaults is used for statements failing with transient errors
// (serialization failures, deadlocks, dropped connections).
func QueryRetryDefaults() RetryConfig {
	return RetryConfig{
		MaxAttempts:   3,
		BaseDelay:     50 * time.Millisecond,
		MaxDelay:      time.Second,
		JitterPercent: 10,
	}
}

func (c RetryConfig) backoff() retry.Backoff {
	base := c.BaseDelay
	if base <= 0 {
		base = time.Millisecond
	}

	backoff := retry.NewExponential(base)
	backoff = retry.WithMaxRetries(c.MaxAttempts, backoff)
	if c.MaxDelay > 0 {
		backoff = retry.WithCappedDuration(c.MaxDelay, backoff)
	}
	// go-retry rejects a zero jitter range
	if c.JitterPercent > 0 {
		backoff = retry.WithJitterPercent(c.JitterPercent, backoff)
	}
	return backoff
}

// withRetry runs operation until it succeeds, the backoff is exhausted, or
// classify reports the error as not retryable. A nil classify retries every
// error.
func withRetry(ctx context.Context, cfg RetryConfig, classify ErrorClassificator, operationName string, operation func(ctx context.Context) error) error {
	log := logger.FromContext(ctx)

	return retry.Do(ctx, cfg.backoff(), func(ctx context.Context) error {
		err := operation(ctx)
		if err == nil {
			return nil
		}
		if classify != nil && classify.Classify(err) != Retryable {
			return err
		}
		log.Warn().Err(err).
			Str("func", "store.withRetry").
			Str("operation", operationName).
			Msg("operation failed, retrying...")
		return retry.RetryableError(err)
	})
}
