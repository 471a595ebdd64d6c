package client

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/rs/zerolog/log"
)

// RetryConfig holds the configuration for retry logic.
type RetryConfig struct {
	// MaxAttempts is the maximum number of attempts (including the initial request).
	MaxAttempts int

	// InitialBackoff is the initial backoff duration.
	InitialBackoff time.Duration

	// MaxBackoff is the maximum backoff duration.
	MaxBackoff time.Duration

	// BackoffMultiplier is the multiplier for exponential backoff.
	BackoffMultiplier float64
}

// DefaultRetryConfig returns the retry configuration used when a Config
// enables retries without tuning them.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:       3,
		InitialBackoff:    1 * time.Second,
		MaxBackoff:        30 * time.Second,
		BackoffMultiplier: 2.0,
	}
}

// RetryConfigForErrorClass adapts base to an error class.
func RetryConfigForErrorClass(base RetryConfig, errorClass ErrorClass) RetryConfig {
	cfg := base
	switch errorClass {
	case ErrorClassServer:
		// 5xx server errors - shorter backoff
		cfg.MaxBackoff = min(base.MaxBackoff, 10*time.Second)
	case ErrorClassRateLimit:
		// 429 - longer backoff, Retry-After still wins when larger
		cfg.InitialBackoff = 5 * base.InitialBackoff
		cfg.MaxBackoff = max(base.MaxBackoff, 60*time.Second)
	case ErrorClassNetwork:
		// Network errors - medium backoff
		cfg.InitialBackoff = 2 * base.InitialBackoff
	}
	return cfg
}

// backoffFor returns the un-jittered wait before attempt+1.
func (r RetryConfig) backoffFor(attempt int) time.Duration {
	backoff := r.InitialBackoff
	for i := 1; i < attempt; i++ {
		backoff = time.Duration(float64(backoff) * r.BackoffMultiplier)
		if backoff >= r.MaxBackoff {
			return r.MaxBackoff
		}
	}
	return min(backoff, r.MaxBackoff)
}

// retryWithBackoff executes fn with exponential backoff retry logic.
// Only server, rate limit and network errors are retried. It respects
// context cancellation and adds jitter to prevent thundering herd.
func retryWithBackoff(ctx context.Context, config RetryConfig, fn func() error) error {
	if config.MaxAttempts <= 1 {
		return fn()
	}

	var lastErr error
	var errorClass ErrorClass

	for attempt := 1; attempt <= config.MaxAttempts; attempt++ {
		err := fn()
		if err == nil {
			if attempt > 1 {
				log.Info().
					Str("error_class", string(errorClass)).
					Int("attempt", attempt).
					Msg("Request succeeded after retry")
			}
			return nil
		}

		lastErr = err
		errorClass = classOf(err)

		// Client errors, decode errors and cancellation return immediately
		if !shouldRetry(errorClass) || ctx.Err() != nil {
			return lastErr
		}

		// If this was the last attempt, don't wait
		if attempt >= config.MaxAttempts {
			break
		}

		retriesTotal.WithLabelValues(string(errorClass)).Inc()

		// Add jitter (±20% randomness)
		backoff := RetryConfigForErrorClass(config, errorClass).backoffFor(attempt)
		wait := time.Duration(float64(backoff) * (0.8 + rand.Float64()*0.4))

		var statusErr *StatusError
		if errors.As(err, &statusErr) && statusErr.RetryAfter > wait {
			wait = statusErr.RetryAfter
		}
		retryBackoffSeconds.WithLabelValues(string(errorClass)).Observe(wait.Seconds())

		log.Debug().
			Str("error_class", string(errorClass)).
			Int("attempt", attempt).
			Dur("backoff", wait).
			Msg("Retrying request after backoff")

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			log.Warn().
				Str("error_class", string(errorClass)).
				Int("attempt", attempt).
				Msg("Context cancelled during retry backoff")
			return fmt.Errorf("%w: %w", ErrContextCancelled, ctx.Err())
		case <-timer.C:
		}
	}

	retryExhaustedTotal.WithLabelValues(string(errorClass)).Inc()
	log.Warn().
		Str("error_class", string(errorClass)).
		Int("max_attempts", config.MaxAttempts).
		Msg("Retry attempts exhausted")

	return fmt.Errorf("%w after %d attempts: %w", ErrRetryExhausted, config.MaxAttempts, lastErr)
}
