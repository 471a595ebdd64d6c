package ratelimit

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
)

// Prometheus metrics for rate limit tracking.
var (
	requestsRemaining = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "helium_rate_limit_remaining",
		Help: "Number of requests remaining in the current Helium API rate limit window",
	})

	rateLimitBlocksTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "helium_rate_limit_blocks_total",
		Help: "Total number of requests refused locally until the rate limit window resets",
	})

	rateLimitThrottlesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "helium_rate_limit_throttles_total",
		Help: "Total number of requests delayed because few requests remain",
	})

	tooManyRequestsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "helium_rate_limit_429_total",
		Help: "Total number of 429 Too Many Requests responses",
	})
)

// epochThreshold separates X-RateLimit-Reset values given as a unix
// timestamp from those given as seconds until reset.
const epochThreshold = 1_000_000_000

// Tracker monitors the Helium API rate limit and gates requests.
type Tracker struct {
	store  Store
	logger zerolog.Logger
}

// NewTracker creates a new rate limit tracker.
func NewTracker(store Store, logger zerolog.Logger) *Tracker {
	if store == nil {
		store = NewMemoryStore()
	}
	return &Tracker{
		store:  store,
		logger: logger,
	}
}

// GetState retrieves the current rate limit state.
// Returns a default healthy state if nothing has been recorded.
func (t *Tracker) GetState(ctx context.Context) (*State, error) {
	state, err := t.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	if state == nil {
		t.logger.Debug().Msg("No rate limit state recorded, returning default healthy state")
		return DefaultState(), nil
	}
	return state, nil
}

// UpdateFromResponse records the budget reported by a response.
// A 429 starts a cooldown lasting Retry-After (or DefaultCooldown).
// Responses without rate limit headers leave the state untouched.
func (t *Tracker) UpdateFromResponse(ctx context.Context, status int, headers http.Header) error {
	now := time.Now()

	if status == http.StatusTooManyRequests {
		wait, ok := ParseRetryAfter(headers.Get("Retry-After"), now)
		if !ok {
			wait = DefaultCooldown
		}
		state := &State{
			Remaining:  0,
			Limit:      headerInt(headers, "X-RateLimit-Limit"),
			ResetAt:    now.Add(wait),
			LastUpdate: now,
		}
		state.UpdateHealth()

		if err := t.store.Save(ctx, state); err != nil {
			return err
		}

		tooManyRequestsTotal.Inc()
		requestsRemaining.Set(0)
		t.logger.Warn().
			Dur("retry_after", wait).
			Time("reset_at", state.ResetAt).
			Msg("Helium API returned 429 - requests will be blocked until reset")
		return nil
	}

	// Parse X-RateLimit-Remaining header
	remainStr := headers.Get("X-RateLimit-Remaining")
	if remainStr == "" {
		// Header not present - the public API does not always send it
		return nil
	}

	remain, err := strconv.Atoi(strings.TrimSpace(remainStr))
	if err != nil {
		return fmt.Errorf("parse X-RateLimit-Remaining header: %w", err)
	}

	resetAt := now
	if resetStr := headers.Get("X-RateLimit-Reset"); resetStr != "" {
		reset, err := strconv.ParseInt(strings.TrimSpace(resetStr), 10, 64)
		if err != nil {
			return fmt.Errorf("parse X-RateLimit-Reset header: %w", err)
		}
		if reset >= epochThreshold {
			resetAt = time.Unix(reset, 0)
		} else {
			resetAt = now.Add(time.Duration(reset) * time.Second)
		}
	}

	state := &State{
		Remaining:  remain,
		Limit:      headerInt(headers, "X-RateLimit-Limit"),
		ResetAt:    resetAt,
		LastUpdate: now,
	}
	state.UpdateHealth()

	if err := t.store.Save(ctx, state); err != nil {
		return err
	}

	requestsRemaining.Set(float64(remain))

	switch {
	case state.NeedsBlock():
		t.logger.Warn().
			Int("remaining", remain).
			Time("reset_at", state.ResetAt).
			Msg("Helium rate limit exhausted - requests will be blocked")
	case state.NeedsThrottling():
		t.logger.Warn().
			Int("remaining", remain).
			Time("reset_at", state.ResetAt).
			Msg("Helium rate limit low - requests will be throttled")
	default:
		t.logger.Debug().
			Int("remaining", remain).
			Time("reset_at", state.ResetAt).
			Bool("is_healthy", state.IsHealthy).
			Msg("Helium rate limit state updated")
	}

	return nil
}

// ShouldAllowRequest checks whether a request may be sent now.
// It returns false and the remaining wait while the budget is exhausted, and
// pauses for ThrottleDelay (or until ctx ends) when few requests remain.
func (t *Tracker) ShouldAllowRequest(ctx context.Context) (bool, time.Duration, error) {
	state, err := t.GetState(ctx)
	if err != nil {
		return false, 0, fmt.Errorf("get rate limit state: %w", err)
	}

	if state.NeedsBlock() {
		wait := state.TimeUntilReset()
		t.logger.Warn().
			Int("remaining", state.Remaining).
			Dur("wait_duration", wait).
			Msg("Helium rate limit exhausted - blocking request")

		rateLimitBlocksTotal.Inc()
		return false, wait, nil
	}

	if state.NeedsThrottling() {
		t.logger.Debug().
			Int("remaining", state.Remaining).
			Msg("Helium rate limit low - throttling request")

		rateLimitThrottlesTotal.Inc()
		timer := time.NewTimer(min(ThrottleDelay, state.TimeUntilReset()))
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return false, 0, ctx.Err()
		case <-timer.C:
		}
	}

	return true, 0, nil
}

// ParseRetryAfter parses a Retry-After header given either as delay seconds
// or as an HTTP date.
func ParseRetryAfter(value string, now time.Time) (time.Duration, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, false
	}
	if seconds, err := strconv.Atoi(value); err == nil {
		if seconds < 0 {
			return 0, false
		}
		return time.Duration(seconds) * time.Second, true
	}
	if at, err := http.ParseTime(value); err == nil {
		if wait := at.Sub(now); wait > 0 {
			return wait, true
		}
		return 0, true
	}
	return 0, false
}

func headerInt(headers http.Header, name string) int {
	n, err := strconv.Atoi(strings.TrimSpace(headers.Get(name)))
	if err != nil {
		return 0
	}
	return n
}
