// Package ratelimit tracks the Helium API request budget and gates requests.
// It follows the X-RateLimit-Remaining, X-RateLimit-Limit and
// X-RateLimit-Reset headers and honours Retry-After on 429 responses, so a
// client that has been told to back off does not keep hammering the API.
package ratelimit

import (
	"time"
)

// Redis keys for rate limit state storage.
const (
	RedisKeyRemaining      = "helium:rate_limit:remaining"
	RedisKeyLimit          = "helium:rate_limit:limit"
	RedisKeyResetTimestamp = "helium:rate_limit:reset_timestamp"
	RedisKeyLastUpdate     = "helium:rate_limit:last_update"
)

// Thresholds for rate limit decisions.
const (
	// RemainingThresholdWarning applies throttling when fewer requests than
	// this remain in the current window.
	RemainingThresholdWarning = 5

	// DefaultRemaining is assumed until the API reports a real budget.
	DefaultRemaining = 100

	// ThrottleDelay is the pause applied to each request in the warning band.
	ThrottleDelay = 1 * time.Second

	// DefaultCooldown is used for a 429 that carries no usable Retry-After.
	DefaultCooldown = 10 * time.Second
)

// State represents the current Helium API request budget.
// It is shared across client instances when backed by Redis.
type State struct {
	// Remaining is the number of requests left in the current window.
	// Extracted from the X-RateLimit-Remaining header; 0 after a 429.
	Remaining int `json:"remaining"`

	// Limit is the window size reported by X-RateLimit-Limit (0 if unknown).
	Limit int `json:"limit"`

	// ResetAt is when the window resets or the 429 cooldown ends.
	ResetAt time.Time `json:"reset_at"`

	// LastUpdate is when this state was last updated.
	LastUpdate time.Time `json:"last_update"`

	// IsHealthy is true when Remaining >= RemainingThresholdWarning.
	IsHealthy bool `json:"is_healthy"`
}

// DefaultState returns the optimistic state used before any headers are seen.
func DefaultState() *State {
	now := time.Now()
	return &State{
		Remaining:  DefaultRemaining,
		ResetAt:    now,
		LastUpdate: now,
		IsHealthy:  true,
	}
}

// IsStale returns true if the state data is older than the given duration.
func (s *State) IsStale(maxAge time.Duration) bool {
	return time.Since(s.LastUpdate) > maxAge
}

// NeedsBlock returns true if requests must wait for the window to reset.
func (s *State) NeedsBlock() bool {
	return s.Remaining <= 0 && s.TimeUntilReset() > 0
}

// NeedsThrottling returns true if requests should be slowed down.
func (s *State) NeedsThrottling() bool {
	return s.Remaining < RemainingThresholdWarning && !s.NeedsBlock() && s.TimeUntilReset() > 0
}

// TimeUntilReset returns the duration until the window resets.
// Returns 0 if the reset time has already passed.
func (s *State) TimeUntilReset() time.Duration {
	duration := time.Until(s.ResetAt)
	if duration < 0 {
		return 0
	}
	return duration
}

// UpdateHealth updates the IsHealthy field based on current Remaining.
func (s *State) UpdateHealth() {
	s.IsHealthy = s.Remaining >= RemainingThresholdWarning
}
