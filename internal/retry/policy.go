// Package retry provides the exponential-backoff retry policy shared by
// processors and the error classification used to decide retryability.
package retry

import (
	"context"
	"errors"
	"math/rand"
	"net"
	"strings"
	"time"

	"github.com/ternarybob/arbor"
)

// Policy defines retry behavior with exponential backoff
type Policy struct {
	MaxAttempts       int
	InitialBackoff    time.Duration
	MaxBackoff        time.Duration
	BackoffMultiplier float64
}

// NewPolicy creates a default retry policy
func NewPolicy() *Policy {
	return &Policy{
		MaxAttempts:       3,
		InitialBackoff:    time.Second,
		MaxBackoff:        30 * time.Second,
		BackoffMultiplier: 2.0,
	}
}

// NewPolicyWithAttempts creates a default policy with a custom attempt cap
func NewPolicyWithAttempts(maxAttempts int) *Policy {
	p := NewPolicy()
	if maxAttempts > 0 {
		p.MaxAttempts = maxAttempts
	}
	return p
}

var retryableFragments = []string{
	"timeout",
	"timed out",
	"connection refused",
	"connection reset",
	"network",
	"temporarily unavailable",
	"rate limit",
	"too many requests",
	"server error",
	"service unavailable",
	"bad gateway",
	"gateway timeout",
	"overloaded",
	"eof",
}

var nonRetryableFragments = []string{
	"validation",
	"invalid",
	"unauthorized",
	"forbidden",
	"not found",
	"malformed",
	"unsupported",
}

// ClassifyMessage reports whether an error message describes a transient
// failure. Non-retryable fragments win over retryable ones; an unknown
// message is treated as retryable so transient faults are not dropped.
func ClassifyMessage(msg string) bool {
	lower := strings.ToLower(msg)
	for _, fragment := range nonRetryableFragments {
		if strings.Contains(lower, fragment) {
			return false
		}
	}
	for _, fragment := range retryableFragments {
		if strings.Contains(lower, fragment) {
			return true
		}
	}
	return true
}

// IsRetryable reports whether an error should be retried
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	return ClassifyMessage(err.Error())
}

// Backoff calculates the backoff duration for the given zero-based attempt,
// with exponential growth capped at MaxBackoff and ±25% jitter.
func (p *Policy) Backoff(attempt int) time.Duration {
	backoff := float64(p.InitialBackoff)
	for i := 0; i < attempt; i++ {
		backoff *= p.BackoffMultiplier
	}
	if backoff > float64(p.MaxBackoff) {
		backoff = float64(p.MaxBackoff)
	}

	jitter := backoff * 0.25 * (rand.Float64()*2 - 1)
	backoff += jitter

	if backoff < 0 {
		backoff = float64(p.InitialBackoff)
	}

	return time.Duration(backoff)
}

// Do runs fn with the policy's retry loop. Non-retryable errors fail
// immediately; the last error is returned when attempts are exhausted.
func (p *Policy) Do(ctx context.Context, logger arbor.ILogger, operation string, fn func() error) error {
	var lastErr error

	for attempt := 0; attempt < p.MaxAttempts; attempt++ {
		lastErr = fn()
		if lastErr == nil {
			return nil
		}

		if !IsRetryable(lastErr) {
			logger.Debug().
				Str("operation", operation).
				Int("attempt", attempt+1).
				Err(lastErr).
				Msg("Non-retryable error, failing immediately")
			return lastErr
		}

		if attempt < p.MaxAttempts-1 {
			backoff := p.Backoff(attempt)
			logger.Debug().
				Str("operation", operation).
				Int("attempt", attempt+1).
				Err(lastErr).
				Dur("backoff", backoff).
				Msg("Retrying after backoff")

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
		}
	}

	logger.Warn().
		Str("operation", operation).
		Int("max_attempts", p.MaxAttempts).
		Err(lastErr).
		Msg("Retry attempts exhausted")
	return lastErr
}
