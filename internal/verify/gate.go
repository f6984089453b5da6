// Package verify gates the terminal complete transition behind a fixed
// 6-digit code check.
package verify

import (
	"context"
	"errors"
	"time"
)

// CodeLength is the exact number of digits a code must have.
const CodeLength = 6

var (
	ErrInvalidFormat = errors.New("verify: code must be exactly 6 digits")
	ErrCodeMismatch  = errors.New("verify: code does not match")
)

// Gate checks submitted codes against the expected value. Stateless between
// attempts: no lockout or backoff is modelled.
type Gate struct {
	expected string
	delay    time.Duration
}

// NewGate builds a gate for the expected code. delay simulates the upstream
// code-check round trip; zero disables it.
func NewGate(expected string, delay time.Duration) *Gate {
	return &Gate{expected: expected, delay: delay}
}

// Verify accepts only an exactly-6-digit code equal to the expected value.
// The simulated delay honours ctx like any other suspension point.
func (g *Gate) Verify(ctx context.Context, code string) error {
	if !wellFormed(code) {
		return ErrInvalidFormat
	}

	if g.delay > 0 {
		timer := time.NewTimer(g.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}

	if code != g.expected {
		return ErrCodeMismatch
	}
	return nil
}

func wellFormed(code string) bool {
	if len(code) != CodeLength {
		return false
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
