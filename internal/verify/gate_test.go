package verify

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestVerifyRejectsMalformedCodes(t *testing.T) {
	g := NewGate("123456", 0)

	for _, code := range []string{"", "12345", "1234567", "12345a", "12 456", "abcdef"} {
		if err := g.Verify(context.Background(), code); !errors.Is(err, ErrInvalidFormat) {
			t.Fatalf("code %q: expected ErrInvalidFormat, got %v", code, err)
		}
	}
}

func TestVerifyMismatch(t *testing.T) {
	g := NewGate("123456", 0)

	if err := g.Verify(context.Background(), "654321"); !errors.Is(err, ErrCodeMismatch) {
		t.Fatalf("expected ErrCodeMismatch, got %v", err)
	}
}

func TestVerifySuccess(t *testing.T) {
	g := NewGate("123456", 0)

	if err := g.Verify(context.Background(), "123456"); err != nil {
		t.Fatalf("expected success, got %v", err)
	}
}

func TestVerifyHonoursContextDuringDelay(t *testing.T) {
	g := NewGate("123456", time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := g.Verify(ctx, "123456"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestVerifyFormatCheckedBeforeDelay(t *testing.T) {
	g := NewGate("123456", time.Minute)

	start := time.Now()
	err := g.Verify(context.Background(), "12345")
	if !errors.Is(err, ErrInvalidFormat) {
		t.Fatalf("expected ErrInvalidFormat, got %v", err)
	}
	if time.Since(start) > time.Second {
		t.Fatalf("expected malformed code to fail before the delay")
	}
}
