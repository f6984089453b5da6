package evidence

import (
	"errors"
	"testing"
)

func TestCollectorAssignsAnglesInOrder(t *testing.T) {
	c := NewCollector(Policy{})

	for i, handle := range []string{"a.jpg", "b.jpg", "c.jpg"} {
		p, err := c.Add(handle, 1024)
		if err != nil {
			t.Fatalf("add photo %d: %v", i, err)
		}
		if p.Angle != Angles[i] {
			t.Fatalf("photo %d: expected angle %q, got %q", i, Angles[i], p.Angle)
		}
	}

	photos := c.Photos()
	if len(photos) != MaxPhotos {
		t.Fatalf("expected %d photos, got %d", MaxPhotos, len(photos))
	}
	if photos[0].Handle != "a.jpg" || photos[2].Handle != "c.jpg" {
		t.Fatalf("expected capture order preserved, got %+v", photos)
	}
}

func TestCollectorQuota(t *testing.T) {
	c := NewCollector(Policy{})

	for i := 0; i < MaxPhotos; i++ {
		if _, err := c.Add("p.jpg", 1); err != nil {
			t.Fatalf("add photo %d: %v", i, err)
		}
	}

	if _, err := c.Add("extra.jpg", 1); !errors.Is(err, ErrQuotaExceeded) {
		t.Fatalf("expected ErrQuotaExceeded, got %v", err)
	}
	if c.Count() != MaxPhotos {
		t.Fatalf("expected count unchanged at %d, got %d", MaxPhotos, c.Count())
	}
}

func TestCollectorSizeLimit(t *testing.T) {
	c := NewCollector(Policy{MaxBytes: 100})

	_, err := c.Add("big.jpg", 101)
	var tooLarge *TooLargeError
	if !errors.As(err, &tooLarge) {
		t.Fatalf("expected TooLargeError, got %v", err)
	}
	if tooLarge.Size != 101 || tooLarge.MaxBytes != 100 {
		t.Fatalf("unexpected error detail: %+v", tooLarge)
	}

	// A rejected capture consumes neither quota nor angle.
	if c.Count() != 0 {
		t.Fatalf("expected rejected photo not to count, got %d", c.Count())
	}
	p, err := c.Add("ok.jpg", 100)
	if err != nil {
		t.Fatalf("add at limit: %v", err)
	}
	if p.Angle != Angles[0] {
		t.Fatalf("expected first angle, got %q", p.Angle)
	}
}

func TestCollectorUnlimitedByDefault(t *testing.T) {
	c := NewCollector(Policy{})
	if _, err := c.Add("huge.jpg", 1<<40); err != nil {
		t.Fatalf("expected no size limit, got %v", err)
	}
}

func TestCollectorReset(t *testing.T) {
	c := NewCollector(Policy{})
	if _, err := c.Add("a.jpg", 1); err != nil {
		t.Fatalf("add: %v", err)
	}

	c.Reset()
	if c.Count() != 0 {
		t.Fatalf("expected empty collector after reset, got %d", c.Count())
	}

	p, err := c.Add("b.jpg", 1)
	if err != nil {
		t.Fatalf("add after reset: %v", err)
	}
	if p.Angle != Angles[0] {
		t.Fatalf("expected angles to restart, got %q", p.Angle)
	}
}
