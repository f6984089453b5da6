// Package evidence accumulates the per-ticket photo proof required before a
// ticket may be completed.
package evidence

import (
	"errors"
	"fmt"
)

// MaxPhotos is the completion quota: one photo per angle.
const MaxPhotos = 3

// Angles is the fixed, ordered tag list. The Nth captured photo always gets
// the Nth angle; order is significant and never reassigned.
var Angles = [MaxPhotos]string{
	"Before Installation",
	"Mid-Installation",
	"After Installation",
}

var ErrQuotaExceeded = errors.New("evidence: photo quota reached")

// TooLargeError reports a capture over the configured size limit.
type TooLargeError struct {
	Size     int64
	MaxBytes int64
}

func (e *TooLargeError) Error() string {
	return fmt.Sprintf("evidence: photo is %d bytes, limit is %d", e.Size, e.MaxBytes)
}

// Photo is one captured image, held in memory for the session only. It is
// never uploaded; it exists to unlock the completion gate.
type Photo struct {
	Handle string
	Angle  string
	Size   int64
}

// Policy configures photo validation. MaxBytes <= 0 means unlimited.
type Policy struct {
	MaxBytes int64
}

// Collector holds a session's photos. Not safe for concurrent use; the
// owning session serialises all access.
type Collector struct {
	policy Policy
	photos []Photo
}

func NewCollector(policy Policy) *Collector {
	return &Collector{policy: policy}
}

// Add validates and stores one capture. On rejection nothing is mutated.
func (c *Collector) Add(handle string, size int64) (Photo, error) {
	if len(c.photos) >= MaxPhotos {
		return Photo{}, ErrQuotaExceeded
	}
	if c.policy.MaxBytes > 0 && size > c.policy.MaxBytes {
		return Photo{}, &TooLargeError{Size: size, MaxBytes: c.policy.MaxBytes}
	}

	p := Photo{
		Handle: handle,
		Angle:  Angles[len(c.photos)],
		Size:   size,
	}
	c.photos = append(c.photos, p)
	return p, nil
}

func (c *Collector) Count() int {
	return len(c.photos)
}

func (c *Collector) Photos() []Photo {
	out := make([]Photo, len(c.photos))
	copy(out, c.photos)
	return out
}

// Reset drops everything; called when the session re-fetches its ticket.
func (c *Collector) Reset() {
	c.photos = nil
}
