// Package segment maps a named region of shared memory into the calling
// process, backing an arena.Arena with bytes that outlive the process and
// are reachable by name from any other process on the same host.
package segment

import (
	"time"
	"unsafe"

	"github.com/pkg/errors"

	"github.com/go-shmem/shmarena/ptr"
)

const (
	initialBackoff = 100 * time.Microsecond
	maxBackoff     = 10 * time.Millisecond
	maxOpenRetries = 12
)

// Segment is a mapping of a named, OS-backed shared memory region into
// the calling process. The zero value is not usable; construct with Open.
type Segment struct {
	name    string
	data    []byte
	handle  platformHandle
	created bool
}

// Open maps the named segment into the calling process, creating it if
// mode permits and it does not already exist. When this call creates the
// backing storage, it is sized to size. When it opens an existing
// segment on POSIX, a size of 0 or one no larger than the existing size
// maps the whole existing segment, and a larger size fails with
// ErrSizeMismatch. On Windows an existing segment is mapped at exactly
// size bytes, and OpenOnly with size 0 is rejected.
//
// Under OpenOnly, Open retries with bounded exponential backoff (starting
// at 100µs, doubling up to a 10ms cap, for up to 12 attempts) to ride out
// the window between a concurrent creator registering the name and
// sizing the region.
func Open(name string, size int, mode Mode) (*Segment, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	if size < 0 {
		return nil, errors.Errorf("segment: negative size %d", size)
	}

	if mode != OpenOnly {
		data, handle, created, err := openPlatform(name, size, mode)
		if err == nil {
			return &Segment{name: name, data: data, handle: handle, created: created}, nil
		}
		if mode == CreateOnly || !errors.Is(err, ErrNotFound) {
			return nil, err
		}
		// OpenOrCreate raced a concurrent remover between create and
		// open; fall through to the retry loop as if OpenOnly.
	}

	backoff := initialBackoff
	var lastErr error
	for attempt := 0; attempt < maxOpenRetries; attempt++ {
		data, handle, created, err := openPlatform(name, size, OpenOnly)
		if err == nil {
			return &Segment{name: name, data: data, handle: handle, created: created}, nil
		}
		lastErr = err
		if !errors.Is(err, ErrNotFound) {
			return nil, err
		}
		time.Sleep(backoff)
		backoff *= 2
		if backoff > maxBackoff {
			backoff = maxBackoff
		}
	}
	return nil, lastErr
}

// Base returns the address of the first byte of the mapping.
func (s *Segment) Base() unsafe.Pointer {
	if len(s.data) == 0 {
		return nil
	}
	return unsafe.Pointer(&s.data[0])
}

// Size returns the mapping's size in bytes.
func (s *Segment) Size() int { return len(s.data) }

// Bytes exposes the mapping as a byte slice, for callers that want to
// hand the whole region to arena.New directly.
func (s *Segment) Bytes() []byte { return s.data }

// IsValid reports whether the segment holds a live mapping.
func (s *Segment) IsValid() bool { return s.data != nil }

// Bind binds Tag's process-wide base to s's mapping address, so that
// SegmentPtr[_, Tag, _] values decode correctly in this process without
// the caller reaching into ptr directly.
func Bind[Tag any](s *Segment) {
	ptr.Bind[Tag](uintptr(s.Base()))
}

// Close unmaps the segment from the calling process. It does not remove
// the underlying shared memory object; other processes that have it
// mapped are unaffected. Closing an already-closed Segment is an error.
func (s *Segment) Close() error {
	if !s.IsValid() {
		return ErrClosed
	}
	err := closePlatform(s.handle, s.data)
	s.data = nil
	return err
}

// Remove unlinks the named shared memory object so that no future Open
// can find it. Processes that already have it mapped keep their mapping
// until they Close it. On Windows Remove is a no-op: a named mapping
// disappears once its last handle is closed.
func Remove(name string) error {
	if err := validateName(name); err != nil {
		return err
	}
	return removePlatform(name)
}
