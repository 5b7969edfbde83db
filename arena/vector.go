package arena

import (
	"unsafe"

	"github.com/go-shmem/shmarena/ptr"
)

// Vector is a growable, contiguous sequence whose backing storage lives
// in an Arena and is addressed through a segment-anchored offset pointer
// rather than a raw Go pointer or slice header. That one substitution —
// data ptr.SegmentPtr[T, Tag, uint32] instead of data *T — is what makes
// a Vector built in one process's mapping of a segment walkable from any
// other process that maps the same bytes and binds the same Tag.
//
// Vector never frees or shrinks its backing storage; growth reallocates
// from the arena and copies, exactly like append growing a Go slice,
// except the old storage is never reclaimed (the arena has no free list).
type Vector[T any, Tag any] struct {
	data ptr.SegmentPtr[T, Tag, uint32]
	len  uint32
	cap  uint32
}

// NewVector returns an empty Vector with no backing storage. The first
// Push allocates an initial block from the Arena passed to it.
func NewVector[T any, Tag any]() Vector[T, Tag] {
	return Vector[T, Tag]{}
}

// Len returns the number of elements currently stored.
func (v *Vector[T, Tag]) Len() int { return int(v.len) }

// Cap returns the number of elements the current backing storage holds
// before the next Push must grow.
func (v *Vector[T, Tag]) Cap() int { return int(v.cap) }

// At returns a pointer to the i-th element. It panics if i is out of
// range, matching Go slice-indexing behavior.
func (v *Vector[T, Tag]) At(i int) *T {
	if i < 0 || uint32(i) >= v.len {
		panic("arena: Vector index out of range")
	}
	return v.data.Index(i)
}

// Push appends value to v, growing the backing allocation in a from the
// given Arena if there is no remaining capacity. It reports whether the
// push succeeded; it fails only if a's arena is out of capacity.
func Push[T any, Tag any](v *Vector[T, Tag], a *Arena[Tag], value T) bool {
	if v.len == v.cap {
		if !grow(v, a) {
			return false
		}
	}
	*v.data.Index(int(v.len)) = value
	v.len++
	return true
}

func grow[T any, Tag any](v *Vector[T, Tag], a *Arena[Tag]) bool {
	newCap := v.cap * 2
	if newCap == 0 {
		newCap = 4
	}

	newData := Allocate[T, Tag](a, int(newCap))
	if newData == nil {
		return false
	}

	if v.len > 0 {
		old := v.data.Get()
		var zero T
		size := uintptr(v.len) * unsafe.Sizeof(zero)
		copy(
			unsafe.Slice((*byte)(unsafe.Pointer(newData)), size),
			unsafe.Slice((*byte)(unsafe.Pointer(old)), size),
		)
	}

	v.data = ptr.From[T, ptr.TagAnchor[Tag], uint32](newData)
	v.cap = newCap
	return true
}

// Clear resets the length to 0 without releasing the backing allocation;
// the next Push calls reuse the existing capacity.
func (v *Vector[T, Tag]) Clear() { v.len = 0 }
