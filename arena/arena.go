// Package arena implements a lock-free bump allocator over a contiguous,
// caller-supplied byte region — typically the bytes of a segment.Segment —
// whose allocations are addressable by segment-anchored offset pointers
// that remain valid from any process mapping the same bytes.
package arena

import (
	"sync/atomic"
	"unsafe"

	"github.com/pkg/errors"

	"github.com/go-shmem/shmarena/ptr"
)

// Arena is a header describing a contiguous byte region: an immutable
// base address and capacity, and a monotone atomic cursor. It owns no
// memory itself; the bytes belong to whoever supplied arenaStart (usually
// a segment.Segment). Arena is neither copyable nor movable — its
// identity is pinned by the segment-tag binding its constructor performs.
type Arena[Tag any] struct {
	base     uintptr
	capacity uintptr
	cursor   atomic.Uintptr

	_ noCopy
}

// noCopy causes `go vet -copylocks` to flag accidental copies of Arena.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// New constructs an Arena over size bytes starting at arenaStart, which
// must lie at or within the bytes based at segmentBase. The constructor
// also binds Tag's process-wide base to segmentBase, so handles the
// arena returns decode correctly in the calling process immediately.
func New[Tag any](segmentBase, arenaStart unsafe.Pointer, size int) (*Arena[Tag], error) {
	if size < 0 {
		return nil, errors.Errorf("arena: negative size %d", size)
	}
	base := uintptr(segmentBase)
	start := uintptr(arenaStart)
	if start < base {
		return nil, errors.Errorf("arena: arenaStart 0x%x precedes segmentBase 0x%x", start, base)
	}

	ptr.Bind[Tag](base)

	return &Arena[Tag]{
		base:     start,
		capacity: uintptr(size),
	}, nil
}

// Alloc atomically reserves n bytes aligned to align and returns a raw
// pointer into the arena, or nil if n == 0 or there is insufficient
// remaining capacity after alignment padding. Failure is stable: once
// Alloc returns nil for a given (n, align) it will keep returning nil for
// that request until Reset.
func (a *Arena[Tag]) Alloc(n, align uintptr) unsafe.Pointer {
	if n == 0 {
		return nil
	}
	if align == 0 {
		align = 1
	}

	for {
		cur := a.cursor.Load()
		addr := a.base + cur

		var alignedAddr uintptr
		if align&(align-1) == 0 {
			alignedAddr = (addr + align - 1) &^ (align - 1)
		} else {
			rem := addr % align
			if rem == 0 {
				alignedAddr = addr
			} else {
				alignedAddr = addr + (align - rem)
			}
		}
		if alignedAddr < addr {
			return nil // overflow computing the aligned address
		}

		alignedOffset := alignedAddr - a.base
		if alignedOffset > a.capacity || n > a.capacity-alignedOffset {
			return nil
		}

		next := alignedOffset + n
		if !a.cursor.CompareAndSwap(cur, next) {
			continue
		}
		return unsafe.Pointer(alignedAddr) //nolint:govet // offset arithmetic into caller-owned bytes
	}
}

// AllocHandle is Alloc, returning a segment-anchored handle to void (byte)
// instead of a raw pointer. It decodes correctly from any process that
// has bound Tag to the segment backing this arena.
func (a *Arena[Tag]) AllocHandle(n, align uintptr) ptr.SegmentPtr[byte, Tag, uint32] {
	p := a.Alloc(n, align)
	if p == nil {
		return ptr.Null[byte, ptr.TagAnchor[Tag], uint32]()
	}
	return ptr.From[byte, ptr.TagAnchor[Tag], uint32]((*byte)(p))
}

// Allocate reserves space for count values of T and returns a raw
// pointer to the (uninitialized) first element. It is a free function,
// not a method, because Go methods cannot introduce additional type
// parameters beyond the receiver's.
func Allocate[T any, Tag any](a *Arena[Tag], count int) *T {
	if count <= 0 {
		return nil
	}
	var zero T
	elemSize := unsafe.Sizeof(zero)
	if elemSize != 0 && uintptr(count) > ^uintptr(0)/elemSize {
		return nil // count * elemSize would overflow uintptr
	}
	size := uintptr(count) * elemSize
	p := a.Alloc(size, unsafe.Alignof(zero))
	if p == nil {
		return nil
	}
	return (*T)(p)
}

// MakeHandle allocates space for one T, runs init over it if init is
// non-nil, and returns a segment-anchored handle to it. It returns the
// null handle if allocation fails.
func MakeHandle[T any, Tag any](a *Arena[Tag], init func(*T)) ptr.SegmentPtr[T, Tag, uint32] {
	v := Allocate[T, Tag](a, 1)
	if v == nil {
		return ptr.Null[T, ptr.TagAnchor[Tag], uint32]()
	}
	if init != nil {
		init(v)
	}
	return ptr.From[T, ptr.TagAnchor[Tag], uint32](v)
}

// Reset rewinds the cursor to 0, logically invalidating every prior
// allocation. It is the arena's only reclamation mechanism; there is no
// free list and no coalescing.
func (a *Arena[Tag]) Reset() {
	a.cursor.Store(0)
}

// SecureReset zeroes the used prefix before resetting, so that no
// formerly-live bytes are left readable to whoever allocates next.
func (a *Arena[Tag]) SecureReset() {
	used := a.cursor.Load()
	if used > 0 {
		b := unsafe.Slice((*byte)(unsafe.Pointer(a.base)), used) //nolint:govet // zeroing caller-owned bytes
		clear(b)
	}
	a.Reset()
}

// Used returns the current cursor position in bytes.
func (a *Arena[Tag]) Used() uintptr { return a.cursor.Load() }

// Capacity returns the arena's immutable capacity in bytes.
func (a *Arena[Tag]) Capacity() uintptr { return a.capacity }

// Owns reports whether p lies within the arena's byte range.
func (a *Arena[Tag]) Owns(p unsafe.Pointer) bool {
	addr := uintptr(p)
	return addr >= a.base && addr < a.base+a.capacity
}

// Utilization returns the fraction of capacity currently used, in [0,1].
func (a *Arena[Tag]) Utilization() float64 {
	if a.capacity == 0 {
		return 0
	}
	return float64(a.Used()) / float64(a.capacity)
}
