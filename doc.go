// Package shmarena is a relocatable pointer and arena allocator library for
// inter-process shared memory.
//
// # Overview
//
// Two or more processes map the same underlying bytes at possibly different
// virtual addresses. Data structures built on those bytes stay traversable
// from every mapping because every intra-segment reference is stored as an
// integer offset, resolved at dereference time against a per-pointer or
// per-segment base, rather than as a raw pointer that would need rewriting
// on attach.
//
// The library is split into three packages, leaf-first:
//
//	ptr/      offset pointers and their anchoring strategies
//	arena/    lock-free bump allocator over caller-supplied bytes
//	segment/  OS-backed named shared memory region
//
// # Basic Usage
//
//	type MyTag struct{}
//
//	seg, err := segment.Open("/mysegment", 64<<20, segment.OpenOrCreate)
//	if err != nil {
//		// handle error
//	}
//	defer seg.Close()
//
//	a, err := arena.New[MyTag](seg.Base(), seg.Base(), seg.Size())
//	if err != nil {
//		// handle error
//	}
//
//	node := arena.Allocate[myNode, MyTag](a, 1)
//
// A second process opens the same segment, rebinds the tag to its own
// mapping's base with segment.Bind, and the offsets stored in the segment
// resolve correctly against that process's mapping too.
//
// # Thread Safety
//
// arena.Arena allocation is lock-free and safe for concurrent callers.
// Reset and SecureReset are not safe to call concurrently with allocation.
// ptr anchoring cells are per-tag and are written once per process in
// steady state; rebinding a tag while decodes are in flight in the same
// process lets each of those decodes resolve against either the old or
// the new base (see ptr.Bind).
package shmarena
