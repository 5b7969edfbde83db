// Package ptr implements relocatable offset pointers: fixed-layout,
// pointer-shaped values that encode null-or-(offset+1) against one of
// three anchoring strategies, safe under memcpy-style relocation of their
// containing bytes when anchored to a segment tag.
package ptr

import "unsafe"

// Ptr is a pointer-shaped value holding a single integer field: either 0
// (null) or offset+1, where offset is measured from the address A.Base
// returns. T must be an object type; use Ptr[byte, A, O] in place of a
// void pointer.
//
// Layout is exactly one field of width O, no padding, no vtable — the
// same bytes written by one process are read verbatim by another that
// has bound the same Tag (for TagAnchor instantiations).
type Ptr[T any, A Anchor, O offsetInt] struct {
	offPlus1 O
}

// Null returns the zero-value null pointer. The zero value of Ptr is
// already null; Null exists for readability at call sites.
func Null[T any, A Anchor, O offsetInt]() Ptr[T, A, O] {
	return Ptr[T, A, O]{}
}

// From constructs a Ptr encoding p, or null if p is nil.
func From[T any, A Anchor, O offsetInt](p *T) Ptr[T, A, O] {
	var out Ptr[T, A, O]
	out.Set(p)
	return out
}

// Set encodes p into the receiver, or clears it to null if p is nil. The
// base used is A.Base(&receiver): for a self-relative anchor this means
// calling Set twice on two different Ptr values with the same referent
// produces two different stored integers, by design.
func (p *Ptr[T, A, O]) Set(v *T) {
	if v == nil {
		p.offPlus1 = 0
		return
	}
	var a A
	base := a.Base(unsafe.Pointer(p))
	target := uintptr(unsafe.Pointer(v))
	diff := int64(target) - int64(base)

	signed := isSigned[O]()
	assertNoNullCollision(diff, signed)
	p.offPlus1 = narrowChecked[O](diff + 1)
}

// SetNull clears the receiver to null.
func (p *Ptr[T, A, O]) SetNull() {
	p.offPlus1 = 0
}

// Get decodes the receiver to a raw pointer, or nil if null. The null
// check is a single comparison and branches first, before any base lookup.
func (p *Ptr[T, A, O]) Get() *T {
	s := p.offPlus1
	if s == 0 {
		return nil
	}
	var a A
	base := a.Base(unsafe.Pointer(p))
	off := int64(s) - 1
	return (*T)(unsafe.Add(unsafe.Pointer(base), off)) //nolint:govet // intentional address reconstruction
}

// IsNull reports whether the receiver is the null pointer.
func (p *Ptr[T, A, O]) IsNull() bool { return p.offPlus1 == 0 }

// RawStorage returns the stored integer verbatim, for diagnostics only.
// It must never be used to reconstruct a decoded address from a different
// Ptr location than the one it was read from, for self-relative anchors.
func (p *Ptr[T, A, O]) RawStorage() O { return p.offPlus1 }

// Deref returns the referent by value. Like a nil Go pointer dereference,
// calling Deref on a null Ptr is undefined at the operation level; gate
// on IsNull first.
func (p *Ptr[T, A, O]) Deref() T { return *p.Get() }

// Index returns a raw pointer to the i-th element of the array the
// receiver points into, without modifying the stored offset. Only
// meaningful when T is an object type the caller knows to be part of a
// contiguous run (e.g. an arena.Vector's backing storage).
func (p *Ptr[T, A, O]) Index(i int) *T {
	base := p.Get()
	if base == nil {
		return nil
	}
	var zero T
	return (*T)(unsafe.Add(unsafe.Pointer(base), i*int(unsafe.Sizeof(zero))))
}

// ReassignFrom re-derives the receiver's stored offset from src's decoded
// referent: it reads through src, then stores through the receiver. This
// is the only correct way to copy a self-anchored Ptr between two
// differently-placed storage locations; it is also correct, if redundant,
// for self-relocation and tag anchors, where a plain Go struct copy
// (dst = src) already works.
func (p *Ptr[T, A, O]) ReassignFrom(src *Ptr[T, A, O]) {
	p.Set(src.Get())
}

// Equal reports whether p and q decode to the same address. Two pointers
// with different stored integers that decode to the same address still
// compare equal.
func Equal[T1, T2 any, A1, A2 Anchor, O1, O2 offsetInt](p *Ptr[T1, A1, O1], q *Ptr[T2, A2, O2]) bool {
	return unsafe.Pointer(p.Get()) == unsafe.Pointer(q.Get())
}
