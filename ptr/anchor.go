package ptr

import "unsafe"

// Anchor computes the base address an offset pointer decodes against.
// Implementations are zero-sized types selected as a type parameter of
// Ptr, so the call to Base is statically dispatched and, for the
// self-relative anchors, inlines to a single address-of.
type Anchor interface {
	// Base returns the address an offset is measured from. self is the
	// address of the Ptr value itself; self-relative anchors use it,
	// tag anchors ignore it.
	Base(self unsafe.Pointer) uintptr
	// needsReencodeOnCopy reports whether assignment between two Ptr
	// values must re-encode (read through src, store through dst) rather
	// than copy the stored integer directly (see Ptr.ReassignFrom). Only
	// SelfAnchor needs this: its base is its own address, which differs
	// between two distinct storage locations. SelfRelocAnchor shares
	// SelfAnchor's base formula but not this property, because its
	// contract is that the Ptr and its referent always move together by
	// the same byte distance, so the stored offset stays valid unchanged.
	needsReencodeOnCopy() bool
}

// SelfAnchor anchors a pointer to its own address: Base(self) = addr(self).
// Copying a SelfAnchor-typed Ptr by plain Go assignment moves the decoded
// referent, because the new copy's address differs from the original's;
// use Ptr.ReassignFrom to preserve the pointed-to value across a move.
type SelfAnchor struct{}

func (SelfAnchor) Base(self unsafe.Pointer) uintptr { return uintptr(self) }
func (SelfAnchor) needsReencodeOnCopy() bool        { return true }

// SelfRelocAnchor uses the identical base formula as SelfAnchor, but
// carries a different contract: the Ptr and its referent are always
// relocated together as one block (for example, both fields of a struct
// that is itself bit-copied). Under that contract a plain Go struct copy
// of the containing block is correct without any re-encoding, because the
// pointer moves by exactly the same byte distance as its referent.
type SelfRelocAnchor struct{}

func (SelfRelocAnchor) Base(self unsafe.Pointer) uintptr { return uintptr(self) }
func (SelfRelocAnchor) needsReencodeOnCopy() bool        { return false }

// TagAnchor anchors a pointer to the process-wide base bound to Tag,
// independent of the pointer's own address. Plain Go struct copies (and
// moves to any other address within a segment bound to the same Tag) are
// always correct.
type TagAnchor[Tag any] struct{}

func (TagAnchor[Tag]) Base(unsafe.Pointer) uintptr {
	b := BaseOf[Tag]()
	assertBoundTag(b)
	return b
}
func (TagAnchor[Tag]) needsReencodeOnCopy() bool { return false }
