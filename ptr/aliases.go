package ptr

// SelfPtr anchors to its own address. Copying a SelfPtr by plain Go
// assignment silently shifts its referent by the distance between the
// source and destination storage locations — always use ReassignFrom
// when moving a SelfPtr between two storage locations.
type SelfPtr[T any, O offsetInt] = Ptr[T, SelfAnchor, O]

// SelfRelocPtr anchors with the same formula as SelfPtr but carries the
// contract that it is relocated together with its referent as one block;
// plain Go struct assignment is correct for it.
type SelfRelocPtr[T any, O offsetInt] = Ptr[T, SelfRelocAnchor, O]

// SegmentPtr anchors to the process-wide base bound to Tag. It is
// trivially copyable: plain Go struct assignment, and bit-copying the
// bytes of a struct containing one, is always correct within a segment
// bound to the same Tag.
type SegmentPtr[T any, Tag any, O offsetInt] = Ptr[T, TagAnchor[Tag], O]
