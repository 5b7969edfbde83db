package ptr

// Upcast converts a Ptr to a derived type into a Ptr to a base type,
// without touching the stored integer — the two types share an anchor and
// width, so the bytes are identical; only the static type changes. Go has
// no implicit user-defined conversions, so the call is explicit here
// where a covariant pointer conversion would otherwise be implicit.
func Upcast[To, From any, A Anchor, O offsetInt](p Ptr[From, A, O]) Ptr[To, A, O] {
	return Ptr[To, A, O]{offPlus1: p.offPlus1}
}

// AsConst marks, at the call site, that the caller is about to treat p as
// a read-only handle. Go has no const qualifier, so this is documentation
// only — it returns p unchanged.
func AsConst[T any, A Anchor, O offsetInt](p Ptr[T, A, O]) Ptr[T, A, O] {
	return p
}
