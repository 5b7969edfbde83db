//go:build shmdebug

package ptr

import "fmt"

// Under -tags shmdebug, encoding and anchor-binding invariants panic
// instead of silently wrapping or reading garbage. Production builds (the
// default, no build tag) compile these to no-ops; see assert_release.go.

func assertNoNullCollision(diff int64, signed bool) {
	if signed && diff == -1 {
		panic("ptr: encoding diff == -1 collides with the null sentinel")
	}
	if !signed && diff < 0 {
		panic("ptr: unsigned offset pointer target lies below its base")
	}
}

func assertFitsInWidth[O offsetInt](v int64) {
	var zero O
	if isSigned[O]() {
		minV, maxV := widthRangeSigned[O]()
		if v < minV || v > maxV {
			panic(fmt.Sprintf("ptr: encoded offset %d does not fit in %T", v, zero))
		}
		return
	}
	maxV := widthRangeUnsigned[O]()
	if v < 0 || uint64(v) > maxV {
		panic(fmt.Sprintf("ptr: encoded offset %d does not fit in %T", v, zero))
	}
}

func assertBoundTag(base uintptr) {
	if base == 0 {
		panic("ptr: TagAnchor used before Bind; call ptr.Bind[Tag](base) first")
	}
}
