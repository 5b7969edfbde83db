package ptr

import (
	"reflect"
	"sync"
	"sync/atomic"
)

// Tag is a compile-time label selecting a process-wide base binding.
// It is never instantiated; it is used only as a type parameter on
// TagAnchor and SegmentPtr. Any type, typically an empty struct declared
// by the caller, may serve as a Tag.
//
//	type MyTag struct{}
//
// cell holds the process-wide mutable base address for one Tag type.
// Go has no per-type-instantiation static storage the way a C++ template
// static member does, so cells are looked up lazily by reflect.Type and
// cached in a process-wide map. The cell is created only once per Tag
// type (on the first Bind or the first decode); after that the returned
// *cell could be cached by the caller, but Base() re-resolves it every call to
// keep the call surface simple and because the map read is already a
// fast concurrent-map load, not a lock.
type cell struct {
	base atomic.Uintptr
}

var cells sync.Map // map[reflect.Type]*cell

func cellFor[Tag any]() *cell {
	key := reflect.TypeFor[Tag]()
	if v, ok := cells.Load(key); ok {
		return v.(*cell)
	}
	c := &cell{}
	actual, _ := cells.LoadOrStore(key, c)
	return actual.(*cell)
}

// Bind registers base as the process-wide base address for Tag. It must
// happen-before any concurrent decode of a pointer anchored to Tag in the
// same process. Rebinding an
// already-bound Tag while other goroutines are decoding against it is a
// race at the semantic level (the decoded address can flip mid-flight)
// even though the store itself is atomic and can never corrupt memory.
func Bind[Tag any](base uintptr) {
	cellFor[Tag]().base.Store(base)
}

// Unbind clears the process-wide base address for Tag, returning it to the
// unbound state. Any subsequent decode against Tag is a usage error
// (debug-asserted; see assertBoundTag).
func Unbind[Tag any]() {
	cellFor[Tag]().base.Store(0)
}

// BaseOf returns the currently bound base address for Tag, or 0 if unbound.
func BaseOf[Tag any]() uintptr {
	return cellFor[Tag]().base.Load()
}
