package ptr_test

import (
	"fmt"
	"unsafe"

	"github.com/go-shmem/shmarena/ptr"
)

type listTag struct{}

type listNode struct {
	ID   int32
	Next ptr.SegmentPtr[listNode, listTag, uint32]
}

// Example_relocation links three nodes with segment-anchored offset
// pointers inside a 4096-byte region, copies the whole region byte for
// byte into a second region, rebinds the tag to the second region's
// base, and traverses from the second region's start: the same ids come
// back in order, with every decoded address landing inside the second
// region, without touching a single pointer value.
func Example_relocation() {
	const regionSize = 4096

	regionA := make([]byte, regionSize)
	regionB := make([]byte, regionSize)

	ptr.Bind[listTag](uintptr(unsafe.Pointer(&regionA[0])))

	nodeSize := int(unsafe.Sizeof(listNode{}))
	n1 := (*listNode)(unsafe.Pointer(&regionA[0]))
	n2 := (*listNode)(unsafe.Pointer(&regionA[nodeSize]))
	n3 := (*listNode)(unsafe.Pointer(&regionA[2*nodeSize]))

	*n1 = listNode{ID: 1}
	*n2 = listNode{ID: 2}
	*n3 = listNode{ID: 3}
	n1.Next.Set(n2)
	n2.Next.Set(n3)
	n3.Next.SetNull()

	copy(regionB, regionA)
	ptr.Bind[listTag](uintptr(unsafe.Pointer(&regionB[0])))

	cur := (*listNode)(unsafe.Pointer(&regionB[0]))
	baseB := uintptr(unsafe.Pointer(&regionB[0]))
	endB := baseB + regionSize

	for cur != nil {
		addr := uintptr(unsafe.Pointer(cur))
		inRegion := addr >= baseB && addr < endB
		fmt.Printf("id=%d in_region_b=%v\n", cur.ID, inRegion)
		cur = cur.Next.Get()
	}

	// Output:
	// id=1 in_region_b=true
	// id=2 in_region_b=true
	// id=3 in_region_b=true
}
