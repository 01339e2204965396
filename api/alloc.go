package api

import "unsafe"

// Allocator is implemented by an arena capable of servicing the four
// allocator front-ends against its own heap-extended region and
// whatever independent anonymous mappings it has handed out.
//
// Implementations are not thread safe: callers that need concurrent
// allocation must serialize calls externally.
type Allocator interface {
	// Allocate n bytes. Contents are indeterminate. Returns a nil
	// payload iff n <= 0.
	Allocate(n int) unsafe.Pointer

	// ZeroAllocate count*size bytes, zeroed.
	ZeroAllocate(count, size int) unsafe.Pointer

	// Resize the block backing p to n bytes. May return p unchanged
	// or a relocated payload; returns nil if n == 0 or p was already
	// released.
	Resize(p unsafe.Pointer, n int) unsafe.Pointer

	// Release the block backing p. No-op on a nil p.
	Release(p unsafe.Pointer)

	// Stats reports the bytes spanned by the heap list (headers and
	// free blocks included), the bytes held in live independent
	// mappings (headers included), and the total bytes the caller
	// currently holds as live allocations.
	Stats() (heapBytes, mappedBytes, allocated int64)
}
