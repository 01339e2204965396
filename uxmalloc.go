package uxmalloc

import (
	"unsafe"

	"github.com/bnclabs/uxmalloc/api"
	"github.com/bnclabs/uxmalloc/arena"
)

var _ api.Allocator = (*arena.Arena)(nil)

// Allocate n bytes from the default arena. Contents are indeterminate.
// Returns nil iff n <= 0.
func Allocate(n int) unsafe.Pointer {
	return arena.Default().Allocate(n)
}

// ZeroAllocate count*size bytes from the default arena, zeroed.
func ZeroAllocate(count, size int) unsafe.Pointer {
	return arena.Default().ZeroAllocate(count, size)
}

// Resize the block backing p to n bytes, against the default arena.
func Resize(p unsafe.Pointer, n int) unsafe.Pointer {
	return arena.Default().Resize(p, n)
}

// Release the block backing p, against the default arena.
func Release(p unsafe.Pointer) {
	arena.Default().Release(p)
}

// Stats reports the default arena's heap, mapped and live-allocation
// byte counts.
func Stats() (heapBytes, mappedBytes, allocated int64) {
	return arena.Default().Stats()
}
