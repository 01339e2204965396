package arena

import (
	"os"
	"reflect"
	"unsafe"

	"github.com/bnclabs/golog"
	s "github.com/bnclabs/gosettings"

	"github.com/bnclabs/uxmalloc/lib"
	"github.com/bnclabs/uxmalloc/sysmem"
)

// Arena is the process-wide bookkeeping plus every heap block reachable
// from head. Independent mappings are handed out but never linked into
// this list — that asymmetry is structural: the list only indexes the
// contiguous heap.
//
// Arena is not thread safe. Callers that need concurrent allocation
// must serialize all entries into an Arena externally.
type Arena struct {
	head, tail *blockHeader

	mmapThreshold int64
	pageSize      int64
	preallocEnab  bool
	mappedBytes   int64
	allocated     int64
}

// NewArena builds an arena from settings, defaulting whatever the
// caller omits. Distinct from the package singleton (see Default) so
// tests can exercise independent, hermetic arenas without sharing one
// process's heap/mmap bookkeeping.
func NewArena(setts s.Settings) *Arena {
	merged := Defaultsettings().Mixin(setts)
	return &Arena{
		mmapThreshold: merged.Int64("mmap.threshold"),
		pageSize:      sysmem.PageSize(),
		preallocEnab:  merged.Bool("prealloc"),
	}
}

var defaultArena *Arena

// Default returns the process-wide singleton arena, created lazily on
// first use.
func Default() *Arena {
	if defaultArena == nil {
		defaultArena = NewArena(Defaultsettings())
	}
	return defaultArena
}

// Allocate services a request of n bytes against the arena's mmap
// threshold.
func (a *Arena) Allocate(n int) unsafe.Pointer {
	return a.allocate(int64(n), a.mmapThreshold)
}

// allocate services a request of n bytes against threshold T (the
// MMAP_THRESHOLD/page-size switch). Each step falls through to the
// next on failure: best-fit search, last-block expansion,
// preallocation, and finally fresh provisioning.
func (a *Arena) allocate(n, threshold int64) unsafe.Pointer {
	if n <= 0 {
		return nil
	}
	size := align8(n)

	if a.head != nil && size < threshold {
		a.coalesce()
		if b := a.bestFit(size); b != nil {
			b.status = statusAlloc
			a.allocated += b.size
			return payload(b)
		}
	}

	if a.tail != nil && a.tail.status == statusFree &&
		a.tail.size < size && size < threshold-headerStride {
		a.expandTail(n)
		a.allocated += a.tail.size
		return payload(a.tail)
	}

	if a.head == nil && a.preallocEnab && size < threshold-headerStride {
		a.preallocate()
		if b := a.bestFit(size); b != nil {
			b.status = statusAlloc
			a.allocated += b.size
			return payload(b)
		}
	}

	b := a.createBlock(n, threshold-headerStride)
	if b.status == statusAlloc {
		if a.tail != nil {
			a.tail.next = b
		} else {
			a.head = b
		}
		a.tail = b
	}
	a.allocated += b.size
	return payload(b)
}

// ZeroAllocate allocates count*size bytes using the OS page size as
// threshold instead of the arena's mmap threshold, and zeroes the
// returned payload.
func (a *Arena) ZeroAllocate(count, size int) unsafe.Pointer {
	n := int64(count) * int64(size)
	p := a.allocate(n, a.pageSize)
	if p == nil {
		return nil
	}
	var z []byte
	hdr := (*reflect.SliceHeader)(unsafe.Pointer(&z))
	hdr.Data, hdr.Len, hdr.Cap = uintptr(p), int(n), int(n)
	for i := range z {
		z[i] = 0
	}
	return p
}

// Release invalidates p. A heap block is marked free and stays in the
// list, coalescing deferred to the next search; a mapped block is
// unmapped and vanishes. A nil p is a no-op.
func (a *Arena) Release(p unsafe.Pointer) {
	if p == nil {
		return
	}
	b := block(p)
	switch b.status {
	case statusAlloc:
		b.status = statusFree
		a.allocated -= b.size
	case statusMapped:
		total := footprint(b.size)
		a.allocated -= b.size
		if err := sysmem.Munmap(addrOf(b), total); err != nil {
			log.Fatalf("arena: munmap failed: %v", err)
			os.Exit(1)
		}
		a.mappedBytes -= total
	}
}

// Resize implements the combined shrink/split/coalesce/relocate policy:
// grow in place at the tail, coalesce forward into a free neighbor,
// split off a free remainder when shrinking, or relocate to a fresh
// block when nothing adjacent can absorb the new size.
func (a *Arena) Resize(p unsafe.Pointer, n int) unsafe.Pointer {
	if p == nil {
		return a.allocate(int64(n), a.mmapThreshold)
	}
	if n == 0 {
		a.Release(p)
		return nil
	}

	b := block(p)
	if b.status == statusFree {
		return nil
	}

	newTotal := slotSize(int64(n))
	oldTotal := footprint(b.size)
	oldSize := b.size

	// 1. grow-in-place at tail.
	if b == a.tail && oldTotal < newTotal && align8(int64(n)) < a.mmapThreshold-headerStride {
		grow := align8(int64(n)) - a.tail.size
		if _, err := sysmem.HeapExtend(grow); err != nil {
			log.Fatalf("arena: heap_extend(%d) failed during resize: %v", grow, err)
			os.Exit(1)
		}
		a.tail.size = align8(int64(n))
		a.tail.status = statusAlloc
		a.allocated += a.tail.size - oldSize
		return p
	}

	// 2. coalesce forward.
	if oldTotal < newTotal && newTotal < a.mmapThreshold {
		for b.next != nil && b.next.status == statusFree {
			next := b.next
			merged := align8(b.size + next.size + headerStride)
			if merged+headerStride > a.mmapThreshold {
				break
			}
			b.next = next.next
			b.size = merged
			if next == a.tail {
				a.tail = b
			}
			if footprint(b.size) >= newTotal {
				break
			}
		}
		oldTotal = footprint(b.size)
	}
	a.allocated += b.size - oldSize
	oldSize = b.size

	// 3. exact fit.
	if oldTotal == newTotal {
		return p
	}

	// 4. shrink with split.
	if oldTotal > newTotal+headerStride {
		if b.status == statusMapped {
			newp := a.allocate(int64(n), a.mmapThreshold)
			if newp == nil {
				return nil
			}
			lib.Memcpy(newp, p, int(newTotal))
			a.Release(p)
			return newp
		}
		a.split(b, int64(n))
		a.allocated += b.size - oldSize
		return p
	}

	// 5. shrink without split.
	if oldTotal > newTotal {
		return p
	}

	// 6. relocate.
	newp := a.allocate(int64(n), a.mmapThreshold)
	if newp == nil {
		return nil
	}
	lib.Memcpy(newp, p, int(oldTotal))
	if newp != p {
		a.Release(p)
	}
	return newp
}

// Stats reports the bytes spanned by the heap list (headers and free
// blocks included), the bytes held in live independent mappings
// (headers included), and the total bytes the caller currently holds
// as live allocations.
func (a *Arena) Stats() (heapBytes, mappedBytes, allocated int64) {
	for b := a.head; b != nil; b = b.next {
		heapBytes += footprint(b.size)
	}
	return heapBytes, a.mappedBytes, a.allocated
}
