package arena

import (
	"os"

	"github.com/bnclabs/golog"
	humanize "github.com/dustin/go-humanize"

	"github.com/bnclabs/uxmalloc/sysmem"
)

// createBlock produces a fresh block of payload capacity align8(n),
// choosing heap-extension or an independent mapping by comparing
// align8(n) against threshold. Failure of either primitive is fatal —
// the allocator has no allocation-free way to signal OS resource
// exhaustion, so it aborts the process, matching the C source's DIE().
func (a *Arena) createBlock(n, threshold int64) *blockHeader {
	size := align8(n)
	want := size + headerStride

	if size < threshold {
		old, err := sysmem.HeapExtend(want)
		if err != nil {
			log.Fatalf("arena: heap_extend(%s) failed: %v", humanize.Bytes(uint64(want)), err)
			os.Exit(1)
		}
		b := blockAt(old)
		b.size, b.status, b.next = size, statusAlloc, nil
		return b
	}

	addr, err := sysmem.MmapAnon(want)
	if err != nil {
		log.Fatalf("arena: mmap_anon(%s) failed: %v", humanize.Bytes(uint64(want)), err)
		os.Exit(1)
	}
	b := blockAt(addr)
	b.size, b.status, b.next = size, statusMapped, nil
	a.mappedBytes += want
	return b
}

// preallocate reserves a single block sized so its total footprint
// equals exactly the arena's mmap threshold, links it as both head and
// tail, and marks it free — a reusable pool the first real request
// carves down to size via the ordinary best-fit/split path. Called
// once, on the first heap-bound allocation against an empty arena.
func (a *Arena) preallocate() *blockHeader {
	b := a.createBlock(a.mmapThreshold-headerStride, a.mmapThreshold)
	b.status = statusFree
	a.head, a.tail = b, b
	log.Debugf("arena: preallocated %s heap pool\n", humanize.Bytes(uint64(a.mmapThreshold)))
	return b
}
