package arena

import (
	"os"

	"github.com/bnclabs/golog"

	"github.com/bnclabs/uxmalloc/sysmem"
)

// coalesce walks the heap list from head, merging any run of adjacent
// free blocks into the first of the run, and recomputes tail. It is a
// pure interior operation invoked before every best-fit search — lazy
// coalescing, not inside release — so it must leave invariant P4
// holding on return: no two consecutive heap blocks are both free.
func (a *Arena) coalesce() {
	curr := a.head
	for curr != nil && curr.next != nil {
		if curr.status == statusFree && curr.next.status == statusFree {
			absorbed := curr.next
			curr.next = absorbed.next
			curr.size = align8(curr.size + absorbed.size + headerStride)
			continue // rescan from curr: a run of 3+ frees fuses in one pass
		}
		curr = curr.next
	}

	curr = a.head
	for curr != nil && curr.next != nil {
		curr = curr.next
	}
	a.tail = curr
}

// bestFit scans the (already coalesced) list once and returns the free
// block whose size is the smallest value >= n, ties broken by earlier
// list position. Splits the winner before returning if there is room
// for a non-degenerate trailing header plus at least one aligned
// payload byte.
func (a *Arena) bestFit(n int64) *blockHeader {
	var best *blockHeader
	for curr := a.head; curr != nil; curr = curr.next {
		if curr.status != statusFree || curr.size < n {
			continue
		}
		if best == nil || curr.size < best.size {
			best = curr
		}
	}
	if best == nil {
		return nil
	}
	if best.size > slotSize(n) {
		a.split(best, n)
	}
	return best
}

// split carves block b at payload size n: b keeps align8(n) bytes and
// becomes (or remains) whatever status the caller sets next; the
// remainder becomes a new free successor. Assumes b.size is large
// enough that the remainder is a non-degenerate block.
func (a *Arena) split(b *blockHeader, n int64) {
	s := slotSize(n)
	successor := blockAt(addrOf(b) + uintptr(s))
	successor.size = align8(b.size - s)
	successor.status = statusFree
	successor.next = b.next

	b.size = align8(n)
	b.next = successor

	if b == a.tail {
		a.tail = successor
	}
}

// expandTail grows tail in place to hold n bytes by extending the
// program break. Only called when tail is free, undersized for n, and
// the request still falls below the heap threshold — the only
// operation that increases a heap block's size without relocating it.
func (a *Arena) expandTail(n int64) {
	grow := align8(n) - a.tail.size
	if _, err := sysmem.HeapExtend(grow); err != nil {
		log.Fatalf("arena: heap_extend(%d) failed during tail expansion: %v", grow, err)
		os.Exit(1)
	}
	a.tail.size = align8(n)
	a.tail.status = statusAlloc
}
