package sysmem

import (
	"reflect"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

func TestPageSize(t *testing.T) {
	sz := PageSize()
	require.True(t, sz > 0, "page size must be positive, got %d", sz)
	require.True(t, sz%4096 == 0 || sz == 4096, "unexpected page size %d", sz)
}

func TestMmapAnonRoundtrip(t *testing.T) {
	n := int64(PageSize() * 4)
	addr, err := MmapAnon(n)
	require.NoError(t, err)
	require.True(t, addr != 0)

	var b []byte
	hdr := (*reflect.SliceHeader)(unsafe.Pointer(&b))
	hdr.Data, hdr.Len, hdr.Cap = addr, int(n), int(n)
	for i := range b {
		b[i] = 0xAB
	}
	for i := range b {
		if b[i] != 0xAB {
			t.Fatalf("byte %d not written", i)
		}
	}

	require.NoError(t, Munmap(addr, n))
}

func TestHeapExtendMonotonic(t *testing.T) {
	first, err := HeapExtend(4096)
	require.NoError(t, err)
	second, err := HeapExtend(4096)
	require.NoError(t, err)
	if second <= first {
		t.Fatalf("expected heap to grow monotonically: first=%#x second=%#x", first, second)
	}
	if second != first+4096 {
		t.Fatalf("expected contiguous extension: first=%#x second=%#x", first, second)
	}
}

func TestHeapExtendRejectsNonPositive(t *testing.T) {
	_, err := HeapExtend(0)
	require.Error(t, err)
	_, err = HeapExtend(-8)
	require.Error(t, err)
}
