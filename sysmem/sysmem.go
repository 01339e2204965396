package sysmem

import (
	"fmt"
	"reflect"
	"unsafe"

	"golang.org/x/sys/unix"
)

// curBrk tracks the process program break as last observed by this
// package. brk(2) always reports the resulting break on return (never
// -1), so HeapExtend verifies success by comparing the returned break
// against the one it asked for.
var curBrk uintptr

func init() {
	curBrk = queryBrk()
}

func queryBrk() uintptr {
	b, _, _ := unix.RawSyscall(unix.SYS_BRK, 0, 0, 0)
	return b
}

// HeapExtend grows the process program break by delta bytes and returns
// the address of the newly usable region, i.e. the break's value before
// the extension. A non-positive delta is a caller error.
func HeapExtend(delta int64) (uintptr, error) {
	if delta <= 0 {
		return 0, fmt.Errorf("sysmem: heap_extend: delta must be positive, got %d", delta)
	}
	old := curBrk
	want := old + uintptr(delta)
	got, _, errno := unix.RawSyscall(unix.SYS_BRK, want, 0, 0)
	if errno != 0 || got < want {
		return 0, fmt.Errorf("sysmem: heap_extend(%d) failed: errno=%d", delta, errno)
	}
	curBrk = got
	return old, nil
}

// MmapAnon requests an anonymous, private, read/write mapping of n
// bytes and returns its base address.
func MmapAnon(n int64) (uintptr, error) {
	b, err := unix.Mmap(
		-1, 0, int(n),
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_PRIVATE|unix.MAP_ANON,
	)
	if err != nil {
		return 0, fmt.Errorf("sysmem: mmap_anon(%d) failed: %w", n, err)
	}
	return uintptr(unsafe.Pointer(&b[0])), nil
}

// Munmap releases a mapping previously obtained from MmapAnon. addr and
// n must match the values MmapAnon produced/was asked for.
func Munmap(addr uintptr, n int64) error {
	var b []byte
	sl := (*reflect.SliceHeader)(unsafe.Pointer(&b))
	sl.Data, sl.Len, sl.Cap = addr, int(n), int(n)
	if err := unix.Munmap(b); err != nil {
		return fmt.Errorf("sysmem: munmap(%#x, %d) failed: %w", addr, n, err)
	}
	return nil
}

// PageSize returns the OS page size in bytes.
func PageSize() int64 {
	return int64(unix.Getpagesize())
}
