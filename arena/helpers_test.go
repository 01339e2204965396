package arena

import (
	"reflect"
	"unsafe"
)

// sliceOver reinterprets n bytes starting at p as a byte slice, for
// tests that need to read or write a payload's raw contents directly.
func sliceOver(p unsafe.Pointer, n int, out *[]byte) {
	hdr := (*reflect.SliceHeader)(unsafe.Pointer(out))
	hdr.Data, hdr.Len, hdr.Cap = uintptr(p), n, n
}
