package lib

import (
	"testing"
	"unsafe"
)

func TestMemcpy(t *testing.T) {
	src := []byte("hello world")
	dst := make([]byte, len(src))
	n := Memcpy(unsafe.Pointer(&dst[0]), unsafe.Pointer(&src[0]), len(src))
	if n != len(src) {
		t.Fatalf("expected %d bytes copied, got %d", len(src), n)
	}
	if string(dst) != string(src) {
		t.Fatalf("expected %q, got %q", src, dst)
	}
}
