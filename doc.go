// Package uxmalloc is a single-threaded, user-space general-purpose
// memory allocator. It manages a process's heap, extended on demand,
// and independent anonymous mappings for requests too large to serve
// from the heap, using best-fit search, splitting, lazy coalescing and
// last-block expansion to keep the heap list compact.
//
// The package-level functions operate on a lazily created singleton
// arena (see arena.Default). Callers needing isolated bookkeeping —
// tests, benchmarks — should use arena.NewArena directly.
package uxmalloc
