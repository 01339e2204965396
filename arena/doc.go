// Package arena implements the heap-arena management at the core of
// uxmalloc: the policy deciding whether a request is served from the
// contiguous brk-extended heap or from an independent anonymous mapping,
// the free-list representation and search, block splitting, adjacent-
// free coalescing, last-block expansion, and the resize path that
// combines all of the above with fallback reallocation.
//
// Types and functions exported by this package are not thread safe.
// Callers that need concurrent allocation must serialize all entries
// into an Arena externally.
package arena
