// Package sysmem wraps the handful of primitive syscalls the allocator
// needs from the operating system: extending the program break, mapping
// and unmapping anonymous memory, and querying the page size. Nothing in
// this package knows about block headers, free lists or allocation
// policy — that lives in the arena package.
package sysmem
