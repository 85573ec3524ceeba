// Package alloc provides the backing-memory allocators used by chillvec
// containers.
//
// A container without an allocator stores its elements in ordinary typed Go
// slices. Passing an Allocator moves the backing region under explicit,
// manual management:
//
//   - Heap: GC-managed, word-aligned byte regions. Useful for accounting
//     through Limited without leaving the Go heap.
//   - Mmap: off-heap anonymous mappings. Regions are invisible to the garbage
//     collector and must be released explicitly (containers do this in Free).
//   - Limited: wraps another Allocator and enforces a hard byte limit.
//
// # Pointer-free data only
//
// Allocators hand out raw bytes. Containers only route element types without
// Go pointers through an Allocator; anything else stays on the typed heap.
//
// # Thread Safety
//
// All allocators are safe for concurrent use, so one allocator may back many
// containers that live on different goroutines.
package alloc
