// Package chillvec provides compact, exclusively owned containers with
// explicit control over where their memory lives.
//
// # Containers
//
//   - Vec[T] is a contiguous growable array. Its backing region comes from
//     the Go heap by default or from an alloc.Allocator.
//   - CompactInts stores unsigned integers at the narrowest width (8, 16, 32
//     or 64 bits) that fits every value pushed so far.
//   - StrVec packs strings into one byte buffer with a CompactInts offset
//     index, and returns zero-copy views.
//   - CursorVec[T] is a non-empty sequence with a cursor that wraps around.
//
// # Quick Start
//
//	words := chillvec.NewStrVec()
//	k := words.Push("hello")
//	fmt.Println(words.Lookup(k)) // hello
//
// Off-heap storage:
//
//	offheap := alloc.NewMmap()
//	ids := chillvec.NewVec[uint64](chillvec.WithAllocator(offheap))
//	defer ids.Free()
//
// # Failure Model
//
// Reads never fail: out-of-range lookups return (zero, false). Growth has
// exactly two failure points, an allocation request that exceeds the
// platform's addressable size (ErrSizeOverflow) and an allocator that cannot
// satisfy a request (ErrAllocationFailed). Both are unrecoverable. The
// condition is logged, reported to the metrics collector as an *AbortError,
// and the process exits with AbortExitCode.
//
// Containers that need bounded memory should use alloc.NewLimited and check
// the limit before pushing; there is no fallible push.
//
// # Aliasing
//
// Slices, pointers and strings handed out by a container alias its storage.
// They are invalidated by any operation that may reallocate (Push, Reserve,
// ExtendFromSlice, ShrinkToFit, Free). For allocator-backed containers the
// old region is reused or unmapped, so holding on to a stale view reads
// freed memory.
//
// # Concurrency
//
// Containers are not safe for concurrent use. The allocators in package
// alloc are.
//
// # Persistence
//
// Package snapshot writes StrVec and CompactInts to a compact binary format
// with optional compression.
package chillvec
