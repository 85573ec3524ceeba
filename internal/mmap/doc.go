// Package mmap provides anonymous memory mappings for off-heap allocation and
// read-only file mappings for zero-copy loading.
//
// # Anonymous Mappings
//
// Anon returns a read-write, private, zero-filled region outside the Go
// garbage collector's control. Resize grows or shrinks such a region while
// preserving its contents, and Release unmaps it:
//
//	buf, err := mmap.Anon(1 << 20)
//	if err != nil { ... }
//	buf, err = mmap.Resize(buf, 2<<20)
//	...
//	_ = mmap.Release(buf)
//
// The slice passed to Resize and Release must be exactly the slice returned
// by Anon or the previous Resize. The GC never scans anonymous regions, so
// they must only hold pointer-free data.
//
// # File Mappings
//
//	m, err := mmap.Open("strings.chv")
//	if err != nil { ... }
//	defer m.Close()
//	m.Advise(mmap.AccessSequential)
//	data := m.Bytes()
//
// # Platform Support
//
//   - Linux: mmap(2), mremap(2) for in-place growth, madvise(2)
//   - Other Unix: mmap(2); Resize maps a new region and copies
//   - Windows: VirtualAlloc / CreateFileMapping (madvise is a no-op)
package mmap
