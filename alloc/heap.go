package alloc

import "unsafe"

// wordSize is the alignment of every Heap region.
const wordSize = 8

// Heap allocates regions on the Go heap.
//
// Regions are backed by []uint64, so they are 8-byte aligned and can hold any
// pointer-free element type. Free only updates the stats; the garbage
// collector reclaims the memory.
type Heap struct {
	stats atomicStats
}

var _ Allocator = (*Heap)(nil)

// NewHeap creates a new Heap allocator.
func NewHeap() *Heap {
	return &Heap{}
}

// Allocate implements Allocator.
func (h *Heap) Allocate(size int) ([]byte, error) {
	if size <= 0 {
		return nil, ErrInvalidSize
	}
	buf := allocWords(size)
	h.stats.allocs.Add(1)
	h.stats.addInUse(int64(size))
	return buf, nil
}

// Reallocate implements Allocator.
func (h *Heap) Reallocate(buf []byte, size int) ([]byte, error) {
	if size <= 0 {
		return nil, ErrInvalidSize
	}
	next := allocWords(size)
	copy(next, buf)
	h.stats.reallocs.Add(1)
	h.stats.addInUse(int64(size - len(buf)))
	return next, nil
}

// Free implements Allocator.
func (h *Heap) Free(buf []byte) error {
	if len(buf) == 0 {
		return nil
	}
	h.stats.frees.Add(1)
	h.stats.addInUse(-int64(len(buf)))
	return nil
}

// Stats returns the current allocator statistics.
func (h *Heap) Stats() Stats {
	return h.stats.snapshot()
}

func allocWords(size int) []byte {
	words := make([]uint64, (size+wordSize-1)/wordSize)
	return unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(words))), size) //nolint:gosec // reinterpretation of a word-aligned buffer
}
