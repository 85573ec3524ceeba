package alloc

import (
	"fmt"

	"github.com/hupe1980/chillvec/internal/mmap"
)

// Mmap allocates off-heap regions from anonymous memory mappings.
//
// Every region is its own mapping, so it is page aligned and zero filled.
// On Linux, Reallocate uses mremap(2) and usually avoids copying.
type Mmap struct {
	stats atomicStats
}

var _ Allocator = (*Mmap)(nil)

// NewMmap creates a new Mmap allocator.
func NewMmap() *Mmap {
	return &Mmap{}
}

// Allocate implements Allocator.
func (m *Mmap) Allocate(size int) ([]byte, error) {
	if size <= 0 {
		return nil, ErrInvalidSize
	}
	buf, err := mmap.Anon(size)
	if err != nil {
		return nil, fmt.Errorf("alloc: failed to map %d bytes: %w", size, err)
	}
	m.stats.allocs.Add(1)
	m.stats.addInUse(int64(size))
	return buf, nil
}

// Reallocate implements Allocator.
func (m *Mmap) Reallocate(buf []byte, size int) ([]byte, error) {
	if size <= 0 {
		return nil, ErrInvalidSize
	}
	next, err := mmap.Resize(buf, size)
	if err != nil {
		return nil, fmt.Errorf("alloc: failed to remap %d to %d bytes: %w", len(buf), size, err)
	}
	m.stats.reallocs.Add(1)
	m.stats.addInUse(int64(size - len(buf)))
	return next, nil
}

// Free implements Allocator.
func (m *Mmap) Free(buf []byte) error {
	if len(buf) == 0 {
		return nil
	}
	if err := mmap.Release(buf); err != nil {
		return fmt.Errorf("alloc: failed to unmap %d bytes: %w", len(buf), err)
	}
	m.stats.frees.Add(1)
	m.stats.addInUse(-int64(len(buf)))
	return nil
}

// Stats returns the current allocator statistics.
func (m *Mmap) Stats() Stats {
	return m.stats.snapshot()
}
