package alloc

import (
	"errors"
	"fmt"
	"sync/atomic"
)

var (
	// ErrInvalidSize is returned for non-positive allocation sizes.
	ErrInvalidSize = errors.New("alloc: invalid size")
	// ErrMemoryLimitExceeded is returned when a Limited allocator would exceed its limit.
	ErrMemoryLimitExceeded = errors.New("alloc: memory limit exceeded")
)

// Allocator manages raw byte regions for containers.
type Allocator interface {
	// Allocate returns a zeroed region of exactly size bytes. size must be > 0.
	Allocate(size int) ([]byte, error)

	// Reallocate resizes a region returned by this allocator, preserving the
	// first min(len(buf), size) bytes. On success buf must no longer be used;
	// on failure buf is left untouched.
	Reallocate(buf []byte, size int) ([]byte, error)

	// Free releases a region returned by this allocator.
	Free(buf []byte) error
}

// StatsProvider is implemented by allocators that track usage.
type StatsProvider interface {
	Stats() Stats
}

// Stats is a snapshot of allocator usage.
//
// Note on semantics:
//   - Allocs, Reallocs, Frees: cumulative call counts that succeeded
//   - BytesInUse: bytes currently handed out
//   - PeakBytesInUse: high-water mark of BytesInUse
type Stats struct {
	Allocs         uint64
	Reallocs       uint64
	Frees          uint64
	BytesInUse     int64
	PeakBytesInUse int64
}

func (s Stats) String() string {
	return fmt.Sprintf(
		"Stats{allocs: %d, reallocs: %d, frees: %d, in use: %.2f KB, peak: %.2f KB}",
		s.Allocs,
		s.Reallocs,
		s.Frees,
		float64(s.BytesInUse)/1024,
		float64(s.PeakBytesInUse)/1024,
	)
}

type atomicStats struct {
	allocs   atomic.Uint64
	reallocs atomic.Uint64
	frees    atomic.Uint64
	inUse    atomic.Int64
	peak     atomic.Int64
}

func (s *atomicStats) addInUse(delta int64) {
	cur := s.inUse.Add(delta)
	for {
		peak := s.peak.Load()
		if cur <= peak || s.peak.CompareAndSwap(peak, cur) {
			return
		}
	}
}

func (s *atomicStats) snapshot() Stats {
	return Stats{
		Allocs:         s.allocs.Load(),
		Reallocs:       s.reallocs.Load(),
		Frees:          s.frees.Load(),
		BytesInUse:     s.inUse.Load(),
		PeakBytesInUse: s.peak.Load(),
	}
}
