package alloc

import (
	"sync/atomic"

	"golang.org/x/sync/semaphore"
)

// Limited enforces a hard byte limit on top of another Allocator.
//
// Requests that would exceed the limit fail with ErrMemoryLimitExceeded
// without blocking; a container treats that like any other allocation
// failure.
type Limited struct {
	inner Allocator
	limit int64

	sem  *semaphore.Weighted // nil if unlimited
	used atomic.Int64
}

var _ Allocator = (*Limited)(nil)

// NewLimited wraps inner with a limit of limitBytes.
// If limitBytes <= 0, no hard limit is enforced (only tracking).
func NewLimited(inner Allocator, limitBytes int64) *Limited {
	l := &Limited{
		inner: inner,
		limit: limitBytes,
	}
	if limitBytes > 0 {
		l.sem = semaphore.NewWeighted(limitBytes)
	}
	return l
}

// Allocate implements Allocator.
func (l *Limited) Allocate(size int) ([]byte, error) {
	if size <= 0 {
		return nil, ErrInvalidSize
	}
	if err := l.acquire(int64(size)); err != nil {
		return nil, err
	}
	buf, err := l.inner.Allocate(size)
	if err != nil {
		l.release(int64(size))
		return nil, err
	}
	return buf, nil
}

// Reallocate implements Allocator.
func (l *Limited) Reallocate(buf []byte, size int) ([]byte, error) {
	if size <= 0 {
		return nil, ErrInvalidSize
	}
	delta := int64(size - len(buf))
	if delta > 0 {
		if err := l.acquire(delta); err != nil {
			return nil, err
		}
	}
	next, err := l.inner.Reallocate(buf, size)
	if err != nil {
		if delta > 0 {
			l.release(delta)
		}
		return nil, err
	}
	if delta < 0 {
		l.release(-delta)
	}
	return next, nil
}

// Free implements Allocator.
func (l *Limited) Free(buf []byte) error {
	if len(buf) == 0 {
		return nil
	}
	if err := l.inner.Free(buf); err != nil {
		return err
	}
	l.release(int64(len(buf)))
	return nil
}

// Usage returns the bytes currently handed out through this allocator.
func (l *Limited) Usage() int64 {
	return l.used.Load()
}

// Limit returns the configured limit in bytes (0 if unlimited).
func (l *Limited) Limit() int64 {
	if l.limit < 0 {
		return 0
	}
	return l.limit
}

// Stats returns the wrapped allocator's statistics, or zero Stats if it
// does not track any.
func (l *Limited) Stats() Stats {
	if sp, ok := l.inner.(StatsProvider); ok {
		return sp.Stats()
	}
	return Stats{}
}

func (l *Limited) acquire(n int64) error {
	if l.sem != nil && !l.sem.TryAcquire(n) {
		return ErrMemoryLimitExceeded
	}
	l.used.Add(n)
	return nil
}

func (l *Limited) release(n int64) {
	if l.sem != nil {
		l.sem.Release(n)
	}
	l.used.Add(-n)
}
