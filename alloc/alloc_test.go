package alloc

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allocators() map[string]func() Allocator {
	return map[string]func() Allocator{
		"heap":    func() Allocator { return NewHeap() },
		"mmap":    func() Allocator { return NewMmap() },
		"limited": func() Allocator { return NewLimited(NewMmap(), 1<<20) },
	}
}

func TestAllocator_Contract(t *testing.T) {
	for name, newAlloc := range allocators() {
		t.Run(name, func(t *testing.T) {
			a := newAlloc()

			_, err := a.Allocate(0)
			assert.ErrorIs(t, err, ErrInvalidSize)

			buf, err := a.Allocate(100)
			require.NoError(t, err)
			require.Len(t, buf, 100)
			for _, b := range buf {
				require.Zero(t, b)
			}
			copy(buf, "hello")

			buf, err = a.Reallocate(buf, 10000)
			require.NoError(t, err)
			require.Len(t, buf, 10000)
			assert.Equal(t, "hello", string(buf[:5]))

			buf, err = a.Reallocate(buf, 3)
			require.NoError(t, err)
			assert.Equal(t, "hel", string(buf))

			_, err = a.Reallocate(buf, 0)
			assert.ErrorIs(t, err, ErrInvalidSize)

			require.NoError(t, a.Free(buf))
			require.NoError(t, a.Free(nil))
		})
	}
}

func TestHeap_WordAligned(t *testing.T) {
	h := NewHeap()
	for _, size := range []int{1, 3, 7, 8, 9, 63, 1024} {
		buf, err := h.Allocate(size)
		require.NoError(t, err)
		assert.Len(t, buf, size)
		addr := uintptr(unsafe.Pointer(&buf[0]))
		assert.Zero(t, addr%wordSize, "size=%d", size)
	}
}

func TestStats(t *testing.T) {
	for name, a := range map[string]interface {
		Allocator
		StatsProvider
	}{"heap": NewHeap(), "mmap": NewMmap()} {
		t.Run(name, func(t *testing.T) {
			b1, err := a.Allocate(100)
			require.NoError(t, err)
			b2, err := a.Allocate(50)
			require.NoError(t, err)

			b1, err = a.Reallocate(b1, 400)
			require.NoError(t, err)

			s := a.Stats()
			assert.Equal(t, uint64(2), s.Allocs)
			assert.Equal(t, uint64(1), s.Reallocs)
			assert.Equal(t, int64(450), s.BytesInUse)
			assert.Equal(t, int64(450), s.PeakBytesInUse)

			require.NoError(t, a.Free(b1))
			require.NoError(t, a.Free(b2))

			s = a.Stats()
			assert.Equal(t, uint64(2), s.Frees)
			assert.Equal(t, int64(0), s.BytesInUse)
			assert.Equal(t, int64(450), s.PeakBytesInUse)
			assert.Contains(t, s.String(), "allocs: 2")
		})
	}
}

func TestLimited(t *testing.T) {
	t.Run("enforces limit", func(t *testing.T) {
		l := NewLimited(NewHeap(), 1000)
		assert.Equal(t, int64(1000), l.Limit())

		buf, err := l.Allocate(600)
		require.NoError(t, err)
		assert.Equal(t, int64(600), l.Usage())

		_, err = l.Allocate(500)
		assert.ErrorIs(t, err, ErrMemoryLimitExceeded)
		assert.Equal(t, int64(600), l.Usage())

		_, err = l.Reallocate(buf, 1200)
		assert.ErrorIs(t, err, ErrMemoryLimitExceeded)
		assert.Equal(t, int64(600), l.Usage())

		buf, err = l.Reallocate(buf, 1000)
		require.NoError(t, err)
		assert.Equal(t, int64(1000), l.Usage())

		buf, err = l.Reallocate(buf, 200)
		require.NoError(t, err)
		assert.Equal(t, int64(200), l.Usage())

		require.NoError(t, l.Free(buf))
		assert.Equal(t, int64(0), l.Usage())

		_, err = l.Allocate(1000)
		assert.NoError(t, err)
	})

	t.Run("unlimited only tracks", func(t *testing.T) {
		l := NewLimited(NewHeap(), 0)
		assert.Equal(t, int64(0), l.Limit())

		_, err := l.Allocate(1 << 20)
		require.NoError(t, err)
		assert.Equal(t, int64(1<<20), l.Usage())
	})

	t.Run("inner failure releases reservation", func(t *testing.T) {
		l := NewLimited(failing{}, 1000)

		_, err := l.Allocate(100)
		assert.ErrorIs(t, err, errInner)
		assert.Equal(t, int64(0), l.Usage())

		_, err = l.Reallocate(nil, 100)
		assert.ErrorIs(t, err, errInner)
		assert.Equal(t, int64(0), l.Usage())

		assert.ErrorIs(t, l.Free([]byte{1}), errInner)
		assert.Equal(t, Stats{}, l.Stats())
	})

	t.Run("forwards stats", func(t *testing.T) {
		l := NewLimited(NewHeap(), 0)
		_, err := l.Allocate(10)
		require.NoError(t, err)
		assert.Equal(t, uint64(1), l.Stats().Allocs)
	})

	t.Run("concurrent use", func(t *testing.T) {
		l := NewLimited(NewHeap(), 64*100)

		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < 100; j++ {
					buf, err := l.Allocate(64)
					if err != nil {
						continue
					}
					_ = l.Free(buf)
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, int64(0), l.Usage())
	})
}

var errInner = errors.New("inner failure")

type failing struct{}

func (failing) Allocate(int) ([]byte, error)           { return nil, errInner }
func (failing) Reallocate([]byte, int) ([]byte, error) { return nil, errInner }
func (failing) Free([]byte) error                      { return errInner }

func BenchmarkAllocate(b *testing.B) {
	for _, size := range []int{64, 4096, 1 << 20} {
		for name, newAlloc := range allocators() {
			b.Run(fmt.Sprintf("%s/size=%d", name, size), func(b *testing.B) {
				a := newAlloc()
				b.ReportAllocs()
				for b.Loop() {
					buf, err := a.Allocate(size)
					if err != nil {
						b.Fatal(err)
					}
					_ = a.Free(buf)
				}
			})
		}
	}
}
