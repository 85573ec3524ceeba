package chillvec

import (
	"context"
	"fmt"
	"iter"
	"math"
	"reflect"
	"unsafe"

	"github.com/hupe1980/chillvec/internal/conv"
)

// noCopy lets go vet's copylocks check flag accidental copies of a container.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Vec is an exclusively owned, contiguous, growable array.
//
// The zero Vec is empty and ready to use; it allocates nothing until the
// first element is pushed. A Vec must not be copied after first use; use
// Clone for a deep copy.
//
// Out-of-range reads return (zero, false). The only way an operation can
// fail is by terminating the process: when the requested capacity in bytes
// would exceed the platform limit (ErrSizeOverflow) or the allocator cannot
// satisfy it (ErrAllocationFailed).
type Vec[T any] struct {
	_ noCopy

	data   []T // len(data) is the capacity
	length int
	raw    []byte // region owned by cfg.allocator; nil on the typed heap
	cfg    *options
}

// NewVec creates an empty Vec. It allocates nothing.
func NewVec[T any](opts ...Option) *Vec[T] {
	v := &Vec[T]{}
	v.init(applyOptions(opts))
	return v
}

// NewVecWithCapacity creates an empty Vec with room for exactly n elements.
// n <= 0 is equivalent to NewVec.
func NewVecWithCapacity[T any](n int, opts ...Option) *Vec[T] {
	v := NewVec[T](opts...)
	v.Reserve(n)
	return v
}

func (v *Vec[T]) init(cfg *options) {
	if cfg.allocator != nil {
		t := reflect.TypeFor[T]()
		if t.Size() == 0 || hasPointers(t) {
			if t.Size() > 0 {
				cfg.logger.LogHeapFallback(context.Background(), t.String())
			}
			fallback := *cfg
			fallback.allocator = nil
			cfg = &fallback
		}
	}
	v.cfg = cfg
}

func (v *Vec[T]) config() *options {
	if v.cfg == nil {
		v.cfg = defaultOptions
	}
	return v.cfg
}

// Len returns the number of elements.
func (v *Vec[T]) Len() int {
	return v.length
}

// Cap returns the number of elements the Vec can hold without reallocating.
func (v *Vec[T]) Cap() int {
	return len(v.data)
}

// IsEmpty reports whether the Vec holds no elements.
func (v *Vec[T]) IsEmpty() bool {
	return v.length == 0
}

// Reserve ensures Cap() >= n. Existing elements are preserved.
func (v *Vec[T]) Reserve(n int) {
	if n <= len(v.data) {
		return
	}
	v.resize("reserve", n)
}

// Push appends x, growing the capacity to max(1, cap + cap/2 + 1) when full.
func (v *Vec[T]) Push(x T) {
	if v.length == len(v.data) {
		next, ok := conv.GrowCapacity(len(v.data))
		if !ok {
			v.overflow("push", uint64(len(v.data))+uint64(len(v.data)/2)+1)
			return
		}
		v.resize("push", next)
	}
	*v.at(v.length) = x
	v.length++
}

// ExtendFromSlice appends all items with one reservation and one bulk copy.
func (v *Vec[T]) ExtendFromSlice(items []T) {
	if len(items) == 0 {
		return
	}
	if len(items) > math.MaxInt-v.length {
		v.overflow("extend", uint64(v.length)+uint64(len(items)))
		return
	}
	newLen := v.length + len(items)
	if newLen > len(v.data) {
		c := len(v.data)
		grown := newLen
		if c <= math.MaxInt-c/2 && c+c/2 > newLen {
			grown = c + c/2
		}
		// items may be a view of this Vec. An allocator may unmap the old
		// region on resize, so such a view is rebased onto the new one.
		off, aliased := v.offsetOf(items)
		v.resize("extend", grown)
		if aliased {
			items = v.data[off : off+len(items)]
		}
	}
	copy(v.data[v.length:newLen], items)
	v.length = newLen
}

// Get returns the element at index i, or false if i is out of range.
func (v *Vec[T]) Get(i int) (T, bool) {
	if i < 0 || i >= v.length {
		var zero T
		return zero, false
	}
	return *v.at(i), true
}

// GetPtr returns a pointer to the element at index i, or false if i is out
// of range. The pointer is invalidated by any operation that reallocates.
func (v *Vec[T]) GetPtr(i int) (*T, bool) {
	if i < 0 || i >= v.length {
		return nil, false
	}
	return v.at(i), true
}

// GetUnchecked returns the element at index i without a bounds check.
// The caller must guarantee 0 <= i < Len(); anything else reads arbitrary
// memory.
func (v *Vec[T]) GetUnchecked(i int) T {
	return *v.at(i)
}

// GetUncheckedPtr is the pointer form of GetUnchecked.
func (v *Vec[T]) GetUncheckedPtr(i int) *T {
	return v.at(i)
}

// Slice returns the elements as a slice that aliases the Vec's storage.
// Its capacity is clipped to its length, so appending to it never writes
// into the Vec. It is invalidated by any operation that reallocates.
func (v *Vec[T]) Slice() []T {
	return v.data[:v.length:v.length]
}

// All returns an iterator over index/element pairs in order.
func (v *Vec[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := 0; i < v.length; i++ {
			if !yield(i, *v.at(i)) {
				return
			}
		}
	}
}

// Values returns an iterator over the elements in order.
func (v *Vec[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := 0; i < v.length; i++ {
			if !yield(*v.at(i)) {
				return
			}
		}
	}
}

// ShrinkToFit reduces the capacity to exactly Len(). A Vec with no elements
// releases its backing region entirely.
func (v *Vec[T]) ShrinkToFit() {
	if len(v.data) == v.length {
		return
	}
	if v.length == 0 {
		v.release()
		return
	}
	v.resize("shrink", v.length)
}

// Clone returns a deep copy with the same configuration and a capacity of
// exactly Len().
func (v *Vec[T]) Clone() *Vec[T] {
	c := &Vec[T]{cfg: v.config()}
	c.Reserve(v.length)
	c.ExtendFromSlice(v.Slice())
	return c
}

// Free releases the backing region and leaves the Vec empty and reusable.
// Vecs backed by an allocator must be freed; heap-backed ones may be.
func (v *Vec[T]) Free() {
	v.release()
}

func (v *Vec[T]) String() string {
	return fmt.Sprintf("Vec{len: %d, cap: %d, offheap: %t}", v.length, len(v.data), v.raw != nil)
}

// at returns the address of element i using pointer arithmetic only.
func (v *Vec[T]) at(i int) *T {
	var zero T
	base := unsafe.Pointer(unsafe.SliceData(v.data))
	return (*T)(unsafe.Add(base, uintptr(i)*unsafe.Sizeof(zero))) //nolint:gosec // index validated by caller
}

// offsetOf reports whether items starts inside the allocator region and at
// which element index. Heap-backed storage is never reported: the garbage
// collector keeps the old array alive across a resize.
func (v *Vec[T]) offsetOf(items []T) (int, bool) {
	if v.raw == nil || len(items) == 0 {
		return 0, false
	}
	var zero T
	size := unsafe.Sizeof(zero)
	base := uintptr(unsafe.Pointer(unsafe.SliceData(v.data)))
	p := uintptr(unsafe.Pointer(unsafe.SliceData(items)))
	if p < base || p >= base+uintptr(len(v.data))*size {
		return 0, false
	}
	return int((p - base) / size), true
}

// resize moves the elements into a region of exactly n elements (n >= length).
func (v *Vec[T]) resize(op string, n int) {
	cfg := v.config()
	var zero T
	elemSize := unsafe.Sizeof(zero)
	size, ok := conv.AllocSize(n, elemSize)
	if !ok {
		v.overflow(op, uint64(n))
		return
	}
	oldSize := len(v.data) * int(elemSize)

	if cfg.allocator == nil || size == 0 {
		next := make([]T, n)
		copy(next, v.data[:v.length])
		v.data = next
	} else {
		var (
			raw []byte
			err error
		)
		if v.raw == nil {
			raw, err = cfg.allocator.Allocate(size)
		} else {
			raw, err = cfg.allocator.Reallocate(v.raw, size)
		}
		if err != nil {
			abort(cfg, &AbortError{
				Kind:      ErrAllocationFailed,
				Op:        op,
				Requested: uint64(n),
				ElemSize:  elemSize,
				cause:     err,
			})
			return
		}
		v.raw = raw
		v.data = unsafe.Slice((*T)(unsafe.Pointer(unsafe.SliceData(raw))), n) //nolint:gosec // pointer-free T over allocator memory
	}

	cfg.metrics.RecordResize(oldSize, size)
}

func (v *Vec[T]) release() {
	cfg := v.config()
	var zero T
	size := len(v.data) * int(unsafe.Sizeof(zero))

	if v.raw != nil {
		if err := cfg.allocator.Free(v.raw); err != nil {
			cfg.logger.LogFreeFailure(context.Background(), len(v.raw), err)
		}
	}
	if len(v.data) > 0 {
		cfg.metrics.RecordFree(size)
	}

	v.data = nil
	v.raw = nil
	v.length = 0
}

func (v *Vec[T]) overflow(op string, requested uint64) {
	var zero T
	abort(v.config(), &AbortError{
		Kind:      ErrSizeOverflow,
		Op:        op,
		Requested: requested,
		ElemSize:  unsafe.Sizeof(zero),
	})
}

// hasPointers reports whether values of t hold anything the garbage
// collector must trace, which rules out allocator memory.
func hasPointers(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return false
	case reflect.Array:
		return t.Len() > 0 && hasPointers(t.Elem())
	case reflect.Struct:
		for i := range t.NumField() {
			if hasPointers(t.Field(i).Type) {
				return true
			}
		}
		return false
	default:
		return true
	}
}
