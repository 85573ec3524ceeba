package chillvec

import (
	"fmt"
	"iter"
	"slices"
)

// CursorVec is a non-empty sequence with a cursor that wraps around at both
// ends. It is built with one element and only ever grows, so Current is
// always defined until Free.
type CursorVec[T any] struct {
	_ noCopy

	index int
	vec   Vec[T]
}

// NewCursorVec creates a CursorVec holding first, with the cursor on it.
func NewCursorVec[T any](first T, opts ...Option) *CursorVec[T] {
	c := &CursorVec[T]{}
	c.vec.init(applyOptions(opts))
	c.vec.Push(first)
	return c
}

// Current returns the element under the cursor, or the zero value after
// Free.
func (c *CursorVec[T]) Current() T {
	if c.vec.IsEmpty() {
		var zero T
		return zero
	}
	return c.vec.GetUnchecked(c.index)
}

// CurrentPtr returns a pointer to the element under the cursor. The pointer
// is invalidated by Push. It is nil after Free.
func (c *CursorVec[T]) CurrentPtr() *T {
	if c.vec.IsEmpty() {
		return nil
	}
	return c.vec.GetUncheckedPtr(c.index)
}

// Next moves the cursor forward, wrapping from the last element to the
// first.
func (c *CursorVec[T]) Next() {
	if c.vec.IsEmpty() {
		return
	}
	c.index = (c.index + 1) % c.vec.Len()
}

// Prev moves the cursor backward, wrapping from the first element to the
// last. It undoes Next.
func (c *CursorVec[T]) Prev() {
	if c.vec.IsEmpty() {
		return
	}
	if c.index == 0 {
		c.index = c.vec.Len() - 1
		return
	}
	c.index--
}

// Push appends x. The cursor position is unchanged.
func (c *CursorVec[T]) Push(x T) {
	c.vec.Push(x)
}

// First returns a pointer to the first element, or nil after Free.
func (c *CursorVec[T]) First() *T {
	if c.vec.IsEmpty() {
		return nil
	}
	return c.vec.GetUncheckedPtr(0)
}

// Tell returns the cursor position.
func (c *CursorVec[T]) Tell() int {
	return c.index
}

// Len returns the number of elements. It is at least 1 until Free.
func (c *CursorVec[T]) Len() int {
	return c.vec.Len()
}

// All returns an iterator over index/element pairs in storage order,
// independent of the cursor.
func (c *CursorVec[T]) All() iter.Seq2[int, T] {
	return c.vec.All()
}

// Values returns an iterator over the elements in storage order.
func (c *CursorVec[T]) Values() iter.Seq[T] {
	return c.vec.Values()
}

// SortFunc sorts the elements in place by cmp. The cursor keeps its
// position, so Current may return a different element afterwards.
func (c *CursorVec[T]) SortFunc(cmp func(a, b T) int) {
	slices.SortFunc(c.vec.Slice(), cmp)
}

// Free releases the backing storage. Afterwards the cursor is empty: Next
// and Prev do nothing, Current returns the zero value and CurrentPtr and
// First return nil. A Push makes it usable again.
func (c *CursorVec[T]) Free() {
	c.vec.Free()
	c.index = 0
}

func (c *CursorVec[T]) String() string {
	return fmt.Sprintf("CursorVec{pos: %d, len: %d}", c.index, c.vec.Len())
}
