package chillvec

import (
	"cmp"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hupe1980/chillvec/alloc"
)

func TestCursorVec_Navigation(t *testing.T) {
	c := NewCursorVec("a")
	c.Push("b")
	c.Push("c")
	assert.Equal(t, 3, c.Len())

	steps := []struct {
		name string
		move func()
		want string
		pos  int
	}{
		{"next", c.Next, "b", 1},
		{"next", c.Next, "c", 2},
		{"next wraps to first", c.Next, "a", 0},
		{"prev wraps to last", c.Prev, "c", 2},
		{"prev", c.Prev, "b", 1},
		{"prev", c.Prev, "a", 0},
	}
	for _, s := range steps {
		s.move()
		assert.Equal(t, s.want, c.Current(), s.name)
		assert.Equal(t, s.pos, c.Tell(), s.name)
	}
}

func TestCursorVec_PrevUndoesNext(t *testing.T) {
	for _, n := range []int{1, 2, 5} {
		c := NewCursorVec(0)
		for i := 1; i < n; i++ {
			c.Push(i)
		}
		for start := range n {
			for c.Tell() != start {
				c.Next()
			}
			c.Next()
			c.Prev()
			assert.Equal(t, start, c.Tell(), "len %d", n)

			c.Prev()
			c.Next()
			assert.Equal(t, start, c.Tell(), "len %d", n)
		}
	}
}

func TestCursorVec_SingleElement(t *testing.T) {
	c := NewCursorVec(42)
	c.Next()
	assert.Equal(t, 42, c.Current())
	c.Prev()
	assert.Equal(t, 42, c.Current())
	assert.Equal(t, 0, c.Tell())
}

func TestCursorVec_PushKeepsPosition(t *testing.T) {
	c := NewCursorVec(1.0, WithAllocator(alloc.NewMmap()))
	defer c.Free()
	c.Push(2.0)
	c.Next()
	c.Push(3.0)
	assert.Equal(t, 1, c.Tell())
	assert.Equal(t, 2.0, c.Current())
}

func TestCursorVec_Pointers(t *testing.T) {
	c := NewCursorVec(10)
	c.Push(20)
	c.Next()

	*c.CurrentPtr() = 200
	*c.First() = 100
	assert.Equal(t, []int{100, 200}, slices.Collect(c.Values()))
}

func TestCursorVec_SortFunc(t *testing.T) {
	c := NewCursorVec(3)
	c.Push(1)
	c.Push(2)
	c.Next()

	c.SortFunc(cmp.Compare[int])
	assert.Equal(t, []int{1, 2, 3}, slices.Collect(c.Values()))
	assert.Equal(t, 1, c.Tell())
	assert.Equal(t, 2, c.Current())
}

func TestCursorVec_All(t *testing.T) {
	c := NewCursorVec("x")
	c.Push("y")
	c.Next()

	var got []string
	for i, v := range c.All() {
		assert.Equal(t, len(got), i)
		got = append(got, v)
	}
	assert.Equal(t, []string{"x", "y"}, got)
	assert.Equal(t, "CursorVec{pos: 1, len: 2}", c.String())
}

func TestCursorVec_AfterFree(t *testing.T) {
	m := alloc.NewMmap()
	c := NewCursorVec(int32(1), WithAllocator(m))
	c.Push(2)
	c.Next()
	c.Free()

	assert.NotPanics(t, func() {
		c.Next()
		c.Prev()
	})
	assert.Equal(t, 0, c.Len())
	assert.Equal(t, 0, c.Tell())
	assert.Zero(t, c.Current())
	assert.Nil(t, c.CurrentPtr())
	assert.Nil(t, c.First())
	assert.Zero(t, m.Stats().BytesInUse)

	c.Push(7)
	c.Next()
	assert.Equal(t, int32(7), c.Current())
	c.Free()
}
