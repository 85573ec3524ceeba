package chillvec

import (
	"bytes"
	"log/slog"
	"math"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/chillvec/alloc"
)

func TestCompactInts_WidthTransitions(t *testing.T) {
	for name, opts := range backings() {
		t.Run(name, func(t *testing.T) {
			c := NewCompactInts(opts()...)
			defer c.Free()
			assert.Equal(t, Width8, c.Width())

			steps := []struct {
				value uint64
				width Width
			}{
				{10, Width8},
				{255, Width8},
				{300, Width16},
				{70000, Width32},
				{12, Width32},
				{5_000_000_000, Width64},
				{math.MaxUint64, Width64},
			}

			var want []uint64
			for _, s := range steps {
				c.Push(s.value)
				want = append(want, s.value)
				require.Equal(t, s.width, c.Width(), "after pushing %d", s.value)
				require.Equal(t, want, slices.Collect(c.Values()))
			}
		})
	}
}

func TestCompactInts_SkipsWidths(t *testing.T) {
	c := NewCompactInts()
	c.Push(1)
	c.Push(1 << 40)
	assert.Equal(t, Width64, c.Width())
	assert.Equal(t, []uint64{1, 1 << 40}, slices.Collect(c.Values()))
}

func TestCompactInts_UpgradeKeepsCapacity(t *testing.T) {
	c := NewCompactInts()
	c.Reserve(50)
	c.Push(1)
	c.Push(2)
	c.Push(1000)

	assert.Equal(t, Width16, c.Width())
	assert.Equal(t, 50, c.Cap())
	assert.Equal(t, 3, c.Len())
}

func TestCompactInts_Get(t *testing.T) {
	var c CompactInts
	_, ok := c.Get(0)
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
	assert.Equal(t, Width8, c.Width())

	c.Push(7)
	c.Push(70000)

	got, ok := c.Get(1)
	require.True(t, ok)
	assert.Equal(t, uint64(70000), got)
	assert.Equal(t, uint64(7), c.GetUnchecked(0))

	_, ok = c.Get(2)
	assert.False(t, ok)
	_, ok = c.Get(-1)
	assert.False(t, ok)
}

func TestCompactInts_All(t *testing.T) {
	c := NewCompactInts()
	for _, v := range []uint64{3, 1, 4, 1, 5} {
		c.Push(v)
	}

	var idx []int
	var vals []uint64
	for i, v := range c.All() {
		idx = append(idx, i)
		vals = append(vals, v)
		if i == 2 {
			break
		}
	}
	assert.Equal(t, []int{0, 1, 2}, idx)
	assert.Equal(t, []uint64{3, 1, 4}, vals)
}

func TestCompactInts_ShrinkAndClone(t *testing.T) {
	for name, opts := range backings() {
		t.Run(name, func(t *testing.T) {
			c := NewCompactInts(opts()...)
			defer c.Free()
			c.Reserve(100)
			c.Push(1)
			c.Push(65536)

			c.ShrinkToFit()
			assert.Equal(t, 2, c.Cap())

			cl := c.Clone()
			defer cl.Free()
			assert.Equal(t, Width32, cl.Width())
			assert.Equal(t, []uint64{1, 65536}, slices.Collect(cl.Values()))

			cl.Push(5_000_000_000)
			assert.Equal(t, Width32, c.Width())
			assert.Equal(t, 2, c.Len())
		})
	}
}

func TestCompactInts_Free(t *testing.T) {
	m := alloc.NewMmap()
	c := NewCompactInts(WithAllocator(m))
	c.Push(1 << 20)
	assert.Positive(t, m.Stats().BytesInUse)

	c.Free()
	assert.Zero(t, m.Stats().BytesInUse)
	assert.Equal(t, 0, c.Len())
	assert.Equal(t, Width8, c.Width())

	c.Push(3)
	assert.Equal(t, Width8, c.Width())
	c.Free()
}

func TestCompactInts_UpgradeReporting(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	m := &BasicMetricsCollector{}

	c := NewCompactInts(WithLogger(logger), WithMetricsCollector(m))
	c.Push(1)
	c.Push(2)
	c.Push(300)
	c.Push(70000)

	stats := m.GetStats()
	assert.Equal(t, int64(2), stats.UpgradeCount)
	assert.Equal(t, int64(5), stats.ValuesReencoded)

	out := buf.String()
	assert.Contains(t, out, "compact ints width upgraded")
	assert.Contains(t, out, "from=u8 to=u16 count=2")
	assert.Contains(t, out, "from=u16 to=u32 count=3")
}

func TestWidth_String(t *testing.T) {
	assert.Equal(t, "u8", Width8.String())
	assert.Equal(t, "u64", Width64.String())
}

func BenchmarkCompactInts_Push(b *testing.B) {
	b.ReportAllocs()
	for b.Loop() {
		var c CompactInts
		for i := range 100_000 {
			c.Push(uint64(i))
		}
		c.Free()
	}
}
