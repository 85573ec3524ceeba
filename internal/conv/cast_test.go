//go:build amd64 || arm64

package conv

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllocSize(t *testing.T) {
	t.Run("zero count", func(t *testing.T) {
		got, ok := AllocSize(0, 8)
		assert.True(t, ok)
		assert.Equal(t, 0, got)
	})

	t.Run("zero element size", func(t *testing.T) {
		got, ok := AllocSize(math.MaxInt, 0)
		assert.True(t, ok)
		assert.Equal(t, 0, got)
	})

	t.Run("valid product", func(t *testing.T) {
		got, ok := AllocSize(1000, 8)
		assert.True(t, ok)
		assert.Equal(t, 8000, got)
	})

	t.Run("exactly the limit", func(t *testing.T) {
		got, ok := AllocSize(MaxAllocBytes, 1)
		assert.True(t, ok)
		assert.Equal(t, MaxAllocBytes, got)
	})

	t.Run("one past the limit", func(t *testing.T) {
		_, ok := AllocSize(MaxAllocBytes+1, 1)
		assert.False(t, ok)
	})

	t.Run("multiplication overflow", func(t *testing.T) {
		_, ok := AllocSize(math.MaxInt, 16)
		assert.False(t, ok)
	})

	t.Run("negative count", func(t *testing.T) {
		_, ok := AllocSize(-1, 1)
		assert.False(t, ok)
	})
}

func TestGrowCapacity(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{0, 1},
		{1, 2},
		{2, 4},
		{3, 5},
		{4, 7},
		{10, 16},
		{64, 97},
	}
	for _, tt := range tests {
		got, ok := GrowCapacity(tt.in)
		assert.True(t, ok)
		assert.Equal(t, tt.want, got, "GrowCapacity(%d)", tt.in)
		assert.Greater(t, got, tt.in)
	}

	_, ok := GrowCapacity(math.MaxInt)
	assert.False(t, ok)

	_, ok = GrowCapacity(-1)
	assert.False(t, ok)
}

func TestBitsFor(t *testing.T) {
	tests := []struct {
		v    uint64
		want int
	}{
		{0, 8},
		{math.MaxUint8, 8},
		{math.MaxUint8 + 1, 16},
		{math.MaxUint16, 16},
		{math.MaxUint16 + 1, 32},
		{math.MaxUint32, 32},
		{math.MaxUint32 + 1, 64},
		{math.MaxUint64, 64},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, BitsFor(tt.v), "BitsFor(%d)", tt.v)
	}
}
