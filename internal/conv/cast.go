package conv

import (
	"math"
	"math/bits"
)

// MaxAllocBytes is the largest single allocation, in bytes, that a container
// may request. On 64-bit platforms it stays well below the runtime's heap
// address limit (48 bits); on 32-bit platforms it is the largest int32.
const MaxAllocBytes = (1<<47)*(bits.UintSize/64) + math.MaxInt32*(1-bits.UintSize/64)

// AllocSize returns n*elemSize as a byte count.
// ok is false if the product overflows or exceeds MaxAllocBytes.
func AllocSize(n int, elemSize uintptr) (size int, ok bool) {
	if n < 0 {
		return 0, false
	}
	hi, lo := bits.Mul64(uint64(n), uint64(elemSize))
	if hi != 0 || lo > MaxAllocBytes {
		return 0, false
	}
	return int(lo), true
}

// GrowCapacity returns the next capacity for a full buffer of capacity c:
// max(1, c + c/2 + 1). ok is false if the result does not fit an int.
func GrowCapacity(c int) (next int, ok bool) {
	if c < 0 {
		return 0, false
	}
	inc := c/2 + 1
	if c > math.MaxInt-inc {
		return 0, false
	}
	return c + inc, true
}

// BitsFor returns the narrowest of 8, 16, 32 or 64 that can hold v.
func BitsFor(v uint64) int {
	switch {
	case v <= math.MaxUint8:
		return 8
	case v <= math.MaxUint16:
		return 16
	case v <= math.MaxUint32:
		return 32
	default:
		return 64
	}
}
