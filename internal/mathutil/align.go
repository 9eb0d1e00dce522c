// Package mathutil provides alignment and overflow-checked arithmetic for
// the allocator core. All alignments are powers of two; callers are expected
// to validate that before reaching for these helpers.
package mathutil

import "math/bits"

// IsPowerOfTwo reports whether n is a power of two. Zero is not.
func IsPowerOfTwo(n uintptr) bool {
	return n != 0 && n&(n-1) == 0
}

// AlignUp returns n rounded up to the next multiple of align.
// align must be a power of two.
//
// Example:
//
//	AlignUp(1, 8)  = 8
//	AlignUp(8, 8)  = 8
//	AlignUp(9, 8)  = 16
func AlignUp(n, align uintptr) uintptr {
	return (n + align - 1) &^ (align - 1)
}

// AlignDown returns n rounded down to the previous multiple of align.
// align must be a power of two.
//
// Example:
//
//	AlignDown(7, 8)  = 0
//	AlignDown(8, 8)  = 8
//	AlignDown(15, 8) = 8
func AlignDown(n, align uintptr) uintptr {
	return n &^ (align - 1)
}

// CheckedAlignUp rounds n up to the next multiple of align, reporting
// failure instead of wrapping when n is within align-1 of the address
// space limit. align must be a power of two.
func CheckedAlignUp(n, align uintptr) (uintptr, bool) {
	sum, carry := bits.Add(uint(n), uint(align-1), 0)
	if carry != 0 {
		return 0, false
	}
	return uintptr(sum) &^ (align - 1), true
}

// CheckedMul multiplies two non-negative sizes, reporting failure on
// overflow instead of wrapping.
func CheckedMul(a, b int) (int, bool) {
	if a < 0 || b < 0 {
		return 0, false
	}
	hi, lo := bits.Mul(uint(a), uint(b))
	if hi != 0 || lo > uint(maxInt) {
		return 0, false
	}
	return int(lo), true
}

const maxInt = int(^uint(0) >> 1)
