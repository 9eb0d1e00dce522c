package alloc

import "unsafe"

// countingAllocator wraps a backend and records how often each operation
// reaches it, for asserting when an arena (or the package-level entry
// points) actually touch the backing allocator.
type countingAllocator struct {
	inner  Allocator
	allocs int
	frees  int

	// failNext makes every subsequent Alloc report OOM.
	failNext bool
}

func (c *countingAllocator) Alloc(l Layout) []byte {
	c.allocs++
	if c.failNext {
		return nil
	}
	return c.inner.Alloc(l)
}

func (c *countingAllocator) Free(b []byte, l Layout) {
	c.frees++
	c.inner.Free(b, l)
}

// dirtyAllocator hands out blocks pre-filled with a junk byte and
// implements only the mandatory operations, so AllocZeroed and Realloc
// on it must go through the interface-level fallbacks.
type dirtyAllocator struct {
	allocs int
	frees  int
}

func (d *dirtyAllocator) Alloc(l Layout) []byte {
	d.allocs++
	b := SystemAllocator{}.Alloc(l)
	for i := range b {
		b[i] = 0xAA
	}
	return b
}

func (d *dirtyAllocator) Free(b []byte, l Layout) {
	d.frees++
}

// oomAllocator always reports out of memory.
type oomAllocator struct{}

func (oomAllocator) Alloc(l Layout) []byte   { return nil }
func (oomAllocator) Free(b []byte, l Layout) {}

// addrOf returns the address of the first byte of b.
func addrOf(b []byte) uintptr {
	return uintptr(unsafe.Pointer(unsafe.SliceData(b)))
}

// overlaps reports whether the byte ranges of a and b intersect.
func overlaps(a, b []byte) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	aStart, aEnd := addrOf(a), addrOf(a)+uintptr(len(a))
	bStart, bEnd := addrOf(b), addrOf(b)+uintptr(len(b))
	return aStart < bEnd && bStart < aEnd
}
