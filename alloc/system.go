package alloc

import (
	"unsafe"

	"github.com/Karesis/fluf/internal/mathutil"
)

// SystemAllocator is the stateless Go-heap backend. Blocks come from the
// runtime allocator; when a requested alignment exceeds what the heap
// guarantees, the block is over-allocated and an aligned subslice is
// returned. Free is a no-op because the runtime reclaims blocks itself
// once they become unreachable.
//
// SystemAllocator inherits the runtime allocator's thread safety; the
// value itself carries no state at all.
type SystemAllocator struct{}

// NewSystem returns the system backend. All SystemAllocator values are
// interchangeable.
func NewSystem() SystemAllocator {
	return SystemAllocator{}
}

// Alloc obtains l.Size bytes on an l.Align boundary from the Go heap.
// Zero-size requests are raised to one byte so every success is a unique
// non-nil block.
func (SystemAllocator) Alloc(l Layout) []byte {
	l = l.normalized()
	size := l.Size
	if size == 0 {
		size = 1
	}
	// Over-allocate and carve the aligned window. For align 1 this
	// degenerates to a plain make.
	buf := make([]byte, size+l.Align-1)
	base := uintptr(unsafe.Pointer(unsafe.SliceData(buf)))
	off := int(mathutil.AlignUp(base, uintptr(l.Align)) - base)
	return buf[off : off+size : off+size]
}

// Free is a no-op: the runtime tracks every heap block and reclaims it
// when unreachable, so there is nothing to hand back explicitly.
func (SystemAllocator) Free(b []byte, l Layout) {}

// AllocZeroed is the native zeroed path: heap memory is born zeroed.
func (s SystemAllocator) AllocZeroed(l Layout) []byte {
	return s.Alloc(l)
}

// Realloc is intentionally absent: the heap has no aligned resize
// primitive, so the interface-level fallback in Realloc handles resizing
// for this backend.

var (
	_ Allocator     = SystemAllocator{}
	_ ZeroAllocator = SystemAllocator{}
)
