//go:build !unix

package alloc

// PageAllocator degrades to the Go heap on platforms without a usable
// mmap surface. It keeps the same capability set as the unix build minus
// the native resize, so code written against it behaves identically.
type PageAllocator struct{}

// NewPage returns the page backend.
func NewPage() PageAllocator {
	return PageAllocator{}
}

// Alloc obtains the block from the Go heap.
func (PageAllocator) Alloc(l Layout) []byte {
	return SystemAllocator{}.Alloc(l)
}

// Free is a no-op; the runtime reclaims the block.
func (PageAllocator) Free(b []byte, l Layout) {}

// AllocZeroed is native: heap memory is born zeroed.
func (p PageAllocator) AllocZeroed(l Layout) []byte {
	return p.Alloc(l)
}

var (
	_ Allocator     = PageAllocator{}
	_ ZeroAllocator = PageAllocator{}
)
