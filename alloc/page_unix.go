//go:build unix

package alloc

import (
	"os"

	"golang.org/x/sys/unix"
)

// PageAllocator is the platform page backend: blocks are anonymous
// private mappings obtained straight from the kernel. Mappings are
// page-aligned, so any layout alignment up to the page size is satisfied
// for free; alignments beyond the page size are unsupported and yield nil.
//
// Compared to SystemAllocator, Free here genuinely returns memory to the
// operating system, which makes this backend a good backing store for
// long-lived arenas.
type PageAllocator struct{}

// NewPage returns the page backend. All PageAllocator values are
// interchangeable.
func NewPage() PageAllocator {
	return PageAllocator{}
}

// Alloc maps l.Size bytes of zeroed anonymous memory. Zero-size requests
// are raised to one byte, which still occupies a whole page.
func (PageAllocator) Alloc(l Layout) []byte {
	l = l.normalized()
	if l.Align > os.Getpagesize() {
		return nil
	}
	size := l.Size
	if size == 0 {
		size = 1
	}
	b, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil
	}
	return b
}

// Free unmaps b. The slice must be exactly what Alloc (or Realloc)
// returned; the unmap error is unreportable through the capability and a
// failed unmap only leaks the mapping, so it is dropped.
func (PageAllocator) Free(b []byte, l Layout) {
	_ = unix.Munmap(b)
}

// AllocZeroed is the native zeroed path: anonymous mappings are born
// zeroed.
func (p PageAllocator) AllocZeroed(l Layout) []byte {
	return p.Alloc(l)
}

var (
	_ Allocator     = PageAllocator{}
	_ ZeroAllocator = PageAllocator{}
)
