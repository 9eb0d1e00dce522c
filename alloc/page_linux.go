//go:build linux

package alloc

import (
	"os"

	"golang.org/x/sys/unix"
)

// Realloc resizes b in place where the kernel allows it, moving the
// mapping otherwise. Linux is the one platform with a native page resize
// primitive; elsewhere PageAllocator simply lacks the Reallocator
// capability and the generic alloc-copy-free fallback applies.
func (p PageAllocator) Realloc(b []byte, old, new Layout) []byte {
	old, new = old.normalized(), new.normalized()
	if b == nil {
		return p.Alloc(new)
	}
	if new.Size == 0 {
		p.Free(b, old)
		return nil
	}
	if new.Align > os.Getpagesize() {
		return nil
	}
	nb, err := unix.Mremap(b, new.Size, unix.MREMAP_MAYMOVE)
	if err != nil {
		return nil
	}
	return nb
}

var _ Reallocator = PageAllocator{}
