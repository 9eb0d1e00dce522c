package alloc

import "unsafe"

// New allocates a zeroed T from any allocator capability. Returns nil on
// OOM. The value lives until the allocator reclaims it, which for arenas
// means Reset or Close.
//
// Do not store Go pointers in values placed in memory the garbage
// collector cannot see (PageAllocator mappings, or arenas backed by it):
// the collector will not keep the referents alive.
func New[T any](a Allocator) *T {
	b := AllocZeroed(a, LayoutOf[T]())
	if b == nil {
		return nil
	}
	return (*T)(unsafe.Pointer(unsafe.SliceData(b)))
}

// MakeSlice allocates a zeroed slice of n values of T from a. Returns nil
// when n <= 0, when the total size overflows, or on OOM. The same
// Go-pointer caveat as New applies.
func MakeSlice[T any](a Allocator, n int) []T {
	if n <= 0 {
		return nil
	}
	l, err := SliceLayout[T](n)
	if err != nil {
		return nil
	}
	b := AllocZeroed(a, l)
	if b == nil {
		return nil
	}
	return unsafe.Slice((*T)(unsafe.Pointer(unsafe.SliceData(b))), n)
}
