package alloc

// Allocator is the capability every backend implements. A successful
// allocation is a non-nil []byte of exactly l.Size bytes (a zero-size
// request may yield a non-nil zero-length block); out of memory is a nil
// slice, never a panic and never an error value.
//
// Implementations:
//   - SystemAllocator: Go heap backend, stateless
//   - PageAllocator: platform page backend (mmap on unix)
//   - BumpAllocator: chunked arena that itself allocates from a backing
//     Allocator, so allocators compose recursively
//
// Free must tolerate being a no-op (arenas reclaim only in bulk). Callers
// must pass back the exact slice an Alloc returned, with the same layout.
type Allocator interface {
	Alloc(l Layout) []byte
	Free(b []byte, l Layout)
}

// Reallocator is the optional resize capability. Backends that cannot
// resize natively simply do not implement it; Realloc below supplies the
// generic alloc-copy-free fallback for them.
type Reallocator interface {
	Realloc(b []byte, old, new Layout) []byte
}

// ZeroAllocator is the optional zeroed-allocation capability. AllocZeroed
// below falls back to Alloc plus an explicit clear for backends without it.
type ZeroAllocator interface {
	AllocZeroed(l Layout) []byte
}

// Alloc requests l.Size bytes on an l.Align boundary from a. Returns nil
// on OOM.
func Alloc(a Allocator, l Layout) []byte {
	return a.Alloc(l.normalized())
}

// Free returns b to a. A nil b is a guaranteed no-op: the backend is never
// invoked with a nil block, so implementations need no nil check of their
// own.
func Free(a Allocator, b []byte, l Layout) {
	if b == nil {
		return
	}
	a.Free(b, l.normalized())
}

// Realloc resizes b from layout old to layout new. If a implements
// Reallocator the backend handles it natively; otherwise the generic
// policy applies:
//
//   - nil b behaves as Alloc(a, new)
//   - new.Size == 0 frees b and returns nil
//   - otherwise a fresh block is allocated, min(old.Size, new.Size) bytes
//     are copied, and b is freed; on OOM the result is nil and b is left
//     untouched
func Realloc(a Allocator, b []byte, old, new Layout) []byte {
	old, new = old.normalized(), new.normalized()
	if r, ok := a.(Reallocator); ok {
		return r.Realloc(b, old, new)
	}
	if b == nil {
		return a.Alloc(new)
	}
	if new.Size == 0 {
		a.Free(b, old)
		return nil
	}
	fresh := a.Alloc(new)
	if fresh == nil {
		return nil
	}
	copy(fresh, b[:min(old.Size, new.Size)])
	a.Free(b, old)
	return fresh
}

// AllocZeroed requests l.Size zeroed bytes from a. Backends without a
// native zeroed path get Alloc followed by a clear of exactly l.Size
// bytes (skipped on OOM).
func AllocZeroed(a Allocator, l Layout) []byte {
	l = l.normalized()
	if z, ok := a.(ZeroAllocator); ok {
		return z.AllocZeroed(l)
	}
	b := a.Alloc(l)
	if b != nil {
		clear(b[:l.Size])
	}
	return b
}
