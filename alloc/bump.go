package alloc

import (
	"fmt"
	"math"
	"unsafe"

	"github.com/Karesis/fluf/internal/mathutil"
)

const (
	// chunkAlign is the internal alignment every chunk is sized and
	// placed to. The minimum alignment of an arena can never exceed it.
	chunkAlign = 16

	// defaultChunkSize is the usable capacity of the first real chunk:
	// a page minus the bookkeeping overhead a chunk carries.
	defaultChunkSize = 4096 - chunkAlign

	defaultMinAlign = 8

	noLimit = math.MaxInt
)

// chunkFooter is the per-chunk bookkeeping record. data is the low end of
// the block and data+size its ceiling; ptr is the bump pointer, which
// starts at the ceiling and moves down toward data as allocations are
// carved out. prev links to the next-older chunk, ending at the empty
// sentinel. allocated is the cumulative usable byte count of the whole
// chain up to and including this chunk, so stat and limit queries never
// walk the list.
type chunkFooter struct {
	data      unsafe.Pointer
	ptr       unsafe.Pointer
	size      uintptr
	prev      *chunkFooter
	allocated uintptr
	buf       []byte // the backing block itself; what goes back to the backing allocator
}

// emptyChunk is the universal zero-capacity chunk every arena starts on.
// Its data and bump pointer reference the footer itself, so the pointer
// arithmetic on the hot path stays inside valid memory without a nil
// check, and it is never mutated: the fast path always runs out of
// capacity on it before touching ptr.
var emptyChunk = func() *chunkFooter {
	f := new(chunkFooter)
	f.data = unsafe.Pointer(f)
	f.ptr = unsafe.Pointer(f)
	f.prev = f
	return f
}()

// BumpAllocator is a chunked arena: allocations are carved from the
// current chunk by decrementing a single bump pointer, and memory is
// reclaimed only in bulk via Reset or Close, never per block. Chunks are
// obtained from a backing Allocator, which the arena borrows; the caller
// must keep the backing allocator alive for the arena's whole lifetime.
// Because BumpAllocator itself satisfies Allocator, an arena can back
// another arena.
//
// Not safe for concurrent use; confine an arena to one goroutine or
// synchronize externally.
type BumpAllocator struct {
	current  *chunkFooter
	backing  Allocator
	limit    int
	minAlign uintptr
}

// NewBump creates an empty arena on top of backing. No chunk is
// allocated until the first allocation. minAlign is the alignment the
// bump pointer is kept at between allocations; it must be a power of two
// no larger than 16, and 0 selects the default of 8. Requests with a
// larger alignment still work, they just take a slightly longer path.
func NewBump(backing Allocator, minAlign int) *BumpAllocator {
	if minAlign == 0 {
		minAlign = defaultMinAlign
	}
	if !mathutil.IsPowerOfTwo(uintptr(minAlign)) || minAlign > chunkAlign {
		panic(fmt.Sprintf("alloc: bump minimum alignment %d must be a power of two at most %d", minAlign, chunkAlign))
	}
	return &BumpAllocator{
		current:  emptyChunk,
		backing:  backing,
		limit:    noLimit,
		minAlign: uintptr(minAlign),
	}
}

// alignPtrDown rounds p down to a multiple of align. align must be a
// power of two and p must stay within its original allocation.
func alignPtrDown(p unsafe.Pointer, align uintptr) unsafe.Pointer {
	return unsafe.Add(p, -int(uintptr(p)&(align-1)))
}

// Alloc carves l.Size bytes aligned to l.Align out of the arena. The
// memory is uninitialized. Returns nil on OOM, including when chunk
// growth would exceed a configured allocation limit. A zero-size request
// returns a zero-length block at the current bump position without
// touching any state.
func (ba *BumpAllocator) Alloc(l Layout) []byte {
	l = l.normalized()
	if l.Size == 0 {
		p := alignPtrDown(ba.current.ptr, uintptr(l.Align))
		return unsafe.Slice((*byte)(p), 0)
	}
	p := ba.tryAllocFast(l)
	if p == nil {
		p = ba.allocSlow(l)
		if p == nil {
			return nil
		}
	}
	return unsafe.Slice((*byte)(p), l.Size)
}

// tryAllocFast attempts the carve within the current chunk. Returns nil
// when the chunk lacks capacity; nothing is mutated in that case, so the
// empty sentinel is never written to.
func (ba *BumpAllocator) tryAllocFast(l Layout) unsafe.Pointer {
	f := ba.current
	align := uintptr(l.Align)

	if align <= ba.minAlign {
		// The pointer is already aligned; rounding the size keeps it so.
		size, ok := mathutil.CheckedAlignUp(uintptr(l.Size), ba.minAlign)
		if !ok {
			return nil
		}
		capacity := uintptr(f.ptr) - uintptr(f.data)
		if size > capacity {
			return nil
		}
		p := unsafe.Add(f.ptr, -int(size))
		f.ptr = p
		return p
	}

	// Over-aligned request: round the pointer down to the boundary first,
	// then carve the size rounded to that same boundary.
	size, ok := mathutil.CheckedAlignUp(uintptr(l.Size), align)
	if !ok {
		return nil
	}
	end := alignPtrDown(f.ptr, align)
	if uintptr(end) < uintptr(f.data) {
		return nil
	}
	capacity := uintptr(end) - uintptr(f.data)
	if size > capacity {
		return nil
	}
	p := unsafe.Add(end, -int(size))
	f.ptr = p
	return p
}

// allocSlow grows the arena by one chunk and retries the carve there.
func (ba *BumpAllocator) allocSlow(l Layout) unsafe.Pointer {
	cur := ba.current

	// Double the previous usable capacity, clamping up to the default.
	var newSize uintptr
	if cur != emptyChunk {
		newSize = cur.size * 2
		if newSize < cur.size {
			newSize = ^uintptr(0)
		}
	}
	if newSize < defaultChunkSize {
		newSize = defaultChunkSize
	}

	// Make sure the chunk can hold the request that triggered growth.
	reqAlign := max(uintptr(l.Align), ba.minAlign)
	requested, ok := mathutil.CheckedAlignUp(uintptr(l.Size), reqAlign)
	if !ok {
		return nil
	}
	if newSize < requested {
		newSize = requested
	}

	// A configured limit caps cumulative backing bytes. The candidate is
	// shrunk to what remains; if even the bare request does not fit, the
	// allocation fails outright rather than partially.
	if ba.limit != noLimit {
		var remaining uintptr
		if uintptr(ba.limit) > cur.allocated {
			remaining = uintptr(ba.limit) - cur.allocated
		}
		if newSize > remaining {
			if requested > remaining {
				return nil
			}
			newSize = requested
		}
	}

	f := ba.newChunk(newSize, max(chunkAlign, ba.minAlign, uintptr(l.Align)), cur)
	if f == nil {
		return nil
	}
	ba.current = f

	// The chunk was sized to fit, so this cannot fail.
	return ba.tryAllocFast(l)
}

// newChunk obtains a block of at least usable bytes from the backing
// allocator and wires up its footer. Returns nil when the backing
// allocator reports OOM or the size arithmetic overflows.
func (ba *BumpAllocator) newChunk(usable, align uintptr, prev *chunkFooter) *chunkFooter {
	size, ok := mathutil.CheckedAlignUp(usable, chunkAlign)
	if !ok {
		return nil
	}
	size, ok = mathutil.CheckedAlignUp(size, align)
	if !ok || size == 0 || size > uintptr(math.MaxInt) {
		return nil
	}

	buf := ba.backing.Alloc(Layout{Size: int(size), Align: int(align)})
	if buf == nil {
		return nil
	}

	f := &chunkFooter{
		data:      unsafe.Pointer(unsafe.SliceData(buf)),
		size:      uintptr(len(buf)),
		prev:      prev,
		allocated: prev.allocated + uintptr(len(buf)),
		buf:       buf,
	}
	// The bump pointer starts at the ceiling, aligned down so the
	// pointer invariant holds from the first carve.
	f.ptr = alignPtrDown(unsafe.Add(f.data, len(buf)), ba.minAlign)
	return f
}

// releaseChain hands every chunk from f back along the prev links to the
// backing allocator. Chunks are always released whole.
func (ba *BumpAllocator) releaseChain(f *chunkFooter) {
	for f != emptyChunk {
		prev := f.prev
		ba.backing.Free(f.buf, Layout{Size: int(f.size), Align: chunkAlign})
		f = prev
	}
}

// Free is a no-op: an arena reclaims memory only in bulk through Reset
// or Close.
func (*BumpAllocator) Free(b []byte, l Layout) {}

// AllocZeroed carves and zero-fills exactly l.Size bytes.
func (ba *BumpAllocator) AllocZeroed(l Layout) []byte {
	b := ba.Alloc(l)
	if b != nil {
		clear(b)
	}
	return b
}

// Realloc has arena semantics: the old block is never freed, only
// abandoned in place until Reset or Close reclaims its chunk. A nil old
// block behaves as Alloc; a zero new size returns nil and abandons the
// old block; otherwise a fresh block is carved and min(old.Size,
// new.Size) bytes are copied over.
func (ba *BumpAllocator) Realloc(b []byte, old, new Layout) []byte {
	old, new = old.normalized(), new.normalized()
	if b == nil {
		return ba.Alloc(new)
	}
	if new.Size == 0 {
		return nil
	}
	fresh := ba.Alloc(new)
	if fresh != nil {
		n := min(old.Size, new.Size)
		copy(fresh[:n], b[:n])
	}
	return fresh
}

// Reset releases every chunk except the current one and rewinds the bump
// pointer to the top of that surviving chunk. The cost is proportional to
// the number of chunks released, not to bytes allocated. Memory handed
// out before the call must no longer be used.
func (ba *BumpAllocator) Reset() {
	cur := ba.current
	if cur == emptyChunk {
		return
	}
	ba.releaseChain(cur.prev)
	cur.prev = emptyChunk
	cur.ptr = alignPtrDown(unsafe.Add(cur.data, int(cur.size)), ba.minAlign)
	cur.allocated = cur.size
}

// Close releases the whole chunk chain back to the backing allocator and
// leaves the arena empty. Safe to call more than once; typically
// deferred right after NewBump. Memory handed out before the call must
// no longer be used.
func (ba *BumpAllocator) Close() {
	ba.releaseChain(ba.current)
	ba.current = emptyChunk
}

// SetAllocationLimit caps the cumulative bytes the arena may request from
// its backing allocator. Chunk growth that would push past the cap fails
// with OOM instead of shrinking below the triggering request. A negative
// n removes the limit. Bytes already allocated are unaffected.
func (ba *BumpAllocator) SetAllocationLimit(n int) {
	if n < 0 {
		n = noLimit
	}
	ba.limit = n
}

// AllocationLimit reports the configured cap, if any.
func (ba *BumpAllocator) AllocationLimit() (int, bool) {
	if ba.limit == noLimit {
		return 0, false
	}
	return ba.limit, true
}

// AllocatedBytes returns the cumulative usable bytes obtained from the
// backing allocator across the whole chunk chain. O(1).
func (ba *BumpAllocator) AllocatedBytes() int {
	return int(ba.current.allocated)
}

// BumpStats is a snapshot of arena bookkeeping.
type BumpStats struct {
	AllocatedBytes int // cumulative usable bytes from the backing allocator
	Chunks         int // live chunks in the chain
	Limit          int // configured allocation limit, -1 when unbounded
}

// Stats walks the chunk chain and returns a snapshot. O(chunks).
func (ba *BumpAllocator) Stats() BumpStats {
	chunks := 0
	for f := ba.current; f != emptyChunk; f = f.prev {
		chunks++
	}
	limit := -1
	if ba.limit != noLimit {
		limit = ba.limit
	}
	return BumpStats{
		AllocatedBytes: ba.AllocatedBytes(),
		Chunks:         chunks,
		Limit:          limit,
	}
}

// AllocBytes carves n bytes with byte alignment. Returns nil if n is
// negative or on OOM.
func (ba *BumpAllocator) AllocBytes(n int) []byte {
	if n < 0 {
		return nil
	}
	return ba.Alloc(Layout{Size: n, Align: 1})
}

// AllocCopy carves a byte-aligned copy of src inside the arena.
func (ba *BumpAllocator) AllocCopy(src []byte) []byte {
	b := ba.AllocBytes(len(src))
	if b != nil {
		copy(b, src)
	}
	return b
}

// AllocString copies s into the arena and returns a string backed by
// arena memory, valid until Reset or Close. Returns "" for an empty
// input and, indistinguishably, on OOM.
func (ba *BumpAllocator) AllocString(s string) string {
	if len(s) == 0 {
		return ""
	}
	b := ba.AllocBytes(len(s))
	if b == nil {
		return ""
	}
	copy(b, s)
	return unsafe.String(unsafe.SliceData(b), len(b))
}

// Compile-time capability checks
var (
	_ Allocator     = (*BumpAllocator)(nil)
	_ Reallocator   = (*BumpAllocator)(nil)
	_ ZeroAllocator = (*BumpAllocator)(nil)
)
