// Package alloc provides the memory-allocator core the rest of the fluf
// standard library is built on: a polymorphic allocator capability, a
// system backend, a page backend, and a chunked bump arena.
//
// # Overview
//
// Every container in fluf (vectors, hash maps, owned strings, interners)
// holds an Allocator value and obtains its memory through it. The
// capability is four operations - Alloc, Free, Realloc, AllocZeroed - of
// which the last two are optional per backend: the package-level entry
// points detect the optional capabilities by interface upgrade and supply
// a generic fallback, so a backend implements only what it can do
// natively and every caller still sees the full contract.
//
// Out of memory is always a nil result. No operation panics for a
// resource condition; panics are reserved for programmer errors such as
// a non-power-of-two alignment handed to NewLayout.
//
// # Backends
//
// SystemAllocator serves blocks from the Go heap. It is stateless, its
// Free is a no-op (the runtime reclaims unreachable blocks), and it has
// no native resize, so Realloc on it exercises the generic fallback by
// design.
//
// PageAllocator serves whole-page blocks straight from the kernel via
// anonymous mmap on unix, with a native mremap-based Realloc on Linux.
// On platforms without a usable mmap surface it degrades to the heap.
//
// BumpAllocator is the arena: it carves allocations out of chunks by
// decrementing a single bump pointer and reclaims memory only in bulk,
// via Reset (keep the newest chunk, release the rest) or Close (release
// everything). Chunks come from a backing Allocator chosen at
// construction, and since the arena itself satisfies Allocator, arenas
// nest: an arena can back another arena, a vector, or an interner.
//
// # Basic usage
//
//	ba := alloc.NewBump(alloc.NewSystem(), 0)
//	defer ba.Close()
//
//	buf := ba.AllocBytes(1024)          // raw bytes
//	node := alloc.New[Node](ba)         // typed, zeroed
//	ids := alloc.MakeSlice[int32](ba, 64)
//	name := ba.AllocString("main")      // arena-owned string
//
//	ba.Reset() // O(chunks) bulk reclaim; everything above is now invalid
//
// # Growth and limits
//
// The arena starts empty and allocates its first chunk lazily. Each new
// chunk doubles the previous usable capacity, floored at roughly 4 KiB;
// a chunk is never smaller than the request that forced it. With
// SetAllocationLimit the cumulative bytes taken from the backing
// allocator are capped: growth shrinks to the remaining budget when it
// can and fails with nil when even the bare request no longer fits.
// AllocatedBytes reports the cumulative total in O(1).
//
// # Thread safety
//
// BumpAllocator is not safe for concurrent use; confine it to one
// goroutine or synchronize externally. SystemAllocator and PageAllocator
// inherit the thread safety of the runtime allocator and the kernel
// respectively.
//
// # Lifetimes
//
// Memory returned by an arena is valid until the next Reset or Close of
// that arena, and the arena borrows its backing allocator, so the
// backing allocator must outlive the arena. The arena never tracks
// individual allocations: Free on it is a no-op and Realloc abandons the
// old block in place. That bulk-only reclamation is the point of an
// arena, not a gap.
package alloc
