package alloc

import (
	"fmt"
	"unsafe"

	"github.com/Karesis/fluf/internal/mathutil"
)

// Layout describes a single memory request: how many bytes and on what
// boundary. The zero value (Align 0) is treated as byte alignment by every
// allocator in this package; any other alignment must be a power of two.
type Layout struct {
	Size  int
	Align int
}

// NewLayout builds a Layout, validating the alignment. A non-power-of-two
// alignment or a negative size is a bug in the caller, not a runtime
// condition, so both panic.
func NewLayout(size, align int) Layout {
	if size < 0 {
		panic(fmt.Sprintf("alloc: negative layout size %d", size))
	}
	if !mathutil.IsPowerOfTwo(uintptr(align)) {
		panic(fmt.Sprintf("alloc: layout alignment %d is not a power of two", align))
	}
	return Layout{Size: size, Align: align}
}

// ArrayLayout returns the layout of n contiguous items of the given layout.
// Multiplicative overflow yields ErrLayoutOverflow rather than a wrapped size.
func ArrayLayout(item Layout, n int) (Layout, error) {
	total, ok := mathutil.CheckedMul(item.Size, n)
	if !ok {
		return Layout{}, ErrLayoutOverflow
	}
	return Layout{Size: total, Align: item.Align}, nil
}

// LayoutOf returns the layout of a single value of type T.
func LayoutOf[T any]() Layout {
	var zero T
	return Layout{
		Size:  int(unsafe.Sizeof(zero)),
		Align: int(unsafe.Alignof(zero)),
	}
}

// SliceLayout returns the layout of n contiguous values of type T.
func SliceLayout[T any](n int) (Layout, error) {
	return ArrayLayout(LayoutOf[T](), n)
}

// normalized maps the zero-value alignment to byte alignment so the zero
// value of Layout stays usable on the allocation paths.
func (l Layout) normalized() Layout {
	if l.Align == 0 {
		l.Align = 1
	}
	return l
}
