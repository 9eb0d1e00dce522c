package alloc

import "errors"

var (
	// ErrLayoutOverflow indicates that computing the size of an array layout
	// overflowed the address space.
	ErrLayoutOverflow = errors.New("alloc: array layout size overflows")
)
