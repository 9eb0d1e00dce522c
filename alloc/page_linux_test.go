//go:build linux

package alloc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestPageAllocator_NativeRealloc checks the mremap path: content
// survives both growth and shrink, and the capability is dispatched
// natively instead of through the fallback.
func TestPageAllocator_NativeRealloc(t *testing.T) {
	p := NewPage()
	_, isNative := Allocator(p).(Reallocator)
	require.True(t, isNative, "linux page backend resizes natively")

	b := Alloc(p, NewLayout(4096, 8))
	require.NotNil(t, b)
	copy(b, "resize me")

	b = Realloc(p, b, NewLayout(4096, 8), NewLayout(16384, 8))
	require.NotNil(t, b)
	require.Len(t, b, 16384)
	assert.Equal(t, "resize me", string(b[:9]))

	b = Realloc(p, b, NewLayout(16384, 8), NewLayout(4096, 8))
	require.NotNil(t, b)
	require.Len(t, b, 4096)
	assert.Equal(t, "resize me", string(b[:9]))

	Free(p, b, NewLayout(4096, 8))
}

// TestPageAllocator_ReallocNilAndZero checks the shared resize contract
// on the native implementation.
func TestPageAllocator_ReallocNilAndZero(t *testing.T) {
	p := NewPage()

	b := Realloc(p, nil, Layout{}, NewLayout(4096, 8))
	require.NotNil(t, b)
	require.Len(t, b, 4096)

	got := Realloc(p, b, NewLayout(4096, 8), NewLayout(0, 1))
	assert.Nil(t, got, "zero new size frees the mapping and yields nil")
}
