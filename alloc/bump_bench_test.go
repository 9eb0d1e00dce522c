package alloc

import (
	"testing"
)

// BenchmarkBumpAllocator_Alloc measures fast-path carve throughput with
// periodic resets so the arena stays at a steady chunk count.
func BenchmarkBumpAllocator_Alloc(b *testing.B) {
	ba := NewBump(NewSystem(), 8)
	defer ba.Close()

	l := NewLayout(64, 8)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if ba.Alloc(l) == nil {
			b.Fatal("unexpected OOM")
		}
		if i%1024 == 1023 {
			ba.Reset()
		}
	}
}

// BenchmarkBumpAllocator_AllocOverAligned exercises the over-aligned path,
// which rounds the bump pointer down before carving.
func BenchmarkBumpAllocator_AllocOverAligned(b *testing.B) {
	ba := NewBump(NewSystem(), 8)
	defer ba.Close()

	l := NewLayout(48, 64)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if ba.Alloc(l) == nil {
			b.Fatal("unexpected OOM")
		}
		if i%1024 == 1023 {
			ba.Reset()
		}
	}
}

// BenchmarkBumpAllocator_Reset measures bulk reclamation of a multi-chunk
// arena.
func BenchmarkBumpAllocator_Reset(b *testing.B) {
	ba := NewBump(NewSystem(), 1)
	defer ba.Close()

	b.ResetTimer()
	b.ReportAllocs()

	for n := 0; n < b.N; n++ {
		for k := 0; k < 8; k++ {
			if ba.AllocBytes(4000) == nil {
				b.Fatal("unexpected OOM")
			}
		}
		ba.Reset()
	}
}

// BenchmarkSystemAllocator_Alloc is the baseline the arena is measured
// against.
func BenchmarkSystemAllocator_Alloc(b *testing.B) {
	s := NewSystem()
	l := NewLayout(64, 8)

	b.ResetTimer()
	b.ReportAllocs()

	for n := 0; n < b.N; n++ {
		if s.Alloc(l) == nil {
			b.Fatal("unexpected OOM")
		}
	}
}

// BenchmarkNew_Typed measures the generic typed path end to end.
func BenchmarkNew_Typed(b *testing.B) {
	ba := NewBump(NewSystem(), 8)
	defer ba.Close()

	type node struct {
		next  *node
		value uint64
	}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if New[node](ba) == nil {
			b.Fatal("unexpected OOM")
		}
		if i%1024 == 1023 {
			ba.Reset()
		}
	}
}
