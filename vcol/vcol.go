// Package vcol provides portable fixed-width packs and column buffers for
// vertical atmospheric-column kernels.
//
// It follows the layered design of SIMD libraries: a small value type (Pack)
// holds Width scalar lanes that are always processed together, and every
// per-level quantity in a column is stored as a sequence of packs. Kernels
// written against packs vectorize uniformly regardless of how many levels a
// column has, at the cost of a partially unused final pack.
//
// Basic usage:
//
//	lay := vcol.NewLayout(72)          // 72 midpoint levels
//	dp := vcol.NewColumn[float64](lay) // one column buffer
//	dp.SetAt(0, 1000.0)
//
// Higher-level kernels live in the subpackages: colops (interpolation,
// differencing, scans), eos (equation of state), elemops, remap, and iop.
package vcol

// Floats is a constraint for the scalar types a Pack can hold.
type Floats interface {
	~float32 | ~float64
}

// Width is the number of lanes in a Pack. It is a compile-time constant
// shared by the whole library: every column buffer, kernel, and scratch
// reservation assumes this pack width.
const Width = 8

// Pack is a fixed-width value type holding Width scalar lanes contiguously.
// Packs are copied freely; all arithmetic is lane-wise.
type Pack[T Floats] [Width]T

// Mask records which lanes of a pack are active. It is produced by the
// comparison helpers and consumed by Blend for lane-predicated assignment.
type Mask[T Floats] [Width]bool
