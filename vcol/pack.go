package vcol

import "math"

// This file provides the lane-wise pack operations. They are pure Go; the
// fixed Width array lets the compiler unroll and, where profitable,
// auto-vectorize the loops. Results are identical on every architecture.

// Load creates a pack from the first Width elements of src.
// If src is shorter, the remaining lanes are zero.
func Load[T Floats](src []T) Pack[T] {
	var p Pack[T]
	n := min(len(src), Width)
	copy(p[:n], src[:n])
	return p
}

// Store writes the pack's lanes to dst.
func Store[T Floats](p Pack[T], dst []T) {
	n := min(len(dst), Width)
	copy(dst[:n], p[:n])
}

// Set creates a pack with all lanes set to the same value.
func Set[T Floats](value T) Pack[T] {
	var p Pack[T]
	for i := range p {
		p[i] = value
	}
	return p
}

// Zero returns a pack with all lanes zero.
func Zero[T Floats]() Pack[T] {
	var p Pack[T]
	return p
}

// GetLane returns lane i.
func GetLane[T Floats](p Pack[T], i int) T {
	return p[i]
}

// Add returns a + b lane-wise.
func Add[T Floats](a, b Pack[T]) Pack[T] {
	for i := range a {
		a[i] += b[i]
	}
	return a
}

// Sub returns a - b lane-wise.
func Sub[T Floats](a, b Pack[T]) Pack[T] {
	for i := range a {
		a[i] -= b[i]
	}
	return a
}

// Mul returns a * b lane-wise.
func Mul[T Floats](a, b Pack[T]) Pack[T] {
	for i := range a {
		a[i] *= b[i]
	}
	return a
}

// Div returns a / b lane-wise.
func Div[T Floats](a, b Pack[T]) Pack[T] {
	for i := range a {
		a[i] /= b[i]
	}
	return a
}

// Neg returns -a lane-wise.
func Neg[T Floats](a Pack[T]) Pack[T] {
	for i := range a {
		a[i] = -a[i]
	}
	return a
}

// Scale returns a * s for a scalar s.
func Scale[T Floats](a Pack[T], s T) Pack[T] {
	for i := range a {
		a[i] *= s
	}
	return a
}

// AddScalar returns a + s for a scalar s.
func AddScalar[T Floats](a Pack[T], s T) Pack[T] {
	for i := range a {
		a[i] += s
	}
	return a
}

// Pow returns a^e lane-wise, for a scalar exponent e.
func Pow[T Floats](a Pack[T], e T) Pack[T] {
	for i := range a {
		a[i] = T(math.Pow(float64(a[i]), float64(e)))
	}
	return a
}

// SlideUpLanes shifts lanes toward higher indices by n, inserting zeros in
// the low lanes: lane i of the result is lane i-n of p, or zero for i < n.
func SlideUpLanes[T Floats](p Pack[T], n int) Pack[T] {
	var out Pack[T]
	for i := n; i < Width; i++ {
		out[i] = p[i-n]
	}
	return out
}

// SlideDownLanes shifts lanes toward lower indices by n, inserting zeros in
// the high lanes: lane i of the result is lane i+n of p, or zero for
// i >= Width-n.
func SlideDownLanes[T Floats](p Pack[T], n int) Pack[T] {
	var out Pack[T]
	for i := 0; i < Width-n; i++ {
		out[i] = p[i+n]
	}
	return out
}

// Blend returns a pack whose lane i is yes[i] where mask[i] is true and
// no[i] otherwise. This is the lane-predicated assignment primitive:
//
//	u = Blend(atTop, topValue, u)
func Blend[T Floats](mask Mask[T], yes, no Pack[T]) Pack[T] {
	for i := range no {
		if mask[i] {
			no[i] = yes[i]
		}
	}
	return no
}

// LessThan returns a mask with lane i active where a[i] < b[i].
func LessThan[T Floats](a, b Pack[T]) Mask[T] {
	var m Mask[T]
	for i := range a {
		m[i] = a[i] < b[i]
	}
	return m
}

// GreaterThan returns a mask with lane i active where a[i] > b[i].
func GreaterThan[T Floats](a, b Pack[T]) Mask[T] {
	var m Mask[T]
	for i := range a {
		m[i] = a[i] > b[i]
	}
	return m
}

// And returns the lane-wise conjunction of two masks.
func And[T Floats](a, b Mask[T]) Mask[T] {
	for i := range a {
		a[i] = a[i] && b[i]
	}
	return a
}

// Not returns the lane-wise negation of a mask.
func Not[T Floats](m Mask[T]) Mask[T] {
	for i := range m {
		m[i] = !m[i]
	}
	return m
}
