package vcol

// Layout describes how a column of NumLevels per-level values maps onto
// packs. The final pack may have unused trailing lanes; LastPack and
// LastPackEnd identify the last valid lane so kernels can treat the tail
// safely.
//
// A column with N midpoint levels has N+1 interface levels; the two layouts
// generally differ in pack count and tail position, so code handling both
// grids carries one Layout for each.
type Layout struct {
	// NumLevels is the number of valid per-level values.
	NumLevels int
	// NumPacks is the number of packs needed to cover NumLevels.
	NumPacks int
	// LastPack is the index of the final (possibly partial) pack.
	LastPack int
	// LastPackEnd is the lane index of the last valid level within LastPack.
	LastPackEnd int
}

// NewLayout returns the pack layout for a column of nlev levels.
func NewLayout(nlev int) Layout {
	assertf(nlev > 0, "vcol: layout requires a positive level count, got %d", nlev)
	np := (nlev + Width - 1) / Width
	return Layout{
		NumLevels:   nlev,
		NumPacks:    np,
		LastPack:    np - 1,
		LastPackEnd: (nlev - 1) % Width,
	}
}

// Interfaces returns the layout of the interface grid bounding this
// midpoint layout: one more level.
func (l Layout) Interfaces() Layout {
	return NewLayout(l.NumLevels + 1)
}

// PackLanes returns the number of valid lanes in pack ip.
func (l Layout) PackLanes(ip int) int {
	if ip == l.LastPack {
		return l.LastPackEnd + 1
	}
	return Width
}

// Column is a column buffer: an ordered sequence of packs covering the
// levels described by its Layout. The packs beyond the last valid lane hold
// unspecified values; packed kernels may write them, but they must never be
// read.
//
// Columns do not own their packs: slicing a Column shares storage, which the
// remap and workspace code rely on.
type Column[T Floats] struct {
	Packs  []Pack[T]
	Layout Layout
}

// NewColumn allocates a zero-filled column for the given layout.
func NewColumn[T Floats](l Layout) Column[T] {
	return Column[T]{Packs: make([]Pack[T], l.NumPacks), Layout: l}
}

// ColumnFromSlice builds a column from per-level values. The tail lanes of
// the final pack are zero.
func ColumnFromSlice[T Floats](values []T) Column[T] {
	l := NewLayout(len(values))
	c := NewColumn[T](l)
	for k, v := range values {
		c.Packs[k/Width][k%Width] = v
	}
	return c
}

// WrapColumn reinterprets existing pack storage as a column with the given
// layout. The slice must have at least l.NumPacks packs.
func WrapColumn[T Floats](packs []Pack[T], l Layout) Column[T] {
	assertf(len(packs) >= l.NumPacks, "vcol: %d packs cannot back a %d-level column", len(packs), l.NumLevels)
	return Column[T]{Packs: packs[:l.NumPacks], Layout: l}
}

// At returns the value at level k.
func (c Column[T]) At(k int) T {
	return c.Packs[k/Width][k%Width]
}

// SetAt stores v at level k.
func (c Column[T]) SetAt(k int, v T) {
	c.Packs[k/Width][k%Width] = v
}

// LaneAt returns a pointer to the lane holding level k, for in-place
// merges.
func (c Column[T]) LaneAt(k int) *T {
	return &c.Packs[k/Width][k%Width]
}

// AddAt adds v to the value at level k.
func (c Column[T]) AddAt(k int, v T) {
	c.Packs[k/Width][k%Width] += v
}

// Slice copies the valid levels into a fresh scalar slice.
func (c Column[T]) Slice() []T {
	out := make([]T, c.Layout.NumLevels)
	for k := range out {
		out[k] = c.At(k)
	}
	return out
}

// Fill sets every valid level to v.
func (c Column[T]) Fill(v T) {
	for k := 0; k < c.Layout.NumLevels; k++ {
		c.SetAt(k, v)
	}
}

// CopyFrom copies the valid levels of src into c. The layouts must agree.
func (c Column[T]) CopyFrom(src Column[T]) {
	assertf(c.Layout.NumLevels == src.Layout.NumLevels,
		"vcol: copy between columns of %d and %d levels", c.Layout.NumLevels, src.Layout.NumLevels)
	copy(c.Packs, src.Packs)
}
