// Copyright 2026 go-column Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package workspace provides an arena of reusable column-sized scratch
// buffers for kernels that need temporaries without per-call allocation.
//
// A Pool is private to one column task: reservations are not synchronized.
// Take hands out an opaque handle scoped to one kernel invocation; Release
// returns the slots. Live reservations never alias, and a multi-buffer
// reservation is laid out in adjacent slots so the buffers can be walked as
// one contiguous block.
//
// Exhausting the pool is a resource-sizing bug, not a runtime condition:
// it panics with a descriptive message.
package workspace

import "github.com/ajroetker/go-column/vcol"

// Pool is a fixed-capacity arena of equally sized scratch slots.
type Pool[T vcol.Floats] struct {
	buf          []vcol.Pack[T]
	packsPerSlot int
	inUse        []bool
}

// NewPool creates an arena of nslots slots, each large enough for the given
// layout (use the interface layout if both grids are needed: a midpoint
// column fits in an interface slot).
func NewPool[T vcol.Floats](nslots int, l vcol.Layout) *Pool[T] {
	vcol.Assertf(nslots > 0, "workspace: pool needs at least one slot")
	return &Pool[T]{
		buf:          make([]vcol.Pack[T], nslots*l.NumPacks),
		packsPerSlot: l.NumPacks,
		inUse:        make([]bool, nslots),
	}
}

// Handle identifies a live reservation. Release it exactly once.
type Handle struct {
	pool     releaser
	start, n int
	released bool
}

type releaser interface {
	release(start, n int)
}

// Release returns the reservation's slots to the pool.
func (h *Handle) Release() {
	vcol.Assertf(!h.released, "workspace: reservation released twice")
	h.released = true
	h.pool.release(h.start, h.n)
}

// Take reserves one scratch buffer shaped by the given layout.
func (p *Pool[T]) Take(l vcol.Layout) (*Handle, vcol.Column[T]) {
	h, cols := p.TakeMany(1, l)
	return h, cols[0]
}

// TakeMany reserves n adjacent scratch buffers, each shaped by the given
// layout. The buffers occupy contiguous slots in reservation order.
func (p *Pool[T]) TakeMany(n int, l vcol.Layout) (*Handle, []vcol.Column[T]) {
	vcol.Assertf(l.NumPacks <= p.packsPerSlot,
		"workspace: a %d-level buffer does not fit a %d-pack slot", l.NumLevels, p.packsPerSlot)

	start := p.findRun(n)
	if start < 0 {
		panic("workspace: pool exhausted; size the pool for the deepest kernel nesting")
	}
	for i := start; i < start+n; i++ {
		p.inUse[i] = true
	}

	cols := make([]vcol.Column[T], n)
	for i := range cols {
		base := (start + i) * p.packsPerSlot
		cols[i] = vcol.WrapColumn(p.buf[base:base+p.packsPerSlot], l)
	}
	return &Handle{pool: p, start: start, n: n}, cols
}

// findRun locates n contiguous free slots, or returns -1.
func (p *Pool[T]) findRun(n int) int {
	run := 0
	for i := range p.inUse {
		if p.inUse[i] {
			run = 0
			continue
		}
		run++
		if run == n {
			return i - n + 1
		}
	}
	return -1
}

func (p *Pool[T]) release(start, n int) {
	for i := start; i < start+n; i++ {
		p.inUse[i] = false
	}
}
