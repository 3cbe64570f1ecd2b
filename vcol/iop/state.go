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

package iop

import "github.com/ajroetker/go-column/vcol"

// ColumnState is the dynamical state of one column as seen by the forcing
// step: the working prognostics plus the tracer fields in both mixing-ratio
// and mass-weighted form.
type ColumnState[T vcol.Floats] struct {
	// Ps is the surface pressure.
	Ps T
	// Dp is the pressure thickness of each layer.
	Dp vcol.Column[T]
	// VThetaDp is the mass-weighted virtual potential temperature.
	VThetaDp vcol.Column[T]
	// PhiI is the geopotential at interfaces (used on the
	// non-hydrostatic path).
	PhiI vcol.Column[T]
	// U, V are the horizontal wind components at midpoints.
	U, V vcol.Column[T]
	// Q holds the tracer mixing ratios; Q[0] is water vapor.
	Q []vcol.Column[T]
	// Qdp holds the mass-weighted tracers, kept consistent with Q.
	Qdp []vcol.Column[T]
}

// ElementState is a batch of independent columns sharing one layout.
type ElementState[T vcol.Floats] struct {
	Layout  vcol.Layout
	Columns []ColumnState[T]
}

// NewElementState allocates ncols columns of nlev levels with qsize
// tracers each.
func NewElementState[T vcol.Floats](ncols, nlev, qsize int) *ElementState[T] {
	vcol.Assertf(qsize >= 1, "iop: need at least the water-vapor tracer, got qsize=%d", qsize)
	l := vcol.NewLayout(nlev)
	es := &ElementState[T]{
		Layout:  l,
		Columns: make([]ColumnState[T], ncols),
	}
	for i := range es.Columns {
		c := &es.Columns[i]
		c.Dp = vcol.NewColumn[T](l)
		c.VThetaDp = vcol.NewColumn[T](l)
		c.PhiI = vcol.NewColumn[T](l.Interfaces())
		c.U = vcol.NewColumn[T](l)
		c.V = vcol.NewColumn[T](l)
		c.Q = make([]vcol.Column[T], qsize)
		c.Qdp = make([]vcol.Column[T], qsize)
		for iq := range c.Q {
			c.Q[iq] = vcol.NewColumn[T](l)
			c.Qdp[iq] = vcol.NewColumn[T](l)
		}
	}
	return es
}

// NumColumns returns the number of columns in the batch.
func (es *ElementState[T]) NumColumns() int { return len(es.Columns) }
