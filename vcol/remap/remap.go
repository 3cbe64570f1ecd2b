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

// Package remap adapts the prognostic column state to an externally
// supplied vertical remap operator. The remap operator conserves
// mass-weighted column integrals of midpoint quantities, so the two
// interface-valued prognostics (vertical velocity w and non-hydrostatic
// geopotential phi) are converted to level-increment form immediately
// before the remap and reconstructed immediately after.
package remap

import (
	"github.com/ajroetker/go-column/vcol"
	"github.com/ajroetker/go-column/vcol/colops"
	"github.com/ajroetker/go-column/vcol/elemops"
	"github.com/ajroetker/go-column/vcol/eos"
	"github.com/ajroetker/go-column/vcol/workspace"
)

// ColumnState is the per-column prognostic state seen by the remap, plus
// the static geometry the surface boundary condition needs.
type ColumnState[T vcol.Floats] struct {
	// WI is the vertical velocity at interfaces.
	WI vcol.Column[T]
	// PhiI is the non-hydrostatic geopotential at interfaces.
	PhiI vcol.Column[T]
	// VThetaDp is the mass-weighted virtual potential temperature.
	VThetaDp vcol.Column[T]
	// U, V are the horizontal wind components at midpoints.
	U, V vcol.Column[T]
	// Phis is the surface geopotential.
	Phis T
	// GradPhis is the horizontal gradient of the surface geopotential.
	GradPhis [2]T
}

// StateProvider hands the remap operator its five midpoint states and
// performs the interface-state conversions around it. A provider is
// private to one column task: its increment buffers persist from
// PreprocessState to PostprocessState and are not synchronized.
type StateProvider[T vcol.Floats] struct {
	eos     eos.EquationOfState[T]
	elemOps elemops.ElementOps[T]
	ws      *workspace.Pool[T]

	deltaW   vcol.Column[T]
	deltaPhi vcol.Column[T]
}

// NewStateProvider builds a provider for columns of the given layout. The
// workspace pool supplies the interface-sized temporary used while
// removing and restoring the reference geopotential; one free slot is
// enough.
func NewStateProvider[T vcol.Floats](params vcol.SimulationParams, hv vcol.HybridVCoord,
	l vcol.Layout, ws *workspace.Pool[T]) *StateProvider[T] {
	return &StateProvider[T]{
		eos:      eos.New[T](params, hv),
		elemOps:  elemops.New[T](hv),
		ws:       ws,
		deltaW:   vcol.NewColumn[T](l),
		deltaPhi: vcol.NewColumn[T](l),
	}
}

// NumStatesRemap returns how many states the remap operator processes.
func (sp *StateProvider[T]) NumStatesRemap() int { return 5 }

// NumStatesPreprocess returns how many states need conversion before the
// remap runs.
func (sp *StateProvider[T]) NumStatesPreprocess() int { return 2 }

// NumStatesPostprocess returns how many states need reconstruction after
// the remap runs.
func (sp *StateProvider[T]) NumStatesPostprocess() int { return 2 }

// IsIntrinsicState reports whether the remap operator must rescale state
// istate by the layer thickness before remapping. The horizontal wind
// components carry no dp weighting of their own; the remaining states are
// already mass-weighted (the increments because the remap multiplies by
// the thickness, vtheta_dp by construction) and remap directly.
func (sp *StateProvider[T]) IsIntrinsicState(istate int) bool {
	if vcol.DebugChecks {
		vcol.Assertf(istate >= 0 && istate < sp.NumStatesRemap(),
			"remap: state index %d out of range", istate)
	}
	return istate == 3 || istate == 4
}

// GetState returns the midpoint buffer the remap operator should process
// for state istate: the w and phi increments, vtheta_dp, u, v.
func (sp *StateProvider[T]) GetState(istate int, state *ColumnState[T]) vcol.Column[T] {
	switch istate {
	case 0:
		return sp.deltaW
	case 1:
		return sp.deltaPhi
	case 2:
		return state.VThetaDp
	case 3:
		return state.U
	case 4:
		return state.V
	}
	panic("remap: invalid state index")
}

// PreprocessState converts interface state istate to increment form.
// State 0 is the w increment; state 1 removes the reference hydrostatic
// geopotential from phi and takes increments of the remainder. Must run
// before the remap operator touches the corresponding GetState buffer.
func (sp *StateProvider[T]) PreprocessState(istate int, state *ColumnState[T], dp vcol.Column[T]) {
	switch istate {
	case 0:
		colops.MidpointDelta(state.WI, sp.deltaW, colops.Rep[T]())
	case 1:
		// The still unused increment buffer holds the midpoint pressure;
		// the temporary holds first p_i, then phi_ref. Both recyclings
		// are strict write-before-read.
		p := sp.deltaPhi
		h, pI := sp.ws.Take(state.PhiI.Layout)
		phiRef := pI

		sp.elemOps.ComputeHydrostaticP(dp, pI, p)
		sp.eos.ComputePhiI(state.Phis, colops.FromColumn(state.VThetaDp), p, phiRef)
		for ip := range state.PhiI.Packs {
			state.PhiI.Packs[ip] = vcol.Sub(state.PhiI.Packs[ip], phiRef.Packs[ip])
		}

		colops.MidpointDelta(state.PhiI, sp.deltaPhi, colops.Rep[T]())
		h.Release()
	}
}

// PostprocessState rebuilds interface state istate from its remapped
// increments with a backward scan of the negated increment, seeded at the
// surface. The w surface value is then re-derived from the horizontal
// wind and the surface-geopotential gradient, since the wind just
// changed; phi gets the reference profile added back.
func (sp *StateProvider[T]) PostprocessState(istate int, state *ColumnState[T], dp vcol.Column[T]) {
	switch istate {
	case 0:
		minusDelta := func(ip int) vcol.Pack[T] { return vcol.Neg(sp.deltaW.Packs[ip]) }
		colops.ScanMidToInt(false, minusDelta, state.WI)

		nlev := sp.deltaW.Layout.NumLevels
		wSurf := (state.U.At(nlev-1)*state.GradPhis[0] + state.V.At(nlev-1)*state.GradPhis[1]) / vcol.Gravity
		state.WI.SetAt(nlev, wSurf)
	case 1:
		minusDelta := func(ip int) vcol.Pack[T] { return vcol.Neg(sp.deltaPhi.Packs[ip]) }
		colops.ScanMidToInt(false, minusDelta, state.PhiI)

		// Same recycling as in PreprocessState: the increments are spent,
		// so their buffer holds the midpoint pressure now.
		p := sp.deltaPhi
		h, pI := sp.ws.Take(state.PhiI.Layout)
		phiRef := pI

		sp.elemOps.ComputeHydrostaticP(dp, pI, p)
		sp.eos.ComputePhiI(state.Phis, colops.FromColumn(state.VThetaDp), p, phiRef)
		for ip := range state.PhiI.Packs {
			state.PhiI.Packs[ip] = vcol.Add(state.PhiI.Packs[ip], phiRef.Packs[ip])
		}
		h.Release()
	}
}
