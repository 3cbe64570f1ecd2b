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

// Package iop integrates prescribed large-scale forcing from an intensive
// observation period (IOP) case into the dynamical state of a batch of
// single columns: subsidence by the prescribed vertical motion, direct
// temperature and moisture tendencies, and the closure that folds the
// updated temperature back into the working prognostic variable.
package iop

import (
	"github.com/ajroetker/go-column/vcol"
	"github.com/ajroetker/go-column/vcol/colops"
	"github.com/ajroetker/go-column/vcol/elemops"
	"github.com/ajroetker/go-column/vcol/eos"
	"github.com/ajroetker/go-column/vcol/workerpool"
	"github.com/ajroetker/go-column/vcol/workspace"
)

// Options selects the optional parts of the forcing step.
type Options struct {
	// DoSubsidence enables the large-scale vertical advection step.
	DoSubsidence bool
	// Use3DForcing selects the 3-D tendency divergences over the
	// observed ones.
	Use3DForcing bool
}

// Forcer applies one IOP forcing step to every column of an element
// batch. Construct once and reuse every timestep; the forcer itself is
// immutable and all per-step scratch is column-private.
type Forcer[T vcol.Floats] struct {
	params   vcol.SimulationParams
	hvcoord  vcol.HybridVCoord
	eos      eos.EquationOfState[T]
	elemOps  elemops.ElementOps[T]
	pool     *workerpool.Pool
	ownsPool bool
	opts     Options
}

// NewForcer builds a forcer for the given run configuration. The worker
// pool is shared with the rest of the model; pass nil to run sequentially
// on a pool the forcer owns, released by Close.
func NewForcer[T vcol.Floats](params vcol.SimulationParams, hv vcol.HybridVCoord,
	pool *workerpool.Pool, opts Options) *Forcer[T] {
	ownsPool := false
	if pool == nil {
		pool = workerpool.New(1)
		ownsPool = true
	}
	return &Forcer[T]{
		params:   params,
		hvcoord:  hv,
		eos:      eos.New[T](params, hv),
		elemOps:  elemops.New[T](hv),
		pool:     pool,
		ownsPool: ownsPool,
		opts:     opts,
	}
}

// Close shuts down the fallback pool created for a nil pool argument. A
// shared pool is left to its owner. Safe to call more than once; a closed
// forcer still steps, running its sweeps inline.
func (f *Forcer[T]) Close() {
	if f.ownsPool {
		f.pool.Close()
	}
}

// ApplyForcing advances the state by one forcing step of length dt using
// the forcing profiles nearest to time t. Columns run in parallel on the
// worker pool, each chunk with its own workspace arena.
func (f *Forcer[T]) ApplyForcing(dt T, t float64, forcing *Forcing, es *ElementState[T]) {
	l := es.Layout
	vcol.Assertf(forcing.NumLevels() == l.NumLevels,
		"iop: forcing has %d levels, state has %d", forcing.NumLevels(), l.NumLevels)

	omegaS, divTS, divQS := forcing.ProfileAt(t, f.opts.Use3DForcing)
	omega := profileColumn[T](omegaS, l)
	divT := profileColumn[T](divTS, l)
	divQ := profileColumn[T](divQS, l)

	qsize := len(es.Columns[0].Q)
	f.pool.ParallelFor(es.NumColumns(), func(start, end int) {
		ws := workspace.NewPool[T](12+qsize, l.Interfaces())
		for ic := start; ic < end; ic++ {
			f.applyColumn(dt, omega, divT, divQ, &es.Columns[ic], ws)
		}
	})
}

func (f *Forcer[T]) applyColumn(dt T, omega, divT, divQ vcol.Column[T],
	c *ColumnState[T], ws *workspace.Pool[T]) {
	l := c.Dp.Layout
	nlev := l.NumLevels

	hScratch, scratch := ws.TakeMany(4, l)
	defer hScratch.Release()
	pnh, exner, rstar, temp := scratch[0], scratch[1], scratch[2], scratch[3]

	// Temperature and Exner from the dynamical state.
	if f.params.Hydrostatic {
		hPI, pI := ws.Take(l.Interfaces())
		f.elemOps.ComputeHydrostaticP(c.Dp, pI, pnh)
		f.eos.ComputeExner(pnh, exner)
		hPI.Release()
	} else {
		f.eos.ComputePnhAndExner(c.VThetaDp, c.PhiI, pnh, exner)
	}
	f.elemOps.GetRStar(f.params.Moist, colops.FromColumn(c.Q[0]), rstar)
	f.elemOps.GetTemperature(rstar, exner, c.VThetaDp, c.Dp, temp)

	// Reference pressures and layer thickness from the hybrid coordinate.
	hPmid, pmid := ws.Take(l)
	hPint, pint := ws.Take(l.Interfaces())
	hPdel, pdel := ws.Take(l)
	defer hPmid.Release()
	defer hPint.Release()
	defer hPdel.Release()
	ps := float64(c.Ps)
	for k := 0; k <= nlev; k++ {
		pint.SetAt(k, T(f.hvcoord.PressureI(k, ps)))
		if k < nlev {
			pmid.SetAt(k, T(f.hvcoord.PressureM(k, ps)))
		}
	}
	colops.MidpointDelta(pint, pdel, colops.Rep[T]())

	if f.opts.DoSubsidence {
		AdvanceSubsidence(dt, pmid, pint, pdel, omega, c.U, c.V, temp, c.Q, ws)
	}
	AdvanceForcing(dt, divT, divQ, temp, c.Q[0])

	// Recompute the mass-weighted tracers from the updated mixing ratios,
	// then the ratios from them again, so both representations agree to
	// the bit after a restart.
	for iq := range c.Q {
		for ip := range c.Q[iq].Packs {
			c.Qdp[iq].Packs[ip] = vcol.Mul(c.Q[iq].Packs[ip], c.Dp.Packs[ip])
			c.Q[iq].Packs[ip] = vcol.Div(c.Qdp[iq].Packs[ip], c.Dp.Packs[ip])
		}
	}

	// Fold the updated temperature back into vtheta_dp.
	f.elemOps.GetRStar(f.params.Moist, colops.FromColumn(c.Q[0]), rstar)
	for ip := range c.VThetaDp.Packs {
		num := vcol.Mul(vcol.Mul(temp.Packs[ip], rstar.Packs[ip]), c.Dp.Packs[ip])
		c.VThetaDp.Packs[ip] = vcol.Div(num, vcol.Scale(exner.Packs[ip], vcol.Rgas))
	}
}

// profileColumn loads a forcing profile into a column buffer.
func profileColumn[T vcol.Floats](vals []float64, l vcol.Layout) vcol.Column[T] {
	c := vcol.NewColumn[T](l)
	for k, v := range vals {
		c.SetAt(k, T(v))
	}
	return c
}
