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

// Package elemops provides small element-level thermodynamic helpers that
// sit between the column primitives and the full equation of state: the
// moist gas constant, a fast hydrostatic pressure path, the reference
// potential-temperature profile, and the temperature diagnostic.
package elemops

import (
	"github.com/ajroetker/go-column/vcol"
	"github.com/ajroetker/go-column/vcol/colops"
)

// Reference profile constants: a TREF=288 K atmosphere with a fixed
// 0.0065 K/m lapse rate.
const (
	t1 = 0.0065 * vcol.TRef * vcol.Cp / vcol.Gravity
	t0 = vcol.TRef - t1
)

// ElementOps bundles the per-element helpers around a hybrid coordinate.
type ElementOps[T vcol.Floats] struct {
	hvcoord vcol.HybridVCoord
}

// New returns element helpers bound to the given hybrid coordinate.
func New[T vcol.Floats](hv vcol.HybridVCoord) ElementOps[T] {
	return ElementOps[T]{hvcoord: hv}
}

// GetRStar fills r with the gas constant of the air mixture: Rgas for dry
// runs, Rgas + (Rvapor-Rgas)*qv per level for moist ones.
func (e ElementOps[T]) GetRStar(moist bool, qv colops.Provider[T], r vcol.Column[T]) {
	if moist {
		for ip := range r.Packs {
			r.Packs[ip] = vcol.AddScalar(vcol.Scale(qv(ip), vcol.Rvapor-vcol.Rgas), vcol.Rgas)
		}
	} else {
		for ip := range r.Packs {
			r.Packs[ip] = vcol.Set(T(vcol.Rgas))
		}
	}
}

// ComputeHydrostaticP integrates dp into interface pressures like the
// equation of state does, but derives the midpoints as p_i + dp/2 instead
// of the interface average (p_i(k)+p_i(k+1))/2. The scan makes the two
// forms algebraically equal; this path just skips the second kernel.
func (e ElementOps[T]) ComputeHydrostaticP(dp, pI, pM vcol.Column[T]) {
	pI.SetAt(0, T(e.hvcoord.PTop()))
	colops.ScanMidToInt(true, colops.FromColumn(dp), pI)
	two := vcol.Set(T(2))
	for ip := range pM.Packs {
		pM.Packs[ip] = vcol.Add(pI.Packs[ip], vcol.Div(dp.Packs[ip], two))
	}
}

// ComputeThetaRef fills thetaRef with the reference potential-temperature
// profile T0/exner + T1 evaluated at pressure p, where exner = (p/p0)^kappa.
// Diagnostic only; not part of the forward integration.
func (e ElementOps[T]) ComputeThetaRef(p colops.Provider[T], thetaRef vcol.Column[T]) {
	p0 := vcol.Set(T(vcol.P0))
	for ip := range thetaRef.Packs {
		exner := vcol.Pow(vcol.Div(p(ip), p0), T(vcol.Kappa))
		thetaRef.Packs[ip] = vcol.AddScalar(vcol.Div(vcol.Set(T(t0)), exner), t1)
	}
}

// GetTemperature recovers temperature from the working prognostic
// variable: T = Rgas*exner*vtheta_dp / (R*·dp). Inverse of the vtheta_dp
// closure applied after forcing.
func (e ElementOps[T]) GetTemperature(rstar, exner, vthetaDp, dp, temp vcol.Column[T]) {
	for ip := range temp.Packs {
		num := vcol.Scale(vcol.Mul(exner.Packs[ip], vthetaDp.Packs[ip]), vcol.Rgas)
		temp.Packs[ip] = vcol.Div(num, vcol.Mul(rstar.Packs[ip], dp.Packs[ip]))
	}
}
