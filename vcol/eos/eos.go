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

// Package eos implements the equation of state of the vertical core:
// hydrostatic pressure integration, the Exner function, and the
// non-hydrostatic pressure/geopotential pair.
//
// An EquationOfState is stateless apart from its init-time configuration
// (hydrostatic flag and hybrid coordinate) and is safe to share across
// concurrent column tasks. Methods that only make sense in one mode assert
// the mode in debug builds; calling them in the wrong mode is a programming
// error, not a runtime condition.
package eos

import (
	"github.com/ajroetker/go-column/vcol"
	"github.com/ajroetker/go-column/vcol/colops"
)

// EquationOfState evaluates the thermodynamic closures for one column.
type EquationOfState[T vcol.Floats] struct {
	hydrostatic bool
	hvcoord     vcol.HybridVCoord
}

// New returns an equation of state for the given run configuration.
func New[T vcol.Floats](params vcol.SimulationParams, hv vcol.HybridVCoord) EquationOfState[T] {
	return EquationOfState[T]{hydrostatic: params.Hydrostatic, hvcoord: hv}
}

// Hydrostatic reports whether the hydrostatic paths are selected.
func (e EquationOfState[T]) Hydrostatic() bool { return e.hydrostatic }

// ComputeHydrostaticP integrates the layer thickness dp downward into
// interface pressures pI, seeding the model top with hyai(0)*ps0, and
// derives midpoint pressures pM as the interface averages.
//
// Hydrostatic mode only; the non-hydrostatic pressure comes from
// ComputePnhAndExner instead.
func (e EquationOfState[T]) ComputeHydrostaticP(dp, pI, pM vcol.Column[T]) {
	if vcol.DebugChecks {
		vcol.Assertf(e.hydrostatic, "eos: hydrostatic pressure requested in non-hydrostatic mode")
	}
	pI.SetAt(0, T(e.hvcoord.PTop()))
	colops.ScanMidToInt(true, colops.FromColumn(dp), pI)
	colops.MidpointValues(pI, pM, colops.Rep[T]())
}

// ComputeExner fills exner with (p/p0)^kappa, element-wise over midpoints.
func (e EquationOfState[T]) ComputeExner(pM, exner vcol.Column[T]) {
	p0 := vcol.Set(T(vcol.P0))
	for ip := range pM.Packs {
		exner.Packs[ip] = vcol.Pow(vcol.Div(pM.Packs[ip], p0), T(vcol.Kappa))
	}
}

// ComputePnhAndExner computes the non-hydrostatic pressure and Exner
// function from the equation of state
//
//	p_over_exner = -Rgas*vtheta_dp / delta(phi_i)
//	pnh          = p0 * (p_over_exner/p0)^(1/(1-kappa))
//	exner        = pnh / p_over_exner
//
// exner doubles as scratch for the intermediate quantities, so pnh and
// exner must not alias. Non-hydrostatic mode only.
func (e EquationOfState[T]) ComputePnhAndExner(vthetaDp, phiI, pnh, exner vcol.Column[T]) {
	if vcol.DebugChecks {
		vcol.Assertf(!e.hydrostatic, "eos: non-hydrostatic pressure requested in hydrostatic mode")
	}
	colops.MidpointDelta(phiI, exner, colops.Rep[T]())

	p0 := vcol.Set(T(vcol.P0))
	invExp := T(1.0 / (1.0 - vcol.Kappa))
	for ip := range pnh.Packs {
		poe := vcol.Div(vcol.Scale(vthetaDp.Packs[ip], -vcol.Rgas), exner.Packs[ip])
		pnh.Packs[ip] = vcol.Scale(vcol.Pow(vcol.Div(poe, p0), invExp), vcol.P0)
		exner.Packs[ip] = vcol.Div(pnh.Packs[ip], poe)
	}
}

// ComputeDpnhDpI fills the interface ratio d(pnh)/d(p_hydrostatic). In
// hydrostatic mode the ratio is 1 by definition. Otherwise it is the
// centered difference of pnh divided by the interface thickness dpI, with
// the top interface closed against the known model-top pressure and the
// bottom interface approximated by its hydrostatic value of 1 (the surface
// pnh interface is extrapolated as pnh+dp/2 rather than derived from a
// boundary condition).
func (e EquationOfState[T]) ComputeDpnhDpI(pnh, dpI, dpnhDpI vcol.Column[T]) {
	ints := dpnhDpI.Layout
	if e.hydrostatic {
		dpnhDpI.Fill(1)
		return
	}

	// Interior first; the boundary lanes get their own closures below.
	colops.InterfaceDelta(pnh, dpnhDpI, colops.BC[T]{Type: colops.BCDoNothing}, colops.Rep[T]())
	mids := pnh.Layout
	for ip := 0; ip < mids.NumPacks; ip++ {
		dpnhDpI.Packs[ip] = vcol.Div(dpnhDpI.Packs[ip], dpI.Packs[ip])
	}

	dpnhDpI.SetAt(0, 2*(pnh.At(0)-T(e.hvcoord.PTop()))/dpI.At(0))
	pnhLast := pnh.At(mids.NumLevels - 1)
	dpLast := dpI.At(ints.NumLevels - 1)
	pnhILast := pnhLast + dpLast/2
	dpnhDpI.SetAt(ints.NumLevels-1, 2*(pnhILast-pnhLast)/dpLast)
}

// ComputePhiI integrates the hypsometric relation upward from the surface
// geopotential phis:
//
//	phi_i(k) = phi_i(k+1) + Rgas*vtheta_dp(k)*(p(k)/p0)^(kappa-1)/p0
//
// If p is the hydrostatic pressure this yields the hydrostatic
// geopotential; with p from ComputePnhAndExner it is that method's
// discrete inverse. vthetaDp is a provider so callers can integrate
// derived quantities (e.g. a reference profile) without materializing them.
func (e EquationOfState[T]) ComputePhiI(phis T, vthetaDp colops.Provider[T], p, phiI vcol.Column[T]) {
	phiI.SetAt(phiI.Layout.NumLevels-1, phis)

	p0 := vcol.Set(T(vcol.P0))
	integrand := func(ip int) vcol.Pack[T] {
		return vcol.Div(vcol.Mul(vcol.Scale(vthetaDp(ip), vcol.Rgas),
			vcol.Pow(vcol.Div(p.Packs[ip], p0), T(vcol.Kappa-1))), p0)
	}
	colops.ScanMidToInt(false, integrand, phiI)
}

// ComputePhiIFromExner is ComputePhiI with the power function replaced by
// a precomputed Exner array: Rgas*vtheta_dp*exner/p integrates the same
// quantity without the exponentials. Results agree with ComputePhiI to
// floating-point accumulation error, not bit-for-bit.
func (e EquationOfState[T]) ComputePhiIFromExner(phis T, vthetaDp colops.Provider[T], p, exner, phiI vcol.Column[T]) {
	phiI.SetAt(phiI.Layout.NumLevels-1, phis)

	integrand := func(ip int) vcol.Pack[T] {
		return vcol.Div(vcol.Mul(vcol.Scale(vthetaDp(ip), vcol.Rgas), exner.Packs[ip]), p.Packs[ip])
	}
	colops.ScanMidToInt(false, integrand, phiI)
}
