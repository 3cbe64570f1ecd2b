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

package eos

import (
	"math"
	"testing"

	"github.com/ajroetker/go-column/vcol"
	"github.com/ajroetker/go-column/vcol/colops"
)

var testLevels = []int{3, 7, 8, 9, 16, 72}

func hydroEOS(nlev int) EquationOfState[float64] {
	return New[float64](vcol.SimulationParams{Hydrostatic: true}, vcol.UniformHybrid(nlev, 1e5))
}

func nonhydroEOS(nlev int) EquationOfState[float64] {
	return New[float64](vcol.SimulationParams{Hydrostatic: false}, vcol.UniformHybrid(nlev, 1e5))
}

func TestComputeHydrostaticPUniformThickness(t *testing.T) {
	// Uniform dp=1000 with hyai(0)=0 must give p_i(0)=0, p_i(N)=N*1000 and
	// p_m(k) = p_i(k)+500 for every k.
	for _, nlev := range testLevels {
		e := hydroEOS(nlev)
		l := vcol.NewLayout(nlev)

		dp := vcol.NewColumn[float64](l)
		dp.Fill(1000)
		pI := vcol.NewColumn[float64](l.Interfaces())
		pM := vcol.NewColumn[float64](l)
		e.ComputeHydrostaticP(dp, pI, pM)

		if pI.At(0) != 0 {
			t.Errorf("nlev=%d: top interface pressure = %v, want 0", nlev, pI.At(0))
		}
		if got, want := pI.At(nlev), float64(nlev)*1000; math.Abs(got-want) > 1e-9*want {
			t.Errorf("nlev=%d: surface pressure = %v, want %v", nlev, got, want)
		}
		for k := 0; k < nlev; k++ {
			if got, want := pM.At(k), pI.At(k)+500; math.Abs(got-want) > 1e-9 {
				t.Errorf("nlev=%d: p_m(%d) = %v, want %v", nlev, k, got, want)
			}
		}
	}
}

func TestComputeExner(t *testing.T) {
	nlev := 8
	l := vcol.NewLayout(nlev)
	p := vcol.NewColumn[float64](l)
	for k := 0; k < nlev; k++ {
		p.SetAt(k, 2e4+float64(k)*1e4)
	}
	exner := vcol.NewColumn[float64](l)
	hydroEOS(nlev).ComputeExner(p, exner)

	for k := 0; k < nlev; k++ {
		want := math.Pow(p.At(k)/vcol.P0, vcol.Kappa)
		if exner.At(k) != want {
			t.Errorf("exner(%d) = %v, want %v", k, exner.At(k), want)
		}
	}

	// exner = 1 exactly at the reference pressure.
	p.Fill(vcol.P0)
	hydroEOS(nlev).ComputeExner(p, exner)
	for k := 0; k < nlev; k++ {
		if exner.At(k) != 1 {
			t.Errorf("exner(%d) at p0 = %v, want 1", k, exner.At(k))
		}
	}
}

func TestComputePnhAndExnerConsistency(t *testing.T) {
	for _, nlev := range testLevels {
		e := nonhydroEOS(nlev)
		l := vcol.NewLayout(nlev)

		// Geopotential decreasing downward, arbitrary positive vtheta_dp.
		phiI := vcol.NewColumn[float64](l.Interfaces())
		for k := 0; k <= nlev; k++ {
			phiI.SetAt(k, float64(nlev-k)*vcol.Gravity*500)
		}
		vthetaDp := vcol.NewColumn[float64](l)
		for k := 0; k < nlev; k++ {
			vthetaDp.SetAt(k, (300+float64(k))*1000)
		}

		pnh := vcol.NewColumn[float64](l)
		exner := vcol.NewColumn[float64](l)
		e.ComputePnhAndExner(vthetaDp, phiI, pnh, exner)

		for k := 0; k < nlev; k++ {
			// exner must satisfy its defining relation with pnh.
			want := math.Pow(pnh.At(k)/vcol.P0, vcol.Kappa)
			if diff := math.Abs(exner.At(k) - want); diff > 1e-12*want {
				t.Errorf("nlev=%d: exner(%d) = %v, want %v", nlev, k, exner.At(k), want)
			}
			// pnh/exner must reproduce -Rgas*vtheta_dp/delta(phi).
			dphi := phiI.At(k+1) - phiI.At(k)
			poe := -vcol.Rgas * vthetaDp.At(k) / dphi
			if got := pnh.At(k) / exner.At(k); math.Abs(got-poe) > 1e-9*math.Abs(poe) {
				t.Errorf("nlev=%d: p_over_exner(%d) = %v, want %v", nlev, k, got, poe)
			}
		}
	}
}

func TestComputePhiIInvertsPnh(t *testing.T) {
	// Integrating Rgas*vtheta_dp*exner/pnh back up from the surface must
	// reproduce the geopotential that produced pnh.
	for _, nlev := range testLevels {
		e := nonhydroEOS(nlev)
		l := vcol.NewLayout(nlev)

		phiI := vcol.NewColumn[float64](l.Interfaces())
		for k := 0; k <= nlev; k++ {
			phiI.SetAt(k, float64(nlev-k)*vcol.Gravity*500)
		}
		vthetaDp := vcol.NewColumn[float64](l)
		for k := 0; k < nlev; k++ {
			vthetaDp.SetAt(k, (300+float64(k))*1000)
		}

		pnh := vcol.NewColumn[float64](l)
		exner := vcol.NewColumn[float64](l)
		e.ComputePnhAndExner(vthetaDp, phiI, pnh, exner)

		back := vcol.NewColumn[float64](l.Interfaces())
		e.ComputePhiIFromExner(phiI.At(nlev), colops.FromColumn(vthetaDp), pnh, exner, back)

		for k := 0; k <= nlev; k++ {
			if diff := math.Abs(back.At(k) - phiI.At(k)); diff > 1e-7 {
				t.Errorf("nlev=%d: phi_i(%d) = %v, want %v", nlev, k, back.At(k), phiI.At(k))
			}
		}
	}
}

func TestComputePhiIVariantsAgree(t *testing.T) {
	nlev := 16
	e := nonhydroEOS(nlev)
	l := vcol.NewLayout(nlev)

	p := vcol.NewColumn[float64](l)
	vthetaDp := vcol.NewColumn[float64](l)
	for k := 0; k < nlev; k++ {
		p.SetAt(k, 500+float64(k)*1000)
		vthetaDp.SetAt(k, (280+2*float64(k))*1000)
	}
	exner := vcol.NewColumn[float64](l)
	e.ComputeExner(p, exner)

	phiA := vcol.NewColumn[float64](l.Interfaces())
	phiB := vcol.NewColumn[float64](l.Interfaces())
	e.ComputePhiI(12345.0, colops.FromColumn(vthetaDp), p, phiA)
	e.ComputePhiIFromExner(12345.0, colops.FromColumn(vthetaDp), p, exner, phiB)

	for k := 0; k <= nlev; k++ {
		if diff := math.Abs(phiA.At(k) - phiB.At(k)); diff > 1e-8*math.Abs(phiA.At(k)) {
			t.Errorf("phi_i(%d): power form %v, exner form %v", k, phiA.At(k), phiB.At(k))
		}
	}
}

func TestComputeDpnhDpIHydrostaticMode(t *testing.T) {
	nlev := 9
	e := hydroEOS(nlev)
	l := vcol.NewLayout(nlev)

	pnh := vcol.NewColumn[float64](l)
	dpI := vcol.NewColumn[float64](l.Interfaces())
	ratio := vcol.NewColumn[float64](l.Interfaces())
	ratio.Fill(-1)
	e.ComputeDpnhDpI(pnh, dpI, ratio)

	for k := 0; k <= nlev; k++ {
		if ratio.At(k) != 1 {
			t.Errorf("dpnh_dp_i(%d) = %v, want 1", k, ratio.At(k))
		}
	}
}

func TestComputeDpnhDpIHydrostaticState(t *testing.T) {
	// Feeding the hydrostatic pressure through the non-hydrostatic path
	// must return a ratio of exactly 1 at every interface.
	for _, nlev := range testLevels {
		e := nonhydroEOS(nlev)
		l := vcol.NewLayout(nlev)

		pnh := vcol.NewColumn[float64](l)
		for k := 0; k < nlev; k++ {
			pnh.SetAt(k, float64(k)*1000+500)
		}
		dpI := vcol.NewColumn[float64](l.Interfaces())
		dpI.Fill(1000)

		ratio := vcol.NewColumn[float64](l.Interfaces())
		e.ComputeDpnhDpI(pnh, dpI, ratio)

		for k := 0; k <= nlev; k++ {
			if ratio.At(k) != 1 {
				t.Errorf("nlev=%d: dpnh_dp_i(%d) = %v, want 1", nlev, k, ratio.At(k))
			}
		}
	}
}

func TestModeAssertions(t *testing.T) {
	if !vcol.DebugChecks {
		t.Skip("debug checks disabled")
	}
	nlev := 8
	l := vcol.NewLayout(nlev)
	dp := vcol.NewColumn[float64](l)
	dp.Fill(1000)
	pI := vcol.NewColumn[float64](l.Interfaces())
	pM := vcol.NewColumn[float64](l)

	func() {
		defer func() {
			if recover() == nil {
				t.Error("expected panic: hydrostatic pressure in non-hydrostatic mode")
			}
		}()
		nonhydroEOS(nlev).ComputeHydrostaticP(dp, pI, pM)
	}()

	func() {
		defer func() {
			if recover() == nil {
				t.Error("expected panic: pnh in hydrostatic mode")
			}
		}()
		phiI := vcol.NewColumn[float64](l.Interfaces())
		phiI.Fill(1)
		hydroEOS(nlev).ComputePnhAndExner(pM, phiI, dp, pM)
	}()
}
