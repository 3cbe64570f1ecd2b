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

package elemops

import (
	"math"
	"testing"

	"github.com/ajroetker/go-column/vcol"
	"github.com/ajroetker/go-column/vcol/colops"
	"github.com/ajroetker/go-column/vcol/eos"
)

func TestGetRStar(t *testing.T) {
	nlev := 10
	l := vcol.NewLayout(nlev)
	ops := New[float64](vcol.UniformHybrid(nlev, 1e5))

	qv := vcol.NewColumn[float64](l)
	for k := 0; k < nlev; k++ {
		qv.SetAt(k, 0.001*float64(k))
	}
	r := vcol.NewColumn[float64](l)

	ops.GetRStar(false, colops.FromColumn(qv), r)
	for k := 0; k < nlev; k++ {
		if r.At(k) != vcol.Rgas {
			t.Errorf("dry R*(%d) = %v, want %v", k, r.At(k), vcol.Rgas)
		}
	}

	ops.GetRStar(true, colops.FromColumn(qv), r)
	for k := 0; k < nlev; k++ {
		want := vcol.Rgas + (vcol.Rvapor-vcol.Rgas)*qv.At(k)
		if r.At(k) != want {
			t.Errorf("moist R*(%d) = %v, want %v", k, r.At(k), want)
		}
	}
}

func TestComputeHydrostaticPMatchesEOS(t *testing.T) {
	// The p_i + dp/2 fast path must agree bit-for-bit with the equation of
	// state's interface-average form.
	for _, nlev := range []int{3, 8, 16, 72} {
		hv := vcol.UniformHybrid(nlev, 1e5)
		ops := New[float64](hv)
		e := eos.New[float64](vcol.SimulationParams{Hydrostatic: true}, hv)
		l := vcol.NewLayout(nlev)

		dp := vcol.NewColumn[float64](l)
		for k := 0; k < nlev; k++ {
			dp.SetAt(k, 900+37.5*float64(k))
		}

		pIa := vcol.NewColumn[float64](l.Interfaces())
		pMa := vcol.NewColumn[float64](l)
		ops.ComputeHydrostaticP(dp, pIa, pMa)

		pIb := vcol.NewColumn[float64](l.Interfaces())
		pMb := vcol.NewColumn[float64](l)
		e.ComputeHydrostaticP(dp, pIb, pMb)

		for k := 0; k < nlev; k++ {
			if pIa.At(k) != pIb.At(k) {
				t.Errorf("nlev=%d: p_i(%d) fast %v, eos %v", nlev, k, pIa.At(k), pIb.At(k))
			}
			if pMa.At(k) != pMb.At(k) {
				t.Errorf("nlev=%d: p_m(%d) fast %v, eos %v", nlev, k, pMa.At(k), pMb.At(k))
			}
		}
	}
}

func TestComputeThetaRef(t *testing.T) {
	nlev := 8
	l := vcol.NewLayout(nlev)
	ops := New[float64](vcol.UniformHybrid(nlev, 1e5))

	p := vcol.NewColumn[float64](l)
	for k := 0; k < nlev; k++ {
		p.SetAt(k, 1e4+float64(k)*1.2e4)
	}
	thetaRef := vcol.NewColumn[float64](l)
	ops.ComputeThetaRef(colops.FromColumn(p), thetaRef)

	for k := 0; k < nlev; k++ {
		exner := math.Pow(p.At(k)/vcol.P0, vcol.Kappa)
		want := t0/exner + t1
		if thetaRef.At(k) != want {
			t.Errorf("theta_ref(%d) = %v, want %v", k, thetaRef.At(k), want)
		}
	}

	// At the reference pressure the profile hits TREF exactly.
	p.Fill(vcol.P0)
	ops.ComputeThetaRef(colops.FromColumn(p), thetaRef)
	for k := 0; k < nlev; k++ {
		if diff := math.Abs(thetaRef.At(k) - vcol.TRef); diff > 1e-12 {
			t.Errorf("theta_ref(%d) at p0 = %v, want %v", k, thetaRef.At(k), vcol.TRef)
		}
	}
}

func TestGetTemperatureInvertsClosure(t *testing.T) {
	// vtheta_dp = T*R*·dp/(Rgas*exner) followed by GetTemperature must
	// return T.
	nlev := 16
	l := vcol.NewLayout(nlev)
	ops := New[float64](vcol.UniformHybrid(nlev, 1e5))

	temp := vcol.NewColumn[float64](l)
	exner := vcol.NewColumn[float64](l)
	dp := vcol.NewColumn[float64](l)
	rstar := vcol.NewColumn[float64](l)
	qv := vcol.NewColumn[float64](l)
	for k := 0; k < nlev; k++ {
		temp.SetAt(k, 210+5*float64(k))
		exner.SetAt(k, 0.3+0.04*float64(k))
		dp.SetAt(k, 1000)
		qv.SetAt(k, 0.002)
	}
	ops.GetRStar(true, colops.FromColumn(qv), rstar)

	vthetaDp := vcol.NewColumn[float64](l)
	for k := 0; k < nlev; k++ {
		vthetaDp.SetAt(k, temp.At(k)*rstar.At(k)*dp.At(k)/(vcol.Rgas*exner.At(k)))
	}

	back := vcol.NewColumn[float64](l)
	ops.GetTemperature(rstar, exner, vthetaDp, dp, back)
	for k := 0; k < nlev; k++ {
		if diff := math.Abs(back.At(k) - temp.At(k)); diff > 1e-10*temp.At(k) {
			t.Errorf("T(%d) = %v, want %v", k, back.At(k), temp.At(k))
		}
	}
}
