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

package remap

import (
	"math"
	"math/rand"
	"testing"

	"github.com/ajroetker/go-column/vcol"
	"github.com/ajroetker/go-column/vcol/workspace"
)

func newTestState(nlev int, rng *rand.Rand) *ColumnState[float64] {
	l := vcol.NewLayout(nlev)
	s := &ColumnState[float64]{
		WI:       vcol.NewColumn[float64](l.Interfaces()),
		PhiI:     vcol.NewColumn[float64](l.Interfaces()),
		VThetaDp: vcol.NewColumn[float64](l),
		U:        vcol.NewColumn[float64](l),
		V:        vcol.NewColumn[float64](l),
		Phis:     2500.0,
		GradPhis: [2]float64{0.3, -0.1},
	}
	for k := 0; k <= nlev; k++ {
		s.WI.SetAt(k, rng.NormFloat64())
		s.PhiI.SetAt(k, s.Phis+float64(nlev-k)*vcol.Gravity*400+50*rng.Float64())
	}
	for k := 0; k < nlev; k++ {
		s.VThetaDp.SetAt(k, (290+20*rng.Float64())*1000)
		s.U.SetAt(k, 10*rng.NormFloat64())
		s.V.SetAt(k, 10*rng.NormFloat64())
	}
	return s
}

func TestStateCounts(t *testing.T) {
	l := vcol.NewLayout(8)
	sp := NewStateProvider[float64](vcol.SimulationParams{}, vcol.UniformHybrid(8, 1e5),
		l, workspace.NewPool[float64](1, l.Interfaces()))

	if sp.NumStatesRemap() != 5 {
		t.Errorf("NumStatesRemap() = %d, want 5", sp.NumStatesRemap())
	}
	if sp.NumStatesPreprocess() != 2 || sp.NumStatesPostprocess() != 2 {
		t.Errorf("pre/post counts = %d/%d, want 2/2",
			sp.NumStatesPreprocess(), sp.NumStatesPostprocess())
	}

	// Only the horizontal wind needs dp rescaling by the remap operator.
	want := []bool{false, false, false, true, true}
	for i, w := range want {
		if sp.IsIntrinsicState(i) != w {
			t.Errorf("IsIntrinsicState(%d) = %v, want %v", i, sp.IsIntrinsicState(i), w)
		}
	}
}

func TestIsIntrinsicStateRangeCheck(t *testing.T) {
	if !vcol.DebugChecks {
		t.Skip("debug checks disabled")
	}
	l := vcol.NewLayout(8)
	sp := NewStateProvider[float64](vcol.SimulationParams{}, vcol.UniformHybrid(8, 1e5),
		l, workspace.NewPool[float64](1, l.Interfaces()))

	defer func() {
		if recover() == nil {
			t.Error("expected panic for out-of-range state index")
		}
	}()
	sp.IsIntrinsicState(5)
}

func TestGetState(t *testing.T) {
	l := vcol.NewLayout(8)
	sp := NewStateProvider[float64](vcol.SimulationParams{}, vcol.UniformHybrid(8, 1e5),
		l, workspace.NewPool[float64](1, l.Interfaces()))
	s := newTestState(8, rand.New(rand.NewSource(1)))

	if got := sp.GetState(2, s); &got.Packs[0] != &s.VThetaDp.Packs[0] {
		t.Error("GetState(2) does not alias vtheta_dp")
	}
	if got := sp.GetState(3, s); &got.Packs[0] != &s.U.Packs[0] {
		t.Error("GetState(3) does not alias u")
	}
	if got := sp.GetState(4, s); &got.Packs[0] != &s.V.Packs[0] {
		t.Error("GetState(4) does not alias v")
	}
	if &sp.GetState(0, s).Packs[0] == &sp.GetState(1, s).Packs[0] {
		t.Error("increment buffers alias each other")
	}
}

func TestIdentityRemapRoundTrip(t *testing.T) {
	// Preprocess followed immediately by postprocess (a no-op remap in
	// between) must reproduce w and phi, except the w surface value,
	// which is intentionally re-derived from the horizontal wind.
	rng := rand.New(rand.NewSource(7))
	for _, nlev := range []int{3, 7, 8, 16, 72} {
		l := vcol.NewLayout(nlev)
		hv := vcol.UniformHybrid(nlev, 1e5)
		sp := NewStateProvider[float64](vcol.SimulationParams{Hydrostatic: false}, hv,
			l, workspace.NewPool[float64](2, l.Interfaces()))

		s := newTestState(nlev, rng)
		dp := vcol.NewColumn[float64](l)
		dp.Fill(1e5 / float64(nlev))

		origW := make([]float64, nlev+1)
		origPhi := make([]float64, nlev+1)
		for k := 0; k <= nlev; k++ {
			origW[k] = s.WI.At(k)
			origPhi[k] = s.PhiI.At(k)
		}

		for i := 0; i < sp.NumStatesPreprocess(); i++ {
			sp.PreprocessState(i, s, dp)
		}
		for i := 0; i < sp.NumStatesPostprocess(); i++ {
			sp.PostprocessState(i, s, dp)
		}

		for k := 0; k < nlev; k++ {
			if diff := math.Abs(s.WI.At(k) - origW[k]); diff > 1e-9 {
				t.Errorf("nlev=%d: w_i(%d) = %v, want %v", nlev, k, s.WI.At(k), origW[k])
			}
		}
		wantSurf := (s.U.At(nlev-1)*s.GradPhis[0] + s.V.At(nlev-1)*s.GradPhis[1]) / vcol.Gravity
		if s.WI.At(nlev) != wantSurf {
			t.Errorf("nlev=%d: surface w = %v, want diagnostic %v", nlev, s.WI.At(nlev), wantSurf)
		}

		for k := 0; k <= nlev; k++ {
			if diff := math.Abs(s.PhiI.At(k) - origPhi[k]); diff > 1e-6*math.Abs(origPhi[k])+1e-9 {
				t.Errorf("nlev=%d: phi_i(%d) = %v, want %v", nlev, k, s.PhiI.At(k), origPhi[k])
			}
		}
	}
}
