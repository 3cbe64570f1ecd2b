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

import (
	"sort"

	"github.com/ctessum/sparse"

	"github.com/ajroetker/go-column/vcol"
)

// Forcing holds the prescribed large-scale forcing time series: vertical
// pressure velocity and the horizontal advective tendency divergences for
// temperature and water vapor, each on a (time, level) grid. The 3-D
// variants, when present, replace the observed tendencies with ones
// derived from a 3-D reanalysis.
//
// The arrays are filled by an external ingestion step and read-only during
// the run, so one Forcing is safely shared by all concurrent columns.
type Forcing struct {
	// Times are the sample times, in seconds since the case start,
	// strictly increasing.
	Times []float64

	Omega *sparse.DenseArray
	DivT  *sparse.DenseArray
	DivQ  *sparse.DenseArray

	// DivT3D, DivQ3D are optional; nil when the case supplies only the
	// observed tendencies.
	DivT3D *sparse.DenseArray
	DivQ3D *sparse.DenseArray
}

// NewForcing allocates a zero forcing dataset for the given sample times
// and level count.
func NewForcing(times []float64, nlev int) *Forcing {
	vcol.Assertf(len(times) > 0, "iop: forcing needs at least one sample time")
	for i := 1; i < len(times); i++ {
		vcol.Assertf(times[i] > times[i-1], "iop: forcing times must be strictly increasing")
	}
	return &Forcing{
		Times: times,
		Omega: sparse.ZerosDense(len(times), nlev),
		DivT:  sparse.ZerosDense(len(times), nlev),
		DivQ:  sparse.ZerosDense(len(times), nlev),
	}
}

// NumLevels returns the level count of the forcing profiles.
func (f *Forcing) NumLevels() int { return f.Omega.Shape[1] }

// Has3D reports whether the 3-D tendency variants are available.
func (f *Forcing) Has3D() bool { return f.DivT3D != nil && f.DivQ3D != nil }

// timeIndex returns the sample nearest to t.
func (f *Forcing) timeIndex(t float64) int {
	i := sort.SearchFloat64s(f.Times, t)
	if i == len(f.Times) {
		return i - 1
	}
	if i > 0 && t-f.Times[i-1] < f.Times[i]-t {
		return i - 1
	}
	return i
}

// ProfileAt extracts the forcing profiles at the sample time nearest to t.
// With use3D set the 3-D tendency divergences are returned instead of the
// observed ones; requesting them when absent is a configuration error.
func (f *Forcing) ProfileAt(t float64, use3D bool) (omega, divT, divQ []float64) {
	divTArr, divQArr := f.DivT, f.DivQ
	if use3D {
		vcol.Assertf(f.Has3D(), "iop: 3-D forcing requested but not ingested")
		divTArr, divQArr = f.DivT3D, f.DivQ3D
	}

	it := f.timeIndex(t)
	nlev := f.NumLevels()
	omega = make([]float64, nlev)
	divT = make([]float64, nlev)
	divQ = make([]float64, nlev)
	for k := 0; k < nlev; k++ {
		omega[k] = f.Omega.Get(it, k)
		divT[k] = divTArr.Get(it, k)
		divQ[k] = divQArr.Get(it, k)
	}
	return omega, divT, divQ
}
