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
	"github.com/ajroetker/go-column/vcol"
	"github.com/ajroetker/go-column/vcol/colops"
	"github.com/ajroetker/go-column/vcol/workspace"
)

// AdvanceSubsidence applies one explicit step of large-scale subsidence to
// the horizontal wind, temperature, and tracers of one column.
//
// The prescribed pressure velocity omega is first blended onto interfaces
// with a pressure-weighted average of the two bounding midpoints and
// zeroed at the top and bottom interfaces. Each quantity then loses the
// upwind flux difference
//
//	dt/(2*dp) * (omega_i(k+1)*delta(k) + omega_i(k)*delta(k-1))
//
// where delta(k) = x(k+1)-x(k); only the downward term applies at the top
// level and only the upward term at the bottom. Temperature additionally
// gains the adiabatic expansion term dt*omega*T*Rgas/(Cp*pmid).
//
// The workspace must have 4+len(q) free slots.
func AdvanceSubsidence[T vcol.Floats](dt T, pmid, pint, pdel, omega vcol.Column[T],
	u, v, temp vcol.Column[T], q []vcol.Column[T], ws *workspace.Pool[T]) {
	mids := pmid.Layout
	nlev := mids.NumLevels

	hOmega, omegaInt := ws.Take(mids.Interfaces())
	hDeltas, deltas := ws.TakeMany(3+len(q), mids)
	defer hOmega.Release()
	defer hDeltas.Release()

	for k := 1; k < nlev; k++ {
		w := (pint.At(k) - pmid.At(k-1)) / (pmid.At(k) - pmid.At(k-1))
		omegaInt.SetAt(k, w*omega.At(k)+(1-w)*omega.At(k-1))
	}
	omegaInt.SetAt(0, 0)
	omegaInt.SetAt(nlev, 0)

	// Level-to-level changes: nlev midpoint values bound nlev-1 gaps, so
	// each field doubles as the interface grid of a one-shorter column.
	gaps := vcol.NewLayout(nlev - 1)
	fields := append([]vcol.Column[T]{u, v, temp}, q...)
	for i, x := range fields {
		deltas[i] = vcol.WrapColumn(deltas[i].Packs, gaps)
		colops.MidpointDelta(vcol.WrapColumn(x.Packs, gaps.Interfaces()), deltas[i], colops.Rep[T]())
	}

	for k := 0; k < nlev; k++ {
		fac := dt / (2 * pdel.At(k))
		omUp := omegaInt.At(k)
		omDown := omegaInt.At(k + 1)

		tOld := temp.At(k)
		for i, x := range fields {
			dx := deltas[i]
			var flux T
			switch {
			case k == 0:
				flux = omDown * dx.At(k)
			case k == nlev-1:
				flux = omUp * dx.At(k-1)
			default:
				flux = omDown*dx.At(k) + omUp*dx.At(k-1)
			}
			x.SetAt(k, x.At(k)-fac*flux)
		}
		temp.AddAt(k, dt*omega.At(k)*tOld*vcol.Rgas/(vcol.Cp*pmid.At(k)))
	}
}

// AdvanceForcing applies the prescribed large-scale tendencies with one
// explicit Euler step: T += dt*divT, qv += dt*divq, per level.
func AdvanceForcing[T vcol.Floats](dt T, divT, divQ, temp, qv vcol.Column[T]) {
	for ip := range temp.Packs {
		temp.Packs[ip] = vcol.Add(temp.Packs[ip], vcol.Scale(divT.Packs[ip], dt))
		qv.Packs[ip] = vcol.Add(qv.Packs[ip], vcol.Scale(divQ.Packs[ip], dt))
	}
}
