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

package main

import (
	"log"

	"github.com/ajroetker/go-column/vcol"
	"github.com/ajroetker/go-column/vcol/colops"
	"github.com/ajroetker/go-column/vcol/elemops"
	"github.com/ajroetker/go-column/vcol/eos"
	"github.com/ajroetker/go-column/vcol/iop"
	"github.com/ajroetker/go-column/vcol/workerpool"
)

// runSimulation integrates the configured case and logs column integrals.
func runSimulation(nl *Namelist) error {
	hv := vcol.UniformHybrid(nl.NumLevels, nl.SurfacePressure)
	params := vcol.SimulationParams{
		Hydrostatic: nl.Hydrostatic,
		Moist:       nl.Moist,
		QSize:       nl.QSize,
	}

	es := initialState(nl, params, hv)

	forcing := iop.NewForcing([]float64{0}, nl.NumLevels)
	for k := 0; k < nl.NumLevels; k++ {
		forcing.Omega.Set(nl.Forcing.Omega, 0, k)
		forcing.DivT.Set(nl.Forcing.DivT, 0, k)
		forcing.DivQ.Set(nl.Forcing.DivQ, 0, k)
	}

	pool := workerpool.New(nl.Workers)
	defer pool.Close()
	forcer := iop.NewForcer[float64](params, hv, pool, iop.Options{
		DoSubsidence: nl.DoSubsidence,
	})

	log.Printf("go-column v%s: %d columns, %d levels, %d tracers, dispatch %s",
		Version, nl.NumColumns, nl.NumLevels, nl.QSize, vcol.CurrentLevel())
	log.Printf("stepping %d x %.0fs (hydrostatic=%v moist=%v subsidence=%v)",
		nl.Steps, nl.Dt, nl.Hydrostatic, nl.Moist, nl.DoSubsidence)

	t := 0.0
	for step := 0; step < nl.Steps; step++ {
		forcer.ApplyForcing(nl.Dt, t, forcing, es)
		t += nl.Dt
	}

	reportIntegrals(es, params, hv)
	return nil
}

// initialState builds an isothermal, windless atmosphere at the configured
// temperature and moisture.
func initialState(nl *Namelist, params vcol.SimulationParams, hv vcol.HybridVCoord) *iop.ElementState[float64] {
	l := vcol.NewLayout(nl.NumLevels)
	ops := elemops.New[float64](hv)
	es := iop.NewElementState[float64](nl.NumColumns, nl.NumLevels, nl.QSize)

	pI := vcol.NewColumn[float64](l.Interfaces())
	pM := vcol.NewColumn[float64](l)
	exner := vcol.NewColumn[float64](l)
	rstar := vcol.NewColumn[float64](l)

	for i := range es.Columns {
		c := &es.Columns[i]
		c.Ps = nl.SurfacePressure
		for k := 0; k < nl.NumLevels; k++ {
			c.Dp.SetAt(k, hv.PressureI(k+1, nl.SurfacePressure)-hv.PressureI(k, nl.SurfacePressure))
			c.Q[0].SetAt(k, nl.InitialQv)
		}

		ops.ComputeHydrostaticP(c.Dp, pI, pM)
		eos.New[float64](vcol.SimulationParams{Hydrostatic: true}, hv).ComputeExner(pM, exner)
		ops.GetRStar(params.Moist, colops.FromColumn(c.Q[0]), rstar)

		for k := 0; k < nl.NumLevels; k++ {
			vtheta := nl.InitialT * rstar.At(k) * c.Dp.At(k) / (vcol.Rgas * exner.At(k))
			c.VThetaDp.SetAt(k, vtheta)
			for iq := range c.Q {
				c.Qdp[iq].SetAt(k, c.Q[iq].At(k)*c.Dp.At(k))
			}
		}
		eos.New[float64](params, hv).ComputePhiI(0, colops.FromColumn(c.VThetaDp), pM, c.PhiI)
	}
	return es
}

// reportIntegrals logs the mass-weighted mean temperature and the
// precipitable water of every column.
func reportIntegrals(es *iop.ElementState[float64], params vcol.SimulationParams, hv vcol.HybridVCoord) {
	l := es.Layout
	ops := elemops.New[float64](hv)
	e := eos.New[float64](vcol.SimulationParams{Hydrostatic: true}, hv)

	pI := vcol.NewColumn[float64](l.Interfaces())
	pM := vcol.NewColumn[float64](l)
	exner := vcol.NewColumn[float64](l)
	rstar := vcol.NewColumn[float64](l)
	temp := vcol.NewColumn[float64](l)

	for i := range es.Columns {
		c := &es.Columns[i]
		ops.ComputeHydrostaticP(c.Dp, pI, pM)
		e.ComputeExner(pM, exner)
		ops.GetRStar(params.Moist, colops.FromColumn(c.Q[0]), rstar)
		ops.GetTemperature(rstar, exner, c.VThetaDp, c.Dp, temp)

		var mass, heat, water float64
		for k := 0; k < l.NumLevels; k++ {
			mass += c.Dp.At(k)
			heat += temp.At(k) * c.Dp.At(k)
			water += c.Q[0].At(k) * c.Dp.At(k)
		}
		log.Printf("column %d: mean T %.3f K, precipitable water %.3f kg/m2",
			i, heat/mass, water/vcol.Gravity)
	}
}
