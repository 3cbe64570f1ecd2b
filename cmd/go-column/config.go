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
	"fmt"

	"github.com/BurntSushi/toml"
)

// Namelist is the TOML run configuration.
type Namelist struct {
	// NumLevels is the number of vertical layers.
	NumLevels int
	// NumColumns is how many independent columns to run.
	NumColumns int
	// QSize is the tracer count; tracer 0 is water vapor.
	QSize int

	// Hydrostatic selects the hydrostatic equation-of-state paths.
	Hydrostatic bool
	// Moist enables the moist gas-constant mixture.
	Moist bool
	// DoSubsidence enables large-scale vertical advection.
	DoSubsidence bool

	// Dt is the timestep in seconds; Steps the number of timesteps.
	Dt    float64
	Steps int

	// Workers caps the worker pool; 0 means GOMAXPROCS.
	Workers int

	// SurfacePressure is the initial surface pressure [Pa].
	SurfacePressure float64
	// InitialT is the temperature of the isothermal initial state [K].
	InitialT float64
	// InitialQv is the initial water-vapor mixing ratio [kg/kg].
	InitialQv float64

	// Forcing holds the constant prescribed profiles applied at every
	// level and every step.
	Forcing ForcingNamelist
}

// ForcingNamelist is the constant large-scale forcing.
type ForcingNamelist struct {
	// Omega is the vertical pressure velocity [Pa/s].
	Omega float64
	// DivT is the temperature tendency [K/s].
	DivT float64
	// DivQ is the moisture tendency [kg/kg/s].
	DivQ float64
}

// defaultNamelist is a small moist hydrostatic case.
func defaultNamelist() *Namelist {
	return &Namelist{
		NumLevels:       72,
		NumColumns:      4,
		QSize:           1,
		Hydrostatic:     true,
		Moist:           true,
		DoSubsidence:    true,
		Dt:              300,
		Steps:           48,
		SurfacePressure: 1e5,
		InitialT:        288,
		InitialQv:       0.004,
		Forcing: ForcingNamelist{
			Omega: 0.02,
			DivT:  1e-5,
			DivQ:  -1e-9,
		},
	}
}

// loadNamelist reads a TOML namelist, layering it over the defaults.
func loadNamelist(path string) (*Namelist, error) {
	nl := defaultNamelist()
	if path == "" {
		return nl, nil
	}
	if _, err := toml.DecodeFile(path, nl); err != nil {
		return nil, fmt.Errorf("go-column: reading namelist %s: %w", path, err)
	}
	if err := nl.validate(); err != nil {
		return nil, fmt.Errorf("go-column: namelist %s: %w", path, err)
	}
	return nl, nil
}

func (nl *Namelist) validate() error {
	if nl.NumLevels < 2 {
		return fmt.Errorf("NumLevels must be at least 2, got %d", nl.NumLevels)
	}
	if nl.NumColumns < 1 {
		return fmt.Errorf("NumColumns must be positive, got %d", nl.NumColumns)
	}
	if nl.QSize < 1 {
		return fmt.Errorf("QSize must be at least 1 (water vapor), got %d", nl.QSize)
	}
	if nl.Dt <= 0 {
		return fmt.Errorf("Dt must be positive, got %v", nl.Dt)
	}
	if nl.Steps < 1 {
		return fmt.Errorf("Steps must be positive, got %d", nl.Steps)
	}
	if nl.SurfacePressure <= 0 {
		return fmt.Errorf("SurfacePressure must be positive, got %v", nl.SurfacePressure)
	}
	if nl.InitialT <= 0 {
		return fmt.Errorf("InitialT must be positive, got %v", nl.InitialT)
	}
	if nl.InitialQv < 0 {
		return fmt.Errorf("InitialQv must be non-negative, got %v", nl.InitialQv)
	}
	return nil
}
