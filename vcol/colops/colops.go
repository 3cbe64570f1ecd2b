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

// Package colops implements the column-local interpolation, differencing,
// and scan primitives every thermodynamic kernel is built on.
//
// Each kernel computes values at level midpoints from interface values or
// vice versa, and merges them into the destination through a CombineMode, so
// the same interpolation math serves "compute and store", "compute and
// accumulate", and "compute a correction" call sites.
//
// The interpolation and differencing kernels have no sequential dependency
// between levels; they run either as a flat per-level loop or as a packed
// loop using cross-lane shifts, selected by vcol.CurrentLevel(). The two
// strategies are bit-identical. The scan kernels are inherently sequential
// along the column and have a single implementation.
package colops

import "github.com/ajroetker/go-column/vcol"

// MidpointValues computes each midpoint value as the arithmetic mean of its
// two bounding interface values. xi must be on the interface grid bounding
// xm's midpoint grid.
func MidpointValues[T vcol.Floats](xi, xm vcol.Column[T], cm Combine[T]) {
	cm.sanityCheck()
	checkGrids(xm, xi)
	if vcol.CurrentLevel() == vcol.DispatchPacked {
		midpointValuesPacked(xi, xm, cm)
	} else {
		midpointValuesFlat(xi, xm, cm)
	}
}

// MidpointValuesWeighted is the weighted variant of MidpointValues:
// xm(k) = (xi(k)*wi(k) + xi(k+1)*wi(k+1)) / (2*wm(k)).
func MidpointValuesWeighted[T vcol.Floats](wi, wm, xi, xm vcol.Column[T], cm Combine[T]) {
	cm.sanityCheck()
	checkGrids(xm, xi)
	if vcol.CurrentLevel() == vcol.DispatchPacked {
		midpointValuesWeightedPacked(wi, wm, xi, xm, cm)
	} else {
		midpointValuesWeightedFlat(wi, wm, xi, xm, cm)
	}
}

// InterfaceValues computes interface values from midpoint values: interior
// interfaces are the mean of the two bounding midpoints; the top interface
// equals the topmost midpoint and the bottom interface the bottommost
// midpoint. The boundary extrapolation rule is load-bearing: downstream
// integrals rely on it exactly.
func InterfaceValues[T vcol.Floats](xm, xi vcol.Column[T], cm Combine[T]) {
	cm.sanityCheck()
	checkGrids(xm, xi)
	if vcol.CurrentLevel() == vcol.DispatchPacked {
		interfaceValuesPacked(xm, xi, cm)
	} else {
		interfaceValuesFlat(xm, xi, cm)
	}
}

// InterfaceValuesWeighted is the weighted variant of InterfaceValues:
// xi(k) = (xm(k)*wm(k) + xm(k-1)*wm(k-1)) / (2*wi(k)) in the interior, with
// the same unweighted extrapolation at the boundaries.
func InterfaceValuesWeighted[T vcol.Floats](wm, wi, xm, xi vcol.Column[T], cm Combine[T]) {
	cm.sanityCheck()
	checkGrids(xm, xi)
	if vcol.CurrentLevel() == vcol.DispatchPacked {
		interfaceValuesWeightedPacked(wm, wi, xm, xi, cm)
	} else {
		interfaceValuesWeightedFlat(wm, wi, xm, xi, cm)
	}
}

// MidpointDelta computes the first difference of interface values at
// midpoints: dxm(k) = xi(k+1) - xi(k). Interfaces fully bound midpoints, so
// there is no boundary case.
func MidpointDelta[T vcol.Floats](xi, dxm vcol.Column[T], cm Combine[T]) {
	cm.sanityCheck()
	checkGrids(dxm, xi)
	if vcol.CurrentLevel() == vcol.DispatchPacked {
		midpointDeltaPacked(xi, dxm, cm)
	} else {
		midpointDeltaFlat(xi, dxm, cm)
	}
}

// InterfaceDelta computes the first difference of midpoint values at
// interfaces: dxi(k) = xm(k) - xm(k-1) in the interior. The top and bottom
// interfaces are set per the boundary condition: zero, a supplied constant,
// or left untouched.
func InterfaceDelta[T vcol.Floats](xm, dxi vcol.Column[T], bc BC[T], cm Combine[T]) {
	cm.sanityCheck()
	checkGrids(xm, dxi)
	if vcol.CurrentLevel() == vcol.DispatchPacked {
		interfaceDeltaPacked(xm, dxi, bc, cm)
	} else {
		interfaceDeltaFlat(xm, dxi, bc, cm)
	}
}

func checkGrids[T vcol.Floats](mid, iface vcol.Column[T]) {
	if !vcol.DebugChecks {
		return
	}
	vcol.Assertf(iface.Layout.NumLevels == mid.Layout.NumLevels+1,
		"colops: interface column has %d levels, midpoint column has %d",
		iface.Layout.NumLevels, mid.Layout.NumLevels)
}
