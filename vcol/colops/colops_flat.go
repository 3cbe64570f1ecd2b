package colops

import "github.com/ajroetker/go-column/vcol"

// Flat per-level implementations. These are the reference semantics: one
// level per iteration, no cross-lane traffic. The packed implementations in
// colops_packed.go must reproduce these results bit for bit.

func midpointValuesFlat[T vcol.Floats](xi, xm vcol.Column[T], cm Combine[T]) {
	nlev := xm.Layout.NumLevels
	for k := 0; k < nlev; k++ {
		tmp := (xi.At(k) + xi.At(k+1)) / 2
		cm.ApplyScalar(tmp, xm.LaneAt(k))
	}
}

func midpointValuesWeightedFlat[T vcol.Floats](wi, wm, xi, xm vcol.Column[T], cm Combine[T]) {
	nlev := xm.Layout.NumLevels
	for k := 0; k < nlev; k++ {
		tmp := (xi.At(k)*wi.At(k) + xi.At(k+1)*wi.At(k+1)) / (2 * wm.At(k))
		cm.ApplyScalar(tmp, xm.LaneAt(k))
	}
}

func interfaceValuesFlat[T vcol.Floats](xm, xi vcol.Column[T], cm Combine[T]) {
	nlev := xm.Layout.NumLevels
	for k := 1; k < nlev; k++ {
		tmp := (xm.At(k) + xm.At(k-1)) / 2
		cm.ApplyScalar(tmp, xi.LaneAt(k))
	}
	// Pure extrapolation at the boundaries.
	cm.ApplyScalar(xm.At(0), xi.LaneAt(0))
	cm.ApplyScalar(xm.At(nlev-1), xi.LaneAt(nlev))
}

func interfaceValuesWeightedFlat[T vcol.Floats](wm, wi, xm, xi vcol.Column[T], cm Combine[T]) {
	nlev := xm.Layout.NumLevels
	for k := 1; k < nlev; k++ {
		tmp := (xm.At(k)*wm.At(k) + xm.At(k-1)*wm.At(k-1)) / (2 * wi.At(k))
		cm.ApplyScalar(tmp, xi.LaneAt(k))
	}
	cm.ApplyScalar(xm.At(0), xi.LaneAt(0))
	cm.ApplyScalar(xm.At(nlev-1), xi.LaneAt(nlev))
}

func midpointDeltaFlat[T vcol.Floats](xi, dxm vcol.Column[T], cm Combine[T]) {
	nlev := dxm.Layout.NumLevels
	for k := 0; k < nlev; k++ {
		cm.ApplyScalar(xi.At(k+1)-xi.At(k), dxm.LaneAt(k))
	}
}

func interfaceDeltaFlat[T vcol.Floats](xm, dxi vcol.Column[T], bc BC[T], cm Combine[T]) {
	nlev := xm.Layout.NumLevels
	for k := 1; k < nlev; k++ {
		cm.ApplyScalar(xm.At(k)-xm.At(k-1), dxi.LaneAt(k))
	}
	switch bc.Type {
	case BCZero:
		cm.ApplyScalar(0, dxi.LaneAt(0))
		cm.ApplyScalar(0, dxi.LaneAt(nlev))
	case BCValue:
		cm.ApplyScalar(bc.Value, dxi.LaneAt(0))
		cm.ApplyScalar(bc.Value, dxi.LaneAt(nlev))
	}
}
