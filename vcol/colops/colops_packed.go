package colops

import "github.com/ajroetker/go-column/vcol"

// Packed implementations. Each kernel walks whole packs and uses cross-lane
// shifts to reach the neighboring level, so all Width lanes are processed
// per iteration. The first or last pack needs separate handling where the
// shifted-in lane crosses a pack boundary or the grid edge.
//
// Tail lanes of the final pack may be written with unspecified values; they
// are never read.

func midpointValuesPacked[T vcol.Floats](xi, xm vcol.Column[T], cm Combine[T]) {
	mids := xm.Layout
	ints := xi.Layout

	for ip := 0; ip < mids.LastPack; ip++ {
		tmp := vcol.SlideDownLanes(xi.Packs[ip], 1)
		tmp[vcol.Width-1] = xi.Packs[ip+1][0]
		tmp = vcol.Add(tmp, xi.Packs[ip])
		tmp = vcol.Scale(tmp, 0.5)
		cm.Apply(tmp, &xm.Packs[ip])
	}

	// The last pack is treated separately: pack ip+1 may not exist when the
	// midpoint and interface grids need the same number of packs.
	tmp := vcol.SlideDownLanes(xi.Packs[mids.LastPack], 1)
	tmp[mids.LastPackEnd] = xi.Packs[ints.LastPack][ints.LastPackEnd]
	tmp = vcol.Add(tmp, xi.Packs[mids.LastPack])
	tmp = vcol.Scale(tmp, 0.5)
	cm.Apply(tmp, &xm.Packs[mids.LastPack])
}

func midpointValuesWeightedPacked[T vcol.Floats](wi, wm, xi, xm vcol.Column[T], cm Combine[T]) {
	mids := xm.Layout
	ints := xi.Layout

	for ip := 0; ip < mids.LastPack; ip++ {
		w := vcol.Mul(xi.Packs[ip], wi.Packs[ip])
		tmp := vcol.SlideDownLanes(w, 1)
		tmp[vcol.Width-1] = xi.Packs[ip+1][0] * wi.Packs[ip+1][0]
		tmp = vcol.Add(tmp, w)
		tmp = vcol.Div(tmp, vcol.Scale(wm.Packs[ip], 2))
		cm.Apply(tmp, &xm.Packs[ip])
	}

	w := vcol.Mul(xi.Packs[mids.LastPack], wi.Packs[mids.LastPack])
	tmp := vcol.SlideDownLanes(w, 1)
	tmp[mids.LastPackEnd] = xi.Packs[ints.LastPack][ints.LastPackEnd] * wi.Packs[ints.LastPack][ints.LastPackEnd]
	tmp = vcol.Add(tmp, w)
	tmp = vcol.Div(tmp, vcol.Scale(wm.Packs[mids.LastPack], 2))
	cm.Apply(tmp, &xm.Packs[mids.LastPack])
}

func interfaceValuesPacked[T vcol.Floats](xm, xi vcol.Column[T], cm Combine[T]) {
	mids := xm.Layout
	ints := xi.Layout

	// The pack-wide stores below also hit the boundary lanes. Hold their
	// prior contents so the boundary closure combines into them exactly
	// once, matching the flat backend.
	top := xi.Packs[0][0]
	bot := xi.Packs[ints.LastPack][ints.LastPackEnd]

	for ip := 1; ip < mids.NumPacks; ip++ {
		tmp := vcol.SlideUpLanes(xm.Packs[ip], 1)
		tmp[0] = xm.Packs[ip-1][vcol.Width-1]
		tmp = vcol.Add(tmp, xm.Packs[ip])
		tmp = vcol.Scale(tmp, 0.5)
		cm.Apply(tmp, &xi.Packs[ip])
	}

	// First pack has no previous pack; SlideUpLanes inserts a leading zero,
	// and lane 0 is fixed by the extrapolation below anyway.
	tmp := vcol.SlideUpLanes(xm.Packs[0], 1)
	tmp = vcol.Add(tmp, xm.Packs[0])
	tmp = vcol.Scale(tmp, 0.5)
	cm.Apply(tmp, &xi.Packs[0])

	// Boundary extrapolation.
	xi.Packs[0][0] = top
	xi.Packs[ints.LastPack][ints.LastPackEnd] = bot
	cm.ApplyScalar(xm.Packs[0][0], &xi.Packs[0][0])
	cm.ApplyScalar(xm.Packs[mids.LastPack][mids.LastPackEnd], &xi.Packs[ints.LastPack][ints.LastPackEnd])
}

func interfaceValuesWeightedPacked[T vcol.Floats](wm, wi, xm, xi vcol.Column[T], cm Combine[T]) {
	mids := xm.Layout
	ints := xi.Layout

	top := xi.Packs[0][0]
	bot := xi.Packs[ints.LastPack][ints.LastPackEnd]

	for ip := 1; ip < mids.NumPacks; ip++ {
		w := vcol.Mul(xm.Packs[ip], wm.Packs[ip])
		tmp := vcol.SlideUpLanes(w, 1)
		tmp[0] = xm.Packs[ip-1][vcol.Width-1] * wm.Packs[ip-1][vcol.Width-1]
		tmp = vcol.Add(tmp, w)
		tmp = vcol.Div(tmp, vcol.Scale(wi.Packs[ip], 2))
		cm.Apply(tmp, &xi.Packs[ip])
	}

	w := vcol.Mul(xm.Packs[0], wm.Packs[0])
	tmp := vcol.SlideUpLanes(w, 1)
	tmp = vcol.Add(tmp, w)
	tmp = vcol.Div(tmp, vcol.Scale(wi.Packs[0], 2))
	cm.Apply(tmp, &xi.Packs[0])

	xi.Packs[0][0] = top
	xi.Packs[ints.LastPack][ints.LastPackEnd] = bot
	cm.ApplyScalar(xm.Packs[0][0], &xi.Packs[0][0])
	cm.ApplyScalar(xm.Packs[mids.LastPack][mids.LastPackEnd], &xi.Packs[ints.LastPack][ints.LastPackEnd])
}

func midpointDeltaPacked[T vcol.Floats](xi, dxm vcol.Column[T], cm Combine[T]) {
	mids := dxm.Layout
	ints := xi.Layout

	for ip := 0; ip < mids.LastPack; ip++ {
		tmp := vcol.SlideDownLanes(xi.Packs[ip], 1)
		tmp[vcol.Width-1] = xi.Packs[ip+1][0]
		cm.Apply(vcol.Sub(tmp, xi.Packs[ip]), &dxm.Packs[ip])
	}

	tmp := vcol.SlideDownLanes(xi.Packs[mids.LastPack], 1)
	tmp[mids.LastPackEnd] = xi.Packs[ints.LastPack][ints.LastPackEnd]
	cm.Apply(vcol.Sub(tmp, xi.Packs[mids.LastPack]), &dxm.Packs[mids.LastPack])
}

func interfaceDeltaPacked[T vcol.Floats](xm, dxi vcol.Column[T], bc BC[T], cm Combine[T]) {
	mids := xm.Layout
	ints := dxi.Layout

	top := dxi.Packs[0][0]
	bot := dxi.Packs[ints.LastPack][ints.LastPackEnd]

	for ip := 1; ip < mids.NumPacks; ip++ {
		tmp := vcol.SlideUpLanes(xm.Packs[ip], 1)
		tmp[0] = xm.Packs[ip-1][vcol.Width-1]
		cm.Apply(vcol.Sub(xm.Packs[ip], tmp), &dxi.Packs[ip])
	}

	tmp := vcol.SlideUpLanes(xm.Packs[0], 1)
	cm.Apply(vcol.Sub(xm.Packs[0], tmp), &dxi.Packs[0])

	// Put the boundary lanes back before the closure: DoNothing must leave
	// them untouched, and the other types must see the combine once.
	dxi.Packs[0][0] = top
	dxi.Packs[ints.LastPack][ints.LastPackEnd] = bot

	switch bc.Type {
	case BCZero:
		cm.ApplyScalar(0, &dxi.Packs[0][0])
		cm.ApplyScalar(0, &dxi.Packs[ints.LastPack][ints.LastPackEnd])
	case BCValue:
		cm.ApplyScalar(bc.Value, &dxi.Packs[0][0])
		cm.ApplyScalar(bc.Value, &dxi.Packs[ints.LastPack][ints.LastPackEnd])
	}
}
