package vcol

// HybridVCoord holds the hybrid vertical-coordinate coefficients. Pressure
// at a level is the affine function A*ps0 + B*ps of the surface pressure ps.
// The struct is initialized once at model start and shared read-only by all
// concurrent column tasks.
type HybridVCoord struct {
	// Ps0 is the reference surface pressure [Pa].
	Ps0 float64
	// Ai, Bi are the interface coefficients (nlev+1 each).
	Ai, Bi []float64
	// Am, Bm are the midpoint coefficients (nlev each).
	Am, Bm []float64
}

// NewHybridVCoord validates and returns a hybrid coordinate definition.
func NewHybridVCoord(ps0 float64, ai, bi, am, bm []float64) HybridVCoord {
	nlev := len(am)
	assertf(nlev > 0, "vcol: hybrid coordinate needs at least one level")
	assertf(len(bm) == nlev, "vcol: hybm has %d levels, hyam has %d", len(bm), nlev)
	assertf(len(ai) == nlev+1, "vcol: hyai has %d levels, expected %d", len(ai), nlev+1)
	assertf(len(bi) == nlev+1, "vcol: hybi has %d levels, expected %d", len(bi), nlev+1)
	return HybridVCoord{Ps0: ps0, Ai: ai, Bi: bi, Am: am, Bm: bm}
}

// UniformHybrid builds a pure-sigma coordinate with nlev equal-thickness
// layers: Ai=Am=0 except Ai[0]=0, and B varying linearly from 0 at the top
// to 1 at the surface. Mostly useful for tests and the single-column driver.
func UniformHybrid(nlev int, ps0 float64) HybridVCoord {
	ai := make([]float64, nlev+1)
	bi := make([]float64, nlev+1)
	am := make([]float64, nlev)
	bm := make([]float64, nlev)
	for k := 0; k <= nlev; k++ {
		bi[k] = float64(k) / float64(nlev)
	}
	for k := 0; k < nlev; k++ {
		bm[k] = (bi[k] + bi[k+1]) / 2
	}
	return NewHybridVCoord(ps0, ai, bi, am, bm)
}

// NumLevels returns the number of midpoint levels.
func (h HybridVCoord) NumLevels() int { return len(h.Am) }

// PTop returns the pressure at the model top interface for the reference
// surface pressure: Ai[0]*Ps0.
func (h HybridVCoord) PTop() float64 { return h.Ai[0] * h.Ps0 }

// PressureI returns the pressure at interface k for surface pressure ps.
func (h HybridVCoord) PressureI(k int, ps float64) float64 {
	return h.Ai[k]*h.Ps0 + h.Bi[k]*ps
}

// PressureM returns the pressure at midpoint k for surface pressure ps.
func (h HybridVCoord) PressureM(k int, ps float64) float64 {
	return h.Am[k]*h.Ps0 + h.Bm[k]*ps
}

// SimulationParams holds the immutable run configuration consumed by the
// thermodynamic kernels.
type SimulationParams struct {
	// Hydrostatic selects the hydrostatic equation-of-state paths.
	Hydrostatic bool
	// Moist enables the moist gas-constant mixture.
	Moist bool
	// QSize is the number of tracers carried by the state.
	QSize int
}
