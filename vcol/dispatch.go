package vcol

import (
	"os"
	"strconv"

	"golang.org/x/sys/cpu"
)

// DispatchLevel selects how the column kernels traverse the vertical
// dimension. The two strategies implement the same per-level algorithm and
// produce bit-identical results; the choice is purely a performance one.
type DispatchLevel int

const (
	// DispatchFlat processes one level at a time in a plain loop. This is
	// the strategy a fine-grained parallel device would use, and the
	// reference for the packed path.
	DispatchFlat DispatchLevel = iota

	// DispatchPacked processes Width levels at a time using lane shifts
	// across pack boundaries.
	DispatchPacked
)

// String returns a human-readable name for the dispatch level.
func (d DispatchLevel) String() string {
	switch d {
	case DispatchFlat:
		return "flat"
	case DispatchPacked:
		return "packed"
	default:
		return "unknown"
	}
}

var currentLevel DispatchLevel

func init() {
	currentLevel = detectLevel()
}

func detectLevel() DispatchLevel {
	if NoPackedEnv() {
		return DispatchFlat
	}
	// The packed path pays off when the hardware can keep a full pack in
	// vector registers.
	if cpu.X86.HasAVX2 || cpu.X86.HasAVX512F || cpu.ARM64.HasASIMD {
		return DispatchPacked
	}
	return DispatchFlat
}

// CurrentLevel returns the dispatch strategy in use.
func CurrentLevel() DispatchLevel {
	return currentLevel
}

// SetLevel overrides the dispatch strategy. It exists so tests can exercise
// both paths; it is not synchronized and should not be called while kernels
// are running.
func SetLevel(l DispatchLevel) {
	currentLevel = l
}

// NoPackedEnv checks if the VCOL_FLAT environment variable is set.
// When set, kernels use the flat per-level loops regardless of CPU
// capabilities. This is useful for testing and debugging.
func NoPackedEnv() bool {
	val := os.Getenv("VCOL_FLAT")
	if val == "" {
		return false
	}
	if b, err := strconv.ParseBool(val); err == nil {
		return b
	}
	return true
}
