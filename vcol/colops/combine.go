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

package colops

import "github.com/ajroetker/go-column/vcol"

// CombineMode controls how a freshly computed value is merged into the
// destination. In the most complete form the merge performs
//
//	result = beta*result + alpha*newVal
//
// and each mode fixes a subset of the coefficients so callers pay only for
// the operations their mode needs.
type CombineMode int

const (
	// Replace overwrites the destination: result = newVal.
	Replace CombineMode = iota
	// Scale stores a scaled value: result = alpha*newVal.
	Scale
	// Update accumulates with decay: result = beta*result + newVal.
	Update
	// ScaleUpdate is the general form: result = beta*result + alpha*newVal.
	ScaleUpdate
	// ScaleAdd adds a scaled value: result += alpha*newVal.
	ScaleAdd
	// Add accumulates: result += newVal.
	Add
	// ProdUpdate multiplies: result *= newVal.
	ProdUpdate
)

// String returns a human-readable name for the combine mode.
func (cm CombineMode) String() string {
	switch cm {
	case Replace:
		return "replace"
	case Scale:
		return "scale"
	case Update:
		return "update"
	case ScaleUpdate:
		return "scale-update"
	case ScaleAdd:
		return "scale-add"
	case Add:
		return "add"
	case ProdUpdate:
		return "prod-update"
	default:
		return "unknown"
	}
}

func (cm CombineMode) needsAlpha() bool {
	return cm == Scale || cm == ScaleAdd || cm == ScaleUpdate
}

func (cm CombineMode) needsBeta() bool {
	return cm == Update || cm == ScaleUpdate
}

// Combine bundles a mode with its auxiliary coefficients. The zero value is
// not valid; use Rep, Scaled, Updated, ScaleUpdated, ScaledAdd, Added, or
// ProdUpdated.
type Combine[T vcol.Floats] struct {
	Mode  CombineMode
	Alpha T
	Beta  T
}

// Rep returns the plain-overwrite combine.
func Rep[T vcol.Floats]() Combine[T] { return Combine[T]{Mode: Replace, Alpha: 1} }

// Scaled returns the result = alpha*newVal combine.
func Scaled[T vcol.Floats](alpha T) Combine[T] { return Combine[T]{Mode: Scale, Alpha: alpha} }

// Updated returns the result = beta*result + newVal combine.
func Updated[T vcol.Floats](beta T) Combine[T] {
	return Combine[T]{Mode: Update, Alpha: 1, Beta: beta}
}

// ScaleUpdated returns the result = beta*result + alpha*newVal combine.
func ScaleUpdated[T vcol.Floats](alpha, beta T) Combine[T] {
	return Combine[T]{Mode: ScaleUpdate, Alpha: alpha, Beta: beta}
}

// ScaledAdd returns the result += alpha*newVal combine.
func ScaledAdd[T vcol.Floats](alpha T) Combine[T] { return Combine[T]{Mode: ScaleAdd, Alpha: alpha} }

// Added returns the result += newVal combine.
func Added[T vcol.Floats]() Combine[T] { return Combine[T]{Mode: Add, Alpha: 1} }

// ProdUpdated returns the result *= newVal combine.
func ProdUpdated[T vcol.Floats]() Combine[T] { return Combine[T]{Mode: ProdUpdate, Alpha: 1} }

// sanityCheck verifies that the auxiliary coefficients agree with the mode:
// supplying an alpha or beta the mode would silently discard is a caller
// contract violation.
func (c Combine[T]) sanityCheck() {
	if !vcol.DebugChecks {
		return
	}
	vcol.Assertf(c.Mode.needsAlpha() || c.Alpha == 1,
		"colops: alpha=%v supplied, but combine mode %q discards alpha", c.Alpha, c.Mode)
	vcol.Assertf(c.Mode.needsBeta() || c.Beta == 0,
		"colops: beta=%v supplied, but combine mode %q discards beta", c.Beta, c.Mode)
}

// Apply merges a freshly computed pack into the destination pack.
func (c Combine[T]) Apply(newVal vcol.Pack[T], result *vcol.Pack[T]) {
	switch c.Mode {
	case Replace:
		*result = newVal
	case Scale:
		*result = vcol.Scale(newVal, c.Alpha)
	case Update:
		*result = vcol.Add(vcol.Scale(*result, c.Beta), newVal)
	case ScaleUpdate:
		*result = vcol.Add(vcol.Scale(*result, c.Beta), vcol.Scale(newVal, c.Alpha))
	case ScaleAdd:
		*result = vcol.Add(*result, vcol.Scale(newVal, c.Alpha))
	case Add:
		*result = vcol.Add(*result, newVal)
	case ProdUpdate:
		*result = vcol.Mul(*result, newVal)
	}
}

// ApplyScalar merges a freshly computed scalar into a single lane.
func (c Combine[T]) ApplyScalar(newVal T, result *T) {
	switch c.Mode {
	case Replace:
		*result = newVal
	case Scale:
		*result = c.Alpha * newVal
	case Update:
		*result = c.Beta**result + newVal
	case ScaleUpdate:
		*result = c.Beta**result + c.Alpha*newVal
	case ScaleAdd:
		*result += c.Alpha * newVal
	case Add:
		*result += newVal
	case ProdUpdate:
		*result *= newVal
	}
}

// BCType controls what the top and bottom interfaces of a first-difference
// result are set to.
type BCType int

const (
	// BCZero sets the boundary interfaces to zero.
	BCZero BCType = iota
	// BCValue sets the boundary interfaces to a caller-supplied constant.
	BCValue
	// BCDoNothing leaves the boundary interfaces untouched.
	BCDoNothing
)

// BC bundles a boundary-condition type with its value (used by BCValue
// only).
type BC[T vcol.Floats] struct {
	Type  BCType
	Value T
}
