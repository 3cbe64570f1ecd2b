package vcol

import "fmt"

// Contract violations in this library are programming errors, not runtime
// conditions: they abort via panic with a message naming the violated
// contract. The cheap checks stay on in every build; the per-lane checks in
// hot kernels are guarded by DebugChecks so release builds pay nothing.

// Assertf panics with a formatted message if cond is false. It is exported
// for the subpackages, which share the same failure semantics.
func Assertf(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Sprintf(format, args...))
	}
}

func assertf(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Sprintf(format, args...))
	}
}
