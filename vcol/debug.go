//go:build !vcolnodebug

package vcol

// DebugChecks enables the per-call precondition checks in the column
// kernels (combine-mode auxiliaries, mode flags). Build with the
// vcolnodebug tag to compile them out.
const DebugChecks = true
