//go:build vcolnodebug

package vcol

// DebugChecks is disabled in vcolnodebug builds.
const DebugChecks = false
