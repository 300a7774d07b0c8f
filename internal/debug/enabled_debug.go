//go:build debug

package debug

// Enabled is true when built with -tags debug.
const Enabled = true
