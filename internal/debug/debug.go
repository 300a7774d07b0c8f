// Package debug reports invalid state transitions. Release builds ignore them
// so the host UI stays up; builds tagged "debug" panic instead.
package debug

import "fmt"

// Violation records an invalid state transition such as mutating a disposed
// toast or completing a dialog twice.
func Violation(format string, args ...any) {
	if Enabled {
		panic("invalid state transition: " + fmt.Sprintf(format, args...))
	}
}
