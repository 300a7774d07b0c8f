package debug

import "testing"

func TestViolation(t *testing.T) {
	defer func() {
		r := recover()
		if Enabled && r == nil {
			t.Error("debug build should panic")
		}
		if !Enabled && r != nil {
			t.Errorf("release build panicked: %v", r)
		}
	}()
	Violation("completed %s twice", "dialog")
}
