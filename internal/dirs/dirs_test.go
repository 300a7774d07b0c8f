package dirs

import (
	"path/filepath"
	"runtime"
	"testing"

	"github.com/adrg/xdg"
)

func TestDirsFollowXDG(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG variables only drive the layout on linux")
	}
	base := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(base, "config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(base, "state"))
	xdg.Reload()
	t.Cleanup(xdg.Reload)

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"config", ConfigDir(), filepath.Join(base, "config", appName)},
		{"state", StateDir(), filepath.Join(base, "state", appName)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %s, want %s", tt.got, tt.want)
			}
		})
	}

	lf, err := LogFile()
	if err != nil {
		t.Fatalf("LogFile: %v", err)
	}
	if want := filepath.Join(base, "state", appName, appName+".log"); lf != want {
		t.Errorf("LogFile() = %s, want %s", lf, want)
	}
	if err := EnsureAll(); err != nil {
		t.Fatalf("EnsureAll: %v", err)
	}
}

func TestEnsure_EmptyPath(t *testing.T) {
	if err := Ensure(""); err == nil {
		t.Error("Ensure(\"\") should fail")
	}
}
