// Package dirs resolves the per-user directories the app reads and writes,
// following the XDG base directory layout on every platform.
package dirs

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

const appName = "volumetric"

// ConfigDir returns the app's configuration directory, e.g.
// ~/.config/volumetric on Linux.
func ConfigDir() string {
	return filepath.Join(xdg.ConfigHome, appName)
}

// StateDir returns the app's state directory (logs live here), e.g.
// ~/.local/state/volumetric on Linux.
func StateDir() string {
	return filepath.Join(xdg.StateHome, appName)
}

// LogFile returns the default log file path, creating its directory.
func LogFile() (string, error) {
	return xdg.StateFile(filepath.Join(appName, appName+".log"))
}

// Ensure creates the directory if it doesn't exist.
func Ensure(path string) error {
	if path == "" {
		return errors.New("empty path")
	}
	return os.MkdirAll(path, 0o755)
}

// EnsureAll ensures config and state dirs exist.
func EnsureAll() error {
	for _, p := range []string{ConfigDir(), StateDir()} {
		if err := Ensure(p); err != nil {
			return err
		}
	}
	return nil
}
