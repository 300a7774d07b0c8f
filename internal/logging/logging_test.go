package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFromWriter_Verbosity(t *testing.T) {
	tests := []struct {
		name      string
		verbose   bool
		wantDebug bool
	}{
		{"quiet", false, false},
		{"verbose", true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			log := FromWriter(&buf, tt.verbose)
			log.Info("hello", "k", "v")
			log.V(1).Info("detail")
			out := buf.String()
			if !strings.Contains(out, "msg=hello") || !strings.Contains(out, "k=v") {
				t.Errorf("info record missing:\n%s", out)
			}
			if got := strings.Contains(out, "detail"); got != tt.wantDebug {
				t.Errorf("V(1) logged = %v, want %v", got, tt.wantDebug)
			}
		})
	}
}

func TestNew_WritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	log, closer, err := New(path, false)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	log.Info("written")
	if err := closer.Close(); err != nil {
		t.Fatal(err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), "written") {
		t.Errorf("log file = %q", b)
	}
}

func TestNew_BadPath(t *testing.T) {
	_, _, err := New(filepath.Join(t.TempDir(), "missing", "dir", "app.log"), false)
	if err == nil {
		t.Fatal("expected an error for an unwritable path")
	}
}
