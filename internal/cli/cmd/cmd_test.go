package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"

	"volumetric/internal/backend"
	"volumetric/internal/pipeline"
	"volumetric/internal/progress"
)

// execute runs the command tree with isolated config, state and log paths.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	base := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(base, "config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(base, "state"))
	xdg.Reload()
	viper.Reset()
	t.Cleanup(func() {
		viper.Reset()
		xdg.Reload()
	})

	isTerminal = func() bool { return false }

	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append(args, "--log-file", filepath.Join(base, "test.log")))
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func newBackend(t *testing.T, status map[string]int) (*httptest.Server, *[]string) {
	t.Helper()
	var paths []string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.Method+" "+r.URL.Path)
		if code, ok := status[r.URL.Path]; ok {
			w.WriteHeader(code)
			fmt.Fprint(w, "failed")
			return
		}
		if strings.HasPrefix(r.URL.Path, "/historico-") {
			fmt.Fprint(w, `[{"id":1,"volume":12.5}]`)
			return
		}
		fmt.Fprint(w, `{"status":"ok"}`)
	}))
	t.Cleanup(ts.Close)
	return ts, &paths
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitOK},
		{"cancelled", fmt.Errorf("wrap: %w", pipeline.ErrCancelled), ExitCancelled},
		{"context", context.Canceled, ExitCancelled},
		{"unreachable", fmt.Errorf("x: %w", backend.ErrUnreachable), ExitUnreachable},
		{"status", fmt.Errorf("x: %w", backend.ErrStatus), ExitFailed},
		{"other", errors.New("boom"), ExitFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCode(tt.err); got != tt.want {
				t.Errorf("exitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestRun_PlainOutput(t *testing.T) {
	ts, paths := newBackend(t, nil)
	out, err := execute(t, "run", "--no-ui", "--backend-url", ts.URL, "calibrate", "volume")
	if err != nil {
		t.Fatalf("run: %v\n%s", err, out)
	}
	if got := strings.Join(*paths, ","); got != "POST /calibrar-camera,POST /calcular-volume" {
		t.Errorf("requests = %s", got)
	}
	for _, want := range []string{progress.MsgStarted, "100%", progress.MsgSucceeded, "2 step(s) completed"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRun_FailureExitCode(t *testing.T) {
	ts, _ := newBackend(t, map[string]int{"/reconstruir": http.StatusInternalServerError})
	out, err := execute(t, "--no-ui", "--backend-url", ts.URL)
	var ee *ExitError
	if !errors.As(err, &ee) || ee.Code != ExitFailed {
		t.Fatalf("err = %v, want exit code %d", err, ExitFailed)
	}
	if !strings.Contains(out, progress.MsgFailed) {
		t.Errorf("output missing failure line:\n%s", out)
	}
}

func TestRun_Unreachable(t *testing.T) {
	ts, _ := newBackend(t, nil)
	url := ts.URL
	ts.Close()
	_, err := execute(t, "run", "--no-ui", "--backend-url", url)
	var ee *ExitError
	if !errors.As(err, &ee) || ee.Code != ExitUnreachable {
		t.Fatalf("err = %v, want exit code %d", err, ExitUnreachable)
	}
}

func TestRun_UnknownStep(t *testing.T) {
	_, err := execute(t, "run", "--no-ui", "paint")
	var ee *ExitError
	if !errors.As(err, &ee) || ee.Code != ExitCLIError {
		t.Fatalf("err = %v, want CLI error", err)
	}
}

func TestRoot_StepsAsArgs(t *testing.T) {
	ts, paths := newBackend(t, nil)
	if _, err := execute(t, "--no-ui", "--backend-url", ts.URL, "normal"); err != nil {
		t.Fatalf("root: %v", err)
	}
	if got := strings.Join(*paths, ","); got != "POST /execucao-normal" {
		t.Errorf("requests = %s", got)
	}
}

func TestPlan(t *testing.T) {
	out, err := execute(t, "plan", "--backend-url", "http://example:9", "extract")
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	for _, want := range []string{"http://example:9", "POST /extrair-frames"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestHistory(t *testing.T) {
	ts, paths := newBackend(t, nil)
	out, err := execute(t, "history", "--backend-url", ts.URL, "volumes")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if (*paths)[0] != "GET /historico-volumes" {
		t.Errorf("request = %s", (*paths)[0])
	}
	if !strings.Contains(out, `"volume": 12.5`) {
		t.Errorf("expected indented JSON, got:\n%s", out)
	}
}

func TestDoctor(t *testing.T) {
	ts, _ := newBackend(t, nil)
	out, err := execute(t, "doctor", "--backend-url", ts.URL)
	if err != nil {
		t.Fatalf("doctor: %v", err)
	}
	if !strings.Contains(out, "reachable") {
		t.Errorf("output = %q", out)
	}
}

func TestToast_PlainWithoutTerminal(t *testing.T) {
	out, err := execute(t, "toast", "--kind", "success", "Saved", "All good")
	if err != nil {
		t.Fatalf("toast: %v", err)
	}
	if !strings.Contains(out, "Saved: All good") {
		t.Errorf("output = %q", out)
	}
	if _, err := execute(t, "toast", "--kind", "loud", "x"); err == nil {
		t.Error("invalid kind should fail")
	}
}

func TestCompletion(t *testing.T) {
	out, err := execute(t, "completion", "bash")
	if err != nil {
		t.Fatalf("completion: %v", err)
	}
	if !strings.Contains(out, "volumetric") {
		t.Error("bash completion should mention the command")
	}
}
