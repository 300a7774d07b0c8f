package backend

import (
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// Route is one endpoint of the processing service.
type Route struct {
	// Name is the short identifier used on the command line.
	Name   string
	Method string
	Path   string
	// Label is the human-readable step name shown in progress output.
	Label string
}

// Processing steps.
var (
	Calibrate   = Route{Name: "calibrate", Method: http.MethodPost, Path: "/calibrar-camera", Label: "Calibrating camera"}
	Extract     = Route{Name: "extract", Method: http.MethodPost, Path: "/extrair-frames", Label: "Extracting frames"}
	Reconstruct = Route{Name: "reconstruct", Method: http.MethodPost, Path: "/reconstruir", Label: "Reconstructing model"}
	Volume      = Route{Name: "volume", Method: http.MethodPost, Path: "/calcular-volume", Label: "Calculating volume"}
	Normal      = Route{Name: "normal", Method: http.MethodPost, Path: "/execucao-normal", Label: "Running full execution"}
	Shutdown    = Route{Name: "shutdown", Method: http.MethodPost, Path: "/shutdown", Label: "Shutting down backend"}
)

// History listings.
var (
	CalibrationHistory = Route{Name: "calibrations", Method: http.MethodGet, Path: "/historico-calibracoes", Label: "Calibration history"}
	FrameHistory       = Route{Name: "frames", Method: http.MethodGet, Path: "/historico-frames", Label: "Frame history"}
	VideoHistory       = Route{Name: "videos", Method: http.MethodGet, Path: "/historico-videos", Label: "Video history"}
	VolumeHistory      = Route{Name: "volumes", Method: http.MethodGet, Path: "/historico-volumes", Label: "Volume history"}
)

// DefaultSteps is the processing order used when no steps are named.
var DefaultSteps = []Route{Calibrate, Extract, Reconstruct, Volume}

var steps = byName(Calibrate, Extract, Reconstruct, Volume, Normal, Shutdown)

var histories = byName(CalibrationHistory, FrameHistory, VideoHistory, VolumeHistory)

func byName(routes ...Route) map[string]Route {
	m := make(map[string]Route, len(routes))
	for _, r := range routes {
		m[r.Name] = r
	}
	return m
}

// Step returns the processing route with the given name.
func Step(name string) (Route, error) {
	return lookup(steps, name, "step")
}

// History returns the history route with the given name.
func History(name string) (Route, error) {
	return lookup(histories, name, "history")
}

// StepNames lists the valid step names, sorted.
func StepNames() []string { return names(steps) }

// HistoryNames lists the valid history names, sorted.
func HistoryNames() []string { return names(histories) }

func lookup(m map[string]Route, name, what string) (Route, error) {
	r, ok := m[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Route{}, fmt.Errorf("unknown %s %q (valid: %s)", what, name, strings.Join(names(m), "|"))
	}
	return r, nil
}

func names(m map[string]Route) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
