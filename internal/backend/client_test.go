package backend

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRequest_PostSendsEmptyJSON(t *testing.T) {
	var gotMethod, gotPath, gotType, gotBody string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath, gotType = r.Method, r.URL.Path, r.Header.Get("Content-Type")
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.Write([]byte(`{"status":"ok"}` + "\n"))
	}))
	defer ts.Close()

	c := New(WithBaseURL(ts.URL + "/"))
	res, err := c.Request(context.Background(), Calibrate)
	if err != nil {
		t.Fatalf("Request: %v", err)
	}
	if gotMethod != http.MethodPost || gotPath != "/calibrar-camera" {
		t.Errorf("got %s %s", gotMethod, gotPath)
	}
	if gotType != "application/json" || gotBody != "{}" {
		t.Errorf("content-type %q body %q", gotType, gotBody)
	}
	if res.Status != http.StatusOK || res.Text() != `{"status":"ok"}` {
		t.Errorf("unexpected result: %+v", res)
	}
	if res.Route != Calibrate {
		t.Errorf("Route = %+v", res.Route)
	}
}

func TestRequest_GetHasNoBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("method = %s", r.Method)
		}
		if r.ContentLength > 0 {
			t.Errorf("GET should not carry a body")
		}
		w.Write([]byte("[]"))
	}))
	defer ts.Close()

	res, err := New(WithBaseURL(ts.URL)).Request(context.Background(), VolumeHistory)
	if err != nil {
		t.Fatalf("Request: %v", err)
	}
	if res.Text() != "[]" {
		t.Errorf("Text() = %q", res.Text())
	}
}

func TestRequest_ErrorStatusKeepsBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("camera not found"))
	}))
	defer ts.Close()

	res, err := New(WithBaseURL(ts.URL)).Request(context.Background(), Calibrate)
	if !errors.Is(err, ErrStatus) {
		t.Fatalf("err = %v, want ErrStatus", err)
	}
	if res.Status != http.StatusInternalServerError || res.Text() != "camera not found" {
		t.Errorf("unexpected result: %+v", res)
	}
}

func TestRequest_Unreachable(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := ts.URL
	ts.Close()

	_, err := New(WithBaseURL(url)).Request(context.Background(), Extract)
	if !errors.Is(err, ErrUnreachable) {
		t.Fatalf("err = %v, want ErrUnreachable", err)
	}
	if err := New(WithBaseURL(url)).Ping(context.Background()); !errors.Is(err, ErrUnreachable) {
		t.Fatalf("Ping err = %v, want ErrUnreachable", err)
	}
}

func TestRequest_ContextCancelled(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	defer ts.Close()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(WithBaseURL(ts.URL)).Request(ctx, Reconstruct)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestLookup(t *testing.T) {
	tests := []struct {
		name    string
		find    func(string) (Route, error)
		in      string
		want    Route
		wantErr bool
	}{
		{"step", Step, "calibrate", Calibrate, false},
		{"step case", Step, " Volume ", Volume, false},
		{"unknown step", Step, "paint", Route{}, true},
		{"history", History, "frames", FrameHistory, false},
		{"step is not history", History, "calibrate", Route{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.find(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
	if n := len(StepNames()); n != 6 {
		t.Errorf("len(StepNames()) = %d, want 6", n)
	}
	if n := len(HistoryNames()); n != 4 {
		t.Errorf("len(HistoryNames()) = %d, want 4", n)
	}
}
