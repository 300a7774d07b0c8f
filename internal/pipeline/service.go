// Package pipeline runs the processing steps against the backend and reports
// each one through a progress sink.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/go-logr/logr"
	"github.com/google/uuid"

	"volumetric/internal/backend"
	"volumetric/internal/progress"
	"volumetric/internal/util/format"
)

// ErrCancelled is returned when the user asked to stop before all steps ran.
var ErrCancelled = errors.New("operation cancelled")

// maxBodyPreview bounds how much of a response body is echoed to the log.
const maxBodyPreview = 160

// Requester issues a single backend request. *backend.Client implements it.
type Requester interface {
	Request(ctx context.Context, r backend.Route) (backend.Result, error)
}

// Service orchestrates the calibrate → extract → reconstruct → volume
// workflow.
type Service struct {
	client Requester
	steps  []backend.Route
	log    logr.Logger
	now    func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithClient sets the backend client.
func WithClient(c Requester) Option {
	return func(s *Service) {
		s.client = c
	}
}

// WithSteps overrides the default step list.
func WithSteps(steps ...backend.Route) Option {
	return func(s *Service) {
		if len(steps) > 0 {
			s.steps = steps
		}
	}
}

// WithLogger attaches a logger.
func WithLogger(l logr.Logger) Option {
	return func(s *Service) {
		s.log = l
	}
}

// WithClock replaces time.Now (useful for testing).
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService constructs a Service. Without WithClient it talks to the default
// backend address.
func NewService(opts ...Option) *Service {
	s := &Service{
		steps: backend.DefaultSteps,
		log:   logr.Discard(),
		now:   time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	if s.client == nil {
		s.client = backend.New(backend.WithLogger(s.log))
	}
	return s
}

// Steps returns the configured step list.
func (s *Service) Steps() []backend.Route { return s.steps }

// StepResult records one finished request.
type StepResult struct {
	Route  backend.Route
	Status int
	Bytes  int
	Took   time.Duration
}

// Report summarizes a run.
type Report struct {
	RunID   string
	Steps   []StepResult
	Elapsed time.Duration
}

// Run executes the steps in order. It polls the sink's cancellation flag
// before every step and calls SetCompleted exactly once, whatever happens.
// Returned errors wrap ErrCancelled, backend.ErrUnreachable or
// backend.ErrStatus.
func (s *Service) Run(ctx context.Context, sink progress.Sink) (rep Report, err error) {
	rep.RunID = uuid.NewString()
	start := s.now()
	log := s.log.WithValues("run", rep.RunID)
	log.Info("run started", "steps", len(s.steps))

	defer func() {
		rep.Elapsed = s.now().Sub(start)
		sink.SetCompleted(err == nil)
		if err != nil {
			log.Error(err, "run failed", "completed", len(rep.Steps), "elapsed", rep.Elapsed.String())
			return
		}
		log.Info("run finished", "elapsed", rep.Elapsed.String())
	}()

	total := len(s.steps)
	sink.SetProgress(0)
	for i, step := range s.steps {
		if sink.IsCancelled() || ctx.Err() != nil {
			sink.AppendLog(fmt.Sprintf("Stopped before %q", step.Label))
			sink.SetStatus("Cancelled")
			return rep, fmt.Errorf("%w after %d of %d steps", ErrCancelled, i, total)
		}

		sink.SetStatus(fmt.Sprintf("%s (%d/%d)", step.Label, i+1, total))
		sink.AppendLog(fmt.Sprintf("%s %s", step.Method, step.Path))
		sink.SetIndeterminate(true)
		res, rerr := s.client.Request(ctx, step)
		sink.SetIndeterminate(false)

		if rerr != nil {
			if res.Status != 0 {
				sink.AppendLog(describe(res))
			}
			sink.AppendLog("Error: " + rerr.Error())
			if errors.Is(rerr, context.Canceled) {
				return rep, fmt.Errorf("%w: %w", ErrCancelled, rerr)
			}
			return rep, fmt.Errorf("%s: %w", step.Name, rerr)
		}

		rep.Steps = append(rep.Steps, StepResult{
			Route:  step,
			Status: res.Status,
			Bytes:  len(res.Body),
			Took:   res.Elapsed,
		})
		sink.AppendLog(describe(res))
		if body := preview(res.Text()); body != "" {
			sink.AppendLog(body)
		}
		sink.SetProgress((i + 1) * 100 / total)
		log.V(1).Info("step done", "step", step.Name, "status", res.Status)
	}
	return rep, nil
}

func describe(res backend.Result) string {
	return fmt.Sprintf("%d %s (%s in %s)", res.Status, res.Route.Path,
		humanize.Bytes(uint64(len(res.Body))), format.Duration(res.Elapsed))
}

func preview(s string) string {
	r := []rune(s)
	if len(r) <= maxBodyPreview {
		return s
	}
	return string(r[:maxBodyPreview-1]) + "…"
}
