package ui

import (
	"context"
	"fmt"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/go-logr/logr"
	"golang.org/x/sync/errgroup"

	"volumetric/internal/dialog"
	"volumetric/internal/progress"
	"volumetric/internal/toast"
)

// Operation is background work driven through a progress sink.
type Operation func(ctx context.Context, sink progress.Sink) error

// RunOptions configures Run.
type RunOptions struct {
	// Title heads the window and the progress dialog.
	Title string
	// Operation runs next to the UI with its own dialog. Optional.
	Operation Operation
	// NonModal leaves host keys active while the dialog is shown.
	NonModal bool
	// Notices are shown as toasts once the window is up.
	Notices       []Notice
	ToastDuration time.Duration
	Logger        logr.Logger

	// Input and Output override the terminal, for tests.
	Input  io.Reader
	Output io.Writer
}

// Run starts the window and, if given, the operation. It returns when the
// operation has finished, its dialog has been closed and every toast is gone,
// or when the user quits. The operation's error is returned.
func Run(ctx context.Context, opts RunOptions) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	log := opts.Logger
	if log.GetSink() == nil {
		log = logr.Discard()
	}
	if opts.ToastDuration <= 0 {
		opts.ToastDuration = toast.DisplayDuration
	}

	m := NewModel(cancel, opts.Title, opts.Operation != nil, opts.Notices, opts.ToastDuration, log)
	// The background query reads from the terminal, so it has to finish before
	// the program takes over input. lipgloss caches the answer for the
	// adaptive colors the dialog renders with.
	m.dark = lipgloss.HasDarkBackground()
	popts := []tea.ProgramOption{tea.WithContext(ctx), tea.WithAltScreen(), tea.WithMouseCellMotion()}
	if opts.Input != nil {
		popts = append(popts, tea.WithInput(opts.Input))
	}
	if opts.Output != nil {
		popts = append(popts, tea.WithOutput(opts.Output))
	}
	prog := tea.NewProgram(m, popts...)
	host := newHost(prog, log)

	var (
		g     errgroup.Group
		opErr error
	)
	g.Go(func() error {
		defer cancel()
		if _, err := prog.Run(); err != nil && ctx.Err() == nil {
			return fmt.Errorf("ui: %w", err)
		}
		return nil
	})
	if opts.Operation != nil {
		g.Go(func() error {
			opErr = runOperation(ctx, host, opts)
			prog.Send(opDoneMsg{err: opErr})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return opErr
}

func runOperation(ctx context.Context, host *Host, opts RunOptions) error {
	var dopts []dialog.Option
	if opts.NonModal {
		dopts = append(dopts, dialog.WithNonModal())
	}
	d, err := host.Open(opts.Title, progress.MsgStarting, dopts...)
	if err != nil {
		return err
	}
	err = opts.Operation(ctx, d)
	switch {
	case err == nil:
		host.Notify(toast.Success, opts.Title, progress.MsgSucceeded)
	case d.IsCancelled() || ctx.Err() != nil:
		host.Notify(toast.Warning, opts.Title, "Cancelled: "+err.Error())
	default:
		host.Notify(toast.Error, opts.Title, err.Error())
	}
	return err
}
