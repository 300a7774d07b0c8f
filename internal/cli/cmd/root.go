// Package cmd holds the cobra command tree.
package cmd

import (
	"context"
	"errors"
	"io"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"volumetric/internal/backend"
	"volumetric/internal/config"
	"volumetric/internal/logging"
	"volumetric/internal/pipeline"
	"volumetric/internal/toast"
)

const (
	ExitOK          = 0
	ExitCLIError    = 1
	ExitUnreachable = 2
	ExitFailed      = 3
	ExitCancelled   = 4
)

// ExitError wraps an error with a process exit code.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error { return e.Err }

// exitCode maps an operation error to its process exit code.
func exitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, pipeline.ErrCancelled), errors.Is(err, context.Canceled):
		return ExitCancelled
	case errors.Is(err, backend.ErrUnreachable):
		return ExitUnreachable
	default:
		return ExitFailed
	}
}

func exitErr(err error) error {
	if err == nil {
		return nil
	}
	return &ExitError{Code: exitCode(err), Err: err}
}

// app carries what every command needs once flags are parsed.
type app struct {
	settings config.Settings
	log      logr.Logger
	closer   io.Closer
}

func (a *app) client() *backend.Client {
	return backend.New(
		backend.WithBaseURL(a.settings.BackendURL),
		backend.WithLogger(a.log.WithName("backend")),
	)
}

func newRootCmd() *cobra.Command {
	a := &app{log: logr.Discard()}
	root := &cobra.Command{
		Use:   "volumetric [steps...]",
		Short: "Drive the volumetric processing backend with live progress",
		Long: "Volumetric runs the calibration, frame extraction, reconstruction and volume steps of the " +
			"processing service, showing progress in a dialog you can cancel, with toast notifications for outcomes.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.ArbitraryArgs,
		ValidArgs:     backend.StepNames(),
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := config.Init(cmd.Root()); err != nil {
				return &ExitError{Code: ExitCLIError, Err: err}
			}
			a.settings = config.Load()
			log, closer, err := logging.New(a.settings.LogFile, a.settings.Verbose)
			if err != nil {
				// Logging is best-effort; the command still runs.
				log = logr.Discard()
			}
			a.log, a.closer = log, closer
			a.log.V(1).Info("command", "name", cmd.Name(), "backend", a.settings.BackendURL)
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.closer != nil {
				_ = a.closer.Close()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runSteps(cmd, args, runMode{})
		},
	}

	pf := root.PersistentFlags()
	pf.String("backend-url", backend.DefaultBaseURL, "Processing service address")
	pf.BoolP("verbose", "v", false, "Log debug records")
	pf.String("log-file", "", "Log file (default: state dir)")
	pf.Duration("toast-duration", toast.DisplayDuration, "How long toasts stay visible")

	bindRunFlags(root.Flags())

	root.AddCommand(a.newRunCmd())
	root.AddCommand(a.newTuiCmd())
	root.AddCommand(a.newPlanCmd())
	root.AddCommand(a.newToastCmd())
	root.AddCommand(a.newHistoryCmd())
	root.AddCommand(a.newDoctorCmd())
	root.AddCommand(newCompletionCmd())

	return root
}

func bindRunFlags(fs *pflag.FlagSet) {
	fs.Bool("no-ui", false, "Disable the TUI; print progress as text")
	fs.Bool("non-modal", false, "Keep host keys active while the dialog is open")
}

// Execute runs the CLI with the provided context.
func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}
