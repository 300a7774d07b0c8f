package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"volumetric/internal/backend"
	"volumetric/internal/pipeline"
	"volumetric/internal/progress"
	"volumetric/internal/ui"
)

const runTitle = "Volumetric processing"

type runMode struct {
	ForceTUI bool
}

func (a *app) newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "run [steps...]",
		Short:         "Run processing steps (default: calibrate extract reconstruct volume)",
		SilenceUsage:  true,
		SilenceErrors: true,
		ValidArgs:     backend.StepNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runSteps(cmd, args, runMode{})
		},
	}
	bindRunFlags(cmd.Flags())
	return cmd
}

// resolveSteps maps step names to routes; no names means the default order.
func resolveSteps(args []string) ([]backend.Route, error) {
	if len(args) == 0 {
		return backend.DefaultSteps, nil
	}
	steps := make([]backend.Route, 0, len(args))
	for _, name := range args {
		r, err := backend.Step(name)
		if err != nil {
			return nil, err
		}
		steps = append(steps, r)
	}
	return steps, nil
}

func (a *app) runSteps(cmd *cobra.Command, args []string, mode runMode) error {
	steps, err := resolveSteps(args)
	if err != nil {
		return &ExitError{Code: ExitCLIError, Err: err}
	}
	noUI, _ := cmd.Flags().GetBool("no-ui")
	nonModal, _ := cmd.Flags().GetBool("non-modal")

	svc := pipeline.NewService(
		pipeline.WithClient(a.client()),
		pipeline.WithSteps(steps...),
		pipeline.WithLogger(a.log.WithName("pipeline")),
	)

	useTUI := mode.ForceTUI || (!noUI && isTerminal())
	if useTUI {
		err := ui.Run(cmd.Context(), ui.RunOptions{
			Title: runTitle,
			Operation: func(ctx context.Context, sink progress.Sink) error {
				_, err := svc.Run(ctx, sink)
				return err
			},
			NonModal:      nonModal,
			ToastDuration: a.settings.ToastDuration,
			Logger:        a.log.WithName("ui"),
		})
		return exitErr(err)
	}

	out := cmd.OutOrStdout()
	rep, err := svc.Run(cmd.Context(), progress.NewPlain(cmd.Context(), out))
	if err != nil {
		return exitErr(err)
	}
	fmt.Fprintf(out, "Run %s: %d step(s) completed\n", rep.RunID, len(rep.Steps))
	return nil
}

// isTerminal reports whether stdout is a TTY. Replaced in tests.
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
