package cmd

import (
	"github.com/spf13/cobra"

	"volumetric/internal/backend"
)

func (a *app) newTuiCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "tui [steps...]",
		Short:         "Force the interactive progress dialog",
		SilenceUsage:  true,
		SilenceErrors: true,
		ValidArgs:     backend.StepNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			// If stdout is not a terminal, the program reports it.
			return a.runSteps(cmd, args, runMode{ForceTUI: true})
		},
	}
	bindRunFlags(cmd.Flags())
	// In TUI mode, '--no-ui' makes no sense.
	if f := cmd.Flags().Lookup("no-ui"); f != nil {
		f.Hidden = true
	}
	return cmd
}
