package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"volumetric/internal/backend"
)

func (a *app) newPlanCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "plan [steps...]",
		Short:         "Show the requests a run would make, without executing",
		SilenceUsage:  true,
		SilenceErrors: true,
		ValidArgs:     backend.StepNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			steps, err := resolveSteps(args)
			if err != nil {
				return &ExitError{Code: ExitCLIError, Err: err}
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Dry-run plan:")
			fmt.Fprintf(out, "- Backend:        %s\n", a.settings.BackendURL)
			for i, s := range steps {
				fmt.Fprintf(out, "- Step %d:         %s %s (%s)\n", i+1, s.Method, s.Path, s.Label)
			}
			return nil
		},
	}
}
