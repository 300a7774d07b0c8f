package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"volumetric/internal/toast"
	"volumetric/internal/ui"
)

func (a *app) newToastCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "toast <title> [message]",
		Short:         "Show a single toast notification and exit once it fades",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kindName, _ := cmd.Flags().GetString("kind")
			kind, err := toast.ParseKind(kindName)
			if err != nil {
				return &ExitError{Code: ExitCLIError, Err: err}
			}
			n := ui.Notice{Kind: kind, Title: args[0]}
			if len(args) == 2 {
				n.Message = args[1]
			}
			if !isTerminal() {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s: %s\n", kind.Icon(), n.Title, n.Message)
				return nil
			}
			err = ui.Run(cmd.Context(), ui.RunOptions{
				Title:         "volumetric",
				Notices:       []ui.Notice{n},
				ToastDuration: a.settings.ToastDuration,
				Logger:        a.log.WithName("ui"),
			})
			if err != nil {
				return &ExitError{Code: ExitCLIError, Err: err}
			}
			return nil
		},
	}
	cmd.Flags().StringP("kind", "k", "info", "Toast kind: success, error, warning, info")
	return cmd
}
