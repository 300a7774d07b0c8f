package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"volumetric/internal/backend"
)

func (a *app) newHistoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "history <calibrations|frames|videos|volumes>",
		Short:         "Print a history listing from the backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.ExactArgs(1),
		ValidArgs:     backend.HistoryNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			route, err := backend.History(args[0])
			if err != nil {
				return &ExitError{Code: ExitCLIError, Err: err}
			}
			res, err := a.client().Request(cmd.Context(), route)
			if err != nil {
				if len(res.Body) > 0 {
					fmt.Fprintln(cmd.ErrOrStderr(), res.Text())
				}
				return exitErr(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), pretty(res.Body))
			return nil
		},
	}
}

// pretty indents JSON bodies and returns anything else verbatim.
func pretty(body []byte) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, bytes.TrimSpace(body), "", "  "); err != nil {
		return string(bytes.TrimSpace(body))
	}
	return buf.String()
}
