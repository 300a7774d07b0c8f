package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"volumetric/internal/dirs"
)

const doctorTimeout = 5 * time.Second

func (a *app) newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "doctor",
		Short:         "Check that the processing backend is reachable",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), doctorTimeout)
			defer cancel()
			c := a.client()
			if err := c.Ping(ctx); err != nil {
				return &ExitError{Code: ExitUnreachable, Err: err}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Backend:   %s (reachable)\n", c.BaseURL())
			fmt.Fprintf(cmd.OutOrStdout(), "Log file:  %s\n", logLocation(a.settings.LogFile))
			return nil
		},
	}
}

func logLocation(configured string) string {
	if configured != "" {
		return configured
	}
	p, err := dirs.LogFile()
	if err != nil {
		return "unavailable (" + err.Error() + ")"
	}
	return p
}
