package main

import (
	"context"
	"fmt"
	"io"

	"github.com/2beens/coachdesk/pkg/client"

	"github.com/spf13/cobra"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Probe the database and show service readiness",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
		defer cancel()

		report, err := newAPIClient().Health(ctx)
		if err != nil {
			return fmt.Errorf("health: %w", err)
		}

		out := cmd.OutOrStdout()
		renderHealth(out, "database", report.Database)
		renderHealth(out, "service", report.Service)
		if report.Database.Status == "fail" {
			return fmt.Errorf("database unhealthy")
		}
		return nil
	},
}

func renderHealth(w io.Writer, name string, state client.HealthState) {
	style := successStyle
	switch state.Status {
	case "fail":
		style = errorStyle
	case "degraded":
		style = warningStyle
	}

	line := fmt.Sprintf("%-9s %s", name, style.Render(state.Status))
	if state.LatencyMs != nil {
		line += metaStyle.Render(fmt.Sprintf("  %dms", *state.LatencyMs))
	}
	if state.LastFailureAt != nil {
		line += metaStyle.Render("  last failure " + state.LastFailureAt.Format("2006-01-02 15:04:05Z07:00"))
	}
	fmt.Fprintln(w, line)
}

func init() {
	rootCmd.AddCommand(healthCmd)
}
