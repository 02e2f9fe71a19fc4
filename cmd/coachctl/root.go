package main

import (
	"fmt"
	"os"
	"time"

	"github.com/2beens/coachdesk/pkg/client"

	"github.com/spf13/cobra"
)

const (
	outputText = "text"
	outputYAML = "yaml"
	outputJSON = "json"
)

var (
	apiURL         string
	actorID        string
	requestTimeout time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "coachctl",
	Short: "Inspect and edit coachdesk training sessions",
	Long: `coachctl talks to the coachdesk API.

Quick Start:
  coachctl health                        # database and readiness status
  coachctl show <session-id>             # render a stored session
  coachctl validate -f draft.yaml        # validate a local draft
  coachctl edit new -p plan.yaml         # build a session from a plan and save it`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", envOr("COACHDESK_API", "http://localhost:9000"), "coachdesk API base URL")
	rootCmd.PersistentFlags().StringVar(&actorID, "actor", os.Getenv("COACHDESK_ACTOR"), "athlete id to act as (X-Actor-ID)")
	rootCmd.PersistentFlags().DurationVar(&requestTimeout, "timeout", 30*time.Second, "timeout of a single API call")
}

func newAPIClient() *client.Client {
	return client.New(apiURL, actorID)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func checkOutputFormat(format string) error {
	switch format {
	case outputText, outputYAML, outputJSON:
		return nil
	default:
		return fmt.Errorf("unknown output format %q (text, yaml, json)", format)
	}
}
