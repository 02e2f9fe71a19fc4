package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var showOutput string

var showCmd = &cobra.Command{
	Use:   "show <session-id>",
	Short: "Show a stored training session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := checkOutputFormat(showOutput); err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
		defer cancel()

		session, err := newAPIClient().GetSession(ctx, args[0])
		if err != nil {
			return fmt.Errorf("get session %s: %w", args[0], err)
		}

		if showOutput != outputText {
			return writeStructured(cmd.OutOrStdout(), showOutput, session)
		}
		renderSession(cmd.OutOrStdout(), *session)
		return nil
	},
}

func init() {
	showCmd.Flags().StringVarP(&showOutput, "output", "o", outputText, "output format (text, yaml, json)")
	rootCmd.AddCommand(showCmd)
}
