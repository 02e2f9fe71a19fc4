package main

import (
	"fmt"

	"github.com/2beens/coachdesk/pkg"

	"github.com/spf13/cobra"
)

var tokenValue string

var hashTokenCmd = &cobra.Command{
	Use:   "hash-token",
	Short: "Generate an admin token and the bcrypt hash the service is configured with",
	RunE: func(cmd *cobra.Command, args []string) error {
		token := tokenValue
		if token == "" {
			generated, err := pkg.GenerateRandomString(40)
			if err != nil {
				return fmt.Errorf("generate token: %w", err)
			}
			token = generated
		}

		hash, err := pkg.HashPassword(token)
		if err != nil {
			return fmt.Errorf("hash token: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "token: %s\n", token)
		fmt.Fprintf(out, "COACHDESK_ADMIN_TOKEN_HASH=%s\n", hash)
		return nil
	},
}

func init() {
	hashTokenCmd.Flags().StringVar(&tokenValue, "token", "", "hash this token instead of generating one")
	rootCmd.AddCommand(hashTokenCmd)
}
