package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/2beens/coachdesk/pkg/editor"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var errInvalidDraft = errors.New("draft is invalid")

var (
	validateFile   string
	validateOutput string
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a local session draft (YAML or JSON)",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := checkOutputFormat(validateOutput); err != nil {
			return err
		}

		raw, err := os.ReadFile(validateFile)
		if err != nil {
			return fmt.Errorf("read draft: %w", err)
		}
		// JSON is valid YAML, one decoder serves both
		var draft editor.Draft
		if err := yaml.Unmarshal(raw, &draft); err != nil {
			return fmt.Errorf("parse draft %s: %w", validateFile, err)
		}

		normalized := editor.Normalize(draft, editor.NewIDIssuer())
		errs := editor.Validate(normalized)

		if validateOutput == outputText {
			renderErrors(cmd.OutOrStdout(), normalized, errs)
		} else if err := writeStructured(cmd.OutOrStdout(), validateOutput, errs); err != nil {
			return err
		}

		if !errs.Valid() {
			return errInvalidDraft
		}
		return nil
	},
}

func init() {
	validateCmd.Flags().StringVarP(&validateFile, "file", "f", "", "draft file")
	validateCmd.Flags().StringVarP(&validateOutput, "output", "o", outputText, "output format (text, yaml, json)")
	_ = validateCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(validateCmd)
}
