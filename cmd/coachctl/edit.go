package main

import (
	"context"
	"fmt"

	"github.com/2beens/coachdesk/pkg/editor"

	"github.com/spf13/cobra"
)

var (
	editPlanFile string
	editDryRun   bool
)

var editCmd = &cobra.Command{
	Use:   "edit <session-id|new>",
	Short: "Apply an edit plan to a session and save it",
	Long: `Loads the session (or starts an empty draft for "new"), applies the
operations of the plan through the session editor and saves the result when
it is valid and changed. A failed save leaves the plan file untouched, so the
command can simply be retried.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		plan, err := loadPlan(editPlanFile)
		if err != nil {
			return err
		}

		api := newAPIClient()
		var initial *editor.Draft
		if args[0] != "new" {
			ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
			initial, err = api.GetSession(ctx, args[0])
			cancel()
			if err != nil {
				return fmt.Errorf("get session %s: %w", args[0], err)
			}
		}

		ed := editor.New(initial)
		for _, note := range applyPlan(ed, plan) {
			fmt.Fprintln(out, warningStyle.Render("! "+note))
		}

		draft := ed.Draft()
		renderErrors(out, draft, ed.Errors())
		if !ed.IsValid() {
			return fmt.Errorf("%w, not saved", errInvalidDraft)
		}
		if !ed.IsDirty() {
			fmt.Fprintln(out, metaStyle.Render("no changes"))
			return nil
		}
		if editDryRun {
			renderSession(out, draft)
			return nil
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
		defer cancel()
		saved, err := api.SaveSession(ctx, draft)
		if err != nil {
			return fmt.Errorf("save failed, plan %s kept for retry: %w", editPlanFile, err)
		}

		ed.MarkSaved(*saved)
		fmt.Fprintln(out, successStyle.Render("✓ saved"))
		renderSession(out, ed.Draft())
		return nil
	},
}

func init() {
	editCmd.Flags().StringVarP(&editPlanFile, "plan", "p", "", "edit plan file (YAML)")
	editCmd.Flags().BoolVar(&editDryRun, "dry-run", false, "apply the plan and print the result without saving")
	_ = editCmd.MarkFlagRequired("plan")
	rootCmd.AddCommand(editCmd)
}
