package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

const TriggerCLI = "cli"

// ArchivePreviousMonthCmd runs the bulk archive policy once.
func ArchivePreviousMonthCmd(open Opener) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "archive-previous-month",
		Short: "Archive completed and invoiced appointments of previous months",
		Long: `Apply the archive policy used by the nightly sweep: appointments with
status Effectué or Facturé, dated before the first day of the current month and
not yet archived. Server installations without a contract are kept visible.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := open(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to open application: %w", err)
			}
			defer a.Close()

			res, err := a.Archiver.Execute(cmd.Context(), TriggerCLI, dryRun)
			if err != nil {
				return fmt.Errorf("archive failed: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Boundary: %s\n", res.Boundary.Format("2006-01-02"))
			if dryRun {
				fmt.Fprintf(out, "[DRY RUN] %d appointment(s) would be archived: %v\n", res.Count, res.IDs)
				return nil
			}
			fmt.Fprintf(out, "%d appointment(s) archived\n", res.Count)
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "List the selection without archiving")

	return cmd
}

// MigrateCmd creates or updates the database schema.
func MigrateCmd(open Opener) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := open(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to open application: %w", err)
			}
			defer a.Close()

			if err := a.Migrate(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Schema up to date")
			return nil
		},
	}
}
