package cli

import (
	"fmt"

	"github.com/kedaikopi/backoffice/internal/utils"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show migration status",
	Long:  "Shows all applied and pending migrations",
	RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
		out := cmd.OutOrStdout()
		run, ver, err := a.runner()
		if err != nil {
			return err
		}

		records, err := ver.GetAppliedRecords()
		if err != nil {
			return fmt.Errorf("failed to get applied migrations: %w", err)
		}
		pending, err := run.GetPendingMigrations()
		if err != nil {
			return fmt.Errorf("failed to get pending migrations: %w", err)
		}

		utils.PrintHeader(out, "Migration Status")

		if len(records) > 0 {
			fmt.Fprintln(out, "\n✓ Applied Migrations:")
			for _, r := range records {
				fmt.Fprintf(out, "  %s - %s (batch %d)\n", r.Version, r.Name, r.Batch)
			}
		} else {
			fmt.Fprintln(out, "\n✓ Applied Migrations: (none)")
		}

		if len(pending) > 0 {
			fmt.Fprintln(out, "\n○ Pending Migrations:")
			for _, m := range pending {
				fmt.Fprintf(out, "  %s - %s\n", m.Version(), m.Name())
			}
		} else {
			fmt.Fprintln(out, "\n○ Pending Migrations: (none)")
		}

		fmt.Fprintln(out)
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(showCmd)
}
