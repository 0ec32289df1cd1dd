package cli

import (
	"fmt"

	"github.com/kedaikopi/backoffice/internal/utils"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending migrations",
	Long:  "Applies all catalog schema migrations that haven't been applied yet",
	RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
		out := cmd.OutOrStdout()
		run, _, err := a.runner()
		if err != nil {
			return err
		}

		pending, err := run.GetPendingMigrations()
		if err != nil {
			return fmt.Errorf("failed to get pending migrations: %w", err)
		}
		if len(pending) == 0 {
			utils.PrintSuccess(out, "No pending migrations")
			return nil
		}

		utils.PrintInfo(out, "Applying %d migration(s)...", len(pending))
		applied, err := run.Migrate()
		for _, m := range applied {
			utils.PrintInfo(out, "  %s - %s", m.Version(), m.Name())
		}
		if err != nil {
			return fmt.Errorf("failed to apply migrations: %w", err)
		}

		utils.PrintSuccess(out, "Applied %d migration(s)", len(applied))
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
