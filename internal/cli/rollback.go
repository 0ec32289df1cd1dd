package cli

import (
	"fmt"
	"strconv"

	"github.com/kedaikopi/backoffice/internal/utils"
	"github.com/spf13/cobra"
)

var rollbackCmd = &cobra.Command{
	Use:   "rollback [n]",
	Short: "Rollback migrations",
	Long:  "Rolls back the last N migrations (default: 1)",
	Args:  cobra.MaximumNArgs(1),
	RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
		out := cmd.OutOrStdout()
		n := 1
		if len(args) > 0 {
			var err error
			if n, err = strconv.Atoi(args[0]); err != nil || n < 1 {
				return fmt.Errorf("invalid number: %q", args[0])
			}
		}

		run, ver, err := a.runner()
		if err != nil {
			return err
		}

		appliedCount, err := ver.GetAppliedCount()
		if err != nil {
			return fmt.Errorf("failed to get applied count: %w", err)
		}
		if appliedCount == 0 {
			utils.PrintWarning(out, "No migrations to rollback")
			return nil
		}
		if int64(n) > appliedCount {
			n = int(appliedCount)
		}

		utils.PrintInfo(out, "Rolling back %d migration(s)...", n)
		if err := run.Rollback(n); err != nil {
			return fmt.Errorf("failed to rollback: %w", err)
		}

		utils.PrintSuccess(out, "Rolled back %d migration(s)", n)
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(rollbackCmd)
}
