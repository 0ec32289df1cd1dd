package cli

import (
	"github.com/kedaikopi/backoffice/internal/seed"
	"github.com/kedaikopi/backoffice/internal/users"
	"github.com/kedaikopi/backoffice/internal/utils"
	"github.com/spf13/cobra"
)

var seedOpts struct {
	skipUsers bool
	password  string
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the demonstration catalog",
	Long:  "Seeds categories, menus, variant groups with options and staff accounts. Does nothing once categories exist.",
	Args:  cobra.NoArgs,
	RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
		out := cmd.OutOrStdout()
		sum, err := seed.Run(cmd.Context(), a.db, a.log, seed.Options{
			SkipUsers: seedOpts.skipUsers,
			Password:  seedOpts.password,
			Cost:      users.DefaultCost,
		})
		if err != nil {
			return err
		}
		if sum.Skipped {
			utils.PrintWarning(out, "Catalog already seeded")
			return nil
		}
		utils.PrintSuccess(out, "Seeded %s", sum)
		return nil
	}),
}

func init() {
	seedCmd.Flags().BoolVar(&seedOpts.skipUsers, "skip-users", false, "do not create staff accounts")
	seedCmd.Flags().StringVar(&seedOpts.password, "password", seed.DefaultPassword, "password for seeded accounts")
	rootCmd.AddCommand(seedCmd)
}
