package cli

import (
	"github.com/kedaikopi/backoffice/internal/config"
	"github.com/kedaikopi/backoffice/internal/utils"
	"github.com/spf13/cobra"
)

var initDatabaseURL string

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a backoffice project",
	Long:  "Creates a backoffice.yml configuration file at the --config path",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if utils.FileExists(configPath) {
			utils.PrintWarning(out, "%s already exists", configPath)
			return nil
		}

		cfg := config.Default()
		if initDatabaseURL != "" {
			cfg.DatabaseURL = initDatabaseURL
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		if err := cfg.Save(configPath); err != nil {
			return err
		}

		utils.PrintSuccess(out, "Initialized backoffice project")
		utils.PrintInfo(out, "Created %s", configPath)
		return nil
	},
}

func init() {
	initCmd.Flags().StringVar(&initDatabaseURL, "database-url", "", "database URL to write (default sqlite://backoffice.db)")
	rootCmd.AddCommand(initCmd)
}
