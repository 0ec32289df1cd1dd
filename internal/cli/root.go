package cli

import (
	"github.com/kedaikopi/backoffice/internal/config"
	"github.com/kedaikopi/backoffice/internal/utils"
	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:           "backoffice",
	Short:         "Coffee shop back-office catalog and pricing",
	Long:          "backoffice manages the menu catalog of a coffee shop (categories, menus, variant groups and options) and prices customer selections against it",
	SilenceErrors: true,
	SilenceUsage:  true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath, "path to the config file")
}

// Execute runs the CLI. A failing command has its error printed before
// Execute returns it.
func Execute() error {
	cmd, err := rootCmd.ExecuteC()
	if err != nil {
		utils.PrintError(cmd.ErrOrStderr(), "%v", err)
	}
	return err
}
