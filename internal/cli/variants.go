package cli

import (
	"fmt"
	"io"

	"github.com/kedaikopi/backoffice/internal/catalog"
	"github.com/spf13/cobra"
)

var variantsCmd = &cobra.Command{
	Use:   "variants",
	Short: "Show every variant group with its options",
	Args:  cobra.NoArgs,
	RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
		groups, err := a.catalog.AllVariantGroups(cmd.Context())
		if err != nil {
			return err
		}
		printGroups(cmd.OutOrStdout(), groups)
		return nil
	}),
}

func printGroups(w io.Writer, groups []catalog.VariantGroup) {
	if len(groups) == 0 {
		fmt.Fprintln(w, "\nNo variant groups.")
		return
	}
	for _, g := range groups {
		flags := string(g.Type)
		if g.IsRequired {
			flags += ", required"
		}
		if !g.IsActive {
			flags += ", inactive"
		}
		fmt.Fprintf(w, "\n%s [%d] (%s)\n", g.Name, g.ID, flags)
		if len(g.Options) == 0 {
			fmt.Fprintln(w, "  (no options)")
		}
		for _, o := range g.Options {
			line := fmt.Sprintf("  - %s [%d]: %s", o.Name, o.ID, o.FormattedExtraPrice())
			if !o.IsActive {
				line += " (inactive)"
			}
			fmt.Fprintln(w, line)
		}
	}
}

func init() {
	rootCmd.AddCommand(variantsCmd)
}
