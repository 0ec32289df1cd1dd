package cli

import (
	"fmt"
	"sort"

	"github.com/kedaikopi/backoffice"
	"github.com/kedaikopi/backoffice/internal/diff"
	"github.com/kedaikopi/backoffice/internal/runner"
	"github.com/kedaikopi/backoffice/internal/utils"
	"github.com/spf13/cobra"
)

var schemaCheck bool

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the simulated schema",
	Long: `Replays every registered migration in memory and prints the resulting
tables. No database is used unless --check is given, which compares the
simulated tables against the configured database and fails on drift.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		sb := runner.NewRunner(nil, backoffice.GetGlobalRegistry(), nil).SimulateSchema()
		if !schemaCheck {
			utils.PrintHeader(out, "Simulated Schema")
			fmt.Fprintln(out, sb.Schema.String())
			return nil
		}

		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.close()

		tables := make([]string, 0, len(sb.Schema.Tables))
		for name := range sb.Schema.Tables {
			tables = append(tables, name)
		}
		sort.Strings(tables)
		actual, err := diff.Inspect(a.db, tables)
		if err != nil {
			return err
		}

		diffs := diff.CompareSchema(sb.Schema, actual)
		if len(diffs) == 0 {
			utils.PrintSuccess(out, "Database matches the migrations (%d tables)", len(tables))
			return nil
		}
		for _, d := range diffs {
			utils.PrintWarning(out, "%s", d)
		}
		return fmt.Errorf("schema drift: %d difference(s)", len(diffs))
	},
}

func init() {
	schemaCmd.Flags().BoolVar(&schemaCheck, "check", false, "compare against the configured database")
	rootCmd.AddCommand(schemaCmd)
}
