package cli

import (
	"strconv"

	"github.com/kedaikopi/backoffice/internal/utils"
	"github.com/spf13/cobra"
)

var categoryOpts struct {
	name   string
	sort   int
	search string
}

var categoryCmd = &cobra.Command{
	Use:   "category",
	Short: "Manage menu categories",
}

var categoryCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a category",
	Args:  cobra.NoArgs,
	RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
		c, err := a.catalog.CreateCategory(cmd.Context(), categoryOpts.name, categoryOpts.sort)
		if err != nil {
			return err
		}
		utils.PrintSuccess(cmd.OutOrStdout(), "Created category %d %q", c.ID, c.Name)
		return nil
	}),
}

var categoryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List categories with their menu counts",
	Args:  cobra.NoArgs,
	RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
		cats, err := a.catalog.ListCategories(cmd.Context(), categoryOpts.search)
		if err != nil {
			return err
		}
		rows := make([][]string, 0, len(cats))
		for _, c := range cats {
			rows = append(rows, []string{idString(c.ID), c.Name, strconv.Itoa(c.Sort), strconv.FormatInt(c.MenusCount, 10)})
		}
		return utils.PrintTable(cmd.OutOrStdout(), []string{"ID", "NAME", "SORT", "MENUS"}, rows)
	}),
}

var categoryUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Rename or re-rank a category",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
		id, err := parseID(args[0], "category")
		if err != nil {
			return err
		}
		cur, err := a.catalog.GetCategory(cmd.Context(), id)
		if err != nil {
			return err
		}
		name, sort := cur.Name, cur.Sort
		if cmd.Flags().Changed("name") {
			name = categoryOpts.name
		}
		if cmd.Flags().Changed("sort") {
			sort = categoryOpts.sort
		}
		c, err := a.catalog.UpdateCategory(cmd.Context(), id, name, sort)
		if err != nil {
			return err
		}
		utils.PrintSuccess(cmd.OutOrStdout(), "Updated category %d %q", c.ID, c.Name)
		return nil
	}),
}

var categoryDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a category with no menus",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
		id, err := parseID(args[0], "category")
		if err != nil {
			return err
		}
		if err := a.catalog.DeleteCategory(cmd.Context(), id); err != nil {
			return err
		}
		utils.PrintSuccess(cmd.OutOrStdout(), "Deleted category %d", id)
		return nil
	}),
}

func init() {
	for _, c := range []*cobra.Command{categoryCreateCmd, categoryUpdateCmd} {
		c.Flags().StringVar(&categoryOpts.name, "name", "", "category name")
		c.Flags().IntVar(&categoryOpts.sort, "sort", 1, "sort rank (>= 1)")
	}
	categoryListCmd.Flags().StringVar(&categoryOpts.search, "search", "", "filter by name")

	categoryCmd.AddCommand(categoryCreateCmd, categoryListCmd, categoryUpdateCmd, categoryDeleteCmd)
	rootCmd.AddCommand(categoryCmd)
}
