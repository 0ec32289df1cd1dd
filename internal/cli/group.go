package cli

import (
	"fmt"
	"strconv"

	"github.com/kedaikopi/backoffice/internal/catalog"
	"github.com/kedaikopi/backoffice/internal/utils"
	"github.com/spf13/cobra"
)

type groupFlags struct {
	name     string
	mode     string
	required bool
	sort     int
	active   bool
}

var (
	groupCreateOpts groupFlags
	groupUpdateOpts groupFlags
	groupListOpts   struct {
		search     string
		activeOnly bool
		page       int
		perPage    int
	}
)

func (f groupFlags) input() catalog.VariantGroupInput {
	return catalog.VariantGroupInput{
		Name:       f.name,
		Type:       f.mode,
		IsRequired: f.required,
		SortOrder:  f.sort,
		IsActive:   f.active,
	}
}

var groupCmd = &cobra.Command{
	Use:   "group",
	Short: "Manage variant groups",
}

var groupCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a variant group",
	Args:  cobra.NoArgs,
	RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
		g, err := a.catalog.CreateVariantGroup(cmd.Context(), groupCreateOpts.input())
		if err != nil {
			return err
		}
		utils.PrintSuccess(cmd.OutOrStdout(), "Created variant group %d %q", g.ID, g.Name)
		return nil
	}),
}

var groupListCmd = &cobra.Command{
	Use:   "list",
	Short: "List variant groups",
	Args:  cobra.NoArgs,
	RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
		page, err := a.catalog.ListVariantGroups(cmd.Context(), catalog.GroupFilter{
			Search:     groupListOpts.search,
			ActiveOnly: groupListOpts.activeOnly,
			Page:       catalog.Page{Number: groupListOpts.page, Size: groupListOpts.perPage},
		})
		if err != nil {
			return err
		}
		rows := make([][]string, 0, len(page.Items))
		for _, g := range page.Items {
			rows = append(rows, []string{
				idString(g.ID), g.Name, string(g.Type), yesNo(g.IsRequired), strconv.Itoa(g.SortOrder),
				yesNo(g.IsActive), strconv.Itoa(len(g.Options)),
			})
		}
		out := cmd.OutOrStdout()
		if err := utils.PrintTable(out, []string{"ID", "NAME", "TYPE", "REQUIRED", "SORT", "ACTIVE", "OPTIONS"}, rows); err != nil {
			return err
		}
		fmt.Fprintln(out, pageFooter(page))
		return nil
	}),
}

var groupUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a variant group",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
		id, err := parseID(args[0], "variant group")
		if err != nil {
			return err
		}
		cur, err := a.catalog.GetVariantGroup(cmd.Context(), id)
		if err != nil {
			return err
		}
		in := catalog.VariantGroupInput{
			Name:       cur.Name,
			Type:       string(cur.Type),
			IsRequired: cur.IsRequired,
			SortOrder:  cur.SortOrder,
			IsActive:   cur.IsActive,
		}
		flags := cmd.Flags()
		if flags.Changed("name") {
			in.Name = groupUpdateOpts.name
		}
		if flags.Changed("type") {
			in.Type = groupUpdateOpts.mode
		}
		if flags.Changed("required") {
			in.IsRequired = groupUpdateOpts.required
		}
		if flags.Changed("sort") {
			in.SortOrder = groupUpdateOpts.sort
		}
		if flags.Changed("active") {
			in.IsActive = groupUpdateOpts.active
		}

		g, err := a.catalog.UpdateVariantGroup(cmd.Context(), id, in)
		if err != nil {
			return err
		}
		utils.PrintSuccess(cmd.OutOrStdout(), "Updated variant group %d %q", g.ID, g.Name)
		return nil
	}),
}

var groupDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a variant group",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
		id, err := parseID(args[0], "variant group")
		if err != nil {
			return err
		}
		if err := a.catalog.DeleteVariantGroup(cmd.Context(), id); err != nil {
			return err
		}
		utils.PrintSuccess(cmd.OutOrStdout(), "Deleted variant group %d", id)
		return nil
	}),
}

func init() {
	for _, c := range []struct {
		cmd  *cobra.Command
		opts *groupFlags
	}{{groupCreateCmd, &groupCreateOpts}, {groupUpdateCmd, &groupUpdateOpts}} {
		c.cmd.Flags().StringVar(&c.opts.name, "name", "", "group name")
		c.cmd.Flags().StringVar(&c.opts.mode, "type", string(catalog.ModeSingle), "single or multiple")
		c.cmd.Flags().BoolVar(&c.opts.required, "required", false, "a selection is mandatory")
		c.cmd.Flags().IntVar(&c.opts.sort, "sort", 0, "sort order (>= 0)")
		c.cmd.Flags().BoolVar(&c.opts.active, "active", true, "offer the group on menus")
	}
	groupListCmd.Flags().StringVar(&groupListOpts.search, "search", "", "filter by name")
	groupListCmd.Flags().BoolVar(&groupListOpts.activeOnly, "active", false, "only active groups")
	groupListCmd.Flags().IntVar(&groupListOpts.page, "page", 1, "page number")
	groupListCmd.Flags().IntVar(&groupListOpts.perPage, "per-page", 0, "page size (default from config)")

	groupCmd.AddCommand(groupCreateCmd, groupListCmd, groupUpdateCmd, groupDeleteCmd)
	rootCmd.AddCommand(groupCmd)
}
