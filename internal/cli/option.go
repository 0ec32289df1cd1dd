package cli

import (
	"fmt"
	"strconv"

	"github.com/kedaikopi/backoffice/internal/catalog"
	"github.com/kedaikopi/backoffice/internal/utils"
	"github.com/spf13/cobra"
)

type optionFlags struct {
	group  uint
	name   string
	extra  string
	sort   int
	active bool
}

var (
	optionCreateOpts optionFlags
	optionUpdateOpts optionFlags
	optionListOpts   struct {
		group      uint
		activeOnly bool
		page       int
		perPage    int
	}
)

var optionCmd = &cobra.Command{
	Use:   "option",
	Short: "Manage variant options",
}

var optionCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a variant option",
	Args:  cobra.NoArgs,
	RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
		f := optionCreateOpts
		extra, err := parseMoney(f.extra, "extra price")
		if err != nil {
			return err
		}
		o, err := a.catalog.CreateVariantOption(cmd.Context(), catalog.VariantOptionInput{
			VariantGroupID: f.group,
			Name:           f.name,
			ExtraPrice:     extra,
			SortOrder:      f.sort,
			IsActive:       f.active,
		})
		if err != nil {
			return err
		}
		utils.PrintSuccess(cmd.OutOrStdout(), "Created variant option %d %q (%s)", o.ID, o.Name, o.FormattedExtraPrice())
		return nil
	}),
}

var optionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List variant options",
	Args:  cobra.NoArgs,
	RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
		page, err := a.catalog.ListVariantOptions(cmd.Context(), catalog.OptionFilter{
			VariantGroupID: optionListOpts.group,
			ActiveOnly:     optionListOpts.activeOnly,
			Page:           catalog.Page{Number: optionListOpts.page, Size: optionListOpts.perPage},
		})
		if err != nil {
			return err
		}
		rows := make([][]string, 0, len(page.Items))
		for _, o := range page.Items {
			group := ""
			if o.VariantGroup != nil {
				group = o.VariantGroup.Name
			}
			rows = append(rows, []string{
				idString(o.ID), group, o.Name, o.FormattedExtraPrice(), strconv.Itoa(o.SortOrder), yesNo(o.IsActive),
			})
		}
		out := cmd.OutOrStdout()
		if err := utils.PrintTable(out, []string{"ID", "GROUP", "NAME", "EXTRA", "SORT", "ACTIVE"}, rows); err != nil {
			return err
		}
		fmt.Fprintln(out, pageFooter(page))
		return nil
	}),
}

var optionUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a variant option",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
		id, err := parseID(args[0], "variant option")
		if err != nil {
			return err
		}
		cur, err := a.catalog.GetVariantOption(cmd.Context(), id)
		if err != nil {
			return err
		}
		in := catalog.VariantOptionInput{
			VariantGroupID: cur.VariantGroupID,
			Name:           cur.Name,
			ExtraPrice:     cur.ExtraPrice,
			SortOrder:      cur.SortOrder,
			IsActive:       cur.IsActive,
		}
		f, flags := optionUpdateOpts, cmd.Flags()
		if flags.Changed("group") {
			in.VariantGroupID = f.group
		}
		if flags.Changed("name") {
			in.Name = f.name
		}
		if flags.Changed("extra") {
			if in.ExtraPrice, err = parseMoney(f.extra, "extra price"); err != nil {
				return err
			}
		}
		if flags.Changed("sort") {
			in.SortOrder = f.sort
		}
		if flags.Changed("active") {
			in.IsActive = f.active
		}

		o, err := a.catalog.UpdateVariantOption(cmd.Context(), id, in)
		if err != nil {
			return err
		}
		utils.PrintSuccess(cmd.OutOrStdout(), "Updated variant option %d %q", o.ID, o.Name)
		return nil
	}),
}

var optionDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a variant option",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
		id, err := parseID(args[0], "variant option")
		if err != nil {
			return err
		}
		if err := a.catalog.DeleteVariantOption(cmd.Context(), id); err != nil {
			return err
		}
		utils.PrintSuccess(cmd.OutOrStdout(), "Deleted variant option %d", id)
		return nil
	}),
}

func init() {
	for _, c := range []struct {
		cmd  *cobra.Command
		opts *optionFlags
	}{{optionCreateCmd, &optionCreateOpts}, {optionUpdateCmd, &optionUpdateOpts}} {
		c.cmd.Flags().UintVar(&c.opts.group, "group", 0, "variant group id")
		c.cmd.Flags().StringVar(&c.opts.name, "name", "", "option name")
		c.cmd.Flags().StringVar(&c.opts.extra, "extra", "0", "price delta, may be negative")
		c.cmd.Flags().IntVar(&c.opts.sort, "sort", 0, "sort order (>= 0)")
		c.cmd.Flags().BoolVar(&c.opts.active, "active", true, "offer the option")
	}
	optionListCmd.Flags().UintVar(&optionListOpts.group, "group", 0, "only this variant group")
	optionListCmd.Flags().BoolVar(&optionListOpts.activeOnly, "active", false, "only active options")
	optionListCmd.Flags().IntVar(&optionListOpts.page, "page", 1, "page number")
	optionListCmd.Flags().IntVar(&optionListOpts.perPage, "per-page", 0, "page size (default from config)")

	optionCmd.AddCommand(optionCreateCmd, optionListCmd, optionUpdateCmd, optionDeleteCmd)
	rootCmd.AddCommand(optionCmd)
}
