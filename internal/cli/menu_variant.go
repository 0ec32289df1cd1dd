package cli

import (
	"fmt"

	"github.com/kedaikopi/backoffice/internal/catalog"
	"github.com/kedaikopi/backoffice/internal/money"
	"github.com/kedaikopi/backoffice/internal/utils"
	"github.com/spf13/cobra"
)

var menuVariantOpts struct {
	menu    uint
	name    string
	extra   string
	search  string
	page    int
	perPage int
}

var menuVariantCmd = &cobra.Command{
	Use:   "menu-variant",
	Short: "Manage fixed per-menu variants",
}

func menuVariantInput() (catalog.MenuVariantInput, error) {
	extra, err := parseMoney(menuVariantOpts.extra, "extra price")
	if err != nil {
		return catalog.MenuVariantInput{}, err
	}
	return catalog.MenuVariantInput{
		MenuID:     menuVariantOpts.menu,
		Name:       menuVariantOpts.name,
		ExtraPrice: extra,
	}, nil
}

var menuVariantCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a menu variant",
	Args:  cobra.NoArgs,
	RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
		in, err := menuVariantInput()
		if err != nil {
			return err
		}
		v, err := a.catalog.CreateMenuVariant(cmd.Context(), in)
		if err != nil {
			return err
		}
		utils.PrintSuccess(cmd.OutOrStdout(), "Created menu variant %d %q (total %s)", v.ID, v.Name, money.Format(v.TotalPrice()))
		return nil
	}),
}

var menuVariantListCmd = &cobra.Command{
	Use:   "list",
	Short: "List menu variants",
	Args:  cobra.NoArgs,
	RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
		page, err := a.catalog.ListMenuVariants(cmd.Context(), catalog.MenuVariantFilter{
			Search: menuVariantOpts.search,
			MenuID: menuVariantOpts.menu,
			Page:   catalog.Page{Number: menuVariantOpts.page, Size: menuVariantOpts.perPage},
		})
		if err != nil {
			return err
		}
		rows := make([][]string, 0, len(page.Items))
		for _, v := range page.Items {
			menu := ""
			if v.Menu != nil {
				menu = v.Menu.Name
			}
			rows = append(rows, []string{
				idString(v.ID), menu, v.Name, money.FormatDelta(v.ExtraPrice), money.Format(v.TotalPrice()),
			})
		}
		out := cmd.OutOrStdout()
		if err := utils.PrintTable(out, []string{"ID", "MENU", "NAME", "EXTRA", "TOTAL"}, rows); err != nil {
			return err
		}
		fmt.Fprintln(out, pageFooter(page))
		return nil
	}),
}

var menuVariantUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Replace a menu variant (all of --menu, --name and --extra)",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
		id, err := parseID(args[0], "menu variant")
		if err != nil {
			return err
		}
		in, err := menuVariantInput()
		if err != nil {
			return err
		}
		v, err := a.catalog.UpdateMenuVariant(cmd.Context(), id, in)
		if err != nil {
			return err
		}
		utils.PrintSuccess(cmd.OutOrStdout(), "Updated menu variant %d %q", v.ID, v.Name)
		return nil
	}),
}

var menuVariantDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a menu variant",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
		id, err := parseID(args[0], "menu variant")
		if err != nil {
			return err
		}
		if err := a.catalog.DeleteMenuVariant(cmd.Context(), id); err != nil {
			return err
		}
		utils.PrintSuccess(cmd.OutOrStdout(), "Deleted menu variant %d", id)
		return nil
	}),
}

func init() {
	for _, c := range []*cobra.Command{menuVariantCreateCmd, menuVariantUpdateCmd} {
		c.Flags().UintVar(&menuVariantOpts.menu, "menu", 0, "menu id")
		c.Flags().StringVar(&menuVariantOpts.name, "name", "", "variant name")
		c.Flags().StringVar(&menuVariantOpts.extra, "extra", "0", "surcharge (>= 0)")
	}
	menuVariantListCmd.Flags().UintVar(&menuVariantOpts.menu, "menu", 0, "only this menu")
	menuVariantListCmd.Flags().StringVar(&menuVariantOpts.search, "search", "", "match variant or menu name")
	menuVariantListCmd.Flags().IntVar(&menuVariantOpts.page, "page", 1, "page number")
	menuVariantListCmd.Flags().IntVar(&menuVariantOpts.perPage, "per-page", 0, "page size (default from config)")

	menuVariantCmd.AddCommand(menuVariantCreateCmd, menuVariantListCmd, menuVariantUpdateCmd, menuVariantDeleteCmd)
	rootCmd.AddCommand(menuVariantCmd)
}
