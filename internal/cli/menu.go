package cli

import (
	"fmt"

	"github.com/kedaikopi/backoffice/internal/catalog"
	"github.com/kedaikopi/backoffice/internal/money"
	"github.com/kedaikopi/backoffice/internal/utils"
	"github.com/spf13/cobra"
)

type menuFlags struct {
	category uint
	name     string
	sku      string
	price    string
	station  string
	inactive bool
	active   bool
	groups   []uint
}

var (
	menuCreateOpts menuFlags
	menuUpdateOpts menuFlags
	menuListOpts   struct {
		search     string
		category   uint
		station    string
		activeOnly bool
		page       int
		perPage    int
	}
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Manage menus and their variant groups",
}

var menuCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a menu",
	Args:  cobra.NoArgs,
	RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
		price, err := parseMoney(menuCreateOpts.price, "price")
		if err != nil {
			return err
		}
		m, err := a.catalog.CreateMenu(cmd.Context(), catalog.MenuInput{
			CategoryID:      menuCreateOpts.category,
			Name:            menuCreateOpts.name,
			SKU:             menuCreateOpts.sku,
			Price:           price,
			Station:         menuCreateOpts.station,
			IsActive:        !menuCreateOpts.inactive,
			VariantGroupIDs: menuCreateOpts.groups,
		})
		if err != nil {
			return err
		}
		utils.PrintSuccess(cmd.OutOrStdout(), "Created menu %d %q (%s)", m.ID, m.Name, m.SKU)
		return nil
	}),
}

var menuListCmd = &cobra.Command{
	Use:   "list",
	Short: "List menus",
	Args:  cobra.NoArgs,
	RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
		page, err := a.catalog.ListMenus(cmd.Context(), catalog.MenuFilter{
			Search:     menuListOpts.search,
			CategoryID: menuListOpts.category,
			Station:    menuListOpts.station,
			ActiveOnly: menuListOpts.activeOnly,
			Page:       catalog.Page{Number: menuListOpts.page, Size: menuListOpts.perPage},
		})
		if err != nil {
			return err
		}
		rows := make([][]string, 0, len(page.Items))
		for _, m := range page.Items {
			category := ""
			if m.Category != nil {
				category = m.Category.Name
			}
			rows = append(rows, []string{
				idString(m.ID), m.SKU, m.Name, category, money.Format(m.Price), string(m.Station), yesNo(m.IsActive),
			})
		}
		out := cmd.OutOrStdout()
		if err := utils.PrintTable(out, []string{"ID", "SKU", "NAME", "CATEGORY", "PRICE", "STATION", "ACTIVE"}, rows); err != nil {
			return err
		}
		fmt.Fprintln(out, pageFooter(page))
		return nil
	}),
}

var menuShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a menu with its variant groups",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
		id, err := parseID(args[0], "menu")
		if err != nil {
			return err
		}
		m, err := a.catalog.GetMenu(cmd.Context(), id)
		if err != nil {
			return err
		}
		groups, err := a.catalog.ListMenuVariantGroups(cmd.Context(), id, false)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		utils.PrintHeader(out, fmt.Sprintf("%s (%s)", m.Name, m.SKU))
		if m.Category != nil {
			fmt.Fprintf(out, "Category: %s\n", m.Category.Name)
		}
		fmt.Fprintf(out, "Price:    %s\n", money.Format(m.Price))
		fmt.Fprintf(out, "Station:  %s\n", m.Station)
		fmt.Fprintf(out, "Active:   %s\n", yesNo(m.IsActive))
		printGroups(out, groups)
		return nil
	}),
}

var menuUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a menu (the SKU cannot change)",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
		id, err := parseID(args[0], "menu")
		if err != nil {
			return err
		}
		cur, err := a.catalog.GetMenu(cmd.Context(), id)
		if err != nil {
			return err
		}

		in := catalog.MenuUpdate{
			CategoryID: cur.CategoryID,
			Name:       cur.Name,
			Price:      cur.Price,
			Station:    string(cur.Station),
			IsActive:   cur.IsActive,
		}
		flags := cmd.Flags()
		if flags.Changed("category") {
			in.CategoryID = menuUpdateOpts.category
		}
		if flags.Changed("name") {
			in.Name = menuUpdateOpts.name
		}
		if flags.Changed("price") {
			if in.Price, err = parseMoney(menuUpdateOpts.price, "price"); err != nil {
				return err
			}
		}
		if flags.Changed("station") {
			in.Station = menuUpdateOpts.station
		}
		if flags.Changed("active") {
			in.IsActive = menuUpdateOpts.active
		}
		if flags.Changed("groups") {
			in.VariantGroupIDs = append([]uint{}, menuUpdateOpts.groups...)
		}

		m, err := a.catalog.UpdateMenu(cmd.Context(), id, in)
		if err != nil {
			return err
		}
		utils.PrintSuccess(cmd.OutOrStdout(), "Updated menu %d %q", m.ID, m.Name)
		return nil
	}),
}

var menuDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a menu",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
		id, err := parseID(args[0], "menu")
		if err != nil {
			return err
		}
		if err := a.catalog.DeleteMenu(cmd.Context(), id); err != nil {
			return err
		}
		utils.PrintSuccess(cmd.OutOrStdout(), "Deleted menu %d", id)
		return nil
	}),
}

// groupsCommand builds attach, sync and detach, which share their shape.
func groupsCommand(use, short, done string, op func(a *app, cmd *cobra.Command, menuID uint, ids []uint) error) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <menu-id> <group-id>...",
		Short: short,
		Args:  cobra.MinimumNArgs(1),
		RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
			menuID, err := parseID(args[0], "menu")
			if err != nil {
				return err
			}
			ids, err := parseIDs(args[1:], "variant group")
			if err != nil {
				return err
			}
			if err := op(a, cmd, menuID, ids); err != nil {
				return err
			}
			utils.PrintSuccess(cmd.OutOrStdout(), "%s %d variant group(s) on menu %d", done, len(ids), menuID)
			return nil
		}),
	}
}

func init() {
	menuCreateCmd.Flags().UintVar(&menuCreateOpts.category, "category", 0, "category id")
	menuCreateCmd.Flags().StringVar(&menuCreateOpts.name, "name", "", "menu name")
	menuCreateCmd.Flags().StringVar(&menuCreateOpts.sku, "sku", "", "stock keeping unit, unique among live menus")
	menuCreateCmd.Flags().StringVar(&menuCreateOpts.price, "price", "", "base price, up to 2 decimals")
	menuCreateCmd.Flags().StringVar(&menuCreateOpts.station, "station", string(catalog.StationBar), "kitchen, bar or both")
	menuCreateCmd.Flags().BoolVar(&menuCreateOpts.inactive, "inactive", false, "create the menu switched off")
	menuCreateCmd.Flags().UintSliceVar(&menuCreateOpts.groups, "groups", nil, "variant group ids to attach")

	menuUpdateCmd.Flags().UintVar(&menuUpdateOpts.category, "category", 0, "category id")
	menuUpdateCmd.Flags().StringVar(&menuUpdateOpts.name, "name", "", "menu name")
	menuUpdateCmd.Flags().StringVar(&menuUpdateOpts.price, "price", "", "base price, up to 2 decimals")
	menuUpdateCmd.Flags().StringVar(&menuUpdateOpts.station, "station", "", "kitchen, bar or both")
	menuUpdateCmd.Flags().BoolVar(&menuUpdateOpts.active, "active", true, "whether the menu can be ordered")
	menuUpdateCmd.Flags().UintSliceVar(&menuUpdateOpts.groups, "groups", nil, "replace the attached variant groups")

	menuListCmd.Flags().StringVar(&menuListOpts.search, "search", "", "match name or SKU")
	menuListCmd.Flags().UintVar(&menuListOpts.category, "category", 0, "only this category")
	menuListCmd.Flags().StringVar(&menuListOpts.station, "station", "", "only this station")
	menuListCmd.Flags().BoolVar(&menuListOpts.activeOnly, "active", false, "only active menus")
	menuListCmd.Flags().IntVar(&menuListOpts.page, "page", 1, "page number")
	menuListCmd.Flags().IntVar(&menuListOpts.perPage, "per-page", 0, "page size (default from config)")

	menuCmd.AddCommand(
		menuCreateCmd, menuListCmd, menuShowCmd, menuUpdateCmd, menuDeleteCmd,
		groupsCommand("attach", "Attach variant groups to a menu", "Attached", func(a *app, cmd *cobra.Command, id uint, ids []uint) error {
			return a.catalog.AttachVariantGroups(cmd.Context(), id, ids)
		}),
		groupsCommand("sync", "Replace a menu's variant groups", "Synced", func(a *app, cmd *cobra.Command, id uint, ids []uint) error {
			return a.catalog.SyncVariantGroups(cmd.Context(), id, ids)
		}),
		groupsCommand("detach", "Detach variant groups from a menu", "Detached", func(a *app, cmd *cobra.Command, id uint, ids []uint) error {
			return a.catalog.DetachVariantGroups(cmd.Context(), id, ids)
		}),
	)
	rootCmd.AddCommand(menuCmd)
}
