package cli

import (
	"fmt"
	"strings"

	"github.com/kedaikopi/backoffice/internal/access"
	"github.com/kedaikopi/backoffice/internal/utils"
	"github.com/spf13/cobra"
)

var userOpts struct {
	name     string
	email    string
	password string
	role     string
	search   string
}

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage back-office staff accounts",
}

func roleLabel(r access.Role) string {
	if r == access.RoleNone {
		return "none"
	}
	return string(r)
}

var userCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a staff account",
	Args:  cobra.NoArgs,
	RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
		role, err := access.ParseRole(userOpts.role)
		if err != nil {
			return err
		}
		u, err := a.users.Create(cmd.Context(), userOpts.name, userOpts.email, userOpts.password, role)
		if err != nil {
			return err
		}
		utils.PrintSuccess(cmd.OutOrStdout(), "Created user %d %s (%s)", u.ID, u.Email, roleLabel(u.Role))
		return nil
	}),
}

var userListCmd = &cobra.Command{
	Use:   "list",
	Short: "List staff accounts",
	Args:  cobra.NoArgs,
	RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
		list, err := a.users.List(cmd.Context(), userOpts.search)
		if err != nil {
			return err
		}
		rows := make([][]string, 0, len(list))
		for _, u := range list {
			rows = append(rows, []string{idString(u.ID), u.Name, u.Email, roleLabel(u.Role)})
		}
		return utils.PrintTable(cmd.OutOrStdout(), []string{"ID", "NAME", "EMAIL", "ROLE"}, rows)
	}),
}

var userRoleCmd = &cobra.Command{
	Use:   "role <id> <admin|cashier|none>",
	Short: "Assign or revoke a user's role",
	Args:  cobra.ExactArgs(2),
	RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
		id, err := parseID(args[0], "user")
		if err != nil {
			return err
		}
		role, err := access.ParseRole(args[1])
		if err != nil {
			return err
		}
		if err := a.users.AssignRole(cmd.Context(), id, role); err != nil {
			return err
		}
		utils.PrintSuccess(cmd.OutOrStdout(), "User %d now has role %s", id, roleLabel(role))
		return nil
	}),
}

var userPasswordCmd = &cobra.Command{
	Use:   "password <id>",
	Short: "Set a user's password",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
		id, err := parseID(args[0], "user")
		if err != nil {
			return err
		}
		if err := a.users.SetPassword(cmd.Context(), id, userOpts.password); err != nil {
			return err
		}
		utils.PrintSuccess(cmd.OutOrStdout(), "Password changed for user %d", id)
		return nil
	}),
}

var userDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a staff account",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
		id, err := parseID(args[0], "user")
		if err != nil {
			return err
		}
		if err := a.users.Delete(cmd.Context(), id); err != nil {
			return err
		}
		utils.PrintSuccess(cmd.OutOrStdout(), "Deleted user %d", id)
		return nil
	}),
}

var userPermissionsCmd = &cobra.Command{
	Use:   "permissions <role>",
	Short: "List what a role may do",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		role, err := access.ParseRole(args[0])
		if err != nil {
			return err
		}
		perms := access.Permissions(role)
		names := make([]string, len(perms))
		for i, p := range perms {
			names[i] = string(p)
		}
		out := cmd.OutOrStdout()
		if len(names) == 0 {
			utils.PrintWarning(out, "Role %s has no permissions", roleLabel(role))
			return nil
		}
		fmt.Fprintln(out, strings.Join(names, "\n"))
		return nil
	},
}

func init() {
	userCreateCmd.Flags().StringVar(&userOpts.name, "name", "", "display name")
	userCreateCmd.Flags().StringVar(&userOpts.email, "email", "", "login email")
	userCreateCmd.Flags().StringVar(&userOpts.password, "password", "", "password (8 to 72 bytes)")
	userCreateCmd.Flags().StringVar(&userOpts.role, "role", "none", "admin, cashier or none")
	userPasswordCmd.Flags().StringVar(&userOpts.password, "password", "", "new password (8 to 72 bytes)")
	userListCmd.Flags().StringVar(&userOpts.search, "search", "", "match name or email")

	userCmd.AddCommand(userCreateCmd, userListCmd, userRoleCmd, userPasswordCmd, userDeleteCmd, userPermissionsCmd)
	rootCmd.AddCommand(userCmd)
}
