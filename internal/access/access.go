// Package access holds the static staff roles and what each may do.
package access

import (
	"fmt"
	"sort"
	"strings"
)

// Role is a staff role. The empty role grants nothing.
type Role string

const (
	RoleNone    Role = ""
	RoleAdmin   Role = "admin"
	RoleCashier Role = "cashier"
)

// Permission names one action, "<area>.<verb>".
type Permission string

const (
	CategoryView   Permission = "category.view"
	CategoryCreate Permission = "category.create"
	CategoryUpdate Permission = "category.update"
	CategoryDelete Permission = "category.delete"

	MenuView   Permission = "menu.view"
	MenuCreate Permission = "menu.create"
	MenuUpdate Permission = "menu.update"
	MenuDelete Permission = "menu.delete"

	VariantView   Permission = "variant.view"
	VariantCreate Permission = "variant.create"
	VariantUpdate Permission = "variant.update"
	VariantDelete Permission = "variant.delete"

	ModifierView   Permission = "modifier.view"
	ModifierCreate Permission = "modifier.create"
	ModifierUpdate Permission = "modifier.update"
	ModifierDelete Permission = "modifier.delete"

	UserView   Permission = "user.view"
	UserCreate Permission = "user.create"
	UserUpdate Permission = "user.update"
	UserDelete Permission = "user.delete"

	RoleView   Permission = "role.view"
	RoleAssign Permission = "role.assign"

	OrderView          Permission = "order.view"
	OrderCreate        Permission = "order.create"
	OrderUpdate        Permission = "order.update"
	OrderCancelItem    Permission = "order.cancel-item"
	OrderSendToKitchen Permission = "order.send-to-kitchen"

	PaymentView    Permission = "payment.view"
	PaymentProcess Permission = "payment.process"
	PaymentRefund  Permission = "payment.refund"

	BillView  Permission = "bill.view"
	BillPrint Permission = "bill.print"

	ShiftOpen       Permission = "shift.open"
	ShiftClose      Permission = "shift.close"
	ShiftViewReport Permission = "shift.view-report"
)

var all = []Permission{
	CategoryView, CategoryCreate, CategoryUpdate, CategoryDelete,
	MenuView, MenuCreate, MenuUpdate, MenuDelete,
	VariantView, VariantCreate, VariantUpdate, VariantDelete,
	ModifierView, ModifierCreate, ModifierUpdate, ModifierDelete,
	UserView, UserCreate, UserUpdate, UserDelete,
	RoleView, RoleAssign,
	OrderView, OrderCreate, OrderUpdate, OrderCancelItem, OrderSendToKitchen,
	PaymentView, PaymentProcess, PaymentRefund,
	BillView, BillPrint,
	ShiftOpen, ShiftClose, ShiftViewReport,
}

// Admins manage the catalog, staff, payments and shifts but do not take
// orders.
var grants = map[Role][]Permission{
	RoleAdmin: {
		CategoryView, CategoryCreate, CategoryUpdate, CategoryDelete,
		MenuView, MenuCreate, MenuUpdate, MenuDelete,
		VariantView, VariantCreate, VariantUpdate, VariantDelete,
		ModifierView, ModifierCreate, ModifierUpdate, ModifierDelete,
		UserView, UserCreate, UserUpdate, UserDelete,
		RoleView, RoleAssign,
		PaymentView, PaymentProcess, PaymentRefund,
		BillView, BillPrint,
		ShiftOpen, ShiftClose, ShiftViewReport,
	},
	RoleCashier: {
		CategoryView, MenuView, VariantView, ModifierView,
		OrderView, OrderCreate, OrderUpdate,
		PaymentView, PaymentProcess, PaymentRefund,
		BillView, BillPrint,
		ShiftOpen, ShiftClose, ShiftViewReport,
	},
}

var index = func() map[Role]map[Permission]bool {
	idx := make(map[Role]map[Permission]bool, len(grants))
	for role, perms := range grants {
		idx[role] = make(map[Permission]bool, len(perms))
		for _, p := range perms {
			idx[role][p] = true
		}
	}
	return idx
}()

// Roles lists the assignable roles.
func Roles() []Role {
	return []Role{RoleAdmin, RoleCashier}
}

// ParseRole accepts admin, cashier, or "" / "none" for no role.
func ParseRole(s string) (Role, error) {
	switch r := Role(strings.ToLower(strings.TrimSpace(s))); r {
	case RoleAdmin, RoleCashier, RoleNone:
		return r, nil
	case "none":
		return RoleNone, nil
	}
	return "", fmt.Errorf("unknown role %q (want admin, cashier or none)", s)
}

// Can reports whether role holds permission.
func Can(role Role, p Permission) bool {
	return index[role][p]
}

// Permissions returns the role's permissions sorted by name.
func Permissions(role Role) []Permission {
	out := append([]Permission(nil), grants[role]...)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// AllPermissions returns every known permission sorted by name.
func AllPermissions() []Permission {
	out := append([]Permission(nil), all...)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
