package seed

import "github.com/kedaikopi/backoffice/internal/access"

type categoryRow struct {
	name string
	sort int
}

var categories = []categoryRow{
	{"Coffee", 1},
	{"Non-Coffee", 2},
	{"Pastry", 3},
	{"Food", 4},
	{"Dessert", 5},
	{"Cold Drinks", 6},
	{"Hot Drinks", 7},
	{"Snacks", 8},
}

type menuRow struct {
	category string
	name     string
	sku      string
	price    string
	station  string
}

// Stations are kept as first recorded; "barista" is a legacy spelling of
// bar.
var menus = []menuRow{
	{"Coffee", "Espresso", "CF-ESP-001", "18000", "bar"},
	{"Coffee", "Americano", "CF-AME-002", "22000", "bar"},
	{"Coffee", "Cappuccino", "CF-CAP-003", "28000", "bar"},
	{"Coffee", "Latte", "CF-LAT-004", "30000", "bar"},
	{"Coffee", "Macchiato", "CF-MAC-005", "32000", "bar"},
	{"Coffee", "Mocha", "CF-MOC-006", "35000", "bar"},
	{"Coffee", "Caramel Latte", "CF-CAL-007", "38000", "bar"},
	{"Coffee", "Vanilla Latte", "CF-VL-008", "38000", "bar"},

	{"Non-Coffee", "Green Tea Latte", "NC-GTL-001", "25000", "barista"},
	{"Non-Coffee", "Chai Latte", "NC-CHL-002", "28000", "barista"},
	{"Non-Coffee", "Hot Chocolate", "NC-HC-003", "30000", "barista"},
	{"Non-Coffee", "Matcha Latte", "NC-ML-004", "35000", "barista"},

	{"Cold Drinks", "Iced Coffee", "CD-IC-001", "25000", "barista"},
	{"Cold Drinks", "Iced Tea", "CD-IT-002", "18000", "barista"},
	{"Cold Drinks", "Lemon Squash", "CD-LS-003", "22000", "barista"},
	{"Cold Drinks", "Fresh Orange Juice", "CD-FOJ-004", "28000", "barista"},
	{"Cold Drinks", "Smoothie Berry", "CD-SB-005", "32000", "barista"},

	{"Pastry", "Croissant", "PT-CR-001", "15000", "kitchen"},
	{"Pastry", "Danish Pastry", "PT-DP-002", "18000", "kitchen"},
	{"Pastry", "Blueberry Muffin", "PT-BM-003", "20000", "kitchen"},
	{"Pastry", "Chocolate Croissant", "PT-CC-004", "22000", "kitchen"},

	{"Food", "Sandwich Club", "FD-SC-001", "35000", "kitchen"},
	{"Food", "Caesar Salad", "FD-CS-002", "32000", "kitchen"},
	{"Food", "Pasta Carbonara", "FD-PC-003", "45000", "kitchen"},
	{"Food", "Grilled Chicken", "FD-GC-004", "55000", "kitchen"},

	{"Dessert", "Cheesecake", "DS-CC-001", "28000", "kitchen"},
	{"Dessert", "Tiramisu", "DS-TR-002", "32000", "kitchen"},
	{"Dessert", "Chocolate Brownie", "DS-CB-003", "25000", "kitchen"},
	{"Dessert", "Ice Cream Scoop", "DS-ICS-004", "15000", "kitchen"},

	{"Snacks", "French Fries", "SN-FF-001", "18000", "kitchen"},
	{"Snacks", "Onion Rings", "SN-OR-002", "20000", "kitchen"},
	{"Snacks", "Chicken Wings", "SN-CW-003", "25000", "kitchen"},
	{"Snacks", "Nachos", "SN-NC-004", "22000", "kitchen"},
}

type optionRow struct {
	name  string
	extra string
}

type groupRow struct {
	name     string
	required bool
	options  []optionRow
}

const (
	groupSize        = "Size"
	groupTemperature = "Temperature"
	groupMilk        = "Milk Type"
	groupSweetness   = "Sweetness Level"
)

// Sort orders follow slice position, starting at 1.
var groups = []groupRow{
	{groupSize, true, []optionRow{
		{"Small", "-5000"},
		{"Regular", "0"},
		{"Large", "8000"},
		{"Extra Large", "15000"},
	}},
	{groupTemperature, true, []optionRow{
		{"Hot", "0"},
		{"Iced", "3000"},
		{"Blended", "5000"},
	}},
	{groupMilk, false, []optionRow{
		{"Regular Milk", "0"},
		{"Oat Milk", "8000"},
		{"Almond Milk", "8000"},
		{"Soy Milk", "5000"},
		{"Coconut Milk", "6000"},
	}},
	{groupSweetness, false, []optionRow{
		{"No Sugar", "0"},
		{"Less Sweet", "0"},
		{"Normal Sweet", "0"},
		{"Extra Sweet", "2000"},
	}},
}

// Menus that take no variant groups get fixed portion variants.
var portions = []optionRow{
	{"Regular Portion", "0"},
	{"Large Portion", "10000"},
	{"Extra Large", "18000"},
}

type userRow struct {
	name  string
	email string
	role  access.Role
}

var staff = []userRow{
	{"Admin User", "admin@coffeshop.com", access.RoleAdmin},
	{"Cashier User", "cashier@coffeshop.com", access.RoleCashier},
	{"Regular User", "user@coffeshop.com", access.RoleNone},
}
