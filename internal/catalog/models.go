package catalog

import (
	"strings"
	"time"

	"github.com/kedaikopi/backoffice/internal/money"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Station is where a menu item is prepared.
type Station string

const (
	StationKitchen Station = "kitchen"
	StationBar     Station = "bar"
	StationBoth    Station = "both"
)

// ParseStation accepts the closed station set, case-insensitively.
func ParseStation(s string) (Station, error) {
	switch st := Station(strings.ToLower(strings.TrimSpace(s))); st {
	case StationKitchen, StationBar, StationBoth:
		return st, nil
	}
	return "", &Error{Kind: KindInvalidStation, Entity: "menu", Field: "station", Value: s}
}

// Mode is a variant group's selection mode.
type Mode string

const (
	ModeSingle   Mode = "single"
	ModeMultiple Mode = "multiple"
)

// ParseMode accepts single or multiple, case-insensitively.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeSingle, ModeMultiple:
		return m, nil
	}
	return "", &Error{Kind: KindInvalidMode, Entity: "variant_group", Field: "type", Value: s}
}

// Category groups menus for display. Categories are hard-deleted.
type Category struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:255;not null"`
	Sort      int    `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time

	// MenusCount is filled by ListCategories.
	MenusCount int64 `gorm:"->;-:migration"`
}

// Menu is a purchasable item.
type Menu struct {
	ID         uint            `gorm:"primaryKey"`
	CategoryID uint            `gorm:"not null;index"`
	Category   *Category       `gorm:"foreignKey:CategoryID"`
	Name       string          `gorm:"size:255;not null"`
	SKU        string          `gorm:"column:sku;size:100;not null;index"`
	Price      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	IsActive   bool            `gorm:"not null"`
	Station    Station         `gorm:"size:16;not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  gorm.DeletedAt `gorm:"index"`

	VariantGroups []VariantGroup `gorm:"many2many:menu_variant_groups"`
	Variants      []MenuVariant  `gorm:"foreignKey:MenuID"`
}

// VariantGroup is a customization axis such as Size or Milk Type.
type VariantGroup struct {
	ID         uint   `gorm:"primaryKey"`
	Name       string `gorm:"size:255;not null"`
	Type       Mode   `gorm:"size:16;not null"`
	IsRequired bool   `gorm:"not null"`
	SortOrder  int    `gorm:"not null"`
	IsActive   bool   `gorm:"not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  gorm.DeletedAt `gorm:"index"`

	Options []VariantOption `gorm:"foreignKey:VariantGroupID"`
}

// VariantOption is one value of a group with a signed price delta.
type VariantOption struct {
	ID             uint            `gorm:"primaryKey"`
	VariantGroupID uint            `gorm:"not null;index"`
	VariantGroup   *VariantGroup   `gorm:"foreignKey:VariantGroupID"`
	Name           string          `gorm:"size:255;not null"`
	ExtraPrice     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	SortOrder      int             `gorm:"not null"`
	IsActive       bool            `gorm:"not null"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      gorm.DeletedAt `gorm:"index"`
}

// FormattedExtraPrice renders the delta for operators.
func (o VariantOption) FormattedExtraPrice() string {
	return money.FormatDelta(o.ExtraPrice)
}

// MenuVariantGroup is one row of the menu to group association.
type MenuVariantGroup struct {
	MenuID         uint `gorm:"primaryKey"`
	VariantGroupID uint `gorm:"primaryKey"`
}

func (MenuVariantGroup) TableName() string { return "menu_variant_groups" }

// MenuVariant is the older flat per-menu variant with a surcharge.
type MenuVariant struct {
	ID         uint            `gorm:"primaryKey"`
	MenuID     uint            `gorm:"not null;index"`
	Menu       *Menu           `gorm:"foreignKey:MenuID"`
	Name       string          `gorm:"size:255;not null"`
	ExtraPrice decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  gorm.DeletedAt `gorm:"index"`
}

// TotalPrice is the menu price plus the surcharge. Menu must be loaded.
func (v MenuVariant) TotalPrice() decimal.Decimal {
	if v.Menu == nil {
		return v.ExtraPrice
	}
	return v.Menu.Price.Add(v.ExtraPrice)
}

// Models lists every catalog model, for AutoMigrate in tests.
func Models() []any {
	return []any{
		&Category{},
		&Menu{},
		&VariantGroup{},
		&VariantOption{},
		&MenuVariantGroup{},
		&MenuVariant{},
	}
}
