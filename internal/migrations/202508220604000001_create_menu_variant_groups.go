package migrations

import (
	"github.com/kedaikopi/backoffice"
	"gorm.io/gorm"
)

type CreateMenuVariantGroups struct{}

func (m CreateMenuVariantGroups) Version() string { return "202508220604000001" }

func (m CreateMenuVariantGroups) Name() string { return "create_menu_variant_groups" }

func (m CreateMenuVariantGroups) Up(db *gorm.DB) error {
	type Menu struct {
		ID uint `gorm:"primaryKey"`
	}
	type VariantGroup struct {
		ID uint `gorm:"primaryKey"`
	}
	type MenuVariantGroup struct {
		MenuID         uint         `gorm:"primaryKey;autoIncrement:false"`
		Menu           Menu         `gorm:"constraint:OnDelete:CASCADE"`
		VariantGroupID uint         `gorm:"primaryKey;autoIncrement:false;index:idx_menu_variant_groups_variant_group_id"`
		VariantGroup   VariantGroup `gorm:"constraint:OnDelete:CASCADE"`
	}
	return db.AutoMigrate(&MenuVariantGroup{})
}

func (m CreateMenuVariantGroups) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("menu_variant_groups")
}

func (m CreateMenuVariantGroups) Simulate(sb *backoffice.SchemaBuilder) {
	sb.CreateTable("menu_variant_groups").
		AddColumnWithOptions("menu_id", "bigint", false, true, false).
		AddColumnWithOptions("variant_group_id", "bigint", false, true, false).
		AddIndex("idx_menu_variant_groups_variant_group_id", "variant_group_id").
		AddForeignKey("menu_id", "menus", "id", "CASCADE").
		AddForeignKey("variant_group_id", "variant_groups", "id", "CASCADE")
}

func init() {
	backoffice.RegisterMigration(CreateMenuVariantGroups{})
}
