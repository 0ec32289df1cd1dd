package migrations

import (
	"time"

	"github.com/kedaikopi/backoffice"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CreateMenuVariants struct{}

func (m CreateMenuVariants) Version() string { return "202508220619570001" }

func (m CreateMenuVariants) Name() string { return "create_menu_variants" }

func (m CreateMenuVariants) Up(db *gorm.DB) error {
	type Menu struct {
		ID uint `gorm:"primaryKey"`
	}
	type MenuVariant struct {
		ID         uint            `gorm:"primaryKey"`
		MenuID     uint            `gorm:"not null;index:idx_menu_variants_menu_id"`
		Menu       Menu            `gorm:"constraint:OnDelete:CASCADE"`
		Name       string          `gorm:"size:255;not null"`
		ExtraPrice decimal.Decimal `gorm:"type:decimal(12,2);not null"`
		CreatedAt  time.Time
		UpdatedAt  time.Time
		DeletedAt  gorm.DeletedAt `gorm:"index:idx_menu_variants_deleted_at"`
	}
	return db.AutoMigrate(&MenuVariant{})
}

func (m CreateMenuVariants) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("menu_variants")
}

func (m CreateMenuVariants) Simulate(sb *backoffice.SchemaBuilder) {
	sb.CreateTable("menu_variants").
		ID().
		AddColumn("menu_id", "bigint").
		AddColumn("name", "varchar(255)").
		AddColumn("extra_price", "decimal(12,2)").
		Timestamps().
		SoftDeletes().
		AddIndex("idx_menu_variants_menu_id", "menu_id").
		AddForeignKey("menu_id", "menus", "id", "CASCADE")
}

func init() {
	backoffice.RegisterMigration(CreateMenuVariants{})
}
