package migrations

import (
	"time"

	"github.com/kedaikopi/backoffice"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CreateVariantOptions struct{}

func (m CreateVariantOptions) Version() string { return "202508220603000001" }

func (m CreateVariantOptions) Name() string { return "create_variant_options" }

func (m CreateVariantOptions) Up(db *gorm.DB) error {
	type VariantGroup struct {
		ID uint `gorm:"primaryKey"`
	}
	type VariantOption struct {
		ID             uint            `gorm:"primaryKey"`
		VariantGroupID uint            `gorm:"not null;index:idx_variant_options_variant_group_id"`
		VariantGroup   VariantGroup    `gorm:"constraint:OnDelete:CASCADE"`
		Name           string          `gorm:"size:255;not null"`
		ExtraPrice     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
		SortOrder      int             `gorm:"not null"`
		IsActive       bool            `gorm:"not null"`
		CreatedAt      time.Time
		UpdatedAt      time.Time
		DeletedAt      gorm.DeletedAt `gorm:"index:idx_variant_options_deleted_at"`
	}
	return db.AutoMigrate(&VariantOption{})
}

func (m CreateVariantOptions) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("variant_options")
}

func (m CreateVariantOptions) Simulate(sb *backoffice.SchemaBuilder) {
	sb.CreateTable("variant_options").
		ID().
		AddColumn("variant_group_id", "bigint").
		AddColumn("name", "varchar(255)").
		AddColumn("extra_price", "decimal(12,2)").
		AddColumn("sort_order", "bigint").
		AddColumn("is_active", "boolean").
		Timestamps().
		SoftDeletes().
		AddIndex("idx_variant_options_variant_group_id", "variant_group_id").
		AddForeignKey("variant_group_id", "variant_groups", "id", "CASCADE")
}

func init() {
	backoffice.RegisterMigration(CreateVariantOptions{})
}
