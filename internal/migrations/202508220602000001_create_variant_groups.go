package migrations

import (
	"time"

	"github.com/kedaikopi/backoffice"
	"gorm.io/gorm"
)

type CreateVariantGroups struct{}

func (m CreateVariantGroups) Version() string { return "202508220602000001" }

func (m CreateVariantGroups) Name() string { return "create_variant_groups" }

func (m CreateVariantGroups) Up(db *gorm.DB) error {
	type VariantGroup struct {
		ID         uint   `gorm:"primaryKey"`
		Name       string `gorm:"size:255;not null"`
		Type       string `gorm:"size:16;not null"`
		IsRequired bool   `gorm:"not null"`
		SortOrder  int    `gorm:"not null;index:idx_variant_groups_sort_order"`
		IsActive   bool   `gorm:"not null"`
		CreatedAt  time.Time
		UpdatedAt  time.Time
		DeletedAt  gorm.DeletedAt `gorm:"index:idx_variant_groups_deleted_at"`
	}
	return db.AutoMigrate(&VariantGroup{})
}

func (m CreateVariantGroups) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("variant_groups")
}

func (m CreateVariantGroups) Simulate(sb *backoffice.SchemaBuilder) {
	sb.CreateTable("variant_groups").
		ID().
		AddColumn("name", "varchar(255)").
		AddColumn("type", "varchar(16)").
		AddColumn("is_required", "boolean").
		AddColumn("sort_order", "bigint").
		AddColumn("is_active", "boolean").
		Timestamps().
		SoftDeletes().
		AddIndex("idx_variant_groups_sort_order", "sort_order")
}

func init() {
	backoffice.RegisterMigration(CreateVariantGroups{})
}
