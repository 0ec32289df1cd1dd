package migrations

import (
	"time"

	"github.com/kedaikopi/backoffice"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CreateMenus struct{}

func (m CreateMenus) Version() string { return "202508220601000001" }

func (m CreateMenus) Name() string { return "create_menus" }

// category_id carries no foreign key: the catalog refuses to delete a
// category while live menus use it, and tombstoned menus must not block.
// SKUs are unique among live menus only.
func (m CreateMenus) Up(db *gorm.DB) error {
	type Menu struct {
		ID         uint            `gorm:"primaryKey"`
		CategoryID uint            `gorm:"not null;index:idx_menus_category_id"`
		Name       string          `gorm:"size:255;not null"`
		SKU        string          `gorm:"column:sku;size:100;not null;index:idx_menus_sku"`
		Price      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
		IsActive   bool            `gorm:"not null"`
		Station    string          `gorm:"size:16;not null"`
		CreatedAt  time.Time
		UpdatedAt  time.Time
		DeletedAt  gorm.DeletedAt `gorm:"index:idx_menus_deleted_at"`
	}
	if err := db.AutoMigrate(&Menu{}); err != nil {
		return err
	}
	return db.Exec("CREATE UNIQUE INDEX IF NOT EXISTS idx_menus_sku_live ON menus (sku) WHERE deleted_at IS NULL").Error
}

func (m CreateMenus) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("menus")
}

func (m CreateMenus) Simulate(sb *backoffice.SchemaBuilder) {
	sb.CreateTable("menus").
		ID().
		AddColumn("category_id", "bigint").
		AddColumn("name", "varchar(255)").
		AddColumn("sku", "varchar(100)").
		AddColumn("price", "decimal(12,2)").
		AddColumn("is_active", "boolean").
		AddColumn("station", "varchar(16)").
		Timestamps().
		SoftDeletes().
		AddIndex("idx_menus_category_id", "category_id").
		AddIndex("idx_menus_sku", "sku").
		AddUniqueIndex("idx_menus_sku_live", "sku")
}

func init() {
	backoffice.RegisterMigration(CreateMenus{})
}
