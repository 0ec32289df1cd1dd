package migrations

import (
	"time"

	"github.com/kedaikopi/backoffice"
	"gorm.io/gorm"
)

type CreateCategories struct{}

func (m CreateCategories) Version() string { return "202508220600000001" }

func (m CreateCategories) Name() string { return "create_categories" }

// Names are unique ignoring case; sqlite's NOCASE fold matches its LOWER.
func (m CreateCategories) Up(db *gorm.DB) error {
	type Category struct {
		ID        uint   `gorm:"primaryKey"`
		Name      string `gorm:"size:255;not null"`
		Sort      int    `gorm:"not null"`
		CreatedAt time.Time
		UpdatedAt time.Time
	}
	if err := db.AutoMigrate(&Category{}); err != nil {
		return err
	}
	key := "LOWER(name)"
	if db.Dialector.Name() == "sqlite" {
		key = "name COLLATE NOCASE"
	}
	return db.Exec("CREATE UNIQUE INDEX IF NOT EXISTS idx_categories_name ON categories (" + key + ")").Error
}

func (m CreateCategories) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("categories")
}

func (m CreateCategories) Simulate(sb *backoffice.SchemaBuilder) {
	sb.CreateTable("categories").
		ID().
		AddColumn("name", "varchar(255)").
		AddColumn("sort", "bigint").
		Timestamps().
		AddUniqueIndex("idx_categories_name", "name")
}

func init() {
	backoffice.RegisterMigration(CreateCategories{})
}
