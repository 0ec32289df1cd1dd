package migrations

import (
	"time"

	"github.com/kedaikopi/backoffice"
	"gorm.io/gorm"
)

type CreateUsers struct{}

func (m CreateUsers) Version() string { return "202508220620000001" }

func (m CreateUsers) Name() string { return "create_users" }

// Email uniqueness is enforced by the user store so that a soft-deleted
// account frees its address.
func (m CreateUsers) Up(db *gorm.DB) error {
	type User struct {
		ID        uint   `gorm:"primaryKey"`
		Name      string `gorm:"size:255;not null"`
		Email     string `gorm:"size:255;not null;index:idx_users_email"`
		Password  string `gorm:"size:255;not null"`
		Role      string `gorm:"size:32;not null"`
		CreatedAt time.Time
		UpdatedAt time.Time
		DeletedAt gorm.DeletedAt `gorm:"index:idx_users_deleted_at"`
	}
	return db.AutoMigrate(&User{})
}

func (m CreateUsers) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("users")
}

func (m CreateUsers) Simulate(sb *backoffice.SchemaBuilder) {
	sb.CreateTable("users").
		ID().
		AddColumn("name", "varchar(255)").
		AddColumn("email", "varchar(255)").
		AddColumn("password", "varchar(255)").
		AddColumn("role", "varchar(32)").
		Timestamps().
		SoftDeletes().
		AddIndex("idx_users_email", "email")
}

func init() {
	backoffice.RegisterMigration(CreateUsers{})
}
