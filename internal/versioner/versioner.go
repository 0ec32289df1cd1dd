package versioner

import (
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"time"

	"gorm.io/gorm"
)

// DefaultTable is the tracking table used when none is configured.
const DefaultTable = "_backoffice_migrations"

var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// MigrationRecord is one applied migration.
type MigrationRecord struct {
	Version   string    `gorm:"primaryKey;column:version"`
	Name      string    `gorm:"column:name"`
	Batch     int       `gorm:"column:batch"`
	AppliedAt time.Time `gorm:"column:applied_at"`
}

// TableName returns the default tracking table name.
func (MigrationRecord) TableName() string {
	return DefaultTable
}

// Versioner tracks which schema migrations have been applied.
type Versioner struct {
	db    *gorm.DB
	table string
}

// NewVersioner creates a versioner over the given tracking table.
func NewVersioner(db *gorm.DB, tableName string) *Versioner {
	if tableName == "" {
		tableName = DefaultTable
	}
	return &Versioner{
		db:    db,
		table: tableName,
	}
}

// Table returns the tracking table name.
func (v *Versioner) Table() string {
	return v.table
}

// WithDB returns a versioner bound to another handle, typically a transaction.
func (v *Versioner) WithDB(db *gorm.DB) *Versioner {
	return &Versioner{db: db, table: v.table}
}

// Initialize creates the tracking table.
func (v *Versioner) Initialize() error {
	if !tableNamePattern.MatchString(v.table) {
		return fmt.Errorf("invalid migration table name %q", v.table)
	}
	if err := v.db.Exec(fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			version VARCHAR(255) PRIMARY KEY,
			name VARCHAR(255),
			batch INTEGER NOT NULL DEFAULT 1,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`, v.table)).Error; err != nil {
		return fmt.Errorf("failed to create migration table: %w", err)
	}
	return nil
}

// GetAppliedVersions returns applied versions in ascending order.
func (v *Versioner) GetAppliedVersions() ([]string, error) {
	records, err := v.GetAppliedRecords()
	if err != nil {
		return nil, err
	}
	versions := make([]string, len(records))
	for i, r := range records {
		versions[i] = r.Version
	}
	return versions, nil
}

// GetAppliedRecords returns applied records in ascending version order.
func (v *Versioner) GetAppliedRecords() ([]MigrationRecord, error) {
	var records []MigrationRecord
	if err := v.db.Table(v.table).Order("version ASC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to query applied migrations: %w", err)
	}
	return records, nil
}

// IsApplied reports whether a version has been applied.
func (v *Versioner) IsApplied(version string) (bool, error) {
	var count int64
	if err := v.db.Table(v.table).Where("version = ?", version).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check migration status: %w", err)
	}
	return count > 0, nil
}

// NextBatch returns the batch number for the next migrate run.
func (v *Versioner) NextBatch() (int, error) {
	var batch sql.NullInt64
	if err := v.db.Table(v.table).Select("MAX(batch)").Row().Scan(&batch); err != nil {
		return 0, fmt.Errorf("failed to read last batch: %w", err)
	}
	if !batch.Valid {
		return 1, nil
	}
	return int(batch.Int64) + 1, nil
}

// RecordApplied records a migration as applied in the given batch.
func (v *Versioner) RecordApplied(version, name string, batch int) error {
	record := MigrationRecord{
		Version:   version,
		Name:      name,
		Batch:     batch,
		AppliedAt: time.Now(),
	}
	if err := v.db.Table(v.table).Create(&record).Error; err != nil {
		return fmt.Errorf("failed to record migration: %w", err)
	}
	return nil
}

// RemoveApplied removes a migration record (for rollback).
func (v *Versioner) RemoveApplied(version string) error {
	if err := v.db.Table(v.table).Where("version = ?", version).Delete(&MigrationRecord{}).Error; err != nil {
		return fmt.Errorf("failed to remove migration record: %w", err)
	}
	return nil
}

// GetLatestVersion returns the latest applied version, or "" when none.
func (v *Versioner) GetLatestVersion() (string, error) {
	var record MigrationRecord
	if err := v.db.Table(v.table).Order("version DESC").First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("failed to get latest version: %w", err)
	}
	return record.Version, nil
}

// GetAppliedCount returns the number of applied migrations.
func (v *Versioner) GetAppliedCount() (int64, error) {
	var count int64
	if err := v.db.Table(v.table).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count applied migrations: %w", err)
	}
	return count, nil
}
