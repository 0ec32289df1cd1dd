package versioner

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	return db
}

func setupVersioner(t *testing.T) *Versioner {
	ver := NewVersioner(setupTestDB(t), "_test_migrations")
	if err := ver.Initialize(); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	return ver
}

func TestNewVersionerDefaultsTable(t *testing.T) {
	db := setupTestDB(t)
	if got := NewVersioner(db, "").Table(); got != DefaultTable {
		t.Errorf("Expected default table '%s', got '%s'", DefaultTable, got)
	}
	if got := NewVersioner(db, "_test_migrations").Table(); got != "_test_migrations" {
		t.Errorf("Expected table '_test_migrations', got '%s'", got)
	}
}

func TestInitialize(t *testing.T) {
	db := setupTestDB(t)
	ver := NewVersioner(db, "_test_migrations")

	if err := ver.Initialize(); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	// Second call is a no-op.
	if err := ver.Initialize(); err != nil {
		t.Fatalf("Initialize should be idempotent: %v", err)
	}

	var count int64
	if err := db.Table("_test_migrations").Count(&count).Error; err != nil {
		t.Fatalf("Table should exist: %v", err)
	}
}

func TestInitializeRejectsBadTableName(t *testing.T) {
	ver := NewVersioner(setupTestDB(t), "migrations; DROP TABLE menus")
	if err := ver.Initialize(); err == nil {
		t.Error("Expected invalid table name to be rejected")
	}
}

func TestRecordAndIsApplied(t *testing.T) {
	ver := setupVersioner(t)

	applied, err := ver.IsApplied("20250822000001")
	if err != nil {
		t.Fatalf("IsApplied failed: %v", err)
	}
	if applied {
		t.Error("Migration should not be applied initially")
	}

	if err := ver.RecordApplied("20250822000001", "create_categories", 1); err != nil {
		t.Fatalf("RecordApplied failed: %v", err)
	}

	applied, err = ver.IsApplied("20250822000001")
	if err != nil {
		t.Fatalf("IsApplied failed: %v", err)
	}
	if !applied {
		t.Error("Migration should be applied now")
	}
}

func TestGetAppliedVersionsOrdered(t *testing.T) {
	ver := setupVersioner(t)

	for _, v := range []string{"20250822000003", "20250822000001", "20250822000002"} {
		if err := ver.RecordApplied(v, "m_"+v, 1); err != nil {
			t.Fatalf("RecordApplied failed: %v", err)
		}
	}

	applied, err := ver.GetAppliedVersions()
	if err != nil {
		t.Fatalf("GetAppliedVersions failed: %v", err)
	}
	want := []string{"20250822000001", "20250822000002", "20250822000003"}
	if len(applied) != len(want) {
		t.Fatalf("Expected %d applied versions, got %d", len(want), len(applied))
	}
	for i, v := range applied {
		if v != want[i] {
			t.Errorf("Expected version '%s' at index %d, got '%s'", want[i], i, v)
		}
	}
}

func TestNextBatch(t *testing.T) {
	ver := setupVersioner(t)

	batch, err := ver.NextBatch()
	if err != nil {
		t.Fatalf("NextBatch failed: %v", err)
	}
	if batch != 1 {
		t.Errorf("Expected first batch 1, got %d", batch)
	}

	if err := ver.RecordApplied("20250822000001", "create_categories", 1); err != nil {
		t.Fatalf("RecordApplied failed: %v", err)
	}
	if err := ver.RecordApplied("20250822000002", "create_menus", 2); err != nil {
		t.Fatalf("RecordApplied failed: %v", err)
	}

	batch, err = ver.NextBatch()
	if err != nil {
		t.Fatalf("NextBatch failed: %v", err)
	}
	if batch != 3 {
		t.Errorf("Expected next batch 3, got %d", batch)
	}
}

func TestRemoveApplied(t *testing.T) {
	ver := setupVersioner(t)

	if err := ver.RecordApplied("20250822000001", "create_categories", 1); err != nil {
		t.Fatalf("RecordApplied failed: %v", err)
	}
	if err := ver.RemoveApplied("20250822000001"); err != nil {
		t.Fatalf("RemoveApplied failed: %v", err)
	}

	applied, err := ver.IsApplied("20250822000001")
	if err != nil {
		t.Fatalf("IsApplied failed: %v", err)
	}
	if applied {
		t.Error("Migration should not be applied after removal")
	}
}

func TestGetLatestVersionAndCount(t *testing.T) {
	ver := setupVersioner(t)

	latest, err := ver.GetLatestVersion()
	if err != nil {
		t.Fatalf("GetLatestVersion failed: %v", err)
	}
	if latest != "" {
		t.Errorf("Expected empty string, got '%s'", latest)
	}

	for _, v := range []string{"20250822000001", "20250822000003", "20250822000002"} {
		if err := ver.RecordApplied(v, "m_"+v, 1); err != nil {
			t.Fatalf("RecordApplied failed: %v", err)
		}
	}

	latest, err = ver.GetLatestVersion()
	if err != nil {
		t.Fatalf("GetLatestVersion failed: %v", err)
	}
	if latest != "20250822000003" {
		t.Errorf("Expected latest version '20250822000003', got '%s'", latest)
	}

	count, err := ver.GetAppliedCount()
	if err != nil {
		t.Fatalf("GetAppliedCount failed: %v", err)
	}
	if count != 3 {
		t.Errorf("Expected count 3, got %d", count)
	}
}
