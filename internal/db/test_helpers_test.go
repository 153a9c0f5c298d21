package db

import (
	"context"
	"path/filepath"
	"testing"

	"gorm.io/gorm"
)

func openTestDatabase(t *testing.T) *gorm.DB {
	t.Helper()
	return openTestDatabaseAt(t, filepath.Join(t.TempDir(), "dailybrew-test.db"))
}

func openTestDatabaseAt(t *testing.T, databasePath string) *gorm.DB {
	t.Helper()

	database, err := OpenSQLite(databasePath, nil)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	return database
}

func seedTestDatabase(t *testing.T, database *gorm.DB) {
	t.Helper()
	if _, err := SeedDefaults(context.Background(), database, SeedOptions{PasswordHash: "hash"}); err != nil {
		t.Fatalf("seed defaults: %v", err)
	}
}
