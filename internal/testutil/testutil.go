package testutil

import (
	"path/filepath"
	"testing"

	"quizboard/internal/config"
	"quizboard/internal/db"

	"gorm.io/gorm"
)

// TestConfig returns the default configuration pointed at a fresh sqlite file.
func TestConfig(t *testing.T) config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.DatabaseType = config.DatabaseSQLite
	cfg.DatabaseURL = filepath.Join(t.TempDir(), "quiz.sqlite")
	return cfg
}

// SetupTestDB opens an isolated sqlite store with the full schema migrated.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := db.Open(TestConfig(t))
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	if err := db.Migrate(conn); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := conn.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return conn
}
