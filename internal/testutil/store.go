// Package testutil holds helpers shared by package tests and the container launcher.
package testutil

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/localnerve/shopdb/data"
	"github.com/localnerve/shopdb/internal/database"
	"github.com/localnerve/shopdb/internal/store"
	"github.com/localnerve/shopdb/internal/store/sqlstore"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewSQLiteStore returns a migrated store over a private in-memory sqlite
// database holding the reference roles. It is closed when the test ends.
func NewSQLiteStore(t testing.TB) *sqlstore.Store {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	// One connection keeps the in-memory database alive and serializes writers
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get underlying SQL DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	st := sqlstore.New(db)
	SeedRoles(t, st)

	t.Cleanup(func() {
		_ = st.Close(context.Background())
	})
	return st
}

// SeedRoles ensures the reference roles exist.
func SeedRoles(t testing.TB, st store.Store) {
	t.Helper()
	names, err := data.RoleNames()
	if err != nil {
		t.Fatalf("Failed to read roles: %v", err)
	}
	if _, err := store.EnsureRoles(context.Background(), st, names); err != nil {
		t.Fatalf("Failed to seed roles: %v", err)
	}
}
