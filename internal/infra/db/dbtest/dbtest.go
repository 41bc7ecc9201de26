// Package dbtest opens isolated in-memory databases for tests.
package dbtest

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/finance-tracker/moneyflow/config"
	"github.com/finance-tracker/moneyflow/internal/infra/db"
	"github.com/finance-tracker/moneyflow/internal/integration/persistence/model"
)

// New returns a migrated in-memory SQLite database private to the test.
func New(t *testing.T) *gorm.DB {
	t.Helper()

	database, err := db.NewSQLiteConnection(&config.DatabaseConfig{
		Driver: db.DriverSQLite,
		URL:    fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })

	if err := database.AutoMigrate(model.All()...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return database.DB()
}
