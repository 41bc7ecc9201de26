package mock

import (
	"database/sql"
	"fmt"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Db is a shared in-memory SQLite database with the application schema.
type Db struct {
	DbConn *gorm.DB
	models map[string]any
	tables []string
}

// NewDb opens the database and migrates the given models, keyed by table name.
func NewDb(models ...any) (*Db, error) {
	sqlDB, err := sql.Open("sqlite", "file:moneyflow_features?mode=memory&cache=shared")
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	conn, err := gorm.Open(sqlite.Dialector{Conn: sqlDB}, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := conn.AutoMigrate(models...); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	d := &Db{DbConn: conn, models: make(map[string]any, len(models))}
	for _, model := range models {
		stmt := &gorm.Statement{DB: conn}
		if err := stmt.Parse(model); err != nil {
			return nil, err
		}
		d.models[stmt.Schema.Table] = model
		d.tables = append(d.tables, stmt.Schema.Table)
	}
	return d, nil
}

// Reset deletes every row, keeping the schema. Tables are cleared in
// reverse migration order so dependents go first.
func (d *Db) Reset() error {
	for i := len(d.tables) - 1; i >= 0; i-- {
		table := d.tables[i]
		if err := d.DbConn.Exec(fmt.Sprintf("DELETE FROM %s", table)).Error; err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	return nil
}

// GetModel returns the model migrated into table.
func (d *Db) GetModel(table string) (any, bool) {
	model, ok := d.models[table]
	return model, ok
}
