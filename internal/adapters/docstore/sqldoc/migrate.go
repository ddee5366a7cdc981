package sqldoc

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var migrationsFS embed.FS

// Migrate aplica las migraciones embebidas del dialecto.
func Migrate(ctx context.Context, db *sql.DB, d Dialect) error {
	goose.SetBaseFS(migrationsFS)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect(d.goose); err != nil {
		return fmt.Errorf("sqldoc: goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, d.migrationsDir); err != nil {
		return fmt.Errorf("sqldoc: migrate: %w", err)
	}
	return nil
}

// MigrationVersion devuelve la versión aplicada actualmente.
func MigrationVersion(ctx context.Context, db *sql.DB, d Dialect) (int64, error) {
	if err := goose.SetDialect(d.goose); err != nil {
		return 0, fmt.Errorf("sqldoc: goose dialect: %w", err)
	}
	return goose.GetDBVersionContext(ctx, db)
}
