package postgres

import (
	"context"
	"embed"
	"fmt"
	"io/fs"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrations embed.FS

// migrationFS scripts goose (-- +goose Up / Down) en la raíz del FS.
func migrationFS() (fs.FS, error) {
	return fs.Sub(migrations, "migrations")
}

// Migrate aplica las migraciones pendientes. goose lleva la versión aplicada en goose_db_version,
// así que un script ya aplicado no se vuelve a ejecutar.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	fsys, err := migrationFS()
	if err != nil {
		return err
	}
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, fsys)
	if err != nil {
		return fmt.Errorf("migraciones: %w", err)
	}
	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("migraciones: %w", err)
	}
	for _, r := range results {
		if r.Error != nil {
			return fmt.Errorf("migración %s: %w", r.Source.Path, r.Error)
		}
	}
	return nil
}
