// Package migrations embeds the goose SQL migrations so that cmd/migrate,
// the API's optional auto-migrate step and integration tests share one source.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
)

//go:embed *.sql
var files embed.FS

// FS returns the embedded migration files.
func FS() fs.FS {
	return files
}

// NewProvider builds a goose provider over db using the embedded files.
func NewProvider(db *sql.DB) (*goose.Provider, error) {
	provider, err := goose.NewProvider(goose.DialectPostgres, db, files)
	if err != nil {
		return nil, fmt.Errorf("goose new provider: %w", err)
	}
	return provider, nil
}

// Up applies every pending migration.
func Up(ctx context.Context, db *sql.DB) ([]*goose.MigrationResult, error) {
	provider, err := NewProvider(db)
	if err != nil {
		return nil, err
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return results, fmt.Errorf("goose up: %w", err)
	}
	return results, nil
}
