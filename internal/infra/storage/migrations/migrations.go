package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed sql/*.sql
var embedMigrations embed.FS

// ErrMigrate возвращается при ошибке применения миграций
var ErrMigrate = errors.New("migrations: failed to apply")

// Up применяет все встроенные миграции схемы
func Up(db *sql.DB) error {
	goose.SetBaseFS(embedMigrations)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("%w: set dialect: %w", ErrMigrate, err)
	}

	if err := goose.Up(db, "sql"); err != nil {
		return fmt.Errorf("%w: up: %w", ErrMigrate, err)
	}

	return nil
}
