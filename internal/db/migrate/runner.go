// Package migrate ejecuta las migraciones embebidas con golang-migrate.
package migrate

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/auditoriapp/auditoria-api/internal/db"
)

// ErrNoChange se devuelve cuando no hay nada que aplicar (ya en la última versión).
var ErrNoChange = migrate.ErrNoChange

// Run aplica las migraciones en la dirección indicada ("up" o "down")
// contra el DSN dado. ErrNoChange no es un fallo.
func Run(dsn string, direction string) error {
	if dsn == "" {
		return errors.New("DSN de base de datos vacío; definir DATABASE_URL o DB_HOST y compañía")
	}
	if direction != "up" && direction != "down" {
		return fmt.Errorf("dirección debe ser up o down, llegó %q", direction)
	}

	sourceDriver, err := iofs.New(db.MigrationFS, "migrations")
	if err != nil {
		return fmt.Errorf("migrate source: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", sourceDriver, dsn)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	defer func() { _, _ = m.Close() }()

	switch direction {
	case "up":
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return err
		}
	case "down":
		if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return err
		}
	}
	return nil
}
