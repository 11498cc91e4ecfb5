package infra

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// RunMigrations brings the schema up to date on startup, so a fresh
// database needs no manual step before the server takes traffic.
func RunMigrations(dsn string, logger *slog.Logger) error {
	m, err := migrate.New("file://"+migrationDir(), dsn)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("migrate up: %w", err)
	}

	version, dirty, _ := m.Version()
	logger.Info("migrations applied", "version", version, "dirty", dirty)

	return nil
}

// migrationDir walks up from the working directory until it finds
// db/migrations, so the binaries can start from any subdirectory of a
// checkout.
func migrationDir() string {
	dir, _ := os.Getwd()
	for dir != "" && dir != string(filepath.Separator) {
		candidate := filepath.Join(dir, "db", "migrations")
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return candidate
		}
		dir = filepath.Dir(dir)
	}
	return "db/migrations"
}
