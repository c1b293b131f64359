package infra

import (
	"embed"
	"errors"
	"fmt"

	"github.com/adu-coder/nineteen/infra/repository/account"
	"github.com/adu-coder/nineteen/infra/repository/budget"
	"github.com/adu-coder/nineteen/infra/repository/transaction"
	"github.com/golang-migrate/migrate/v4"
	migratepostgres "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"gorm.io/gorm"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrate brings the schema up to date: versioned SQL migrations on postgres,
// GORM AutoMigrate on sqlite.
func Migrate(db *gorm.DB) error {
	if db.Dialector.Name() == "sqlite" {
		return AutoMigrate(db)
	}
	return RunMigrations(db)
}

// RunMigrations applies the embedded postgres migrations.
func RunMigrations(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	driver, err := migratepostgres.WithInstance(sqlDB, &migratepostgres.Config{})
	if err != nil {
		return fmt.Errorf("create postgres driver: %w", err)
	}

	d, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("create iofs source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", d, "postgres", driver)
	if err != nil {
		return fmt.Errorf("create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}

// AutoMigrate creates the schema from the GORM models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&account.User{},
		&transaction.Transaction{},
		&budget.Budget{},
	)
}
