package testutils

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/adu-coder/nineteen/infra"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DriverEnv selects the database used by NewTestDB: "sqlite" (default) or
// "postgres", which starts a Testcontainers postgres and runs the SQL migrations.
const DriverEnv = "TEST_DB_DRIVER"

var gormConfig = &gorm.Config{
	Logger:                 logger.Default.LogMode(logger.Silent),
	SkipDefaultTransaction: true,
	TranslateError:         true,
}

// NewTestDB returns an empty, migrated database private to t.
func NewTestDB(t testing.TB) *gorm.DB {
	t.Helper()
	if os.Getenv(DriverEnv) == "postgres" {
		return NewPostgresDB(t)
	}
	return NewSQLiteDB(t)
}

// NewSQLiteDB returns an in-memory sqlite database migrated with AutoMigrate.
func NewSQLiteDB(t testing.TB) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), gormConfig)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, infra.AutoMigrate(db))
	return db
}

var (
	pgOnce      sync.Once
	pgDSN       string
	pgErr       error
	pgContainer *tcpostgres.PostgresContainer
)

// NewPostgresDB returns a fresh schema in a shared postgres container. The test is
// skipped when no container runtime is available.
func NewPostgresDB(t testing.TB) *gorm.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("postgres container tests are disabled in -short mode")
	}

	pgOnce.Do(func() {
		ctx := context.Background()
		pgContainer, pgErr = tcpostgres.Run(
			ctx,
			"postgres:16-alpine",
			tcpostgres.WithDatabase("nineteen"),
			tcpostgres.WithUsername("test"),
			tcpostgres.WithPassword("test"),
			testcontainers.WithWaitStrategy(
				wait.ForLog("database system is ready to accept connections").
					WithOccurrence(2).WithStartupTimeout(60*time.Second),
			),
		)
		if pgErr != nil {
			return
		}
		pgDSN, pgErr = pgContainer.ConnectionString(ctx, "sslmode=disable")
	})
	if pgErr != nil {
		t.Skipf("postgres container unavailable: %v", pgErr)
	}

	admin, err := gorm.Open(postgres.Open(pgDSN), gormConfig)
	require.NoError(t, err)
	schema := "t_" + uuid.NewString()[:8]
	require.NoError(t, admin.Exec("CREATE SCHEMA "+schema).Error)
	t.Cleanup(func() {
		_ = admin.Exec("DROP SCHEMA " + schema + " CASCADE").Error
		if sqlDB, err := admin.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	db, err := gorm.Open(postgres.Open(pgDSN+"&search_path="+schema), gormConfig)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	require.NoError(t, infra.RunMigrations(db))
	return db
}

// NewUoW returns a unit of work over a fresh test database.
func NewUoW(t testing.TB) *infra.UoW {
	t.Helper()
	return infra.NewUoW(NewTestDB(t))
}

// Logger discards everything.
func Logger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// Clock is a settable time source for services.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

// NewClock starts a clock at now.
func NewClock(now time.Time) *Clock {
	return &Clock{now: now}
}

// Now returns the current fake time.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Set moves the clock to now.
func (c *Clock) Set(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}
