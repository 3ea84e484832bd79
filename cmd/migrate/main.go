package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alecthomas/kong"
	"go.uber.org/zap"

	"jobboard/internal/config"
	"jobboard/internal/database"
	"jobboard/internal/observability"
	"jobboard/internal/repository/postgres"
	"jobboard/internal/repository/sqlite"
)

type cli struct {
	Driver         string        `help:"Storage backend to migrate (postgres, sqlite or memory, aliases as for the API)." default:"sqlite" env:"DB_DRIVER"`
	DatabaseURL    string        `help:"Postgres connection string." env:"DATABASE_URL"`
	PostgresDriver string        `help:"database/sql driver used for postgres." enum:"pgx,postgres" default:"pgx" env:"POSTGRES_DRIVER"`
	SQLitePath     string        `help:"SQLite database file." default:"jobboard.db" env:"SQLITE_PATH"`
	Timeout        time.Duration `help:"Overall migration timeout." default:"1m"`
	LogLevel       string        `help:"Log level." default:"info" env:"LOG_LEVEL"`
}

func (c *cli) Run() error {
	logger, err := observability.NewLogger(c.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), c.Timeout)
	defer cancel()

	driver := config.NormalizeDriver(c.Driver)
	var db *sql.DB
	var migrate func(context.Context, *sql.DB) error
	switch driver {
	case config.DriverMemory:
		logger.Info("memory storage has no schema, nothing to do")
		return nil
	case config.DriverPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("--database-url is required for postgres")
		}
		db, err = database.NewPostgres(ctx, database.PostgresConfig{Driver: c.PostgresDriver, DSN: c.DatabaseURL, MaxOpenConns: 1, MaxIdleConns: 1}, logger)
		migrate = postgres.Migrate
	case config.DriverSQLite:
		db, err = database.OpenSQLite(c.SQLitePath)
		migrate = sqlite.Migrate
	default:
		return fmt.Errorf("unknown driver %q, want postgres, sqlite or memory", c.Driver)
	}
	if err != nil {
		return err
	}
	defer db.Close()

	if err := migrate(ctx, db); err != nil {
		return fmt.Errorf("migrate %s: %w", driver, err)
	}
	logger.Info("schema applied", zap.String("driver", driver))
	return nil
}

func main() {
	var c cli
	kctx := kong.Parse(&c,
		kong.Name("migrate"),
		kong.Description("Create the job board tables."),
		kong.UsageOnError(),
	)
	kctx.FatalIfErrorf(kctx.Run())
}
