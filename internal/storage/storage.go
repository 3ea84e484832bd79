// Package storage selects and prepares the repository backend named by the configuration.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"jobboard/internal/app"
	"jobboard/internal/config"
	"jobboard/internal/database"
	"jobboard/internal/repository/memory"
	"jobboard/internal/repository/postgres"
	"jobboard/internal/repository/sqlite"
)

// Open returns repositories for cfg.DBDriver with their schema applied, and a func that
// releases the underlying connection.
func Open(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*app.Repositories, func(), error) {
	switch cfg.DBDriver {
	case config.DriverMemory:
		logger.Warn("using in-memory storage, data is lost on restart")
		return app.NewRepositories(memory.NewJobRepository(), memory.NewApplicationRepository()), func() {}, nil
	case config.DriverSQLite:
		db, err := database.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite: %w", err)
		}
		if err := sqlite.Migrate(ctx, db); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("migrate sqlite: %w", err)
		}
		logger.Info("sqlite ready", zap.String("path", cfg.SQLitePath))
		return app.NewRepositories(sqlite.NewJobRepository(db), sqlite.NewApplicationRepository(db)), closer(db, logger), nil
	case config.DriverPostgres:
		db, err := database.NewPostgres(ctx, database.PostgresConfig{
			Driver:          cfg.PostgresDriver,
			DSN:             cfg.DatabaseURL,
			MaxOpenConns:    cfg.DBMaxOpenConns,
			MaxIdleConns:    cfg.DBMaxIdleConns,
			ConnMaxIdle:     cfg.DBConnMaxIdle,
			ConnMaxLifetime: cfg.DBConnMaxLife,
		}, logger)
		if err != nil {
			return nil, nil, err
		}
		if err := postgres.Migrate(ctx, db); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("migrate postgres: %w", err)
		}
		logger.Info("postgres ready", zap.String("driver", cfg.PostgresDriver))
		return app.NewRepositories(postgres.NewJobRepository(db), postgres.NewApplicationRepository(db)), closer(db, logger), nil
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.DBDriver)
	}
}

func closer(db *sql.DB, logger *zap.Logger) func() {
	return func() {
		if err := db.Close(); err != nil {
			logger.Error("database close failed", zap.Error(err))
		}
	}
}
