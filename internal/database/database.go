package database

import (
	"fmt"

	"quiz-builder/internal/config"
	"quiz-builder/internal/logger"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"           // Postgres driver, registered as "postgres"
	_ "github.com/sijms/go-ora/v2" // Oracle driver, registered as "oracle"
	"go.uber.org/zap"
)

func init() {
	// sqlx has no bindvar entry for go-ora's driver name
	sqlx.BindDriver(config.DriverOracle, sqlx.NAMED)
}

// NewSQLXDB opens and pings the configured database.
func NewSQLXDB(cfg config.DBConfig) (*sqlx.DB, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("database dsn is empty")
	}

	db, err := sqlx.Connect(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s database: %w", cfg.Driver, err)
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}

	logger.Get().Info("Successfully connected to database", zap.String("driver", cfg.Driver))
	return db, nil
}
