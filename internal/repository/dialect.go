package repository

import (
	"context"
	"database/sql"
	"fmt"
)

// Dialect covers the SQL differences between the supported drivers.
// Queries are written with ? placeholders and rebound by the executor.
type Dialect interface {
	Name() string
	// InsertReturningID runs an INSERT and returns the generated id column.
	InsertReturningID(ctx context.Context, exec DBTX, query string, args ...interface{}) (int64, error)
}

// DialectFor returns the dialect matching a registered driver name.
func DialectFor(driver string) (Dialect, error) {
	switch driver {
	case "postgres":
		return PostgresDialect{}, nil
	case "oracle":
		return OracleDialect{}, nil
	}
	return nil, fmt.Errorf("no sql dialect for driver %q", driver)
}

type PostgresDialect struct{}

func (PostgresDialect) Name() string { return "postgres" }

func (PostgresDialect) InsertReturningID(ctx context.Context, exec DBTX, query string, args ...interface{}) (int64, error) {
	var id int64
	if err := exec.QueryRowxContext(ctx, exec.Rebind(query+" RETURNING id"), args...).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

// OracleDialect relies on go-ora binding sql.Out for RETURNING ... INTO.
type OracleDialect struct{}

func (OracleDialect) Name() string { return "oracle" }

func (OracleDialect) InsertReturningID(ctx context.Context, exec DBTX, query string, args ...interface{}) (int64, error) {
	var id int64
	args = append(args, sql.Out{Dest: &id})
	if _, err := exec.ExecContext(ctx, exec.Rebind(query+" RETURNING id INTO ?"), args...); err != nil {
		return 0, err
	}
	return id, nil
}
