package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync/atomic"

	migratedb "github.com/golang-migrate/migrate/v4/database"
)

const oracleVersionTable = "schema_migrations"

// ORA-00955: name is already used by an existing object
const oraNameInUse = "ORA-00955"

// OracleMigrationDriver is a golang-migrate database driver for go-ora connections.
// Migration files are split on ';' and executed one statement at a time.
type OracleMigrationDriver struct {
	db     *sql.DB
	locked atomic.Bool
}

var _ migratedb.Driver = (*OracleMigrationDriver)(nil)

// NewOracleMigrationDriver wraps db and makes sure the version table exists.
func NewOracleMigrationDriver(db *sql.DB) (*OracleMigrationDriver, error) {
	d := &OracleMigrationDriver{db: db}
	if err := d.ensureVersionTable(); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *OracleMigrationDriver) ensureVersionTable() error {
	query := `CREATE TABLE ` + oracleVersionTable + ` (version NUMBER(19) NOT NULL, dirty NUMBER(1) NOT NULL)`
	if _, err := d.db.Exec(query); err != nil && !strings.Contains(err.Error(), oraNameInUse) {
		return fmt.Errorf("could not create %s: %w", oracleVersionTable, err)
	}
	return nil
}

func (d *OracleMigrationDriver) Open(string) (migratedb.Driver, error) {
	return nil, errors.New("oracle migration driver must be built with NewOracleMigrationDriver")
}

func (d *OracleMigrationDriver) Close() error {
	return d.db.Close()
}

func (d *OracleMigrationDriver) Lock() error {
	if !d.locked.CompareAndSwap(false, true) {
		return migratedb.ErrLocked
	}
	return nil
}

func (d *OracleMigrationDriver) Unlock() error {
	if !d.locked.CompareAndSwap(true, false) {
		return migratedb.ErrNotLocked
	}
	return nil
}

func (d *OracleMigrationDriver) Run(migration io.Reader) error {
	content, err := io.ReadAll(migration)
	if err != nil {
		return err
	}
	for _, stmt := range splitStatements(string(content)) {
		if _, err := d.db.Exec(stmt); err != nil {
			return migratedb.Error{OrigErr: err, Err: "migration failed", Query: []byte(stmt)}
		}
	}
	return nil
}

func (d *OracleMigrationDriver) SetVersion(version int, dirty bool) error {
	tx, err := d.db.BeginTx(context.Background(), nil)
	if err != nil {
		return fmt.Errorf("could not begin version transaction: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM ` + oracleVersionTable); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("could not clear %s: %w", oracleVersionTable, err)
	}

	if version >= 0 || (version == migratedb.NilVersion && dirty) {
		dirtyFlag := 0
		if dirty {
			dirtyFlag = 1
		}
		if _, err := tx.Exec(`INSERT INTO `+oracleVersionTable+` (version, dirty) VALUES (:1, :2)`, version, dirtyFlag); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("could not record version %d: %w", version, err)
		}
	}

	return tx.Commit()
}

func (d *OracleMigrationDriver) Version() (int, bool, error) {
	var version int
	var dirty int
	err := d.db.QueryRow(`SELECT version, dirty FROM ` + oracleVersionTable + ` FETCH FIRST 1 ROWS ONLY`).Scan(&version, &dirty)
	if errors.Is(err, sql.ErrNoRows) {
		return migratedb.NilVersion, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("could not read %s: %w", oracleVersionTable, err)
	}
	return version, dirty == 1, nil
}

// Drop removes every table owned by the connected user.
func (d *OracleMigrationDriver) Drop() error {
	rows, err := d.db.Query(`SELECT table_name FROM user_tables`)
	if err != nil {
		return err
	}
	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			rows.Close()
			return err
		}
		tables = append(tables, name)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	for _, name := range tables {
		if _, err := d.db.Exec(`DROP TABLE ` + name + ` CASCADE CONSTRAINTS`); err != nil {
			return fmt.Errorf("could not drop %s: %w", name, err)
		}
	}
	return nil
}

// splitStatements breaks a migration file into single statements; go-ora rejects batches.
func splitStatements(content string) []string {
	var stmts []string
	for _, part := range strings.Split(content, ";") {
		if stmt := strings.TrimSpace(part); stmt != "" {
			stmts = append(stmts, stmt)
		}
	}
	return stmts
}
