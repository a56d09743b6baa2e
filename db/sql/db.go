// Package sql implements a SQL database.
package sql

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/minseo-kang/wordgrid/db"
)

type (
	// Database is a SQL database with query timeouts.
	Database struct {
		DB *sql.DB
		db.Config
	}

	// RowFunc receives one row of a multi-row query and scans it.
	RowFunc func(scan func(dest ...interface{}) error) error
)

// ErrNoRows is returned when a single-row query matches nothing.
var ErrNoRows = sql.ErrNoRows

// NewDatabase opens a database handle for the driver and url.
func NewDatabase(driverName, databaseURL string, cfg db.Config) (*Database, error) {
	sqlDB, err := sql.Open(driverName, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	d := Database{
		DB:     sqlDB,
		Config: cfg,
	}
	return &d, nil
}

// Query queries a single row, scanning into the destination array.
func (d Database) Query(ctx context.Context, cmd string, args []interface{}, dest ...interface{}) error {
	ctx, cancelFunc := context.WithTimeout(ctx, d.QueryPeriod)
	defer cancelFunc()
	row := d.DB.QueryRowContext(ctx, cmd, args...)
	if err := row.Scan(dest...); err != nil {
		if err == sql.ErrNoRows {
			return err
		}
		return fmt.Errorf("querying into destination arguments: %w", err)
	}
	return nil
}

// QueryRows runs a multi-row query, calling f once per row.
func (d Database) QueryRows(ctx context.Context, cmd string, args []interface{}, f RowFunc) error {
	ctx, cancelFunc := context.WithTimeout(ctx, d.QueryPeriod)
	defer cancelFunc()
	rows, err := d.DB.QueryContext(ctx, cmd, args...)
	if err != nil {
		return fmt.Errorf("querying rows: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		if err := f(rows.Scan); err != nil {
			return fmt.Errorf("scanning row: %w", err)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating rows: %w", err)
	}
	return nil
}

// Exec evaluates the statements in one transaction, rolling back on the
// first failure.
func (d Database) Exec(ctx context.Context, stmts ...Stmt) error {
	ctx, cancelFunc := context.WithTimeout(ctx, d.QueryPeriod)
	defer cancelFunc()
	tx, err := d.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	for i, s := range stmts {
		if _, err := tx.ExecContext(ctx, s.Cmd, s.Args...); err != nil {
			err = fmt.Errorf("executing statement %v: %w", i, err)
			if err2 := tx.Rollback(); err2 != nil {
				return fmt.Errorf("rolling back transaction due to %v: %w", err, err2)
			}
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// Stmt is one parameterized statement of a transaction.
type Stmt struct {
	Cmd  string
	Args []interface{}
}
