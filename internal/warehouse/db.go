// Package warehouse connects to the Redshift-compatible warehouse over
// the Postgres wire protocol and executes DDL against it.
package warehouse

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"

	"spectrum-sync/internal/domain"
)

// Compile-time check.
var _ domain.Connection = (*DB)(nil)

// DB wraps a *sql.DB to implement domain.Connection. Statements are
// passed through verbatim; driver errors are returned unchanged so
// callers can inspect driver error codes.
type DB struct {
	db *sql.DB
}

// NewDB wraps an already-open database handle.
func NewDB(db *sql.DB) *DB {
	return &DB{db: db}
}

// Open dials the warehouse with the pgx driver and verifies the
// connection with a ping.
func Open(ctx context.Context, dsn string) (*DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open warehouse connection: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping warehouse: %w", err)
	}
	return &DB{db: db}, nil
}

// Query runs a SELECT and scans every row into strings. NULLs become
// empty strings.
func (d *DB) Query(ctx context.Context, query string) ([][]string, error) {
	rows, err := d.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var out [][]string
	for rows.Next() {
		values := make([]sql.NullString, len(cols))
		ptrs := make([]interface{}, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		row := make([]string, len(cols))
		for i, v := range values {
			row[i] = v.String
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// Exec executes a statement. Multi-statement batches are sent as a
// single round trip.
func (d *DB) Exec(ctx context.Context, stmt string) error {
	_, err := d.db.ExecContext(ctx, stmt)
	return err
}

// Close releases the underlying connection pool.
func (d *DB) Close() error {
	return d.db.Close()
}
