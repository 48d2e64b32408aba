// Package schema owns the sparkify star schema: the DDL that creates and
// drops it and the named queries the loader issues against it.
package schema

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

//go:embed create_tables.sql
var createTablesSQL string

//go:embed drop_tables.sql
var dropTablesSQL string

// Execer is satisfied by *pgx.Conn, *pgxpool.Conn, *pgxpool.Pool and pgx.Tx.
type Execer interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

// CreateTables creates the fact and dimension tables if they do not exist.
func CreateTables(ctx context.Context, db Execer) error {
	if _, err := db.Exec(ctx, createTablesSQL); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}
	return nil
}

// DropTables drops the fact and dimension tables if they exist.
func DropTables(ctx context.Context, db Execer) error {
	if _, err := db.Exec(ctx, dropTablesSQL); err != nil {
		return fmt.Errorf("failed to drop tables: %w", err)
	}
	return nil
}
