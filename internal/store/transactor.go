package store

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/KellenBlackman/Data-Modeling-with-Postgres/internal/schema"
	"github.com/KellenBlackman/Data-Modeling-with-Postgres/pkg/sparkify"
)

// Beginner starts transactions. *pgxpool.Conn, *pgxpool.Pool and *pgx.Conn
// all satisfy it.
type Beginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Transactor runs each unit of work in its own transaction on one connection.
type Transactor struct {
	db      Beginner
	queries schema.Queries
}

// NewTransactor creates a Transactor that opens transactions on db.
func NewTransactor(db Beginner, queries schema.Queries) *Transactor {
	if db == nil {
		panic("db cannot be nil")
	}
	return &Transactor{db: db, queries: queries}
}

// WithinTransaction commits when fn returns nil and rolls back otherwise.
func (t *Transactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context, store sparkify.Store) error) error {
	return pgx.BeginFunc(ctx, t.db, func(tx pgx.Tx) error {
		return fn(ctx, New(tx, t.queries))
	})
}

var _ sparkify.Transactor = (*Transactor)(nil)
