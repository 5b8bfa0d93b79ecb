package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier is the subset of pgx operations repositories need to run a query.
// It is satisfied by *pgxpool.Pool, pgx.Tx and pgxmock pools, so a method
// that takes a Querier can run either against the pool or inside an
// explicit transaction passed by the caller.
type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Database is a Querier that can also open transactions
type Database interface {
	Querier
	Begin(ctx context.Context) (pgx.Tx, error)
}
