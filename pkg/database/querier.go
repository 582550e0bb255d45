package database

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier is the subset of pgx shared by *pgxpool.Pool, pgx.Tx and pgxmock.
// Repositories depend on it instead of a concrete pool.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// TxStarter begins a transaction.
type TxStarter interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Pool is a Querier that can also open transactions.
type Pool interface {
	Querier
	TxStarter
}
