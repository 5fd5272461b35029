package pool

import (
	"context"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// Pool is the subset of pgxpool.Pool the repositories need.
//
// Keeping it as an interface lets tests pass fakes.
type Pool interface {
	Begin(ctx context.Context) (Tx, error)
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
}

type Tx interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

// Wrap adapts a *pgxpool.Pool to Pool.
func Wrap(p *pgxpool.Pool) Pool {
	return &wrappedPool{pool: p}
}

type wrappedPool struct {
	pool *pgxpool.Pool
}

func (w *wrappedPool) Begin(ctx context.Context) (Tx, error) {
	return w.pool.Begin(ctx)
}

func (w *wrappedPool) Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error) {
	return w.pool.Exec(ctx, sql, arguments...)
}

func (w *wrappedPool) Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error) {
	return w.pool.Query(ctx, sql, args...)
}
