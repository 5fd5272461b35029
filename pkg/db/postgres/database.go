package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v4/pgxpool"

	kdb "github.com/mrsteppenwolf627/sentiment-api-mlops/pkg/db"
	kpghist "github.com/mrsteppenwolf627/sentiment-api-mlops/pkg/db/postgres/history"
	kpool "github.com/mrsteppenwolf627/sentiment-api-mlops/pkg/db/postgres/pool"
	xe "github.com/mrsteppenwolf627/sentiment-api-mlops/pkg/errors"
)

type historyDBPostgres struct {
	pool    *pgxpool.Pool
	history kdb.HistoryInterface
}

// New connects to postgres at url and prepares the prediction table.
func New(ctx context.Context, url string) (kdb.HistoryDatabase, error) {
	pool, err := pgxpool.Connect(ctx, url)
	if err != nil {
		return nil, describe(err)
	}

	if err := bootstrap(ctx, pool); err != nil {
		pool.Close()
		return nil, describe(err)
	}

	return &historyDBPostgres{
		pool:    pool,
		history: kpghist.New(kpool.Wrap(pool)),
	}, nil
}

// describe attaches advice to well-known postgres error codes.
func describe(err error) error {
	pgErr := new(pgconn.PgError)
	if !errors.As(err, &pgErr) {
		return xe.Wrap(err)
	}
	switch pgErr.Code {
	case pgerrcode.InvalidCatalogName:
		return xe.WrapWithNote("database does not exist; create it first", err)
	case pgerrcode.InvalidPassword, pgerrcode.InvalidAuthorizationSpecification:
		return xe.WrapWithNote("authentication with postgres failed", err)
	default:
		return xe.Wrap(err)
	}
}

func bootstrap(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(
		ctx,
		`
		create table if not exists "prediction" (
			"id" bigserial primary key,
			"text_length" integer not null,
			"sentiment" varchar(16) not null,
			"confidence" double precision not null,
			"processing_time_ms" double precision not null,
			"model_version" varchar(128) not null,
			"created_at" timestamp with time zone not null default now()
		);
		create index if not exists "idx_prediction_created_at"
			on "prediction" ("created_at" desc);
		`,
	)
	return err
}

func (h *historyDBPostgres) History() kdb.HistoryInterface {
	return h.history
}

func (h *historyDBPostgres) Close() error {
	h.pool.Close()
	return nil
}
