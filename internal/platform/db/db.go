package db

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"hrms/internal/domain/apperror"
	"hrms/internal/platform/config"
)

// Queryer is satisfied by *pgxpool.Pool, pgx.Tx and pgxmock pools, so
// stores can run against the pool, inside a transaction, or under test.
type Queryer interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// TxBeginner is a Queryer that can open transactions. *pgxpool.Pool
// and pgxmock pools both satisfy it.
type TxBeginner interface {
	Queryer
	Begin(ctx context.Context) (pgx.Tx, error)
}

func Connect(ctx context.Context, cfg config.Config) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	poolCfg.MaxConnLifetime = time.Hour
	poolCfg.MaxConns = 10
	poolCfg.MinConns = 2
	return pgxpool.NewWithConfig(ctx, poolCfg)
}

const uniqueViolationCode = "23505"

// TranslateError maps driver-level failures onto the domain taxonomy:
// unique violations become ErrDuplicateKey, missing rows ErrNotFound,
// connection-level failures ErrStoreUnavailable.
func TranslateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return apperror.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		return apperror.ErrDuplicateKey
	}
	if pgconn.Timeout(err) {
		return apperror.ErrStoreUnavailable
	}
	return err
}
