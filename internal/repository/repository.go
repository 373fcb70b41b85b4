package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/crewdesk/staffing/backend/internal/config"
	"github.com/jackc/pgx/v5/pgconn"
)

type Repository struct {
	cfg    *config.Config
	dbpool *sql.DB
}

func NewRepository(cfg *config.Config, dbpool *sql.DB) *Repository {
	return &Repository{
		cfg:    cfg,
		dbpool: dbpool,
	}
}

func (r *Repository) queryContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
}

func (r *Repository) txContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
}

// transientError reports whether a failure came from a serialization conflict
// or deadlock, which a single retry can usually clear.
func transientError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "40001" || pgErr.Code == "40P01"
	}
	return false
}

// withRetry runs fn and retries it exactly once on a transient failure.
// Anything else is surfaced immediately.
func withRetry(fn func() error) error {
	err := fn()
	if err != nil && transientError(err) {
		err = fn()
	}
	return err
}
