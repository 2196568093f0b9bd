package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// TxManager runs fn inside a database transaction. Repositories called with
// the ctx passed to fn take part in that transaction.
type TxManager interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// TxBeginner is implemented by *pgxpool.Pool.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// PgTxManager is the pgx implementation of TxManager.
type PgTxManager struct {
	db TxBeginner
}

// NewPgTxManager creates a PgTxManager backed by the given pool.
func NewPgTxManager(db TxBeginner) *PgTxManager {
	return &PgTxManager{db: db}
}

var _ TxManager = (*PgTxManager)(nil)

type ctxKeyTx struct{}

// WithTx commits when fn returns nil and rolls back on error or panic.
// Panics are re-raised after rollback.
func (m *PgTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	tx, err := m.db.Begin(ctx)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback(ctx)
			return
		}
		err = tx.Commit(ctx)
	}()

	return fn(context.WithValue(ctx, ctxKeyTx{}, tx))
}

// querier returns the transaction stored in ctx, or fallback outside one.
func querier(ctx context.Context, fallback Querier) Querier {
	if tx, ok := ctx.Value(ctxKeyTx{}).(pgx.Tx); ok {
		return tx
	}
	return fallback
}
