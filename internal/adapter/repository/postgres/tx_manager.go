package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/ledgerengine/internal/usecase"
)

type pgxPool interface {
	BeginTx(context.Context, pgx.TxOptions) (pgx.Tx, error)
}

// TxManager implements usecase.TransactionManager.
type TxManager struct {
	pool      pgxPool
	isolation pgx.TxIsoLevel
}

// NewTxManager creates a TxManager whose transactions run at the given
// isolation level ("read committed", "repeatable read" or "serializable").
func NewTxManager(pool *pgxpool.Pool, isolation string) (*TxManager, error) {
	level, err := ParseIsolation(isolation)
	if err != nil {
		return nil, err
	}
	return newTxManagerWithPool(pool, level), nil
}

func newTxManagerWithPool(pool pgxPool, isolation pgx.TxIsoLevel) *TxManager {
	return &TxManager{pool: pool, isolation: isolation}
}

// ParseIsolation maps a configured isolation name to its pgx level. An empty
// name means read committed.
func ParseIsolation(name string) (pgx.TxIsoLevel, error) {
	switch name {
	case "", "read committed":
		return pgx.ReadCommitted, nil
	case "repeatable read":
		return pgx.RepeatableRead, nil
	case "serializable":
		return pgx.Serializable, nil
	default:
		return "", fmt.Errorf("unknown isolation level %q", name)
	}
}

// Begin starts a new transaction.
func (m *TxManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	tx, err := m.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: m.isolation})
	if err != nil {
		return nil, err
	}

	return &Tx{tx: tx}, nil
}

// Tx wraps a pgx transaction.
type Tx struct {
	tx pgx.Tx
}

// Commit commits the transaction.
func (t *Tx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

// Rollback rolls back the transaction.
func (t *Tx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

// PgxTx returns the underlying pgx.Tx.
func (t *Tx) PgxTx() pgx.Tx {
	return t.tx
}
