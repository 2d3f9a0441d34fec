package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/iho/ledgerengine/internal/domain"
)

// AccountRepository defines data access for accounts.
type AccountRepository interface {
	// Create inserts the account unless one with the same tenant and
	// idempotence key exists, and returns the stored row either way.
	Create(ctx context.Context, tx Transaction, account *domain.Account) (*domain.Account, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error)
	GetByIDsForUpdate(ctx context.Context, tx Transaction, ids []uuid.UUID) ([]*domain.Account, error)
	ApplyDelta(ctx context.Context, tx Transaction, id uuid.UUID, delta domain.BalanceDelta, updatedAt int64) error
	ListByLedger(ctx context.Context, ledgerID uuid.UUID, limit, offset int) ([]*domain.Account, error)
}

// TransferRepository defines data access for transfers.
type TransferRepository interface {
	// Create returns domain.ErrTransferExists when the id is already taken.
	Create(ctx context.Context, tx Transaction, transfer *domain.Transfer) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Transfer, error)
	GetByIDs(ctx context.Context, tx Transaction, ids []uuid.UUID) ([]*domain.Transfer, error)
	ListByAccount(ctx context.Context, accountID uuid.UUID, from, to int64, limit, offset int) ([]*domain.Transfer, error)
}

// PendingRepository defines data access for pending reservations.
type PendingRepository interface {
	Create(ctx context.Context, tx Transaction, pending *domain.PendingTransfer) error
	GetByIDsForUpdate(ctx context.Context, tx Transaction, ids []uuid.UUID) ([]*domain.PendingTransfer, error)
	Resolve(ctx context.Context, tx Transaction, pending *domain.PendingTransfer) error
}

// LedgerMasterRepository defines data access for ledger masters.
type LedgerMasterRepository interface {
	// Create is idempotent on (tenant_id, idempotence_key) like AccountRepository.Create.
	Create(ctx context.Context, tx Transaction, ledger *domain.LedgerMaster) (*domain.LedgerMaster, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.LedgerMaster, error)
}

// LedgerTotals are the counter sums of every account of one ledger.
type LedgerTotals struct {
	DebitsPosted   decimal.Decimal
	CreditsPosted  decimal.Decimal
	DebitsPending  decimal.Decimal
	CreditsPending decimal.Decimal
}

// Equal reports whether all four sums match.
func (t LedgerTotals) Equal(o LedgerTotals) bool {
	return t.DebitsPosted.Equal(o.DebitsPosted) &&
		t.CreditsPosted.Equal(o.CreditsPosted) &&
		t.DebitsPending.Equal(o.DebitsPending) &&
		t.CreditsPending.Equal(o.CreditsPending)
}

// LedgerRepository defines data access for ledger-wide checks.
type LedgerRepository interface {
	Totals(ctx context.Context, ledgerID uuid.UUID) (LedgerTotals, error)
	// DerivedTotals recomputes an account's counters from transfer history.
	DerivedTotals(ctx context.Context, accountID uuid.UUID) (LedgerTotals, error)
}

// OutboxRepository defines data access for outbox events.
type OutboxRepository interface {
	Create(ctx context.Context, tx Transaction, event *domain.OutboxEvent) error
	GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error)
	MarkPublished(ctx context.Context, id string, publishedAt time.Time) error
	DeletePublished(ctx context.Context, before time.Time) error
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Retrier re-runs an operation on transient transaction conflicts.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
	// Release drops the key so the request can be retried.
	Release(ctx context.Context, key string) error
}
