package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/ledgerengine/internal/domain"
	"github.com/iho/ledgerengine/internal/infrastructure/postgres/generated"
	"github.com/iho/ledgerengine/internal/usecase"
)

// AccountRepository implements usecase.AccountRepository.
type AccountRepository struct {
	queries *generated.Queries
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return newAccountRepository(pool)
}

func newAccountRepository(db generated.DBTX) *AccountRepository {
	return &AccountRepository{queries: generated.New(db)}
}

// Create inserts the account. A replay with the same tenant and idempotence
// key returns the row stored by the first request.
func (r *AccountRepository) Create(ctx context.Context, tx usecase.Transaction, account *domain.Account) (*domain.Account, error) {
	queries := txQueries(tx)

	row, err := queries.CreateAccount(ctx, generated.CreateAccountParams{
		ID:             account.ID,
		TenantID:       account.TenantID,
		LedgerMasterID: account.LedgerID,
		DisplayCode:    account.DisplayCode,
		AccountTypeID:  account.AccountTypeID,
		UserID:         account.UserID,
		IdempotenceKey: account.IdempotenceKey,
		CreatedBy:      account.Audit.CreatedBy,
		UpdatedBy:      account.Audit.UpdatedBy,
		CreatedAt:      microsToTimestamptz(account.Audit.CreatedAt),
		UpdatedAt:      microsToTimestamptz(account.Audit.UpdatedAt),
	})
	if errors.Is(err, pgx.ErrNoRows) {
		row, err = queries.GetAccountByIdempotenceKey(ctx, generated.GetAccountByIdempotenceKeyParams{
			TenantID:       account.TenantID,
			IdempotenceKey: account.IdempotenceKey,
		})
	}
	if err != nil {
		return nil, err
	}

	return rowToAccount(row), nil
}

// GetByID retrieves an account by ID.
func (r *AccountRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	row, err := r.queries.GetAccountByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}

		return nil, err
	}

	return rowToAccount(row), nil
}

// GetByIDsForUpdate locks the given accounts in id order. Unknown ids are
// skipped.
func (r *AccountRepository) GetByIDsForUpdate(ctx context.Context, tx usecase.Transaction, ids []uuid.UUID) ([]*domain.Account, error) {
	if len(ids) == 0 {
		return []*domain.Account{}, nil
	}

	rows, err := txQueries(tx).GetAccountsByIDsForUpdate(ctx, ids)
	if err != nil {
		return nil, err
	}

	accounts := make([]*domain.Account, 0, len(rows))
	for _, row := range rows {
		accounts = append(accounts, rowToAccount(row))
	}

	return accounts, nil
}

// ApplyDelta adds delta to the stored counters.
func (r *AccountRepository) ApplyDelta(ctx context.Context, tx usecase.Transaction, id uuid.UUID, delta domain.BalanceDelta, updatedAt int64) error {
	n, err := txQueries(tx).ApplyAccountDelta(ctx, generated.ApplyAccountDeltaParams{
		ID:             id,
		DebitsPosted:   delta.DebitsPosted,
		DebitsPending:  delta.DebitsPending,
		CreditsPosted:  delta.CreditsPosted,
		CreditsPending: delta.CreditsPending,
		UpdatedAt:      microsToTimestamptz(updatedAt),
	})
	if err != nil {
		if isCheckViolation(err) {
			return domain.ErrNegativeCounter
		}
		return err
	}

	if n == 0 {
		return domain.ErrAccountNotFound
	}

	return nil
}

// ListByLedger lists the accounts of a ledger in id order.
func (r *AccountRepository) ListByLedger(ctx context.Context, ledgerID uuid.UUID, limit, offset int) ([]*domain.Account, error) {
	rows, err := r.queries.ListAccountsByLedger(ctx, generated.ListAccountsByLedgerParams{
		LedgerMasterID: ledgerID,
		Limit:          int32(limit),
		Offset:         int32(offset),
	})
	if err != nil {
		return nil, err
	}

	accounts := make([]*domain.Account, 0, len(rows))
	for _, row := range rows {
		accounts = append(accounts, rowToAccount(row))
	}

	return accounts, nil
}

func rowToAccount(row generated.Account) *domain.Account {
	return &domain.Account{
		ID:             row.ID,
		TenantID:       row.TenantID,
		LedgerID:       row.LedgerMasterID,
		DisplayCode:    row.DisplayCode,
		AccountTypeID:  row.AccountTypeID,
		UserID:         row.UserID,
		IdempotenceKey: row.IdempotenceKey,
		DebitsPosted:   row.DebitsPosted,
		DebitsPending:  row.DebitsPending,
		CreditsPosted:  row.CreditsPosted,
		CreditsPending: row.CreditsPending,
		Audit: domain.AuditMetadata{
			CreatedBy: row.CreatedBy,
			UpdatedBy: row.UpdatedBy,
			CreatedAt: timestamptzToMicros(row.CreatedAt),
			UpdatedAt: timestamptzToMicros(row.UpdatedAt),
		},
	}
}
