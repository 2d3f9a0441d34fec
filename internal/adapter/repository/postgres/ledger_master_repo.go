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

// LedgerMasterRepository implements usecase.LedgerMasterRepository.
type LedgerMasterRepository struct {
	queries *generated.Queries
}

// NewLedgerMasterRepository creates a new LedgerMasterRepository.
func NewLedgerMasterRepository(pool *pgxpool.Pool) *LedgerMasterRepository {
	return newLedgerMasterRepository(pool)
}

func newLedgerMasterRepository(db generated.DBTX) *LedgerMasterRepository {
	return &LedgerMasterRepository{queries: generated.New(db)}
}

// Create inserts the ledger master, returning the existing row on replay.
func (r *LedgerMasterRepository) Create(ctx context.Context, tx usecase.Transaction, ledger *domain.LedgerMaster) (*domain.LedgerMaster, error) {
	queries := txQueries(tx)

	row, err := queries.CreateLedgerMaster(ctx, generated.CreateLedgerMasterParams{
		ID:               ledger.ID,
		TenantID:         ledger.TenantID,
		DisplayName:      ledger.DisplayName,
		CurrencyMasterID: ledger.CurrencyMasterID,
		IdempotenceKey:   ledger.IdempotenceKey,
		CreatedBy:        ledger.Audit.CreatedBy,
		UpdatedBy:        ledger.Audit.UpdatedBy,
		CreatedAt:        microsToTimestamptz(ledger.Audit.CreatedAt),
		UpdatedAt:        microsToTimestamptz(ledger.Audit.UpdatedAt),
	})
	if errors.Is(err, pgx.ErrNoRows) {
		row, err = queries.GetLedgerMasterByIdempotenceKey(ctx, generated.GetLedgerMasterByIdempotenceKeyParams{
			TenantID:       ledger.TenantID,
			IdempotenceKey: ledger.IdempotenceKey,
		})
	}
	if err != nil {
		return nil, err
	}

	return rowToLedgerMaster(row), nil
}

// GetByID retrieves a ledger master by ID.
func (r *LedgerMasterRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.LedgerMaster, error) {
	row, err := r.queries.GetLedgerMasterByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrLedgerNotFound
		}
		return nil, err
	}

	return rowToLedgerMaster(row), nil
}

func rowToLedgerMaster(row generated.LedgerMaster) *domain.LedgerMaster {
	return &domain.LedgerMaster{
		ID:               row.ID,
		TenantID:         row.TenantID,
		DisplayName:      row.DisplayName,
		CurrencyMasterID: row.CurrencyMasterID,
		IdempotenceKey:   row.IdempotenceKey,
		Audit: domain.AuditMetadata{
			CreatedBy: row.CreatedBy,
			UpdatedBy: row.UpdatedBy,
			CreatedAt: timestamptzToMicros(row.CreatedAt),
			UpdatedAt: timestamptzToMicros(row.UpdatedAt),
		},
	}
}
