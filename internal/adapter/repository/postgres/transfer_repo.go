package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/ledgerengine/internal/domain"
	"github.com/iho/ledgerengine/internal/infrastructure/postgres/generated"
	"github.com/iho/ledgerengine/internal/usecase"
)

// TransferRepository implements usecase.TransferRepository.
type TransferRepository struct {
	queries *generated.Queries
}

// NewTransferRepository creates a new TransferRepository.
func NewTransferRepository(pool *pgxpool.Pool) *TransferRepository {
	return newTransferRepository(pool)
}

func newTransferRepository(db generated.DBTX) *TransferRepository {
	return &TransferRepository{queries: generated.New(db)}
}

// Create inserts a transfer. It returns domain.ErrTransferExists when a row
// with the same id was committed first.
func (r *TransferRepository) Create(ctx context.Context, tx usecase.Transaction, transfer *domain.Transfer) error {
	params := generated.CreateTransferParams{
		ID:              transfer.ID,
		TenantID:        transfer.TenantID,
		DebitAccountID:  transfer.DebitAccountID,
		CreditAccountID: transfer.CreditAccountID,
		CausedByEventID: transfer.CausedByEventID,
		GroupingID:      transfer.GroupingID,
		LedgerMasterID:  transfer.LedgerID,
		Code:            transfer.Code,
		Amount:          transfer.Amount,
		TransferType:    int16(transfer.Type.Kind),
		CreatedAt:       microsToTimestamptz(transfer.CreatedAt),
	}
	if transfer.Remarks != nil {
		params.Remarks = pgtype.Text{String: *transfer.Remarks, Valid: true}
	}
	if ref := transfer.Type.PendingRef(); ref != nil {
		params.PendingID = uuid.NullUUID{UUID: *ref, Valid: true}
	}

	n, err := txQueries(tx).CreateTransfer(ctx, params)
	if err != nil {
		return err
	}

	if n == 0 {
		return domain.ErrTransferExists
	}

	return nil
}

// GetByID retrieves a transfer by ID.
func (r *TransferRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Transfer, error) {
	row, err := r.queries.GetTransferByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransferNotFound
		}

		return nil, err
	}

	return rowToTransfer(row), nil
}

// GetByIDs returns the stored transfers among ids. A nil tx reads outside
// any transaction.
func (r *TransferRepository) GetByIDs(ctx context.Context, tx usecase.Transaction, ids []uuid.UUID) ([]*domain.Transfer, error) {
	if len(ids) == 0 {
		return []*domain.Transfer{}, nil
	}

	queries := r.queries
	if tx != nil {
		queries = txQueries(tx)
	}

	rows, err := queries.GetTransfersByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	transfers := make([]*domain.Transfer, 0, len(rows))
	for _, row := range rows {
		transfers = append(transfers, rowToTransfer(row))
	}

	return transfers, nil
}

// ListByAccount lists transfers touching the account with from <= created_at < to.
func (r *TransferRepository) ListByAccount(ctx context.Context, accountID uuid.UUID, from, to int64, limit, offset int) ([]*domain.Transfer, error) {
	rows, err := r.queries.ListTransfersByAccount(ctx, generated.ListTransfersByAccountParams{
		DebitAccountID: accountID,
		CreatedAt:      microsToTimestamptz(from),
		CreatedAt_2:    microsToTimestamptz(to),
		Limit:          int32(limit),
		Offset:         int32(offset),
	})
	if err != nil {
		return nil, err
	}

	transfers := make([]*domain.Transfer, 0, len(rows))
	for _, row := range rows {
		transfers = append(transfers, rowToTransfer(row))
	}

	return transfers, nil
}

func rowToTransfer(row generated.Transfer) *domain.Transfer {
	t := &domain.Transfer{
		ID:              row.ID,
		TenantID:        row.TenantID,
		DebitAccountID:  row.DebitAccountID,
		CreditAccountID: row.CreditAccountID,
		CausedByEventID: row.CausedByEventID,
		GroupingID:      row.GroupingID,
		LedgerID:        row.LedgerMasterID,
		Code:            row.Code,
		Amount:          row.Amount,
		Type:            domain.TransferType{Kind: domain.TransferKind(row.TransferType)},
		CreatedAt:       timestamptzToMicros(row.CreatedAt),
	}

	if row.Remarks.Valid {
		remarks := row.Remarks.String
		t.Remarks = &remarks
	}

	if row.PendingID.Valid {
		t.Type.PendingID = row.PendingID.UUID
	}

	return t
}
