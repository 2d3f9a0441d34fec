package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/ledgerengine/internal/domain"
	"github.com/iho/ledgerengine/internal/infrastructure/postgres/generated"
	"github.com/iho/ledgerengine/internal/usecase"
)

// PendingRepository implements usecase.PendingRepository.
type PendingRepository struct {
	queries *generated.Queries
}

// NewPendingRepository creates a new PendingRepository.
func NewPendingRepository(pool *pgxpool.Pool) *PendingRepository {
	return newPendingRepository(pool)
}

func newPendingRepository(db generated.DBTX) *PendingRepository {
	return &PendingRepository{queries: generated.New(db)}
}

// Create inserts a reservation in whatever state it is in, so a pending
// resolved inside its own group lands already resolved.
func (r *PendingRepository) Create(ctx context.Context, tx usecase.Transaction, pending *domain.PendingTransfer) error {
	return txQueries(tx).CreatePendingTransfer(ctx, generated.CreatePendingTransferParams{
		PendingID:       pending.PendingID,
		TenantID:        pending.TenantID,
		LedgerMasterID:  pending.LedgerID,
		DebitAccountID:  pending.DebitAccountID,
		CreditAccountID: pending.CreditAccountID,
		Reserved:        pending.Reserved,
		Posted:          pending.Posted,
		Status:          string(pending.Status),
		ResolvedBy:      nullUUID(pending.ResolvedBy),
		UpdatedAt:       microsToTimestamptz(pending.UpdatedAt),
	})
}

// GetByIDsForUpdate locks the given reservations in id order.
func (r *PendingRepository) GetByIDsForUpdate(ctx context.Context, tx usecase.Transaction, ids []uuid.UUID) ([]*domain.PendingTransfer, error) {
	if len(ids) == 0 {
		return []*domain.PendingTransfer{}, nil
	}

	rows, err := txQueries(tx).GetPendingTransfersForUpdate(ctx, ids)
	if err != nil {
		return nil, err
	}

	pendings := make([]*domain.PendingTransfer, 0, len(rows))
	for _, row := range rows {
		pendings = append(pendings, rowToPending(row))
	}

	return pendings, nil
}

// Resolve stores the terminal state of an open reservation.
func (r *PendingRepository) Resolve(ctx context.Context, tx usecase.Transaction, pending *domain.PendingTransfer) error {
	n, err := txQueries(tx).ResolvePendingTransfer(ctx, generated.ResolvePendingTransferParams{
		PendingID:  pending.PendingID,
		Posted:     pending.Posted,
		Status:     string(pending.Status),
		ResolvedBy: nullUUID(pending.ResolvedBy),
		UpdatedAt:  microsToTimestamptz(pending.UpdatedAt),
	})
	if err != nil {
		return err
	}

	if n == 0 {
		return domain.ErrPendingResolved
	}

	return nil
}

func rowToPending(row generated.PendingTransfer) *domain.PendingTransfer {
	p := &domain.PendingTransfer{
		PendingID:       row.PendingID,
		TenantID:        row.TenantID,
		LedgerID:        row.LedgerMasterID,
		DebitAccountID:  row.DebitAccountID,
		CreditAccountID: row.CreditAccountID,
		Reserved:        row.Reserved,
		Posted:          row.Posted,
		Status:          domain.PendingStatus(row.Status),
		UpdatedAt:       timestamptzToMicros(row.UpdatedAt),
	}

	if row.ResolvedBy.Valid {
		by := row.ResolvedBy.UUID
		p.ResolvedBy = &by
	}

	return p
}

func nullUUID(id *uuid.UUID) uuid.NullUUID {
	if id == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: *id, Valid: true}
}
