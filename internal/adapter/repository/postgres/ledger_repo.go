package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/ledgerengine/internal/infrastructure/postgres/generated"
	"github.com/iho/ledgerengine/internal/usecase"
)

// LedgerRepository implements usecase.LedgerRepository.
type LedgerRepository struct {
	queries *generated.Queries
}

// NewLedgerRepository creates a new LedgerRepository.
func NewLedgerRepository(pool *pgxpool.Pool) *LedgerRepository {
	return newLedgerRepository(pool)
}

func newLedgerRepository(db generated.DBTX) *LedgerRepository {
	return &LedgerRepository{queries: generated.New(db)}
}

// Totals sums the counters of every account of the ledger.
func (r *LedgerRepository) Totals(ctx context.Context, ledgerID uuid.UUID) (usecase.LedgerTotals, error) {
	row, err := r.queries.GetLedgerTotals(ctx, ledgerID)
	if err != nil {
		return usecase.LedgerTotals{}, err
	}

	return numericTotals(row.DebitsPosted, row.CreditsPosted, row.DebitsPending, row.CreditsPending)
}

// DerivedTotals recomputes one account's counters from transfers and
// reservations.
func (r *LedgerRepository) DerivedTotals(ctx context.Context, accountID uuid.UUID) (usecase.LedgerTotals, error) {
	row, err := r.queries.GetDerivedAccountTotals(ctx, accountID)
	if err != nil {
		return usecase.LedgerTotals{}, err
	}

	return numericTotals(row.DebitsPosted, row.CreditsPosted, row.DebitsPending, row.CreditsPending)
}

func numericTotals(debitsPosted, creditsPosted, debitsPending, creditsPending pgtype.Numeric) (usecase.LedgerTotals, error) {
	var (
		totals usecase.LedgerTotals
		err    error
	)

	if totals.DebitsPosted, err = toDecimal(debitsPosted); err != nil {
		return usecase.LedgerTotals{}, err
	}
	if totals.CreditsPosted, err = toDecimal(creditsPosted); err != nil {
		return usecase.LedgerTotals{}, err
	}
	if totals.DebitsPending, err = toDecimal(debitsPending); err != nil {
		return usecase.LedgerTotals{}, err
	}
	if totals.CreditsPending, err = toDecimal(creditsPending); err != nil {
		return usecase.LedgerTotals{}, err
	}

	return totals, nil
}
