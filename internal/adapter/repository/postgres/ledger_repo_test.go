package postgres

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"

	"github.com/iho/ledgerengine/internal/domain"
)

var totalsColumns = []string{"debits_posted", "credits_posted", "debits_pending", "credits_pending"}

func numeric(v int64) pgtype.Numeric {
	return pgtype.Numeric{Int: big.NewInt(v), Valid: true}
}

func TestLedgerRepositoryTotals(t *testing.T) {
	pool := newMockPool(t)
	ledgerID := uuid.New()

	pool.ExpectQuery("FROM accounts").
		WithArgs(ledgerID).
		WillReturnRows(pgxmock.NewRows(totalsColumns).AddRow(numeric(150), numeric(150), numeric(30), numeric(30)))

	totals, err := newLedgerRepository(pool).Totals(context.Background(), ledgerID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !totals.DebitsPosted.Equal(decimal.NewFromInt(150)) || !totals.CreditsPending.Equal(decimal.NewFromInt(30)) {
		t.Fatalf("unexpected totals %+v", totals)
	}

	assertExpectations(t, pool)
}

func TestLedgerRepositoryDerivedTotalsPropagatesError(t *testing.T) {
	pool := newMockPool(t)
	boom := errors.New("boom")
	accountID := uuid.New()

	pool.ExpectQuery("FROM pending_transfers").
		WithArgs(accountID).
		WillReturnError(boom)

	if _, err := newLedgerRepository(pool).DerivedTotals(context.Background(), accountID); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
}

func TestToDecimalHandlesExponent(t *testing.T) {
	d, err := toDecimal(pgtype.Numeric{Int: big.NewInt(12345), Exp: -2, Valid: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !d.Equal(decimal.RequireFromString("123.45")) {
		t.Fatalf("expected 123.45, got %s", d)
	}

	if zero, _ := toDecimal(pgtype.Numeric{}); !zero.IsZero() {
		t.Fatalf("expected zero for NULL, got %s", zero)
	}
}

var ledgerMasterColumns = []string{
	"id", "tenant_id", "display_name", "currency_master_id", "idempotence_key",
	"created_by", "updated_by", "created_at", "updated_at",
}

func TestLedgerMasterRepositoryGetByIDNotFound(t *testing.T) {
	pool := newMockPool(t)
	id := uuid.New()

	pool.ExpectQuery("FROM ledger_masters WHERE id = \\$1").
		WithArgs(id).
		WillReturnRows(pgxmock.NewRows(ledgerMasterColumns))

	if _, err := newLedgerMasterRepository(pool).GetByID(context.Background(), id); !errors.Is(err, domain.ErrLedgerNotFound) {
		t.Fatalf("expected ErrLedgerNotFound, got %v", err)
	}
}

func TestLedgerMasterRepositoryCreateReplay(t *testing.T) {
	pool := newMockPool(t)
	tx := beginMockTx(t, pool)
	ledger := &domain.LedgerMaster{ID: uuid.New(), TenantID: uuid.New(), DisplayName: "EUR", IdempotenceKey: uuid.New()}
	storedID := uuid.New()
	ts := pgtype.Timestamptz{Valid: true}

	pool.ExpectQuery("INSERT INTO ledger_masters").
		WithArgs(anyArgs(9)...).
		WillReturnRows(pgxmock.NewRows(ledgerMasterColumns))
	pool.ExpectQuery("FROM ledger_masters WHERE tenant_id").
		WithArgs(ledger.TenantID, ledger.IdempotenceKey).
		WillReturnRows(pgxmock.NewRows(ledgerMasterColumns).AddRow(
			storedID, ledger.TenantID, "EUR", uuid.New(), ledger.IdempotenceKey, uuid.New(), uuid.New(), ts, ts,
		))

	stored, err := newLedgerMasterRepository(pool).Create(context.Background(), tx, ledger)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if stored.ID != storedID {
		t.Fatalf("expected stored id %s, got %s", storedID, stored.ID)
	}

	assertExpectations(t, pool)
}
