package usecase

import (
	"math"
	"reflect"
	"testing"

	"github.com/google/uuid"

	"github.com/iho/ledgerengine/internal/domain"
)

type mapView struct {
	accounts  map[uuid.UUID]*domain.Account
	transfers map[uuid.UUID]*domain.Transfer
	pendings  map[uuid.UUID]*domain.PendingTransfer
}

func (v mapView) Account(id uuid.UUID) (*domain.Account, bool) {
	a, ok := v.accounts[id]
	return a, ok
}

func (v mapView) Transfer(id uuid.UUID) (*domain.Transfer, bool) {
	t, ok := v.transfers[id]
	return t, ok
}

func (v mapView) Pending(id uuid.UUID) (*domain.PendingTransfer, bool) {
	p, ok := v.pendings[id]
	return p, ok
}

func TestValidateTransfer_ReasonOrder(t *testing.T) {
	tenant := uuid.New()
	ledger := uuid.New()
	missingDebit, missingCredit := uuid.New(), uuid.New()
	unknownPending := uuid.New()
	remarks := string(make([]rune, 90))

	existing := &domain.Transfer{ID: uuid.New(), TenantID: tenant}
	view := mapView{
		transfers: map[uuid.UUID]*domain.Transfer{existing.ID: existing},
	}

	tr := &domain.Transfer{
		ID:              existing.ID,
		TenantID:        tenant,
		DebitAccountID:  missingDebit,
		CreditAccountID: missingCredit,
		LedgerID:        ledger,
		Amount:          -5,
		Remarks:         &remarks,
		Type:            domain.PostPending(unknownPending),
	}

	want := []string{
		domain.ReasonInvalidAmount(-5),
		domain.ReasonNoAccount(missingDebit),
		domain.ReasonNoAccount(missingCredit),
		domain.ReasonPendingNotFound(unknownPending),
		domain.ReasonTransferExists,
		domain.ReasonRemarksTooLong(90),
	}

	got := ValidateTransfer(tr, view)
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("reasons mismatch\n got: %q\nwant: %q", got, want)
	}
}

func TestValidateTransfer_PendingOfAnotherTenantIsNotFound(t *testing.T) {
	tenant := uuid.New()
	ledger := uuid.New()
	debit := &domain.Account{ID: uuid.New(), TenantID: tenant, LedgerID: ledger}
	credit := &domain.Account{ID: uuid.New(), TenantID: tenant, LedgerID: ledger}
	pending := &domain.PendingTransfer{PendingID: uuid.New(), TenantID: uuid.New(), Reserved: 10, Status: domain.PendingStatusOpen}

	view := mapView{
		accounts: map[uuid.UUID]*domain.Account{debit.ID: debit, credit.ID: credit},
		pendings: map[uuid.UUID]*domain.PendingTransfer{pending.PendingID: pending},
	}

	tr := &domain.Transfer{
		ID:              uuid.New(),
		TenantID:        tenant,
		DebitAccountID:  debit.ID,
		CreditAccountID: credit.ID,
		LedgerID:        ledger,
		Amount:          5,
		Type:            domain.VoidPending(pending.PendingID),
	}

	got := ValidateTransfer(tr, view)
	want := []string{domain.ReasonPendingNotFound(pending.PendingID)}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestValidateTransfer_VoidIgnoresAmountAgainstOutstanding(t *testing.T) {
	tenant := uuid.New()
	ledger := uuid.New()
	debit := &domain.Account{ID: uuid.New(), TenantID: tenant, LedgerID: ledger}
	credit := &domain.Account{ID: uuid.New(), TenantID: tenant, LedgerID: ledger}
	pending := &domain.PendingTransfer{PendingID: uuid.New(), TenantID: tenant, Reserved: 10, Status: domain.PendingStatusOpen}

	view := mapView{
		accounts: map[uuid.UUID]*domain.Account{debit.ID: debit, credit.ID: credit},
		pendings: map[uuid.UUID]*domain.PendingTransfer{pending.PendingID: pending},
	}

	tr := &domain.Transfer{
		ID:              uuid.New(),
		TenantID:        tenant,
		DebitAccountID:  debit.ID,
		CreditAccountID: credit.ID,
		LedgerID:        ledger,
		Amount:          1000,
		Type:            domain.VoidPending(pending.PendingID),
	}

	if got := ValidateTransfer(tr, view); len(got) != 0 {
		t.Fatalf("expected void to be valid, got %q", got)
	}
}

func TestValidateTransfer_CounterOverflow(t *testing.T) {
	tenant := uuid.New()
	ledger := uuid.New()
	debit := &domain.Account{ID: uuid.New(), TenantID: tenant, LedgerID: ledger, DebitsPosted: math.MaxInt64 - 5}
	credit := &domain.Account{ID: uuid.New(), TenantID: tenant, LedgerID: ledger, CreditsPending: math.MaxInt64}
	pending := &domain.PendingTransfer{
		PendingID:       uuid.New(),
		TenantID:        tenant,
		DebitAccountID:  debit.ID,
		CreditAccountID: credit.ID,
		Reserved:        50,
		Status:          domain.PendingStatusOpen,
	}

	view := mapView{
		accounts: map[uuid.UUID]*domain.Account{debit.ID: debit, credit.ID: credit},
		pendings: map[uuid.UUID]*domain.PendingTransfer{pending.PendingID: pending},
	}

	tests := []struct {
		name   string
		amount int64
		typ    domain.TransferType
		want   []string
	}{
		{"regular within range", 5, domain.Regular(), []string{}},
		{"regular past max on debit", 100, domain.Regular(), []string{domain.ReasonCounterOverflow(debit.ID)}},
		{"pending past max on credit", 1, domain.Pending(), []string{domain.ReasonCounterOverflow(credit.ID)}},
		{"post past max on debit", 50, domain.PostPending(pending.PendingID), []string{domain.ReasonCounterOverflow(debit.ID)}},
		{"void only releases", 1, domain.VoidPending(pending.PendingID), []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := &domain.Transfer{
				ID:              uuid.New(),
				TenantID:        tenant,
				DebitAccountID:  debit.ID,
				CreditAccountID: credit.ID,
				LedgerID:        ledger,
				Amount:          tt.amount,
				Type:            tt.typ,
			}

			got := ValidateTransfer(tr, view)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestUniqueSorted(t *testing.T) {
	a := uuid.MustParse("00000000-0000-7000-8000-000000000001")
	b := uuid.MustParse("00000000-0000-7000-8000-000000000002")

	got := uniqueSorted([]uuid.UUID{b, uuid.Nil, a, b})
	want := []uuid.UUID{a, b}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}
