package domain

import (
	"math"

	"github.com/google/uuid"
)

// Account is a ledger account holding the four balance counters of a
// double-entry ledger. Counters only move through transfer application.
type Account struct {
	ID             uuid.UUID
	TenantID       uuid.UUID
	LedgerID       uuid.UUID
	DisplayCode    string
	AccountTypeID  uuid.UUID
	UserID         uuid.UUID
	IdempotenceKey uuid.UUID
	DebitsPosted   int64
	DebitsPending  int64
	CreditsPosted  int64
	CreditsPending int64
	Audit          AuditMetadata
}

// BalanceDelta is a signed change to the counters of a single account.
type BalanceDelta struct {
	DebitsPosted   int64
	DebitsPending  int64
	CreditsPosted  int64
	CreditsPending int64
}

// IsZero reports whether the delta changes nothing.
func (d BalanceDelta) IsZero() bool {
	return d == BalanceDelta{}
}

// Add returns the sum of two deltas.
func (d BalanceDelta) Add(o BalanceDelta) BalanceDelta {
	return BalanceDelta{
		DebitsPosted:   d.DebitsPosted + o.DebitsPosted,
		DebitsPending:  d.DebitsPending + o.DebitsPending,
		CreditsPosted:  d.CreditsPosted + o.CreditsPosted,
		CreditsPending: d.CreditsPending + o.CreditsPending,
	}
}

// Overflows reports whether applying d would push a counter past MaxInt64.
func (a *Account) Overflows(d BalanceDelta) bool {
	return overflows(a.DebitsPosted, d.DebitsPosted) ||
		overflows(a.DebitsPending, d.DebitsPending) ||
		overflows(a.CreditsPosted, d.CreditsPosted) ||
		overflows(a.CreditsPending, d.CreditsPending)
}

func overflows(counter, delta int64) bool {
	return delta > 0 && counter > math.MaxInt64-delta
}

// ValidateDelta checks that applying d keeps every counter within
// [0, MaxInt64].
func (a *Account) ValidateDelta(d BalanceDelta) error {
	if a.Overflows(d) {
		return ErrCounterOverflow
	}
	if a.DebitsPosted+d.DebitsPosted < 0 ||
		a.DebitsPending+d.DebitsPending < 0 ||
		a.CreditsPosted+d.CreditsPosted < 0 ||
		a.CreditsPending+d.CreditsPending < 0 {
		return ErrNegativeCounter
	}
	return nil
}

// ApplyDelta adds d to the counters in place.
func (a *Account) ApplyDelta(d BalanceDelta) {
	a.DebitsPosted += d.DebitsPosted
	a.DebitsPending += d.DebitsPending
	a.CreditsPosted += d.CreditsPosted
	a.CreditsPending += d.CreditsPending
}

// Clone returns a copy that can be mutated without touching a.
func (a *Account) Clone() *Account {
	c := *a
	return &c
}

// CreateAccountRequest carries the fields needed to open an account.
// IdempotenceKey dedupes retries of the same request within a tenant.
type CreateAccountRequest struct {
	TenantID       uuid.UUID
	LedgerID       uuid.UUID
	DisplayCode    string
	AccountTypeID  uuid.UUID
	UserID         uuid.UUID
	IdempotenceKey uuid.UUID
	CreatedBy      uuid.UUID
}
