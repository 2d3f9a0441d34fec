package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// PendingStatus is the lifecycle state of a pending reservation.
type PendingStatus string

const (
	PendingStatusOpen   PendingStatus = "open"
	PendingStatusPosted PendingStatus = "posted"
	PendingStatusVoided PendingStatus = "voided"
)

// PendingTransfer tracks the reservation made by a Pending transfer until a
// PostPending or VoidPending resolves it. Posted and Voided are terminal.
type PendingTransfer struct {
	PendingID       uuid.UUID
	TenantID        uuid.UUID
	LedgerID        uuid.UUID
	DebitAccountID  uuid.UUID
	CreditAccountID uuid.UUID
	Reserved        int64
	Posted          int64
	Status          PendingStatus
	ResolvedBy      *uuid.UUID
	UpdatedAt       int64
}

// NewPendingTransfer opens a reservation for a Pending transfer.
func NewPendingTransfer(t *Transfer) *PendingTransfer {
	return &PendingTransfer{
		PendingID:       t.ID,
		TenantID:        t.TenantID,
		LedgerID:        t.LedgerID,
		DebitAccountID:  t.DebitAccountID,
		CreditAccountID: t.CreditAccountID,
		Reserved:        t.Amount,
		Status:          PendingStatusOpen,
		UpdatedAt:       t.CreatedAt,
	}
}

// IsResolved reports whether the reservation reached a terminal state.
func (p *PendingTransfer) IsResolved() bool {
	return p.Status != PendingStatusOpen
}

// Outstanding is the amount still reserved.
func (p *PendingTransfer) Outstanding() int64 {
	if p.IsResolved() {
		return 0
	}
	return p.Reserved - p.Posted
}

// Post settles amount and resolves the reservation. Whatever is not posted is
// released back, so the pending counters return to their pre-reservation value.
func (p *PendingTransfer) Post(by uuid.UUID, amount int64, at int64) (debit, credit BalanceDelta, err error) {
	if p.IsResolved() {
		return BalanceDelta{}, BalanceDelta{}, ErrPendingResolved
	}
	if amount > p.Outstanding() {
		return BalanceDelta{}, BalanceDelta{}, fmt.Errorf("%w: %d > %d", ErrPendingAmountExceeded, amount, p.Outstanding())
	}

	release := p.Outstanding()
	debit = BalanceDelta{DebitsPending: -release, DebitsPosted: amount}
	credit = BalanceDelta{CreditsPending: -release, CreditsPosted: amount}

	p.Posted += amount
	p.Status = PendingStatusPosted
	p.ResolvedBy = &by
	p.UpdatedAt = at

	return debit, credit, nil
}

// Void releases the whole outstanding reservation without posting.
func (p *PendingTransfer) Void(by uuid.UUID, at int64) (debit, credit BalanceDelta, err error) {
	if p.IsResolved() {
		return BalanceDelta{}, BalanceDelta{}, ErrPendingResolved
	}

	release := p.Outstanding()
	debit = BalanceDelta{DebitsPending: -release}
	credit = BalanceDelta{CreditsPending: -release}

	p.Status = PendingStatusVoided
	p.ResolvedBy = &by
	p.UpdatedAt = at

	return debit, credit, nil
}

// Clone returns a copy that can be mutated without touching p.
func (p *PendingTransfer) Clone() *PendingTransfer {
	c := *p
	if p.ResolvedBy != nil {
		id := *p.ResolvedBy
		c.ResolvedBy = &id
	}
	return &c
}
