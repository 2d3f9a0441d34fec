package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TransferKind is the discriminator of a TransferType. The numeric values are
// the ones persisted in the transfers.transfer_type column.
type TransferKind int16

const (
	KindRegular     TransferKind = 1
	KindPending     TransferKind = 2
	KindPostPending TransferKind = 3
	KindVoidPending TransferKind = 4
)

func (k TransferKind) String() string {
	switch k {
	case KindRegular:
		return "regular"
	case KindPending:
		return "pending"
	case KindPostPending:
		return "post_pending"
	case KindVoidPending:
		return "void_pending"
	default:
		return fmt.Sprintf("unknown(%d)", int16(k))
	}
}

// ParseTransferKind parses the string form produced by TransferKind.String.
func ParseTransferKind(s string) (TransferKind, error) {
	switch s {
	case "regular":
		return KindRegular, nil
	case "pending":
		return KindPending, nil
	case "post_pending":
		return KindPostPending, nil
	case "void_pending":
		return KindVoidPending, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidTransferType, s)
	}
}

// TransferType is a tagged variant. PendingID is only meaningful for
// PostPending and VoidPending.
type TransferType struct {
	Kind      TransferKind
	PendingID uuid.UUID
}

func Regular() TransferType { return TransferType{Kind: KindRegular} }

func Pending() TransferType { return TransferType{Kind: KindPending} }

func PostPending(pendingID uuid.UUID) TransferType {
	return TransferType{Kind: KindPostPending, PendingID: pendingID}
}

func VoidPending(pendingID uuid.UUID) TransferType {
	return TransferType{Kind: KindVoidPending, PendingID: pendingID}
}

// ResolvesPending reports whether the type references a prior pending transfer.
func (t TransferType) ResolvesPending() bool {
	return t.Kind == KindPostPending || t.Kind == KindVoidPending
}

// PendingRef returns the referenced pending id, or nil for Regular and Pending.
func (t TransferType) PendingRef() *uuid.UUID {
	if !t.ResolvesPending() {
		return nil
	}
	id := t.PendingID
	return &id
}

// Transfer is an immutable double-entry movement between two accounts of the
// same ledger. ID is chosen by the caller and doubles as the idempotency key.
type Transfer struct {
	ID              uuid.UUID
	TenantID        uuid.UUID
	DebitAccountID  uuid.UUID
	CreditAccountID uuid.UUID
	CausedByEventID uuid.UUID
	GroupingID      uuid.UUID
	LedgerID        uuid.UUID
	Code            int16
	Amount          int64
	Remarks         *string
	Type            TransferType
	// CreatedAt is unix time in microseconds.
	CreatedAt int64
}

// CreatedTime returns CreatedAt as a time.Time in UTC.
func (t *Transfer) CreatedTime() time.Time {
	return time.UnixMicro(t.CreatedAt).UTC()
}

// TransferOutcome is the per-transfer result of a linked group submission.
type TransferOutcome struct {
	TxnID     uuid.UUID
	Committed bool
	Reason    []string
}

// CommittedOutcome returns the outcome of a transfer that was applied.
func CommittedOutcome(id uuid.UUID) TransferOutcome {
	return TransferOutcome{TxnID: id, Committed: true, Reason: []string{}}
}

// RejectedOutcome returns the outcome of a transfer that was not applied.
func RejectedOutcome(id uuid.UUID, reasons ...string) TransferOutcome {
	return TransferOutcome{TxnID: id, Committed: false, Reason: reasons}
}
