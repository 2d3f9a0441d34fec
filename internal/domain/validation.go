package domain

import (
	"fmt"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Validation constants
const (
	MaxRemarksLength     = 80
	MaxDisplayCodeLength = 20
	MaxDisplayNameLength = 50
)

// ReasonLinkedTransferFailed is reported for every transfer of a linked group
// other than the one that failed validation.
const ReasonLinkedTransferFailed = "linked transfer failed"

// ReasonTransferExists is reported when the transfer id is already persisted.
const ReasonTransferExists = "transfer already exists with this id"

func ReasonInvalidAmount(amount int64) string {
	return fmt.Sprintf("transfer amount cannot be <=0 but was %d", amount)
}

func ReasonNoAccount(id uuid.UUID) string {
	return fmt.Sprintf("no account for %s", id)
}

func ReasonLedgerMismatch(debitLedger, creditLedger, transferLedger uuid.UUID) string {
	return fmt.Sprintf(
		"accounts must have the same ledger debit_acc_ledger_id: %s, credit_acc_ledger_id: %s, transfer ledger id: %s",
		debitLedger, creditLedger, transferLedger,
	)
}

func ReasonPendingNotFound(pendingID uuid.UUID) string {
	return fmt.Sprintf("no pending transfer found for pending_id %s", pendingID)
}

func ReasonNotPending(pendingID uuid.UUID) string {
	return fmt.Sprintf("transfer %s referenced by pending_id is not a pending transfer", pendingID)
}

func ReasonPendingResolved(pendingID uuid.UUID) string {
	return fmt.Sprintf("pending transfer %s is already resolved", pendingID)
}

func ReasonPendingExceeded(amount, outstanding int64, pendingID uuid.UUID) string {
	return fmt.Sprintf(
		"post pending amount %d exceeds outstanding pending amount %d for pending_id %s",
		amount, outstanding, pendingID,
	)
}

func ReasonRemarksTooLong(n int) string {
	return fmt.Sprintf("remarks cannot be longer than %d characters but was %d", MaxRemarksLength, n)
}

func ReasonCounterOverflow(accountID uuid.UUID) string {
	return fmt.Sprintf("transfer would overflow the balance counters of account %s", accountID)
}

// RemarksLength returns the length of remarks in characters, 0 when absent.
func RemarksLength(remarks *string) int {
	if remarks == nil {
		return 0
	}
	return utf8.RuneCountInString(*remarks)
}

// ValidatePagination validates and limits pagination parameters
func ValidatePagination(limit, offset int) (int, int, error) {
	const MaxPageSize = 1000
	const DefaultPageSize = 50

	if limit <= 0 {
		limit = DefaultPageSize
	}

	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	if offset < 0 {
		offset = 0
	}

	return limit, offset, nil
}
