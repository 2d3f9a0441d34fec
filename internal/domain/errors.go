package domain

import "errors"

var (
	// Account errors
	ErrAccountNotFound = errors.New("account not found")
	ErrNegativeCounter = errors.New("balance counter cannot go negative")
	ErrCounterOverflow = errors.New("balance counter would overflow")
	ErrInvalidAccount  = errors.New("invalid account")

	// Ledger errors
	ErrLedgerNotFound = errors.New("ledger master not found")
	ErrInvalidLedger  = errors.New("invalid ledger master")

	// Transfer errors
	ErrTransferNotFound    = errors.New("transfer not found")
	ErrTransferExists      = errors.New("transfer already exists")
	ErrInvalidTransferType = errors.New("invalid transfer type")
	ErrInvalidInterval     = errors.New("invalid interval")

	// Pending errors
	ErrPendingNotFound       = errors.New("pending transfer not found")
	ErrPendingResolved       = errors.New("pending transfer already resolved")
	ErrPendingAmountExceeded = errors.New("amount exceeds outstanding pending amount")

	// Capacity errors, fatal for the whole call
	ErrLinkedGroupTooLarge = errors.New("linked transfer group exceeds configured limit")
	ErrBatchTooLarge       = errors.New("batch exceeds configured transfer limit")
)
