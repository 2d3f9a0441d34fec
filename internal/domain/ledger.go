package domain

import "github.com/google/uuid"

// LedgerMaster partitions accounts into groups that may transact with each
// other, typically one per currency.
type LedgerMaster struct {
	ID               uuid.UUID
	TenantID         uuid.UUID
	DisplayName      string
	CurrencyMasterID uuid.UUID
	IdempotenceKey   uuid.UUID
	Audit            AuditMetadata
}

// CreateLedgerMasterRequest carries the fields needed to create a ledger master.
type CreateLedgerMasterRequest struct {
	TenantID         uuid.UUID
	DisplayName      string
	CurrencyMasterID uuid.UUID
	IdempotenceKey   uuid.UUID
	CreatedBy        uuid.UUID
}
