package domain

import (
	"time"

	"github.com/google/uuid"
)

// AuditMetadata records who created and last touched a row. Timestamps are
// unix microseconds, matching Transfer.CreatedAt.
type AuditMetadata struct {
	CreatedBy uuid.UUID
	UpdatedBy uuid.UUID
	CreatedAt int64
	UpdatedAt int64
}

// NewAuditMetadata stamps a freshly created row.
func NewAuditMetadata(by uuid.UUID, now time.Time) AuditMetadata {
	micros := now.UnixMicro()
	return AuditMetadata{
		CreatedBy: by,
		UpdatedBy: by,
		CreatedAt: micros,
		UpdatedAt: micros,
	}
}
