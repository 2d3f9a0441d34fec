package domain

import "time"

// Event types
const (
	EventTypeTransferCommitted = "transfer.committed"
	EventTypePendingResolved   = "pending.resolved"
	EventTypeAccountCreated    = "account.created"
	EventTypeLedgerCreated     = "ledger.created"
)

// Aggregate types
const (
	AggregateTypeTransfer = "transfer"
	AggregateTypeAccount  = "account"
	AggregateTypeLedger   = "ledger"
)

// OutboxEvent represents an event to be published
type OutboxEvent struct {
	ID            string
	AggregateID   string
	AggregateType string
	EventType     string
	Payload       map[string]any
	CreatedAt     time.Time
	PublishedAt   *time.Time
	Published     bool
}

// TransferCommittedPayload builds the payload of a transfer.committed event.
func TransferCommittedPayload(t *Transfer) map[string]any {
	payload := map[string]any{
		"transfer_id":        t.ID.String(),
		"tenant_id":          t.TenantID.String(),
		"debit_account_id":   t.DebitAccountID.String(),
		"credit_account_id":  t.CreditAccountID.String(),
		"ledger_id":          t.LedgerID.String(),
		"caused_by_event_id": t.CausedByEventID.String(),
		"grouping_id":        t.GroupingID.String(),
		"code":               t.Code,
		"amount":             t.Amount,
		"transfer_type":      t.Type.Kind.String(),
		"created_at":         t.CreatedAt,
	}
	if ref := t.Type.PendingRef(); ref != nil {
		payload["pending_id"] = ref.String()
	}
	return payload
}

// PendingResolvedPayload builds the payload of a pending.resolved event.
func PendingResolvedPayload(p *PendingTransfer) map[string]any {
	payload := map[string]any{
		"pending_id": p.PendingID.String(),
		"status":     string(p.Status),
		"reserved":   p.Reserved,
		"posted":     p.Posted,
	}
	if p.ResolvedBy != nil {
		payload["resolved_by"] = p.ResolvedBy.String()
	}
	return payload
}
