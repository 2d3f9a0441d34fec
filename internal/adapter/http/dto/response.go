package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/iho/ledgerengine/internal/domain"
	"github.com/iho/ledgerengine/internal/usecase"
)

// TransferOutcomeResponse is the per-transfer result of a submission.
type TransferOutcomeResponse struct {
	TxnID     uuid.UUID `json:"txn_id"`
	Committed bool      `json:"committed"`
	Reason    []string  `json:"reason"`
}

// OutcomesFromDomain converts the outcomes of one linked group.
func OutcomesFromDomain(outcomes []domain.TransferOutcome) []TransferOutcomeResponse {
	result := make([]TransferOutcomeResponse, len(outcomes))
	for i, o := range outcomes {
		reason := o.Reason
		if reason == nil {
			reason = []string{}
		}
		result[i] = TransferOutcomeResponse{TxnID: o.TxnID, Committed: o.Committed, Reason: reason}
	}
	return result
}

// BatchOutcomesFromDomain converts the outcomes of every group of a batch.
func BatchOutcomesFromDomain(batch [][]domain.TransferOutcome) [][]TransferOutcomeResponse {
	result := make([][]TransferOutcomeResponse, len(batch))
	for i, outcomes := range batch {
		result[i] = OutcomesFromDomain(outcomes)
	}
	return result
}

// TransferResponse represents a transfer in API responses.
type TransferResponse struct {
	ID              uuid.UUID  `json:"id"`
	TenantID        uuid.UUID  `json:"tenant_id"`
	DebitAccountID  uuid.UUID  `json:"debit_account_id"`
	CreditAccountID uuid.UUID  `json:"credit_account_id"`
	CausedByEventID uuid.UUID  `json:"caused_by_event_id"`
	GroupingID      uuid.UUID  `json:"grouping_id"`
	LedgerID        uuid.UUID  `json:"ledger_id"`
	Code            int16      `json:"code"`
	Amount          int64      `json:"amount"`
	Remarks         *string    `json:"remarks,omitempty"`
	Type            string     `json:"type"`
	PendingID       *uuid.UUID `json:"pending_id,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

// TransferFromDomain converts domain transfer to response.
func TransferFromDomain(t *domain.Transfer) *TransferResponse {
	return &TransferResponse{
		ID:              t.ID,
		TenantID:        t.TenantID,
		DebitAccountID:  t.DebitAccountID,
		CreditAccountID: t.CreditAccountID,
		CausedByEventID: t.CausedByEventID,
		GroupingID:      t.GroupingID,
		LedgerID:        t.LedgerID,
		Code:            t.Code,
		Amount:          t.Amount,
		Remarks:         t.Remarks,
		Type:            t.Type.Kind.String(),
		PendingID:       t.Type.PendingRef(),
		CreatedAt:       t.CreatedTime(),
	}
}

// TransfersFromDomain converts domain transfers to responses.
func TransfersFromDomain(transfers []*domain.Transfer) []*TransferResponse {
	result := make([]*TransferResponse, len(transfers))
	for i, t := range transfers {
		result[i] = TransferFromDomain(t)
	}
	return result
}

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	ID             uuid.UUID `json:"id"`
	TenantID       uuid.UUID `json:"tenant_id"`
	LedgerID       uuid.UUID `json:"ledger_id"`
	DisplayCode    string    `json:"display_code"`
	AccountTypeID  uuid.UUID `json:"account_type_id"`
	UserID         uuid.UUID `json:"user_id"`
	DebitsPosted   int64     `json:"debits_posted"`
	DebitsPending  int64     `json:"debits_pending"`
	CreditsPosted  int64     `json:"credits_posted"`
	CreditsPending int64     `json:"credits_pending"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// AccountFromDomain converts domain account to response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		ID:             a.ID,
		TenantID:       a.TenantID,
		LedgerID:       a.LedgerID,
		DisplayCode:    a.DisplayCode,
		AccountTypeID:  a.AccountTypeID,
		UserID:         a.UserID,
		DebitsPosted:   a.DebitsPosted,
		DebitsPending:  a.DebitsPending,
		CreditsPosted:  a.CreditsPosted,
		CreditsPending: a.CreditsPending,
		CreatedAt:      time.UnixMicro(a.Audit.CreatedAt).UTC(),
		UpdatedAt:      time.UnixMicro(a.Audit.UpdatedAt).UTC(),
	}
}

// AccountsFromDomain converts domain accounts to responses.
func AccountsFromDomain(accounts []*domain.Account) []*AccountResponse {
	result := make([]*AccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = AccountFromDomain(a)
	}
	return result
}

// LedgerResponse represents a ledger master in API responses.
type LedgerResponse struct {
	ID               uuid.UUID `json:"id"`
	TenantID         uuid.UUID `json:"tenant_id"`
	DisplayName      string    `json:"display_name"`
	CurrencyMasterID uuid.UUID `json:"currency_master_id"`
	CreatedAt        time.Time `json:"created_at"`
}

// LedgerFromDomain converts a ledger master to response.
func LedgerFromDomain(l *domain.LedgerMaster) *LedgerResponse {
	return &LedgerResponse{
		ID:               l.ID,
		TenantID:         l.TenantID,
		DisplayName:      l.DisplayName,
		CurrencyMasterID: l.CurrencyMasterID,
		CreatedAt:        time.UnixMicro(l.Audit.CreatedAt).UTC(),
	}
}

// TotalsResponse carries counter sums as decimal strings.
type TotalsResponse struct {
	DebitsPosted   string `json:"debits_posted"`
	CreditsPosted  string `json:"credits_posted"`
	DebitsPending  string `json:"debits_pending"`
	CreditsPending string `json:"credits_pending"`
}

func totalsFromUseCase(t usecase.LedgerTotals) TotalsResponse {
	return TotalsResponse{
		DebitsPosted:   t.DebitsPosted.String(),
		CreditsPosted:  t.CreditsPosted.String(),
		DebitsPending:  t.DebitsPending.String(),
		CreditsPending: t.CreditsPending.String(),
	}
}

// ConsistencyResponse reports the balance check of one ledger.
type ConsistencyResponse struct {
	LedgerID        uuid.UUID      `json:"ledger_id"`
	Consistent      bool           `json:"consistent"`
	PostedBalanced  bool           `json:"posted_balanced"`
	PendingBalanced bool           `json:"pending_balanced"`
	Totals          TotalsResponse `json:"totals"`
	CheckedAt       time.Time      `json:"checked_at"`
}

// ConsistencyFromUseCase converts a consistency report.
func ConsistencyFromUseCase(r *usecase.ConsistencyReport) *ConsistencyResponse {
	return &ConsistencyResponse{
		LedgerID:        r.LedgerID,
		Consistent:      r.Consistent(),
		PostedBalanced:  r.PostedBalanced,
		PendingBalanced: r.PendingBalanced,
		Totals:          totalsFromUseCase(r.Totals),
		CheckedAt:       r.CheckedAt,
	}
}

// ReconciliationResponse compares stored and recomputed account counters.
type ReconciliationResponse struct {
	AccountID  uuid.UUID      `json:"account_id"`
	Reconciled bool           `json:"reconciled"`
	Recorded   TotalsResponse `json:"recorded"`
	Calculated TotalsResponse `json:"calculated"`
	CheckedAt  time.Time      `json:"checked_at"`
}

// ReconciliationFromUseCase converts a reconciliation result.
func ReconciliationFromUseCase(r *usecase.ReconciliationResult) *ReconciliationResponse {
	return &ReconciliationResponse{
		AccountID:  r.AccountID,
		Reconciled: r.IsReconciled,
		Recorded:   totalsFromUseCase(r.Recorded),
		Calculated: totalsFromUseCase(r.Calculated),
		CheckedAt:  r.LastChecked,
	}
}

// ReconciliationReportResponse summarizes the reconciliation of a ledger.
type ReconciliationReportResponse struct {
	LedgerID           uuid.UUID                 `json:"ledger_id"`
	TotalAccounts      int                       `json:"total_accounts"`
	ReconciledAccounts int                       `json:"reconciled_accounts"`
	LedgerConsistent   bool                      `json:"ledger_consistent"`
	Discrepancies      []*ReconciliationResponse `json:"discrepancies"`
	CheckedAt          time.Time                 `json:"checked_at"`
}

// ReconciliationReportFromUseCase converts a ledger reconciliation report.
func ReconciliationReportFromUseCase(r *usecase.ReconciliationReport) *ReconciliationReportResponse {
	discrepancies := make([]*ReconciliationResponse, len(r.Discrepancies))
	for i, d := range r.Discrepancies {
		discrepancies[i] = ReconciliationFromUseCase(d)
	}

	return &ReconciliationReportResponse{
		LedgerID:           r.LedgerID,
		TotalAccounts:      r.TotalAccounts,
		ReconciledAccounts: r.ReconciledAccounts,
		LedgerConsistent:   r.LedgerConsistent,
		Discrepancies:      discrepancies,
		CheckedAt:          r.CheckedAt,
	}
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
