package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/iho/ledgerengine/internal/domain"
)

// ReconciliationUseCase compares stored account counters with the values
// derived from transfer history.
type ReconciliationUseCase struct {
	accountRepo AccountRepository
	ledgerRepo  LedgerRepository
	ledgers     *LedgerUseCase
}

// NewReconciliationUseCase creates a new reconciliation use case
func NewReconciliationUseCase(
	accountRepo AccountRepository,
	ledgerRepo LedgerRepository,
	ledgers *LedgerUseCase,
) *ReconciliationUseCase {
	return &ReconciliationUseCase{
		accountRepo: accountRepo,
		ledgerRepo:  ledgerRepo,
		ledgers:     ledgers,
	}
}

// ReconciliationResult represents the result of a reconciliation check
type ReconciliationResult struct {
	AccountID    uuid.UUID
	Recorded     LedgerTotals
	Calculated   LedgerTotals
	IsReconciled bool
	LastChecked  time.Time
}

// ReconcileAccount recomputes the account counters from committed transfers
// and pending states and compares them with the stored counters.
func (uc *ReconciliationUseCase) ReconcileAccount(ctx context.Context, accountID uuid.UUID) (*ReconciliationResult, error) {
	account, err := uc.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	calculated, err := uc.ledgerRepo.DerivedTotals(ctx, accountID)
	if err != nil {
		return nil, err
	}

	recorded := LedgerTotals{
		DebitsPosted:   decimal.NewFromInt(account.DebitsPosted),
		CreditsPosted:  decimal.NewFromInt(account.CreditsPosted),
		DebitsPending:  decimal.NewFromInt(account.DebitsPending),
		CreditsPending: decimal.NewFromInt(account.CreditsPending),
	}

	return &ReconciliationResult{
		AccountID:    accountID,
		Recorded:     recorded,
		Calculated:   calculated,
		IsReconciled: recorded.Equal(calculated),
		LastChecked:  time.Now().UTC(),
	}, nil
}

// ReconciliationReport represents a full reconciliation report of one ledger
type ReconciliationReport struct {
	LedgerID           uuid.UUID
	TotalAccounts      int
	ReconciledAccounts int
	Discrepancies      []*ReconciliationResult
	LedgerConsistent   bool
	CheckedAt          time.Time
}

// GenerateReconciliationReport reconciles every account of the ledger and
// runs the ledger consistency check.
func (uc *ReconciliationUseCase) GenerateReconciliationReport(ctx context.Context, ledgerID uuid.UUID) (*ReconciliationReport, error) {
	consistency, err := uc.ledgers.CheckConsistency(ctx, ledgerID)
	if err != nil {
		return nil, err
	}

	report := &ReconciliationReport{
		LedgerID:         ledgerID,
		Discrepancies:    make([]*ReconciliationResult, 0),
		LedgerConsistent: consistency.Consistent(),
		CheckedAt:        time.Now().UTC(),
	}

	limit, _, _ := domain.ValidatePagination(1000, 0)
	for offset := 0; ; offset += limit {
		accounts, err := uc.accountRepo.ListByLedger(ctx, ledgerID, limit, offset)
		if err != nil {
			return nil, err
		}

		for _, account := range accounts {
			result, err := uc.ReconcileAccount(ctx, account.ID)
			if err != nil {
				return nil, fmt.Errorf("failed to reconcile account %s: %w", account.ID, err)
			}

			report.TotalAccounts++
			if result.IsReconciled {
				report.ReconciledAccounts++
			} else {
				report.Discrepancies = append(report.Discrepancies, result)
			}
		}

		if len(accounts) < limit {
			break
		}
	}

	return report, nil
}
