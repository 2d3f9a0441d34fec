package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/iho/ledgerengine/internal/domain"
	"github.com/iho/ledgerengine/internal/infrastructure/metrics"
)

var (
	// ErrInconsistentLedger is returned when the ledger is not balanced.
	ErrInconsistentLedger = errors.New("ledger is inconsistent: debits do not equal credits")
)

// LedgerUseCase handles ledger masters and ledger-wide checks.
type LedgerUseCase struct {
	txManager  TransactionManager
	masterRepo LedgerMasterRepository
	ledgerRepo LedgerRepository
	outboxRepo OutboxRepository
	idGen      IDGenerator
	metrics    *metrics.Metrics
}

// NewLedgerUseCase creates a new LedgerUseCase.
func NewLedgerUseCase(
	txManager TransactionManager,
	masterRepo LedgerMasterRepository,
	ledgerRepo LedgerRepository,
	outboxRepo OutboxRepository,
	idGen IDGenerator,
	metrics *metrics.Metrics,
) *LedgerUseCase {
	return &LedgerUseCase{
		txManager:  txManager,
		masterRepo: masterRepo,
		ledgerRepo: ledgerRepo,
		outboxRepo: outboxRepo,
		idGen:      idGen,
		metrics:    metrics,
	}
}

// CreateLedgerMaster creates a ledger master, or returns the existing one for
// a replayed idempotence key.
func (uc *LedgerUseCase) CreateLedgerMaster(ctx context.Context, req domain.CreateLedgerMasterRequest) (*domain.LedgerMaster, error) {
	if req.DisplayName == "" || utf8.RuneCountInString(req.DisplayName) > domain.MaxDisplayNameLength {
		return nil, fmt.Errorf("%w: display name must be 1-%d characters", domain.ErrInvalidLedger, domain.MaxDisplayNameLength)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	ledger := &domain.LedgerMaster{
		ID:               id,
		TenantID:         req.TenantID,
		DisplayName:      req.DisplayName,
		CurrencyMasterID: req.CurrencyMasterID,
		IdempotenceKey:   req.IdempotenceKey,
		Audit:            domain.NewAuditMetadata(req.CreatedBy, now),
	}

	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	stored, err := uc.masterRepo.Create(txCtx, tx, ledger)
	if err != nil {
		return nil, err
	}

	if stored.ID != ledger.ID {
		return stored, nil
	}

	event := &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   stored.ID.String(),
		AggregateType: domain.AggregateTypeLedger,
		EventType:     domain.EventTypeLedgerCreated,
		Payload: map[string]any{
			"ledger_id":          stored.ID.String(),
			"tenant_id":          stored.TenantID.String(),
			"display_name":       stored.DisplayName,
			"currency_master_id": stored.CurrencyMasterID.String(),
		},
		CreatedAt: now,
	}
	if err := uc.outboxRepo.Create(txCtx, tx, event); err != nil {
		return nil, err
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.LedgersCreated.Inc()
	}

	return stored, nil
}

// GetLedgerMaster retrieves a ledger master by ID.
func (uc *LedgerUseCase) GetLedgerMaster(ctx context.Context, id uuid.UUID) (*domain.LedgerMaster, error) {
	return uc.masterRepo.GetByID(ctx, id)
}

// ConsistencyReport holds the counter sums of one ledger.
type ConsistencyReport struct {
	LedgerID        uuid.UUID
	Totals          LedgerTotals
	PostedBalanced  bool
	PendingBalanced bool
	CheckedAt       time.Time
}

// Consistent reports whether both posted and pending sides balance.
func (r *ConsistencyReport) Consistent() bool {
	return r.PostedBalanced && r.PendingBalanced
}

// CheckConsistency verifies that, across every account of the ledger, posted
// debits equal posted credits and pending debits equal pending credits.
func (uc *LedgerUseCase) CheckConsistency(ctx context.Context, ledgerID uuid.UUID) (*ConsistencyReport, error) {
	if _, err := uc.masterRepo.GetByID(ctx, ledgerID); err != nil {
		return nil, err
	}

	totals, err := uc.ledgerRepo.Totals(ctx, ledgerID)
	if err != nil {
		return nil, err
	}

	return &ConsistencyReport{
		LedgerID:        ledgerID,
		Totals:          totals,
		PostedBalanced:  totals.DebitsPosted.Equal(totals.CreditsPosted),
		PendingBalanced: totals.DebitsPending.Equal(totals.CreditsPending),
		CheckedAt:       time.Now().UTC(),
	}, nil
}
