package usecase

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/iho/ledgerengine/internal/domain"
	"github.com/iho/ledgerengine/internal/infrastructure/metrics"
)

// AccountUseCase handles account business logic.
type AccountUseCase struct {
	txManager   TransactionManager
	accountRepo AccountRepository
	ledgerRepo  LedgerMasterRepository
	outboxRepo  OutboxRepository
	idGen       IDGenerator
	metrics     *metrics.Metrics
}

// NewAccountUseCase creates a new AccountUseCase.
func NewAccountUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	ledgerRepo LedgerMasterRepository,
	outboxRepo OutboxRepository,
	idGen IDGenerator,
	metrics *metrics.Metrics,
) *AccountUseCase {
	return &AccountUseCase{
		txManager:   txManager,
		accountRepo: accountRepo,
		ledgerRepo:  ledgerRepo,
		outboxRepo:  outboxRepo,
		idGen:       idGen,
		metrics:     metrics,
	}
}

// CreateAccount opens an account with zero counters. Replaying a request with
// the same tenant and idempotence key returns the account created first.
func (uc *AccountUseCase) CreateAccount(ctx context.Context, req domain.CreateAccountRequest) (*domain.Account, error) {
	if utf8.RuneCountInString(req.DisplayCode) > domain.MaxDisplayCodeLength {
		return nil, fmt.Errorf("%w: display code longer than %d characters", domain.ErrInvalidAccount, domain.MaxDisplayCodeLength)
	}

	ledger, err := uc.ledgerRepo.GetByID(ctx, req.LedgerID)
	if err != nil {
		return nil, err
	}
	if ledger.TenantID != req.TenantID {
		return nil, domain.ErrLedgerNotFound
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	account := &domain.Account{
		ID:             id,
		TenantID:       req.TenantID,
		LedgerID:       req.LedgerID,
		DisplayCode:    req.DisplayCode,
		AccountTypeID:  req.AccountTypeID,
		UserID:         req.UserID,
		IdempotenceKey: req.IdempotenceKey,
		Audit:          domain.NewAuditMetadata(req.CreatedBy, now),
	}

	// Add transaction timeout
	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	stored, err := uc.accountRepo.Create(txCtx, tx, account)
	if err != nil {
		return nil, err
	}

	// Replayed request: nothing new to announce.
	if stored.ID != account.ID {
		return stored, nil
	}

	event := &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   stored.ID.String(),
		AggregateType: domain.AggregateTypeAccount,
		EventType:     domain.EventTypeAccountCreated,
		Payload: map[string]any{
			"account_id":   stored.ID.String(),
			"tenant_id":    stored.TenantID.String(),
			"ledger_id":    stored.LedgerID.String(),
			"display_code": stored.DisplayCode,
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
		uc.metrics.AccountsCreated.Inc()
	}

	return stored, nil
}

// GetAccount retrieves an account by ID.
func (uc *AccountUseCase) GetAccount(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	return uc.accountRepo.GetByID(ctx, id)
}

// ListAccountsInput represents input for listing accounts of a ledger.
type ListAccountsInput struct {
	LedgerID uuid.UUID
	Limit    int
	Offset   int
}

// ListAccounts lists accounts of a ledger with pagination.
func (uc *AccountUseCase) ListAccounts(ctx context.Context, input ListAccountsInput) ([]*domain.Account, error) {
	limit, offset, err := domain.ValidatePagination(input.Limit, input.Offset)
	if err != nil {
		return nil, err
	}
	return uc.accountRepo.ListByLedger(ctx, input.LedgerID, limit, offset)
}
