package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/iho/ledgerengine/internal/domain"
	"github.com/iho/ledgerengine/internal/infrastructure/metrics"
)

const tracerName = "github.com/iho/ledgerengine/internal/usecase"

// TransferConfig bounds the work a single call may request.
type TransferConfig struct {
	MaxLinkedTransfers int
	MaxBatchTransfers  int
	// BatchConcurrency is the number of linked groups of one batch applied
	// at the same time. 1 applies them in submission order.
	BatchConcurrency int
	TxTimeout        time.Duration
	CacheTTL         time.Duration
}

// DefaultTransferConfig returns the default engine limits.
func DefaultTransferConfig() TransferConfig {
	return TransferConfig{
		MaxLinkedTransfers: DefaultMaxLinkedTransfers,
		MaxBatchTransfers:  DefaultMaxBatchTransfers,
		BatchConcurrency:   1,
		TxTimeout:          DefaultTransactionTimeout,
		CacheTTL:           DefaultTransferCacheTTL,
	}
}

// TransferOption configures optional collaborators of TransferUseCase.
type TransferOption func(*TransferUseCase)

func WithTransferMetrics(m *metrics.Metrics) TransferOption {
	return func(uc *TransferUseCase) { uc.metrics = m }
}

func WithRetrier(r Retrier) TransferOption {
	return func(uc *TransferUseCase) { uc.retrier = r }
}

func WithTransferCache(c Cache) TransferOption {
	return func(uc *TransferUseCase) { uc.cache = c }
}

func WithTracer(t trace.Tracer) TransferOption {
	return func(uc *TransferUseCase) { uc.tracer = t }
}

// WithClock overrides the time source used to stamp transfers.
func WithClock(now func() time.Time) TransferOption {
	return func(uc *TransferUseCase) { uc.now = now }
}

// TransferUseCase applies linked transfer groups and batches of them.
type TransferUseCase struct {
	txManager    TransactionManager
	accountRepo  AccountRepository
	transferRepo TransferRepository
	pendingRepo  PendingRepository
	outboxRepo   OutboxRepository
	idGen        IDGenerator
	cfg          TransferConfig

	retrier Retrier
	cache   Cache
	metrics *metrics.Metrics
	tracer  trace.Tracer
	now     func() time.Time
}

// NewTransferUseCase creates a new TransferUseCase.
func NewTransferUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	transferRepo TransferRepository,
	pendingRepo PendingRepository,
	outboxRepo OutboxRepository,
	idGen IDGenerator,
	cfg TransferConfig,
	opts ...TransferOption,
) *TransferUseCase {
	defaults := DefaultTransferConfig()
	if cfg.MaxLinkedTransfers <= 0 {
		cfg.MaxLinkedTransfers = defaults.MaxLinkedTransfers
	}
	if cfg.MaxBatchTransfers <= 0 {
		cfg.MaxBatchTransfers = defaults.MaxBatchTransfers
	}
	if cfg.BatchConcurrency <= 0 {
		cfg.BatchConcurrency = defaults.BatchConcurrency
	}
	if cfg.TxTimeout <= 0 {
		cfg.TxTimeout = defaults.TxTimeout
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = defaults.CacheTTL
	}

	uc := &TransferUseCase{
		txManager:    txManager,
		accountRepo:  accountRepo,
		transferRepo: transferRepo,
		pendingRepo:  pendingRepo,
		outboxRepo:   outboxRepo,
		idGen:        idGen,
		cfg:          cfg,
		retrier:      noRetry{},
		tracer:       otel.Tracer(tracerName),
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}

	return uc
}

// CreateTransfers applies a linked group atomically. Either every transfer is
// committed or none is, and each gets an outcome in submission order.
// Validation failures are outcomes; the error is reserved for storage failures
// and for groups larger than the configured cap.
func (uc *TransferUseCase) CreateTransfers(ctx context.Context, transfers []*domain.Transfer) ([]domain.TransferOutcome, error) {
	if len(transfers) > uc.cfg.MaxLinkedTransfers {
		return nil, fmt.Errorf("%w: %d > %d", domain.ErrLinkedGroupTooLarge, len(transfers), uc.cfg.MaxLinkedTransfers)
	}

	if len(transfers) == 0 {
		return []domain.TransferOutcome{}, nil
	}

	ctx, span := uc.tracer.Start(ctx, "ledger.CreateTransfers",
		trace.WithAttributes(attribute.Int("ledger.group_size", len(transfers))))
	defer span.End()

	start := time.Now()
	group := uc.prepare(transfers)

	var outcomes []domain.TransferOutcome
	err := uc.retrier.Retry(ctx, func() error {
		var err error
		outcomes, err = uc.applyLinked(ctx, group)
		return err
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "linked group failed")
		if uc.metrics != nil {
			uc.metrics.StorageErrors.WithLabelValues("create_transfers").Inc()
			uc.metrics.LinkedGroups.WithLabelValues("error").Inc()
		}
		return nil, err
	}

	committed := len(outcomes) > 0 && outcomes[0].Committed
	span.SetAttributes(attribute.Bool("ledger.committed", committed))

	if uc.metrics != nil {
		uc.recordGroup(group, outcomes, committed)
		uc.metrics.LinkedGroupDuration.Observe(time.Since(start).Seconds())
		uc.metrics.LinkedGroupSize.Observe(float64(len(group)))
	}

	return outcomes, nil
}

// CreateBatchTransfers applies independent linked groups. Outcomes keep the
// group order. A storage error in any group fails the call; groups that were
// already committed stay committed.
func (uc *TransferUseCase) CreateBatchTransfers(ctx context.Context, batch [][]*domain.Transfer) ([][]domain.TransferOutcome, error) {
	total := 0
	for _, group := range batch {
		if len(group) > uc.cfg.MaxLinkedTransfers {
			return nil, fmt.Errorf("%w: %d > %d", domain.ErrLinkedGroupTooLarge, len(group), uc.cfg.MaxLinkedTransfers)
		}
		total += len(group)
	}

	if total > uc.cfg.MaxBatchTransfers {
		return nil, fmt.Errorf("%w: %d > %d", domain.ErrBatchTooLarge, total, uc.cfg.MaxBatchTransfers)
	}

	ctx, span := uc.tracer.Start(ctx, "ledger.CreateBatchTransfers",
		trace.WithAttributes(
			attribute.Int("ledger.batch_groups", len(batch)),
			attribute.Int("ledger.batch_transfers", total),
		))
	defer span.End()

	if uc.metrics != nil {
		uc.metrics.BatchSize.Observe(float64(total))
	}

	results := make([][]domain.TransferOutcome, len(batch))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uc.cfg.BatchConcurrency)

	for i, group := range batch {
		g.Go(func() error {
			outcomes, err := uc.CreateTransfers(gctx, group)
			if err != nil {
				return fmt.Errorf("linked group %d: %w", i, err)
			}
			results[i] = outcomes
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "batch failed")
		return nil, err
	}

	return results, nil
}

// GetTransfer retrieves a transfer by ID. Transfers never change once
// committed, so they are served from the cache when one is configured.
func (uc *TransferUseCase) GetTransfer(ctx context.Context, id uuid.UUID) (*domain.Transfer, error) {
	key := transferCacheKey(id)

	if uc.cache != nil {
		if data, err := uc.cache.Get(ctx, key); err == nil && data != nil {
			var cached domain.Transfer
			if err := json.Unmarshal(data, &cached); err == nil {
				return &cached, nil
			}
		}
	}

	transfer, err := uc.transferRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		if data, err := json.Marshal(transfer); err == nil {
			if err := uc.cache.Set(ctx, key, data, uc.cfg.CacheTTL); err != nil {
				log.Warn().Err(err).Str("transfer_id", id.String()).Msg("failed to cache transfer")
			}
		}
	}

	return transfer, nil
}

// ListTransfersForAccountInput selects transfers touching an account whose
// creation time lies in [From, To).
type ListTransfersForAccountInput struct {
	AccountID uuid.UUID
	From      time.Time
	To        time.Time
	Limit     int
	Offset    int
}

// ListTransfersForAccount lists transfers where the account is debit or credit.
func (uc *TransferUseCase) ListTransfersForAccount(ctx context.Context, input ListTransfersForAccountInput) ([]*domain.Transfer, error) {
	if !input.From.Before(input.To) {
		return nil, fmt.Errorf("%w: from must be before to", domain.ErrInvalidInterval)
	}

	if input.To.Sub(input.From) > MaxTransferInterval {
		return nil, fmt.Errorf("%w: interval longer than %s", domain.ErrInvalidInterval, MaxTransferInterval)
	}

	limit, offset, err := domain.ValidatePagination(input.Limit, input.Offset)
	if err != nil {
		return nil, err
	}

	return uc.transferRepo.ListByAccount(ctx, input.AccountID, input.From.UnixMicro(), input.To.UnixMicro(), limit, offset)
}

// prepare copies the caller's transfers and stamps a creation time where the
// caller left none.
func (uc *TransferUseCase) prepare(transfers []*domain.Transfer) []*domain.Transfer {
	now := uc.now().UTC().UnixMicro()

	group := make([]*domain.Transfer, len(transfers))
	for i, t := range transfers {
		c := *t
		if c.CreatedAt == 0 {
			c.CreatedAt = now
		}
		group[i] = &c
	}

	return group
}

func (uc *TransferUseCase) applyLinked(ctx context.Context, group []*domain.Transfer) ([]domain.TransferOutcome, error) {
	txCtx, cancel := context.WithTimeout(ctx, uc.cfg.TxTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	ws, err := uc.loadWorkingSet(txCtx, tx, group)
	if err != nil {
		return nil, err
	}

	for i, t := range group {
		if reasons := ValidateTransfer(t, ws); len(reasons) > 0 {
			return rejectGroup(group, i, reasons), nil
		}

		if err := ws.stage(t); err != nil {
			return nil, fmt.Errorf("stage transfer %s: %w", t.ID, err)
		}
	}

	for i, t := range ws.staged {
		err := uc.transferRepo.Create(txCtx, tx, t)
		if errors.Is(err, domain.ErrTransferExists) {
			return rejectGroup(group, i, []string{domain.ReasonTransferExists}), nil
		}
		if err != nil {
			return nil, err
		}
	}

	for _, p := range ws.created {
		if err := uc.pendingRepo.Create(txCtx, tx, p); err != nil {
			return nil, err
		}
	}

	for _, p := range ws.resolved {
		if err := uc.pendingRepo.Resolve(txCtx, tx, p); err != nil {
			return nil, err
		}
	}

	updatedAt := uc.now().UTC().UnixMicro()
	for _, id := range ws.touchedAccounts() {
		if err := uc.accountRepo.ApplyDelta(txCtx, tx, id, ws.deltas[id], updatedAt); err != nil {
			return nil, err
		}
	}

	if err := uc.writeEvents(txCtx, tx, ws); err != nil {
		return nil, err
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	outcomes := make([]domain.TransferOutcome, len(group))
	for i, t := range group {
		outcomes[i] = domain.CommittedOutcome(t.ID)
	}

	return outcomes, nil
}

// loadWorkingSet locks referenced pending rows and then every touched account,
// each set in ascending id order.
func (uc *TransferUseCase) loadWorkingSet(ctx context.Context, tx Transaction, group []*domain.Transfer) (*workingSet, error) {
	ids := make([]uuid.UUID, 0, len(group)*2)
	refs := make([]uuid.UUID, 0)

	for _, t := range group {
		ids = append(ids, t.ID)
		if ref := t.Type.PendingRef(); ref != nil {
			refs = append(refs, *ref)
		}
	}

	transfers, err := uc.transferRepo.GetByIDs(ctx, tx, uniqueSorted(append(ids, refs...)))
	if err != nil {
		return nil, err
	}

	pendings, err := uc.pendingRepo.GetByIDsForUpdate(ctx, tx, uniqueSorted(refs))
	if err != nil {
		return nil, err
	}

	accountIDs := make([]uuid.UUID, 0, len(group)*2+len(pendings)*2)
	for _, t := range group {
		accountIDs = append(accountIDs, t.DebitAccountID, t.CreditAccountID)
	}
	for _, p := range pendings {
		accountIDs = append(accountIDs, p.DebitAccountID, p.CreditAccountID)
	}

	accounts, err := uc.accountRepo.GetByIDsForUpdate(ctx, tx, uniqueSorted(accountIDs))
	if err != nil {
		return nil, err
	}

	return newWorkingSet(accounts, transfers, pendings), nil
}

func (uc *TransferUseCase) writeEvents(ctx context.Context, tx Transaction, ws *workingSet) error {
	now := uc.now().UTC()

	for _, t := range ws.staged {
		event := &domain.OutboxEvent{
			ID:            uc.idGen.Generate(),
			AggregateID:   t.ID.String(),
			AggregateType: domain.AggregateTypeTransfer,
			EventType:     domain.EventTypeTransferCommitted,
			Payload:       domain.TransferCommittedPayload(t),
			CreatedAt:     now,
		}
		if err := uc.outboxRepo.Create(ctx, tx, event); err != nil {
			return err
		}
	}

	for _, p := range ws.resolvedAll() {
		event := &domain.OutboxEvent{
			ID:            uc.idGen.Generate(),
			AggregateID:   p.PendingID.String(),
			AggregateType: domain.AggregateTypeTransfer,
			EventType:     domain.EventTypePendingResolved,
			Payload:       domain.PendingResolvedPayload(p),
			CreatedAt:     now,
		}
		if err := uc.outboxRepo.Create(ctx, tx, event); err != nil {
			return err
		}
	}

	return nil
}

func (uc *TransferUseCase) recordGroup(group []*domain.Transfer, outcomes []domain.TransferOutcome, committed bool) {
	if !committed {
		uc.metrics.LinkedGroups.WithLabelValues("rejected").Inc()
		for _, o := range outcomes {
			uc.metrics.TransfersRejected.WithLabelValues(rejectionCause(o.Reason)).Inc()
		}
		return
	}

	uc.metrics.LinkedGroups.WithLabelValues("committed").Inc()
	for _, t := range group {
		uc.metrics.TransfersCommitted.WithLabelValues(t.Type.Kind.String()).Inc()
		uc.metrics.TransferAmount.Observe(float64(t.Amount))

		switch t.Type.Kind {
		case domain.KindPostPending:
			uc.metrics.PendingResolutions.WithLabelValues(string(domain.PendingStatusPosted)).Inc()
		case domain.KindVoidPending:
			uc.metrics.PendingResolutions.WithLabelValues(string(domain.PendingStatusVoided)).Inc()
		}
	}
}

func rejectionCause(reasons []string) string {
	if len(reasons) == 1 {
		switch reasons[0] {
		case domain.ReasonLinkedTransferFailed:
			return "linked"
		case domain.ReasonTransferExists:
			return "duplicate"
		}
	}
	return "validation"
}

// rejectGroup builds the outcomes of a rolled back group: the failing transfer
// carries its reasons and every other one is marked as a linked failure.
func rejectGroup(group []*domain.Transfer, failed int, reasons []string) []domain.TransferOutcome {
	outcomes := make([]domain.TransferOutcome, len(group))
	for i, t := range group {
		if i == failed {
			outcomes[i] = domain.RejectedOutcome(t.ID, reasons...)
			continue
		}
		outcomes[i] = domain.RejectedOutcome(t.ID, domain.ReasonLinkedTransferFailed)
	}

	return outcomes
}

func transferCacheKey(id uuid.UUID) string {
	return "transfer:" + id.String()
}

type noRetry struct{}

func (noRetry) Retry(_ context.Context, operation func() error) error {
	return operation()
}
