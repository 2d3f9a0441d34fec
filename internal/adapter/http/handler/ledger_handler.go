package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/iho/ledgerengine/internal/adapter/http/dto"
	"github.com/iho/ledgerengine/internal/domain"
	"github.com/iho/ledgerengine/internal/usecase"
)

// LedgerService defines the behavior needed by LedgerHandler.
type LedgerService interface {
	CreateLedgerMaster(ctx context.Context, req domain.CreateLedgerMasterRequest) (*domain.LedgerMaster, error)
	GetLedgerMaster(ctx context.Context, id uuid.UUID) (*domain.LedgerMaster, error)
	CheckConsistency(ctx context.Context, ledgerID uuid.UUID) (*usecase.ConsistencyReport, error)
}

// LedgerHandler handles ledger master operations and ledger-wide checks.
type LedgerHandler struct {
	ledgerUC       LedgerService
	reconciliation ReconciliationService
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(ledgerUC LedgerService, reconciliation ReconciliationService) *LedgerHandler {
	return &LedgerHandler{ledgerUC: ledgerUC, reconciliation: reconciliation}
}

// Create creates a ledger master.
func (h *LedgerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateLedgerRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	ledger, err := h.ledgerUC.CreateLedgerMaster(r.Context(), req.ToDomain())
	if err != nil {
		writeDomainError(w, "failed to create ledger", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.LedgerFromDomain(ledger))
}

// Get retrieves a ledger master by ID.
func (h *LedgerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	ledger, err := h.ledgerUC.GetLedgerMaster(r.Context(), id)
	if err != nil {
		writeDomainError(w, "failed to get ledger", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.LedgerFromDomain(ledger))
}

// CheckConsistency reports whether debits and credits of the ledger balance.
// An unbalanced ledger answers 409 with the same report body.
func (h *LedgerHandler) CheckConsistency(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	report, err := h.ledgerUC.CheckConsistency(r.Context(), id)
	if err != nil {
		writeDomainError(w, "failed to check consistency", err)
		return
	}

	status := http.StatusOK
	if !report.Consistent() {
		status = http.StatusConflict
	}

	writeJSON(w, status, dto.ConsistencyFromUseCase(report))
}

// Reconcile reconciles every account of the ledger.
func (h *LedgerHandler) Reconcile(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	report, err := h.reconciliation.GenerateReconciliationReport(r.Context(), id)
	if err != nil {
		writeDomainError(w, "failed to reconcile ledger", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ReconciliationReportFromUseCase(report))
}
