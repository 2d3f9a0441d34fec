package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/iho/ledgerengine/internal/adapter/http/dto"
	"github.com/iho/ledgerengine/internal/domain"
	"github.com/iho/ledgerengine/internal/usecase"
)

// AccountService defines the behavior needed by AccountHandler.
type AccountService interface {
	CreateAccount(ctx context.Context, req domain.CreateAccountRequest) (*domain.Account, error)
	GetAccount(ctx context.Context, id uuid.UUID) (*domain.Account, error)
	ListAccounts(ctx context.Context, input usecase.ListAccountsInput) ([]*domain.Account, error)
}

// ReconciliationService defines the reconciliation checks exposed over HTTP.
type ReconciliationService interface {
	ReconcileAccount(ctx context.Context, accountID uuid.UUID) (*usecase.ReconciliationResult, error)
	GenerateReconciliationReport(ctx context.Context, ledgerID uuid.UUID) (*usecase.ReconciliationReport, error)
}

// AccountHandler handles account-related HTTP requests.
type AccountHandler struct {
	accountUC      AccountService
	reconciliation ReconciliationService
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accountUC AccountService, reconciliation ReconciliationService) *AccountHandler {
	return &AccountHandler{accountUC: accountUC, reconciliation: reconciliation}
}

// Create creates a new account.
func (h *AccountHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateAccountRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	account, err := h.accountUC.CreateAccount(r.Context(), req.ToDomain())
	if err != nil {
		writeDomainError(w, "failed to create account", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.AccountFromDomain(account))
}

// Get retrieves an account by ID.
func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	account, err := h.accountUC.GetAccount(r.Context(), id)
	if err != nil {
		writeDomainError(w, "failed to get account", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountFromDomain(account))
}

// List lists the accounts of the ledger given by the ledger_id query parameter.
func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	ledgerID, err := uuid.Parse(r.URL.Query().Get("ledger_id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid ledger_id", err.Error())
		return
	}

	accounts, err := h.accountUC.ListAccounts(r.Context(), usecase.ListAccountsInput{
		LedgerID: ledgerID,
		Limit:    parseIntQuery(r, "limit", 50),
		Offset:   parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		writeDomainError(w, "failed to list accounts", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountsFromDomain(accounts))
}

// Reconcile recomputes the account counters from history and compares them.
func (h *AccountHandler) Reconcile(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	result, err := h.reconciliation.ReconcileAccount(r.Context(), id)
	if err != nil {
		writeDomainError(w, "failed to reconcile account", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ReconciliationFromUseCase(result))
}
