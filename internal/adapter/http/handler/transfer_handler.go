package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/iho/ledgerengine/internal/adapter/http/dto"
	"github.com/iho/ledgerengine/internal/domain"
	"github.com/iho/ledgerengine/internal/usecase"
)

// TransferService defines the behavior needed by TransferHandler.
type TransferService interface {
	CreateTransfers(ctx context.Context, transfers []*domain.Transfer) ([]domain.TransferOutcome, error)
	CreateBatchTransfers(ctx context.Context, batch [][]*domain.Transfer) ([][]domain.TransferOutcome, error)
	GetTransfer(ctx context.Context, id uuid.UUID) (*domain.Transfer, error)
	ListTransfersForAccount(ctx context.Context, input usecase.ListTransfersForAccountInput) ([]*domain.Transfer, error)
}

// TransferHandler handles transfer-related HTTP requests.
type TransferHandler struct {
	transferUC TransferService
}

// NewTransferHandler creates a new TransferHandler.
func NewTransferHandler(transferUC TransferService) *TransferHandler {
	return &TransferHandler{transferUC: transferUC}
}

// Create applies one linked group. Rejected transfers are reported in the
// outcomes with a 200; only capacity and storage failures are HTTP errors.
func (h *TransferHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTransfersRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	transfers, err := req.ToDomain()
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid transfer", err.Error())
		return
	}

	outcomes, err := h.transferUC.CreateTransfers(r.Context(), transfers)
	if err != nil {
		writeDomainError(w, "failed to create transfers", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.OutcomesFromDomain(outcomes))
}

// CreateBatch applies independent linked groups in order.
func (h *TransferHandler) CreateBatch(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateBatchTransfersRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	batch, err := req.ToDomain()
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid transfer", err.Error())
		return
	}

	outcomes, err := h.transferUC.CreateBatchTransfers(r.Context(), batch)
	if err != nil {
		writeDomainError(w, "failed to create batch", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.BatchOutcomesFromDomain(outcomes))
}

// Get retrieves a transfer by ID.
func (h *TransferHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	transfer, err := h.transferUC.GetTransfer(r.Context(), id)
	if err != nil {
		writeDomainError(w, "failed to get transfer", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.TransferFromDomain(transfer))
}

// ListByAccount lists transfers of an account created in [from, to). Both
// bounds are RFC 3339 timestamps.
func (h *TransferHandler) ListByAccount(w http.ResponseWriter, r *http.Request) {
	accountID, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	from, err := time.Parse(time.RFC3339Nano, r.URL.Query().Get("from"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid from", err.Error())
		return
	}

	to, err := time.Parse(time.RFC3339Nano, r.URL.Query().Get("to"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid to", err.Error())
		return
	}

	transfers, err := h.transferUC.ListTransfersForAccount(r.Context(), usecase.ListTransfersForAccountInput{
		AccountID: accountID,
		From:      from,
		To:        to,
		Limit:     parseIntQuery(r, "limit", 50),
		Offset:    parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		writeDomainError(w, "failed to list transfers", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.TransfersFromDomain(transfers))
}
