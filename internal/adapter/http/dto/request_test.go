package dto

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/iho/ledgerengine/internal/domain"
)

func validTransferRequest() TransferRequest {
	return TransferRequest{
		ID:              uuid.New(),
		TenantID:        uuid.New(),
		DebitAccountID:  uuid.New(),
		CreditAccountID: uuid.New(),
		LedgerID:        uuid.New(),
		Amount:          100,
		Type:            "regular",
	}
}

func TestTransferRequest_Validate(t *testing.T) {
	pendingID := uuid.New()

	tests := []struct {
		name    string
		mutate  func(r *TransferRequest)
		wantErr string
	}{
		{name: "valid regular", mutate: func(r *TransferRequest) {}},
		{name: "non-positive amount is left to the engine", mutate: func(r *TransferRequest) { r.Amount = 0 }},
		{name: "missing id", mutate: func(r *TransferRequest) { r.ID = uuid.Nil }, wantErr: "id"},
		{name: "missing debit", mutate: func(r *TransferRequest) { r.DebitAccountID = uuid.Nil }, wantErr: "debit_account_id"},
		{name: "unknown type", mutate: func(r *TransferRequest) { r.Type = "reversal" }, wantErr: "type"},
		{
			name:    "post pending without ref",
			mutate:  func(r *TransferRequest) { r.Type = "post_pending" },
			wantErr: "pending_id",
		},
		{
			name: "void pending with ref",
			mutate: func(r *TransferRequest) {
				r.Type = "void_pending"
				r.PendingID = &pendingID
			},
		},
		{
			name: "regular with ref",
			mutate: func(r *TransferRequest) {
				r.PendingID = &pendingID
			},
			wantErr: "pending_id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validTransferRequest()
			tt.mutate(&req)

			err := req.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("expected valid request, got %v", err)
				}
				return
			}

			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error mentioning %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestTransferRequest_ToDomain(t *testing.T) {
	pendingID := uuid.New()
	remarks := "invoice 42"
	req := validTransferRequest()
	req.Type = "post_pending"
	req.PendingID = &pendingID
	req.Remarks = &remarks
	req.Code = 3

	transfer, err := req.ToDomain()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if transfer.Type != domain.PostPending(pendingID) {
		t.Fatalf("expected post pending of %s, got %+v", pendingID, transfer.Type)
	}

	if transfer.ID != req.ID || transfer.Amount != 100 || transfer.Code != 3 || transfer.Remarks != &remarks {
		t.Fatalf("unexpected transfer %+v", transfer)
	}
}

func TestCreateTransfersRequest_ValidateReportsNestedField(t *testing.T) {
	bad := validTransferRequest()
	bad.LedgerID = uuid.Nil

	err := CreateTransfersRequest{Transfers: []TransferRequest{validTransferRequest(), bad}}.Validate()
	if err == nil || !strings.Contains(err.Error(), "ledger_id") {
		t.Fatalf("expected nested ledger_id error, got %v", err)
	}
}

func TestCreateBatchTransfersRequest_DecodesGroups(t *testing.T) {
	a, b := validTransferRequest(), validTransferRequest()
	body, _ := json.Marshal(map[string]any{"groups": [][]TransferRequest{{a}, {b}}})

	var req CreateBatchTransfersRequest
	if err := json.Unmarshal(body, &req); err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	if err := req.Validate(); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}

	batch, err := req.ToDomain()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(batch) != 2 || batch[0][0].ID != a.ID || batch[1][0].ID != b.ID {
		t.Fatalf("expected group order to be kept, got %+v", batch)
	}
}

func TestCreateAccountRequest_Validate(t *testing.T) {
	req := CreateAccountRequest{
		TenantID:       uuid.New(),
		LedgerID:       uuid.New(),
		DisplayCode:    strings.Repeat("x", domain.MaxDisplayCodeLength+1),
		IdempotenceKey: uuid.New(),
		CreatedBy:      uuid.New(),
	}

	if err := req.Validate(); err == nil || !strings.Contains(err.Error(), "display_code") {
		t.Fatalf("expected display_code length error, got %v", err)
	}

	req.DisplayCode = "CASH"
	if err := req.Validate(); err != nil {
		t.Fatalf("expected valid request, got %v", err)
	}

	if got := req.ToDomain(); got.LedgerID != req.LedgerID || got.DisplayCode != "CASH" {
		t.Fatalf("unexpected domain request %+v", got)
	}
}

func TestCreateLedgerRequest_Validate(t *testing.T) {
	req := CreateLedgerRequest{
		TenantID:         uuid.New(),
		CurrencyMasterID: uuid.New(),
		IdempotenceKey:   uuid.New(),
		CreatedBy:        uuid.New(),
	}

	if err := req.Validate(); err == nil || !strings.Contains(err.Error(), "display_name") {
		t.Fatalf("expected display_name required error, got %v", err)
	}

	req.DisplayName = "EUR"
	if err := req.Validate(); err != nil {
		t.Fatalf("expected valid request, got %v", err)
	}
}
