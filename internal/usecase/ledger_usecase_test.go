package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"

	"github.com/iho/ledgerengine/internal/domain"
	"github.com/iho/ledgerengine/internal/usecase"
	"github.com/iho/ledgerengine/internal/usecase/mocks"
)

func totals(dp, cp, dpend, cpend int64) usecase.LedgerTotals {
	return usecase.LedgerTotals{
		DebitsPosted:   decimal.NewFromInt(dp),
		CreditsPosted:  decimal.NewFromInt(cp),
		DebitsPending:  decimal.NewFromInt(dpend),
		CreditsPending: decimal.NewFromInt(cpend),
	}
}

func TestLedgerUseCase_CheckConsistency(t *testing.T) {
	tests := []struct {
		name        string
		totals      usecase.LedgerTotals
		wantPosted  bool
		wantPending bool
	}{
		{name: "balanced", totals: totals(100, 100, 30, 30), wantPosted: true, wantPending: true},
		{name: "posted imbalance", totals: totals(100, 90, 30, 30), wantPosted: false, wantPending: true},
		{name: "pending imbalance", totals: totals(100, 100, 30, 0), wantPosted: true, wantPending: false},
		{name: "empty ledger", totals: totals(0, 0, 0, 0), wantPosted: true, wantPending: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			ledgerRepo := mocks.NewMockLedgerRepository(ctrl)
			masters := mocks.NewMockLedgerMasterStore()

			ledgerID := uuid.Must(uuid.NewV7())
			masters.Put(&domain.LedgerMaster{ID: ledgerID})
			ledgerRepo.EXPECT().Totals(gomock.Any(), ledgerID).Return(tt.totals, nil)

			uc := usecase.NewLedgerUseCase(nil, masters, ledgerRepo, nil, nil, nil)
			report, err := uc.CheckConsistency(context.Background(), ledgerID)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if report.PostedBalanced != tt.wantPosted {
				t.Errorf("posted balanced: got %v, want %v", report.PostedBalanced, tt.wantPosted)
			}
			if report.PendingBalanced != tt.wantPending {
				t.Errorf("pending balanced: got %v, want %v", report.PendingBalanced, tt.wantPending)
			}
			if report.Consistent() != (tt.wantPosted && tt.wantPending) {
				t.Errorf("unexpected Consistent() = %v", report.Consistent())
			}
		})
	}
}

func TestLedgerUseCase_CheckConsistencyUnknownLedger(t *testing.T) {
	ctrl := gomock.NewController(t)
	uc := usecase.NewLedgerUseCase(nil, mocks.NewMockLedgerMasterStore(), mocks.NewMockLedgerRepository(ctrl), nil, nil, nil)

	_, err := uc.CheckConsistency(context.Background(), uuid.Must(uuid.NewV7()))
	if !errors.Is(err, domain.ErrLedgerNotFound) {
		t.Fatalf("expected ErrLedgerNotFound, got %v", err)
	}
}

func TestLedgerUseCase_CreateLedgerMaster(t *testing.T) {
	ctrl := gomock.NewController(t)
	outbox := mocks.NewMockOutboxRepository(ctrl)
	outbox.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(2)

	masters := mocks.NewMockLedgerMasterStore()
	uc := usecase.NewLedgerUseCase(
		mocks.NewMockTransactionManager(), masters, mocks.NewMockLedgerRepository(ctrl), outbox, mocks.NewMockIDGenerator(), nil,
	)

	req := domain.CreateLedgerMasterRequest{
		TenantID:         uuid.Must(uuid.NewV7()),
		DisplayName:      "USD ledger",
		CurrencyMasterID: uuid.Must(uuid.NewV7()),
		IdempotenceKey:   uuid.Must(uuid.NewV7()),
	}

	created, err := uc.CreateLedgerMaster(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	replayed, err := uc.CreateLedgerMaster(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error on replay: %v", err)
	}
	if replayed.ID != created.ID {
		t.Errorf("expected replay to return %s, got %s", created.ID, replayed.ID)
	}

	got, err := uc.GetLedgerMaster(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.DisplayName != "USD ledger" {
		t.Errorf("unexpected display name %q", got.DisplayName)
	}

	req.DisplayName = ""
	if _, err := uc.CreateLedgerMaster(context.Background(), req); !errors.Is(err, domain.ErrInvalidLedger) {
		t.Errorf("expected ErrInvalidLedger, got %v", err)
	}

	// Length is counted in characters, not bytes.
	req.IdempotenceKey = uuid.Must(uuid.NewV7())
	req.DisplayName = strings.Repeat("ü", domain.MaxDisplayNameLength)
	if _, err := uc.CreateLedgerMaster(context.Background(), req); err != nil {
		t.Errorf("expected %d-character name to be accepted, got %v", domain.MaxDisplayNameLength, err)
	}

	req.IdempotenceKey = uuid.Must(uuid.NewV7())
	req.DisplayName += "ü"
	if _, err := uc.CreateLedgerMaster(context.Background(), req); !errors.Is(err, domain.ErrInvalidLedger) {
		t.Errorf("expected ErrInvalidLedger, got %v", err)
	}
}
