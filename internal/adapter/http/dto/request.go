package dto

import (
	"errors"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/iho/ledgerengine/internal/domain"
)

var errBlankUUID = errors.New("cannot be blank")

// requiredUUID rejects the zero UUID, which ozzo's Required cannot detect on
// a fixed-size array.
var requiredUUID = validation.By(func(value any) error {
	if id, ok := value.(uuid.UUID); ok && id == uuid.Nil {
		return errBlankUUID
	}
	return nil
})

// TransferRequest is one transfer of a linked group. Amount and remarks are
// not checked here: the engine reports them as rejection reasons.
type TransferRequest struct {
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
	CreatedAt       int64      `json:"created_at,omitempty"`
}

// Validate checks the request shape.
func (r TransferRequest) Validate() error {
	resolves := r.Type == domain.KindPostPending.String() || r.Type == domain.KindVoidPending.String()

	return validation.ValidateStruct(&r,
		validation.Field(&r.ID, requiredUUID),
		validation.Field(&r.TenantID, requiredUUID),
		validation.Field(&r.DebitAccountID, requiredUUID),
		validation.Field(&r.CreditAccountID, requiredUUID),
		validation.Field(&r.LedgerID, requiredUUID),
		validation.Field(&r.Type, validation.Required, validation.In(
			domain.KindRegular.String(),
			domain.KindPending.String(),
			domain.KindPostPending.String(),
			domain.KindVoidPending.String(),
		)),
		validation.Field(&r.PendingID,
			validation.When(resolves, validation.Required),
			validation.When(!resolves, validation.Nil.Error("only allowed for post_pending and void_pending")),
		),
	)
}

// ToDomain converts the request into a transfer. Validate must pass first.
func (r TransferRequest) ToDomain() (*domain.Transfer, error) {
	kind, err := domain.ParseTransferKind(r.Type)
	if err != nil {
		return nil, err
	}

	t := &domain.Transfer{
		ID:              r.ID,
		TenantID:        r.TenantID,
		DebitAccountID:  r.DebitAccountID,
		CreditAccountID: r.CreditAccountID,
		CausedByEventID: r.CausedByEventID,
		GroupingID:      r.GroupingID,
		LedgerID:        r.LedgerID,
		Code:            r.Code,
		Amount:          r.Amount,
		Remarks:         r.Remarks,
		Type:            domain.TransferType{Kind: kind},
		CreatedAt:       r.CreatedAt,
	}
	if r.PendingID != nil {
		t.Type.PendingID = *r.PendingID
	}

	return t, nil
}

// CreateTransfersRequest submits one linked group.
type CreateTransfersRequest struct {
	Transfers []TransferRequest `json:"transfers"`
}

// Validate checks every transfer of the group.
func (r CreateTransfersRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Transfers),
	)
}

// ToDomain converts the group.
func (r CreateTransfersRequest) ToDomain() ([]*domain.Transfer, error) {
	return transfersToDomain(r.Transfers)
}

// CreateBatchTransfersRequest submits independent linked groups.
type CreateBatchTransfersRequest struct {
	Groups [][]TransferRequest `json:"groups"`
}

// Validate checks every transfer of every group.
func (r CreateBatchTransfersRequest) Validate() error {
	for i, group := range r.Groups {
		if err := (CreateTransfersRequest{Transfers: group}).Validate(); err != nil {
			return validation.Errors{"groups": validation.Errors{strconv.Itoa(i): err}}
		}
	}
	return nil
}

// ToDomain converts every group, keeping order.
func (r CreateBatchTransfersRequest) ToDomain() ([][]*domain.Transfer, error) {
	batch := make([][]*domain.Transfer, len(r.Groups))
	for i, group := range r.Groups {
		transfers, err := transfersToDomain(group)
		if err != nil {
			return nil, err
		}
		batch[i] = transfers
	}
	return batch, nil
}

func transfersToDomain(reqs []TransferRequest) ([]*domain.Transfer, error) {
	transfers := make([]*domain.Transfer, len(reqs))
	for i, req := range reqs {
		t, err := req.ToDomain()
		if err != nil {
			return nil, err
		}
		transfers[i] = t
	}
	return transfers, nil
}

// CreateAccountRequest represents a request to create an account.
type CreateAccountRequest struct {
	TenantID       uuid.UUID `json:"tenant_id"`
	LedgerID       uuid.UUID `json:"ledger_id"`
	DisplayCode    string    `json:"display_code"`
	AccountTypeID  uuid.UUID `json:"account_type_id"`
	UserID         uuid.UUID `json:"user_id"`
	IdempotenceKey uuid.UUID `json:"idempotence_key"`
	CreatedBy      uuid.UUID `json:"created_by"`
}

// Validate checks the request shape.
func (r CreateAccountRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.TenantID, requiredUUID),
		validation.Field(&r.LedgerID, requiredUUID),
		validation.Field(&r.DisplayCode, validation.Required, validation.RuneLength(1, domain.MaxDisplayCodeLength)),
		validation.Field(&r.IdempotenceKey, requiredUUID),
		validation.Field(&r.CreatedBy, requiredUUID),
	)
}

// ToDomain converts to the use case request.
func (r CreateAccountRequest) ToDomain() domain.CreateAccountRequest {
	return domain.CreateAccountRequest{
		TenantID:       r.TenantID,
		LedgerID:       r.LedgerID,
		DisplayCode:    r.DisplayCode,
		AccountTypeID:  r.AccountTypeID,
		UserID:         r.UserID,
		IdempotenceKey: r.IdempotenceKey,
		CreatedBy:      r.CreatedBy,
	}
}

// CreateLedgerRequest represents a request to create a ledger master.
type CreateLedgerRequest struct {
	TenantID         uuid.UUID `json:"tenant_id"`
	DisplayName      string    `json:"display_name"`
	CurrencyMasterID uuid.UUID `json:"currency_master_id"`
	IdempotenceKey   uuid.UUID `json:"idempotence_key"`
	CreatedBy        uuid.UUID `json:"created_by"`
}

// Validate checks the request shape.
func (r CreateLedgerRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.TenantID, requiredUUID),
		validation.Field(&r.DisplayName, validation.Required, validation.RuneLength(1, domain.MaxDisplayNameLength)),
		validation.Field(&r.CurrencyMasterID, requiredUUID),
		validation.Field(&r.IdempotenceKey, requiredUUID),
		validation.Field(&r.CreatedBy, requiredUUID),
	)
}

// ToDomain converts to the use case request.
func (r CreateLedgerRequest) ToDomain() domain.CreateLedgerMasterRequest {
	return domain.CreateLedgerMasterRequest{
		TenantID:         r.TenantID,
		DisplayName:      r.DisplayName,
		CurrencyMasterID: r.CurrencyMasterID,
		IdempotenceKey:   r.IdempotenceKey,
		CreatedBy:        r.CreatedBy,
	}
}
