package usecase

import (
	"github.com/google/uuid"

	"github.com/iho/ledgerengine/internal/domain"
)

// TransferView answers lookups over committed state plus the effects of
// transfers staged earlier in the same linked group.
type TransferView interface {
	Account(id uuid.UUID) (*domain.Account, bool)
	Transfer(id uuid.UUID) (*domain.Transfer, bool)
	Pending(id uuid.UUID) (*domain.PendingTransfer, bool)
}

// ValidateTransfer returns every reason t cannot be applied, in a fixed order.
// An empty result means the transfer is valid. Rows of another tenant are
// treated as absent.
func ValidateTransfer(t *domain.Transfer, view TransferView) []string {
	reasons := []string{}

	if t.Amount <= 0 {
		reasons = append(reasons, domain.ReasonInvalidAmount(t.Amount))
	}

	debit, debitOK := tenantAccount(view, t.TenantID, t.DebitAccountID)
	if !debitOK {
		reasons = append(reasons, domain.ReasonNoAccount(t.DebitAccountID))
	}

	credit, creditOK := tenantAccount(view, t.TenantID, t.CreditAccountID)
	if !creditOK {
		reasons = append(reasons, domain.ReasonNoAccount(t.CreditAccountID))
	}

	if debitOK && creditOK {
		if debit.LedgerID != credit.LedgerID || debit.LedgerID != t.LedgerID {
			reasons = append(reasons, domain.ReasonLedgerMismatch(debit.LedgerID, credit.LedgerID, t.LedgerID))
		}
	}

	pendingOK := true
	if t.Type.ResolvesPending() {
		if reason := validatePendingRef(t, view); reason != "" {
			reasons = append(reasons, reason)
			pendingOK = false
		}
	}

	if _, exists := view.Transfer(t.ID); exists {
		reasons = append(reasons, domain.ReasonTransferExists)
	}

	if n := domain.RemarksLength(t.Remarks); n > domain.MaxRemarksLength {
		reasons = append(reasons, domain.ReasonRemarksTooLong(n))
	}

	if t.Amount > 0 && debitOK && creditOK && pendingOK {
		if id, overflow := counterOverflow(t, view); overflow {
			reasons = append(reasons, domain.ReasonCounterOverflow(id))
		}
	}

	return reasons
}

// counterOverflow reports the first account whose counters would pass
// MaxInt64 if t were applied. Resolutions move counters of the accounts named
// by the pending row.
func counterOverflow(t *domain.Transfer, view TransferView) (uuid.UUID, bool) {
	debitID, creditID := t.DebitAccountID, t.CreditAccountID
	var debit, credit domain.BalanceDelta

	switch t.Type.Kind {
	case domain.KindRegular:
		debit = domain.BalanceDelta{DebitsPosted: t.Amount}
		credit = domain.BalanceDelta{CreditsPosted: t.Amount}
	case domain.KindPending:
		debit = domain.BalanceDelta{DebitsPending: t.Amount}
		credit = domain.BalanceDelta{CreditsPending: t.Amount}
	case domain.KindPostPending:
		pending, ok := view.Pending(t.Type.PendingID)
		if !ok {
			return uuid.Nil, false
		}
		debitID, creditID = pending.DebitAccountID, pending.CreditAccountID
		debit = domain.BalanceDelta{DebitsPosted: t.Amount}
		credit = domain.BalanceDelta{CreditsPosted: t.Amount}
	default:
		return uuid.Nil, false
	}

	if a, ok := view.Account(debitID); ok && a.Overflows(debit) {
		return debitID, true
	}
	if a, ok := view.Account(creditID); ok && a.Overflows(credit) {
		return creditID, true
	}
	return uuid.Nil, false
}

func validatePendingRef(t *domain.Transfer, view TransferView) string {
	ref := t.Type.PendingID

	pending, ok := view.Pending(ref)
	if !ok || pending.TenantID != t.TenantID {
		if original, found := view.Transfer(ref); found && original.TenantID == t.TenantID &&
			original.Type.Kind != domain.KindPending {
			return domain.ReasonNotPending(ref)
		}
		return domain.ReasonPendingNotFound(ref)
	}

	if pending.IsResolved() {
		return domain.ReasonPendingResolved(ref)
	}

	if t.Type.Kind == domain.KindPostPending && t.Amount > pending.Outstanding() {
		return domain.ReasonPendingExceeded(t.Amount, pending.Outstanding(), ref)
	}

	return ""
}

func tenantAccount(view TransferView, tenantID, id uuid.UUID) (*domain.Account, bool) {
	account, ok := view.Account(id)
	if !ok || account.TenantID != tenantID {
		return nil, false
	}
	return account, true
}
