package usecase

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/iho/ledgerengine/internal/domain"
)

// workingSet is the locked view one linked group is validated against. It
// starts from committed rows and accumulates the effects of staged transfers,
// which are only persisted once the whole group is valid.
type workingSet struct {
	accounts  map[uuid.UUID]*domain.Account
	transfers map[uuid.UUID]*domain.Transfer
	pendings  map[uuid.UUID]*domain.PendingTransfer

	staged   []*domain.Transfer
	created  []*domain.PendingTransfer
	resolved []*domain.PendingTransfer
	deltas   map[uuid.UUID]domain.BalanceDelta
}

func newWorkingSet(accounts []*domain.Account, transfers []*domain.Transfer, pendings []*domain.PendingTransfer) *workingSet {
	ws := &workingSet{
		accounts:  make(map[uuid.UUID]*domain.Account, len(accounts)),
		transfers: make(map[uuid.UUID]*domain.Transfer, len(transfers)),
		pendings:  make(map[uuid.UUID]*domain.PendingTransfer, len(pendings)),
		deltas:    make(map[uuid.UUID]domain.BalanceDelta),
	}

	for _, a := range accounts {
		ws.accounts[a.ID] = a.Clone()
	}

	for _, t := range transfers {
		ws.transfers[t.ID] = t
	}

	for _, p := range pendings {
		ws.pendings[p.PendingID] = p.Clone()
	}

	return ws
}

func (ws *workingSet) Account(id uuid.UUID) (*domain.Account, bool) {
	a, ok := ws.accounts[id]
	return a, ok
}

func (ws *workingSet) Transfer(id uuid.UUID) (*domain.Transfer, bool) {
	t, ok := ws.transfers[id]
	return t, ok
}

func (ws *workingSet) Pending(id uuid.UUID) (*domain.PendingTransfer, bool) {
	p, ok := ws.pendings[id]
	return p, ok
}

// stage applies the balance and pending effects of a validated transfer.
func (ws *workingSet) stage(t *domain.Transfer) error {
	switch t.Type.Kind {
	case domain.KindRegular:
		if err := ws.apply(t.DebitAccountID, domain.BalanceDelta{DebitsPosted: t.Amount}); err != nil {
			return err
		}
		if err := ws.apply(t.CreditAccountID, domain.BalanceDelta{CreditsPosted: t.Amount}); err != nil {
			return err
		}

	case domain.KindPending:
		if err := ws.apply(t.DebitAccountID, domain.BalanceDelta{DebitsPending: t.Amount}); err != nil {
			return err
		}
		if err := ws.apply(t.CreditAccountID, domain.BalanceDelta{CreditsPending: t.Amount}); err != nil {
			return err
		}

		pending := domain.NewPendingTransfer(t)
		ws.pendings[pending.PendingID] = pending
		ws.created = append(ws.created, pending)

	case domain.KindPostPending, domain.KindVoidPending:
		pending, ok := ws.pendings[t.Type.PendingID]
		if !ok {
			return fmt.Errorf("%w: %s", domain.ErrPendingNotFound, t.Type.PendingID)
		}

		var (
			debit, credit domain.BalanceDelta
			err           error
		)
		if t.Type.Kind == domain.KindPostPending {
			debit, credit, err = pending.Post(t.ID, t.Amount, t.CreatedAt)
		} else {
			debit, credit, err = pending.Void(t.ID, t.CreatedAt)
		}
		if err != nil {
			return err
		}

		if err := ws.apply(pending.DebitAccountID, debit); err != nil {
			return err
		}
		if err := ws.apply(pending.CreditAccountID, credit); err != nil {
			return err
		}

		if !ws.isCreated(pending.PendingID) {
			ws.resolved = append(ws.resolved, pending)
		}

	default:
		return fmt.Errorf("%w: %d", domain.ErrInvalidTransferType, t.Type.Kind)
	}

	ws.transfers[t.ID] = t
	ws.staged = append(ws.staged, t)

	return nil
}

func (ws *workingSet) apply(accountID uuid.UUID, delta domain.BalanceDelta) error {
	account, ok := ws.accounts[accountID]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrAccountNotFound, accountID)
	}

	if err := account.ValidateDelta(delta); err != nil {
		return fmt.Errorf("account %s: %w", accountID, err)
	}

	account.ApplyDelta(delta)
	ws.deltas[accountID] = ws.deltas[accountID].Add(delta)

	return nil
}

// isCreated reports whether the pending row is inserted by this group, in
// which case its final state is written by the insert.
func (ws *workingSet) isCreated(id uuid.UUID) bool {
	for _, p := range ws.created {
		if p.PendingID == id {
			return true
		}
	}
	return false
}

// resolvedAll returns every pending resolved by the group, including ones
// the group itself opened.
func (ws *workingSet) resolvedAll() []*domain.PendingTransfer {
	out := make([]*domain.PendingTransfer, 0, len(ws.resolved))
	for _, p := range ws.created {
		if p.IsResolved() {
			out = append(out, p)
		}
	}

	return append(out, ws.resolved...)
}

// touchedAccounts returns the ids with a non-zero net delta, sorted so balance
// updates hit rows in lock order.
func (ws *workingSet) touchedAccounts() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(ws.deltas))
	for id, d := range ws.deltas {
		if !d.IsZero() {
			ids = append(ids, id)
		}
	}
	sortIDs(ids)

	return ids
}

func sortIDs(ids []uuid.UUID) {
	sort.Slice(ids, func(i, j int) bool {
		return bytes.Compare(ids[i][:], ids[j][:]) < 0
	})
}

// uniqueSorted returns ids without duplicates or nil UUIDs, sorted.
func uniqueSorted(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]bool, len(ids))

	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if id == uuid.Nil || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	sortIDs(out)

	return out
}
