package domain

import (
	"testing"

	"github.com/google/uuid"
)

func TestTransferKind_RoundTrip(t *testing.T) {
	kinds := []TransferKind{KindRegular, KindPending, KindPostPending, KindVoidPending}

	for _, k := range kinds {
		parsed, err := ParseTransferKind(k.String())
		if err != nil {
			t.Fatalf("ParseTransferKind(%q) returned error: %v", k.String(), err)
		}
		if parsed != k {
			t.Errorf("expected %v, got %v", k, parsed)
		}
	}

	if _, err := ParseTransferKind("reversal"); err == nil {
		t.Error("expected error for unknown kind")
	}
}

func TestTransferType_PendingRef(t *testing.T) {
	pendingID := uuid.Must(uuid.NewV7())

	tests := []struct {
		name    string
		typ     TransferType
		wantRef bool
	}{
		{name: "regular", typ: Regular(), wantRef: false},
		{name: "pending", typ: Pending(), wantRef: false},
		{name: "post pending", typ: PostPending(pendingID), wantRef: true},
		{name: "void pending", typ: VoidPending(pendingID), wantRef: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref := tt.typ.PendingRef()
			if tt.wantRef {
				if ref == nil || *ref != pendingID {
					t.Fatalf("expected pending ref %s, got %v", pendingID, ref)
				}
				return
			}
			if ref != nil {
				t.Fatalf("expected no pending ref, got %s", ref)
			}
		})
	}
}

func TestOutcomes(t *testing.T) {
	id := uuid.Must(uuid.NewV7())

	committed := CommittedOutcome(id)
	if !committed.Committed || len(committed.Reason) != 0 || committed.Reason == nil {
		t.Errorf("unexpected committed outcome: %+v", committed)
	}

	rejected := RejectedOutcome(id, ReasonLinkedTransferFailed)
	if rejected.Committed || len(rejected.Reason) != 1 || rejected.Reason[0] != "linked transfer failed" {
		t.Errorf("unexpected rejected outcome: %+v", rejected)
	}
}
