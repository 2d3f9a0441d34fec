package integration

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/ledgerengine/internal/domain"
	"github.com/iho/ledgerengine/internal/infrastructure/eventpublisher"
	"github.com/iho/ledgerengine/internal/usecase"
	"github.com/iho/ledgerengine/tests/testutil"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []*domain.OutboxEvent
}

func (p *recordingPublisher) Publish(_ context.Context, event *domain.OutboxEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.EventType
	}
	return out
}

func TestOutboxEvents(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()

	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()
	testDB.TruncateAll(ctx)

	engine := testDB.NewEngine(usecase.DefaultTransferConfig())

	ledger := engine.CreateLedger(ctx, t)
	a := engine.CreateAccount(ctx, t, ledger)
	b := engine.CreateAccount(ctx, t, ledger)

	pending := engine.Transfer(ledger, a, b, 10, domain.Pending())
	post := engine.Transfer(ledger, a, b, 10, domain.PostPending(pending.ID))

	if _, err := engine.Transfers.CreateTransfers(ctx, []*domain.Transfer{pending}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := engine.Transfers.CreateTransfers(ctx, []*domain.Transfer{post}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// A rejected group writes nothing.
	if _, err := engine.Transfers.CreateTransfers(ctx, []*domain.Transfer{
		engine.Transfer(ledger, a, b, 0, domain.Regular()),
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	unpublished, err := engine.Outbox.GetUnpublished(ctx, 100)
	if err != nil {
		t.Fatalf("failed to read outbox: %v", err)
	}

	want := []string{
		domain.EventTypeLedgerCreated,
		domain.EventTypeAccountCreated,
		domain.EventTypeAccountCreated,
		domain.EventTypeTransferCommitted,
		domain.EventTypeTransferCommitted,
		domain.EventTypePendingResolved,
	}
	if len(unpublished) != len(want) {
		t.Fatalf("expected %d outbox events, got %d", len(want), len(unpublished))
	}

	publisher := &recordingPublisher{}
	worker := eventpublisher.NewEventPublisher(eventpublisher.Config{
		OutboxRepo: engine.Outbox,
		Publisher:  publisher,
		Logger:     zerolog.Nop(),
		Metrics:    engine.Metrics,
		Interval:   20 * time.Millisecond,
	})

	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan error, 1)
	go func() { done <- worker.Start(runCtx) }()

	deadline := time.Now().Add(5 * time.Second)
	for len(publisher.types()) < len(want) && time.Now().Before(deadline) {
		time.Sleep(20 * time.Millisecond)
	}
	cancel()

	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Fatalf("expected publisher to stop on cancel, got %v", err)
	}

	got := publisher.types()
	if len(got) != len(want) {
		t.Fatalf("published %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d = %s, want %s", i, got[i], want[i])
		}
	}

	remaining, err := engine.Outbox.GetUnpublished(ctx, 100)
	if err != nil {
		t.Fatalf("failed to read outbox: %v", err)
	}
	if len(remaining) != 0 {
		t.Errorf("expected outbox drained, %d events left", len(remaining))
	}
}
