package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/pashagolub/pgxmock/v4"

	"github.com/iho/ledgerengine/internal/domain"
)

func TestOutboxRepositoryCreateMarshalsPayload(t *testing.T) {
	pool := newMockPool(t)
	tx := beginMockTx(t, pool)
	now := time.Now().UTC()

	event := &domain.OutboxEvent{
		ID:            "01HZZZZZZZZZZZZZZZZZZZZZZZ",
		AggregateID:   "agg",
		AggregateType: domain.AggregateTypeTransfer,
		EventType:     domain.EventTypeTransferCommitted,
		Payload:       map[string]any{"amount": 10},
		CreatedAt:     now,
	}

	pool.ExpectQuery("INSERT INTO outbox_events").
		WithArgs(event.ID, "agg", "transfer", "transfer.committed", []byte(`{"amount":10}`), pgxmock.AnyArg(), false).
		WillReturnRows(pgxmock.NewRows([]string{"id", "aggregate_id", "aggregate_type", "event_type", "payload", "created_at", "published_at", "published"}).
			AddRow(event.ID, "agg", "transfer", "transfer.committed", []byte(`{"amount":10}`), pgtype.Timestamptz{Time: now, Valid: true}, pgtype.Timestamptz{}, false))

	if err := newOutboxRepository(pool).Create(context.Background(), tx, event); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertExpectations(t, pool)
}

func TestOutboxRepositoryGetUnpublished(t *testing.T) {
	pool := newMockPool(t)
	now := time.Now().UTC()

	pool.ExpectQuery("WHERE published = FALSE").
		WithArgs(int32(10)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "aggregate_id", "aggregate_type", "event_type", "payload", "created_at", "published_at", "published"}).
			AddRow("e1", "agg", "transfer", "transfer.committed", []byte(`{"amount":10}`), pgtype.Timestamptz{Time: now, Valid: true}, pgtype.Timestamptz{}, false))

	events, err := newOutboxRepository(pool).GetUnpublished(context.Background(), 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(events) != 1 || events[0].PublishedAt != nil || events[0].Payload["amount"] != float64(10) {
		t.Fatalf("unexpected events %+v", events)
	}

	assertExpectations(t, pool)
}

func TestOutboxRepositoryMarkPublished(t *testing.T) {
	pool := newMockPool(t)
	at := time.Now().UTC()

	pool.ExpectExec("UPDATE outbox_events").
		WithArgs("e1", pgtype.Timestamptz{Time: at, Valid: true}).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	if err := newOutboxRepository(pool).MarkPublished(context.Background(), "e1", at); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertExpectations(t, pool)
}
