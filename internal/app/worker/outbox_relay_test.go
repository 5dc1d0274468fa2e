package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"showcase/internal/shared/events"
)

type fakeOutbox struct {
	pending   []events.Envelope
	published []string
}

func (f *fakeOutbox) ListPendingOutbox(_ context.Context, limit int) ([]events.Envelope, error) {
	if limit < len(f.pending) {
		return f.pending[:limit], nil
	}
	return f.pending, nil
}

func (f *fakeOutbox) MarkOutboxPublished(_ context.Context, outboxID string, _ time.Time) error {
	f.published = append(f.published, outboxID)
	remaining := f.pending[:0]
	for _, envelope := range f.pending {
		if envelope.EventID != outboxID {
			remaining = append(remaining, envelope)
		}
	}
	f.pending = remaining
	return nil
}

type fakePublisher struct {
	topics []string
	fail   bool
}

func (f *fakePublisher) Publish(_ context.Context, topic string, _ events.Envelope) error {
	if f.fail {
		return errors.New("broker unavailable")
	}
	f.topics = append(f.topics, topic)
	return nil
}

func pendingEnvelope(id string, eventType string) events.Envelope {
	return events.Envelope{
		EventID:    id,
		EventType:  eventType,
		EntityType: "project",
		EntityID:   "proj-1",
		OccurredAt: time.Now().UTC(),
	}
}

func TestRelayPublishesThenMarks(t *testing.T) {
	outbox := &fakeOutbox{pending: []events.Envelope{
		pendingEnvelope("evt-1", "project.approved"),
		pendingEnvelope("evt-2", "project.rejected"),
	}}
	publisher := &fakePublisher{}
	relay := OutboxRelay{Name: "projects", Outbox: outbox, Publisher: publisher}

	if err := relay.RunOnce(context.Background()); err != nil {
		t.Fatalf("run once: %v", err)
	}
	if len(publisher.topics) != 2 || publisher.topics[0] != "project.approved" {
		t.Fatalf("expected both events published in order, got %v", publisher.topics)
	}
	if len(outbox.published) != 2 {
		t.Fatalf("expected both rows marked published, got %v", outbox.published)
	}
	if len(outbox.pending) != 0 {
		t.Fatalf("expected outbox drained, %d rows remain", len(outbox.pending))
	}
}

func TestRelayKeepsRowsPendingWhenPublishFails(t *testing.T) {
	outbox := &fakeOutbox{pending: []events.Envelope{
		pendingEnvelope("evt-1", "project.approved"),
	}}
	relay := OutboxRelay{Name: "projects", Outbox: outbox, Publisher: &fakePublisher{fail: true}}

	if err := relay.RunOnce(context.Background()); err == nil {
		t.Fatal("expected error when broker publish fails")
	}
	if len(outbox.published) != 0 {
		t.Fatalf("rows must stay pending after a failed publish, got %v", outbox.published)
	}
}

func TestRelayIsANoOpWithEmptyOutbox(t *testing.T) {
	publisher := &fakePublisher{}
	relay := OutboxRelay{Name: "projects", Outbox: &fakeOutbox{}, Publisher: publisher}

	if err := relay.RunOnce(context.Background()); err != nil {
		t.Fatalf("run once: %v", err)
	}
	if len(publisher.topics) != 0 {
		t.Fatalf("expected nothing published, got %v", publisher.topics)
	}
}
