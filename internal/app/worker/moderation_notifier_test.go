package worker

import (
	"context"
	"strings"
	"testing"

	"showcase/internal/platform/mailer"
	"showcase/internal/shared/events"
)

func newNotifier(sender mailer.Sender) ModerationNotifier {
	return ModerationNotifier{
		Mailer:              sender,
		ProjectsEnabled:     true,
		CompetitionsEnabled: true,
		AwardsEnabled:       true,
		AwardInbox:          "moderators@showcase.example",
	}
}

func TestRejectionMailCarriesReviewerNotes(t *testing.T) {
	sender := mailer.NewMemorySender()
	notifier := newNotifier(sender)

	err := notifier.Handle(context.Background(), events.Envelope{
		EventType: "project.rejected",
		EntityID:  "proj-1",
		Payload: map[string]any{
			"project_name": "Trash Sorting Robot",
			"team_email":   "team@recyclotron.example",
			"reason":       "missing demo video",
		},
	})
	if err != nil {
		t.Fatalf("handle: %v", err)
	}

	deliveries := sender.Deliveries()
	if len(deliveries) != 1 {
		t.Fatalf("expected one delivery, got %d", len(deliveries))
	}
	if deliveries[0].To != "team@recyclotron.example" {
		t.Fatalf("unexpected recipient %q", deliveries[0].To)
	}
	if !strings.Contains(deliveries[0].Body, "missing demo video") {
		t.Fatalf("body must carry the rejection reason, got %q", deliveries[0].Body)
	}
}

func TestDisabledChannelsSendNothing(t *testing.T) {
	sender := mailer.NewMemorySender()
	notifier := newNotifier(sender)
	notifier.ProjectsEnabled = false

	err := notifier.Handle(context.Background(), events.Envelope{
		EventType: "project.approved",
		Payload: map[string]any{
			"project_name": "Trash Sorting Robot",
			"team_email":   "team@recyclotron.example",
		},
	})
	if err != nil {
		t.Fatalf("handle: %v", err)
	}
	if len(sender.Deliveries()) != 0 {
		t.Fatal("disabled channel must not deliver mail")
	}
}

func TestAwardDecisionsGoToTheModerationInbox(t *testing.T) {
	sender := mailer.NewMemorySender()
	notifier := newNotifier(sender)

	err := notifier.Handle(context.Background(), events.Envelope{
		EventType: "award.rejected",
		EntityID:  "award-1",
		Payload: map[string]any{
			"award_name": "Best Pitch",
			"project_id": "proj-1",
			"reason":     "duplicate entry",
		},
	})
	if err != nil {
		t.Fatalf("handle: %v", err)
	}

	deliveries := sender.Deliveries()
	if len(deliveries) != 1 || deliveries[0].To != "moderators@showcase.example" {
		t.Fatalf("expected one delivery to the moderation inbox, got %+v", deliveries)
	}
}

func TestMissingRecipientIsSkippedQuietly(t *testing.T) {
	sender := mailer.NewMemorySender()
	notifier := newNotifier(sender)

	err := notifier.Handle(context.Background(), events.Envelope{
		EventType: "competition.approved",
		Payload: map[string]any{
			"competition_name": "Regional Robotics Cup",
		},
	})
	if err != nil {
		t.Fatalf("handle: %v", err)
	}
	if len(sender.Deliveries()) != 0 {
		t.Fatal("no recipient means no delivery")
	}
}
