package worker

import (
	"context"
	"fmt"
	"log/slog"

	"showcase/internal/platform/mailer"
	"showcase/internal/shared/events"
)

type Subscriber interface {
	Subscribe(ctx context.Context, topic string, consumerGroup string, handler func(context.Context, events.Envelope) error) error
}

const notifierConsumerGroup = "moderation-notifier-cg"

var decisionTopics = []string{
	"project.approved",
	"project.rejected",
	"competition.approved",
	"competition.rejected",
	"award.approved",
	"award.rejected",
}

// ModerationNotifier turns moderation decision events into emails.
// Delivery failures are logged and swallowed; notifications never
// block or retry a moderation decision.
type ModerationNotifier struct {
	Subscriber Subscriber
	Mailer     mailer.Sender

	ProjectsEnabled     bool
	CompetitionsEnabled bool
	AwardsEnabled       bool

	// AwardInbox receives award decisions; award events carry no
	// submitter address of their own.
	AwardInbox string

	Logger *slog.Logger
}

func (n ModerationNotifier) Start(ctx context.Context) error {
	for _, topic := range decisionTopics {
		if err := n.Subscriber.Subscribe(ctx, topic, notifierConsumerGroup, n.Handle); err != nil {
			return err
		}
	}
	return nil
}

func (n ModerationNotifier) Handle(ctx context.Context, envelope events.Envelope) error {
	msg, ok := n.compose(envelope)
	if !ok {
		return nil
	}
	if err := n.Mailer.Send(ctx, msg); err != nil {
		resolveLogger(n.Logger).Error("notification delivery failed",
			"event", "moderation_notify_failed",
			"module", "internal/app/worker",
			"layer", "worker",
			"event_type", envelope.EventType,
			"entity_id", envelope.EntityID,
			"error", err.Error(),
		)
		return nil
	}
	resolveLogger(n.Logger).Info("notification sent",
		"event", "moderation_notify_sent",
		"module", "internal/app/worker",
		"layer", "worker",
		"event_type", envelope.EventType,
		"entity_id", envelope.EntityID,
	)
	return nil
}

func (n ModerationNotifier) compose(envelope events.Envelope) (mailer.Message, bool) {
	payload, _ := envelope.Payload.(map[string]any)
	reason := payloadString(payload, "reason")

	switch envelope.EventType {
	case "project.approved":
		to := payloadString(payload, "team_email")
		if !n.ProjectsEnabled || to == "" {
			return mailer.Message{}, false
		}
		name := payloadString(payload, "project_name")
		return mailer.Message{
			To:      to,
			Subject: fmt.Sprintf("Your project %q is now live", name),
			Body:    fmt.Sprintf("Good news! %q passed review and is visible on the public showcase.", name),
		}, true
	case "project.rejected":
		to := payloadString(payload, "team_email")
		if !n.ProjectsEnabled || to == "" {
			return mailer.Message{}, false
		}
		name := payloadString(payload, "project_name")
		return mailer.Message{
			To:      to,
			Subject: fmt.Sprintf("Your project %q needs changes", name),
			Body:    fmt.Sprintf("%q was not approved.\n\nReviewer notes: %s\n\nYou can update the submission and a moderator will take another look.", name, reason),
		}, true
	case "competition.approved":
		to := payloadString(payload, "contact_email")
		if !n.CompetitionsEnabled || to == "" {
			return mailer.Message{}, false
		}
		name := payloadString(payload, "competition_name")
		return mailer.Message{
			To:      to,
			Subject: fmt.Sprintf("Competition %q is approved", name),
			Body:    fmt.Sprintf("%q passed review and is now listed publicly.", name),
		}, true
	case "competition.rejected":
		to := payloadString(payload, "contact_email")
		if !n.CompetitionsEnabled || to == "" {
			return mailer.Message{}, false
		}
		name := payloadString(payload, "competition_name")
		return mailer.Message{
			To:      to,
			Subject: fmt.Sprintf("Competition %q was not approved", name),
			Body:    fmt.Sprintf("%q was not approved.\n\nReviewer notes: %s", name, reason),
		}, true
	case "award.approved", "award.rejected":
		if !n.AwardsEnabled || n.AwardInbox == "" {
			return mailer.Message{}, false
		}
		name := payloadString(payload, "award_name")
		subject := fmt.Sprintf("Award %q approved", name)
		body := fmt.Sprintf("Award %q for project %s passed review.", name, payloadString(payload, "project_id"))
		if envelope.EventType == "award.rejected" {
			subject = fmt.Sprintf("Award %q rejected", name)
			body = fmt.Sprintf("Award %q for project %s was rejected.\n\nReviewer notes: %s", name, payloadString(payload, "project_id"), reason)
		}
		return mailer.Message{To: n.AwardInbox, Subject: subject, Body: body}, true
	default:
		return mailer.Message{}, false
	}
}

func payloadString(payload map[string]any, key string) string {
	if payload == nil {
		return ""
	}
	value, _ := payload[key].(string)
	return value
}
