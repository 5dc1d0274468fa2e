package commands

import (
	"context"
	"time"

	"showcase/contexts/showcase/project-service/domain/entities"
	"showcase/contexts/showcase/project-service/ports"
	"showcase/internal/shared/events"
)

// appendDecisionEvent writes a moderation decision to the outbox. The
// payload carries everything the notification consumer needs so the
// worker never has to read project rows back.
func (uc ModerationUseCase) appendDecisionEvent(
	ctx context.Context,
	eventType string,
	project entities.Project,
	occurredAt time.Time,
	actor ports.Actor,
	reason string,
) error {
	if uc.Outbox == nil {
		return nil
	}
	eventID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return err
	}
	payload := map[string]any{
		"project_id":   project.ProjectID,
		"project_name": project.Name,
		"team_name":    project.TeamName,
		"team_email":   project.TeamEmail,
		"status":       string(project.Status),
		"actor_id":     actor.ID,
	}
	if reason != "" {
		payload["reason"] = reason
	}
	return uc.Outbox.AppendOutbox(ctx, events.Envelope{
		EventID:       eventID,
		EventType:     eventType,
		SourceContext: "showcase/project-service",
		EntityType:    "project",
		EntityID:      project.ProjectID,
		OccurredAt:    occurredAt,
		Payload:       payload,
	})
}
