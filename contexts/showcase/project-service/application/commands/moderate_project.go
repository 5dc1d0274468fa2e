package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "showcase/contexts/showcase/project-service/application"
	"showcase/contexts/showcase/project-service/domain/entities"
	domainerrors "showcase/contexts/showcase/project-service/domain/errors"
	"showcase/contexts/showcase/project-service/ports"
)

// ModerationUseCase applies approval state transitions. Every transition
// overwrites both actor fields so no stale attribution survives a flip,
// and project rejection clears the featured flag in the same database
// transaction as the status change.
type ModerationUseCase struct {
	Repository ports.Repository
	Actors     ports.ActorDirectory
	Outbox     ports.OutboxWriter
	Audit      ports.AuditSink
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

// Approve moves a project to approved regardless of its prior status.
// Re-approving an approved project simply overwrites the actor field.
func (uc ModerationUseCase) Approve(ctx context.Context, projectID string, actor ports.Actor) (entities.Project, error) {
	logger := application.ResolveLogger(uc.Logger)
	if strings.TrimSpace(actor.ID) == "" {
		return entities.Project{}, domainerrors.ErrUnknownActor
	}
	if uc.Actors != nil {
		exists, err := uc.Actors.ActorExists(ctx, actor.ID)
		if err != nil {
			return entities.Project{}, err
		}
		if !exists {
			return entities.Project{}, domainerrors.ErrUnknownActor
		}
	}

	record, err := uc.Repository.GetProject(ctx, strings.TrimSpace(projectID))
	if err != nil {
		return entities.Project{}, err
	}

	now := uc.Clock.Now().UTC()
	project := record.Project
	project.Status = entities.ApprovalStatusApproved
	project.ApprovedByID = strings.TrimSpace(actor.ID)
	project.RejectedByID = ""
	project.RejectionReason = ""
	project.UpdatedAt = now
	if err := uc.Repository.UpdateProject(ctx, project); err != nil {
		return entities.Project{}, err
	}

	// Notification is fire-and-forget after commit: the outbox row is
	// relayed by the worker, never sent inline.
	if err := uc.appendDecisionEvent(ctx, "project.approved", project, now, actor, ""); err != nil {
		return entities.Project{}, err
	}
	uc.recordAudit(ctx, project.ProjectID, "accept", actor, "", now)

	logger.Info("project approved",
		"event", "project_approved",
		"module", "showcase/project-service",
		"layer", "application",
		"project_id", project.ProjectID,
		"actor_id", actor.ID,
	)
	return project, nil
}

// Reject requires a moderator role and a non-empty reason. Rejecting an
// already-rejected project is an idempotency guard, not a hard error:
// the stored record is returned alongside ErrAlreadyRejected so the
// transport layer can surface the prior reason.
func (uc ModerationUseCase) Reject(ctx context.Context, projectID string, actor ports.Actor, reason string) (entities.Project, error) {
	logger := application.ResolveLogger(uc.Logger)
	if !actor.IsModerator() {
		return entities.Project{}, domainerrors.ErrForbidden
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return entities.Project{}, domainerrors.ErrReasonRequired
	}

	record, err := uc.Repository.GetProject(ctx, strings.TrimSpace(projectID))
	if err != nil {
		return entities.Project{}, err
	}
	if record.Project.Status == entities.ApprovalStatusRejected {
		return record.Project, domainerrors.ErrAlreadyRejected
	}

	now := uc.Clock.Now().UTC()
	project := record.Project
	project.Status = entities.ApprovalStatusRejected
	project.RejectedByID = strings.TrimSpace(actor.ID)
	project.RejectionReason = reason
	project.ApprovedByID = ""
	project.UpdatedAt = now

	showcase := record.Showcase
	showcase.Featured = false
	showcase.UpdatedAt = now

	if err := uc.Repository.RejectProject(ctx, project, showcase); err != nil {
		return entities.Project{}, err
	}

	if err := uc.appendDecisionEvent(ctx, "project.rejected", project, now, actor, reason); err != nil {
		return entities.Project{}, err
	}
	uc.recordAudit(ctx, project.ProjectID, "reject", actor, reason, now)

	logger.Info("project rejected",
		"event", "project_rejected",
		"module", "showcase/project-service",
		"layer", "application",
		"project_id", project.ProjectID,
		"actor_id", actor.ID,
		"reason", reason,
	)
	return project, nil
}

// Feature toggles the public promotion flag. Featuring records the
// actor; unfeaturing needs no attribution and leaves it untouched.
func (uc ModerationUseCase) Feature(ctx context.Context, projectID string, featured bool, actor ports.Actor) (entities.Showcase, error) {
	logger := application.ResolveLogger(uc.Logger)
	if !actor.IsModerator() {
		return entities.Showcase{}, domainerrors.ErrForbidden
	}

	record, err := uc.Repository.GetProject(ctx, strings.TrimSpace(projectID))
	if err != nil {
		return entities.Showcase{}, err
	}
	if featured && record.Project.Status != entities.ApprovalStatusApproved {
		return entities.Showcase{}, domainerrors.ErrNotApproved
	}

	now := uc.Clock.Now().UTC()
	showcase := record.Showcase
	showcase.Featured = featured
	if featured {
		showcase.FeaturedByID = strings.TrimSpace(actor.ID)
	}
	showcase.UpdatedAt = now
	if err := uc.Repository.UpdateShowcase(ctx, showcase); err != nil {
		return entities.Showcase{}, err
	}

	action := "feature"
	if !featured {
		action = "unfeature"
	}
	uc.recordAudit(ctx, record.Project.ProjectID, action, actor, "", now)

	logger.Info("project feature flag changed",
		"event", "project_feature_changed",
		"module", "showcase/project-service",
		"layer", "application",
		"project_id", record.Project.ProjectID,
		"featured", featured,
		"actor_id", actor.ID,
	)
	return showcase, nil
}

// Delete removes the project and its showcase row. Votes referencing
// the project are owned by the voting context and stay untouched.
func (uc ModerationUseCase) Delete(ctx context.Context, projectID string, actor ports.Actor) error {
	logger := application.ResolveLogger(uc.Logger)
	if !actor.IsModerator() {
		return domainerrors.ErrForbidden
	}

	projectID = strings.TrimSpace(projectID)
	if _, err := uc.Repository.GetProject(ctx, projectID); err != nil {
		return err
	}
	if err := uc.Repository.DeleteProject(ctx, projectID); err != nil {
		return err
	}
	uc.recordAudit(ctx, projectID, "delete", actor, "", uc.Clock.Now().UTC())

	logger.Info("project deleted",
		"event", "project_deleted",
		"module", "showcase/project-service",
		"layer", "application",
		"project_id", projectID,
		"actor_id", actor.ID,
	)
	return nil
}

func (uc ModerationUseCase) recordAudit(ctx context.Context, projectID string, action string, actor ports.Actor, reason string, occurredAt time.Time) {
	if uc.Audit == nil {
		return
	}
	_ = uc.Audit.RecordModerationAction(ctx, ports.ModerationAudit{
		EntityType: "project",
		EntityID:   projectID,
		Action:     action,
		ActorID:    actor.ID,
		ActorRole:  actor.Role,
		Reason:     reason,
		OccurredAt: occurredAt,
	})
}
