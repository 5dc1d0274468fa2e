package application

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"showcase/contexts/showcase/award-service/domain/entities"
	domainerrors "showcase/contexts/showcase/award-service/domain/errors"
	"showcase/contexts/showcase/award-service/ports"
	"showcase/internal/shared/events"
)

const (
	defaultPageSize = 10
	maxPageSize     = 50
)

type Service struct {
	Repo       ports.Repository
	References ports.ReferenceDirectory
	Actors     ports.ActorDirectory
	Outbox     ports.OutboxWriter
	Audit      ports.AuditSink
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

type CreateAwardInput struct {
	Name          string
	Description   string
	ImageURL      string
	ProjectID     string
	CompetitionID string
}

func (s Service) Create(ctx context.Context, input CreateAwardInput) (entities.Award, error) {
	award := entities.Award{
		Name:          strings.TrimSpace(input.Name),
		Description:   strings.TrimSpace(input.Description),
		ImageURL:      strings.TrimSpace(input.ImageURL),
		ProjectID:     strings.TrimSpace(input.ProjectID),
		CompetitionID: strings.TrimSpace(input.CompetitionID),
	}
	if !award.ValidateCreate() {
		return entities.Award{}, domainerrors.ErrInvalidAwardInput
	}
	if s.References != nil {
		exists, err := s.References.ProjectExists(ctx, award.ProjectID)
		if err != nil {
			return entities.Award{}, err
		}
		if !exists {
			return entities.Award{}, domainerrors.ErrUnknownProject
		}
		exists, err = s.References.CompetitionExists(ctx, award.CompetitionID)
		if err != nil {
			return entities.Award{}, err
		}
		if !exists {
			return entities.Award{}, domainerrors.ErrUnknownCompetition
		}
	}

	awardID, err := s.IDGen.NewID(ctx)
	if err != nil {
		return entities.Award{}, err
	}
	now := s.Clock.Now().UTC()
	award.AwardID = awardID
	award.Status = entities.ApprovalStatusPending
	award.CreatedAt = now
	award.UpdatedAt = now
	if err := s.Repo.CreateAward(ctx, award); err != nil {
		return entities.Award{}, err
	}

	resolveLogger(s.Logger).Info("award submitted",
		"event", "award_submitted",
		"module", "showcase/award-service",
		"layer", "application",
		"award_id", award.AwardID,
		"project_id", award.ProjectID,
		"competition_id", award.CompetitionID,
	)
	return award, nil
}

func (s Service) Get(ctx context.Context, awardID string) (entities.Award, error) {
	return s.Repo.GetAward(ctx, strings.TrimSpace(awardID))
}

type ListAwardsInput struct {
	Status   string
	Search   string
	Page     int
	PageSize int
}

func (s Service) List(ctx context.Context, input ListAwardsInput) (ports.AwardPage, error) {
	filter := ports.AwardFilter{
		Search:   strings.TrimSpace(input.Search),
		Page:     input.Page,
		PageSize: input.PageSize,
	}
	if raw := strings.TrimSpace(input.Status); raw != "" {
		status, ok := entities.ParseApprovalStatus(raw)
		if !ok {
			return ports.AwardPage{}, domainerrors.ErrInvalidStatus
		}
		filter.Status = status
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = defaultPageSize
	}
	if filter.PageSize > maxPageSize {
		filter.PageSize = maxPageSize
	}
	return s.Repo.ListAwards(ctx, filter)
}

func (s Service) Approve(ctx context.Context, awardID string, actor ports.Actor) (entities.Award, error) {
	if strings.TrimSpace(actor.ID) == "" {
		return entities.Award{}, domainerrors.ErrUnknownActor
	}
	if s.Actors != nil {
		exists, err := s.Actors.ActorExists(ctx, actor.ID)
		if err != nil {
			return entities.Award{}, err
		}
		if !exists {
			return entities.Award{}, domainerrors.ErrUnknownActor
		}
	}

	award, err := s.Repo.GetAward(ctx, strings.TrimSpace(awardID))
	if err != nil {
		return entities.Award{}, err
	}
	now := s.Clock.Now().UTC()
	award.Status = entities.ApprovalStatusApproved
	award.ApprovedByID = strings.TrimSpace(actor.ID)
	award.RejectedByID = ""
	award.RejectionReason = ""
	award.UpdatedAt = now
	if err := s.Repo.UpdateAward(ctx, award); err != nil {
		return entities.Award{}, err
	}
	if err := s.appendDecisionEvent(ctx, "award.approved", award, actor, ""); err != nil {
		return entities.Award{}, err
	}
	s.recordAudit(ctx, award.AwardID, "accept", actor, "", now)

	resolveLogger(s.Logger).Info("award approved",
		"event", "award_approved",
		"module", "showcase/award-service",
		"layer", "application",
		"award_id", award.AwardID,
		"actor_id", actor.ID,
	)
	return award, nil
}

func (s Service) Reject(ctx context.Context, awardID string, actor ports.Actor, reason string) (entities.Award, error) {
	if !actor.IsModerator() {
		return entities.Award{}, domainerrors.ErrForbidden
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return entities.Award{}, domainerrors.ErrReasonRequired
	}

	award, err := s.Repo.GetAward(ctx, strings.TrimSpace(awardID))
	if err != nil {
		return entities.Award{}, err
	}
	now := s.Clock.Now().UTC()
	award.Status = entities.ApprovalStatusRejected
	award.RejectedByID = strings.TrimSpace(actor.ID)
	award.RejectionReason = reason
	award.ApprovedByID = ""
	award.UpdatedAt = now
	if err := s.Repo.UpdateAward(ctx, award); err != nil {
		return entities.Award{}, err
	}
	if err := s.appendDecisionEvent(ctx, "award.rejected", award, actor, reason); err != nil {
		return entities.Award{}, err
	}
	s.recordAudit(ctx, award.AwardID, "reject", actor, reason, now)

	resolveLogger(s.Logger).Info("award rejected",
		"event", "award_rejected",
		"module", "showcase/award-service",
		"layer", "application",
		"award_id", award.AwardID,
		"actor_id", actor.ID,
	)
	return award, nil
}

func (s Service) Delete(ctx context.Context, awardID string, actor ports.Actor) error {
	if !actor.IsModerator() {
		return domainerrors.ErrForbidden
	}
	awardID = strings.TrimSpace(awardID)
	if _, err := s.Repo.GetAward(ctx, awardID); err != nil {
		return err
	}
	if err := s.Repo.DeleteAward(ctx, awardID); err != nil {
		return err
	}
	s.recordAudit(ctx, awardID, "delete", actor, "", s.Clock.Now().UTC())
	return nil
}

func (s Service) appendDecisionEvent(ctx context.Context, eventType string, award entities.Award, actor ports.Actor, reason string) error {
	if s.Outbox == nil {
		return nil
	}
	eventID, err := s.IDGen.NewID(ctx)
	if err != nil {
		return err
	}
	payload := map[string]any{
		"award_id":       award.AwardID,
		"award_name":     award.Name,
		"project_id":     award.ProjectID,
		"competition_id": award.CompetitionID,
		"status":         string(award.Status),
		"actor_id":       actor.ID,
	}
	if reason != "" {
		payload["reason"] = reason
	}
	return s.Outbox.AppendOutbox(ctx, events.Envelope{
		EventID:       eventID,
		EventType:     eventType,
		SourceContext: "showcase/award-service",
		EntityType:    "award",
		EntityID:      award.AwardID,
		OccurredAt:    award.UpdatedAt,
		Payload:       payload,
	})
}

func (s Service) recordAudit(ctx context.Context, awardID string, action string, actor ports.Actor, reason string, occurredAt time.Time) {
	if s.Audit == nil {
		return
	}
	_ = s.Audit.RecordModerationAction(ctx, ports.ModerationAudit{
		EntityType: "award",
		EntityID:   awardID,
		Action:     action,
		ActorID:    actor.ID,
		ActorRole:  actor.Role,
		Reason:     reason,
		OccurredAt: occurredAt,
	})
}

func resolveLogger(logger *slog.Logger) *slog.Logger {
	if logger != nil {
		return logger
	}
	return slog.Default()
}
