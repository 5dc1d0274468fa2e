package application

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"showcase/contexts/showcase/competition-service/domain/entities"
	domainerrors "showcase/contexts/showcase/competition-service/domain/errors"
	"showcase/contexts/showcase/competition-service/ports"
	"showcase/internal/shared/events"
)

const (
	defaultPageSize = 10
	maxPageSize     = 50
)

type Service struct {
	Repo   ports.Repository
	Actors ports.ActorDirectory
	Outbox ports.OutboxWriter
	Audit  ports.AuditSink
	Clock  ports.Clock
	IDGen  ports.IDGenerator
	Logger *slog.Logger
}

type CreateCompetitionInput struct {
	Name         string
	Description  string
	Organizer    string
	ContactEmail string
	WebsiteURL   string
	StartsAt     string
	EndsAt       string
}

func (s Service) Create(ctx context.Context, input CreateCompetitionInput) (entities.Competition, error) {
	startsAt, err := parseDate(input.StartsAt)
	if err != nil {
		return entities.Competition{}, domainerrors.ErrInvalidCompetitionInput
	}
	competition := entities.Competition{
		Name:         strings.TrimSpace(input.Name),
		Description:  strings.TrimSpace(input.Description),
		Organizer:    strings.TrimSpace(input.Organizer),
		ContactEmail: strings.TrimSpace(input.ContactEmail),
		WebsiteURL:   strings.TrimSpace(input.WebsiteURL),
		StartsAt:     startsAt,
	}
	if raw := strings.TrimSpace(input.EndsAt); raw != "" {
		endsAt, err := parseDate(raw)
		if err != nil || endsAt.Before(startsAt) {
			return entities.Competition{}, domainerrors.ErrInvalidCompetitionInput
		}
		competition.EndsAt = &endsAt
	}
	if !competition.ValidateCreate() {
		return entities.Competition{}, domainerrors.ErrInvalidCompetitionInput
	}

	competitionID, err := s.IDGen.NewID(ctx)
	if err != nil {
		return entities.Competition{}, err
	}
	now := s.Clock.Now().UTC()
	competition.CompetitionID = competitionID
	competition.Status = entities.ApprovalStatusPending
	competition.CreatedAt = now
	competition.UpdatedAt = now
	if err := s.Repo.CreateCompetition(ctx, competition); err != nil {
		return entities.Competition{}, err
	}

	resolveLogger(s.Logger).Info("competition submitted",
		"event", "competition_submitted",
		"module", "showcase/competition-service",
		"layer", "application",
		"competition_id", competition.CompetitionID,
	)
	return competition, nil
}

func (s Service) Get(ctx context.Context, competitionID string) (entities.Competition, error) {
	return s.Repo.GetCompetition(ctx, strings.TrimSpace(competitionID))
}

type ListCompetitionsInput struct {
	Status   string
	Search   string
	Page     int
	PageSize int
}

func (s Service) List(ctx context.Context, input ListCompetitionsInput) (ports.CompetitionPage, error) {
	filter := ports.CompetitionFilter{
		Search:   strings.TrimSpace(input.Search),
		Page:     input.Page,
		PageSize: input.PageSize,
	}
	if raw := strings.TrimSpace(input.Status); raw != "" {
		status, ok := entities.ParseApprovalStatus(raw)
		if !ok {
			return ports.CompetitionPage{}, domainerrors.ErrInvalidStatus
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
	return s.Repo.ListCompetitions(ctx, filter)
}

// Approve allows any prior status; the transition overwrites both
// attribution fields.
func (s Service) Approve(ctx context.Context, competitionID string, actor ports.Actor) (entities.Competition, error) {
	if strings.TrimSpace(actor.ID) == "" {
		return entities.Competition{}, domainerrors.ErrUnknownActor
	}
	if s.Actors != nil {
		exists, err := s.Actors.ActorExists(ctx, actor.ID)
		if err != nil {
			return entities.Competition{}, err
		}
		if !exists {
			return entities.Competition{}, domainerrors.ErrUnknownActor
		}
	}

	competition, err := s.Repo.GetCompetition(ctx, strings.TrimSpace(competitionID))
	if err != nil {
		return entities.Competition{}, err
	}
	now := s.Clock.Now().UTC()
	competition.Status = entities.ApprovalStatusApproved
	competition.ApprovedByID = strings.TrimSpace(actor.ID)
	competition.RejectedByID = ""
	competition.RejectionReason = ""
	competition.UpdatedAt = now
	if err := s.Repo.UpdateCompetition(ctx, competition); err != nil {
		return entities.Competition{}, err
	}
	if err := s.appendDecisionEvent(ctx, "competition.approved", competition, actor, ""); err != nil {
		return entities.Competition{}, err
	}
	s.recordAudit(ctx, competition.CompetitionID, "accept", actor, "", now)

	resolveLogger(s.Logger).Info("competition approved",
		"event", "competition_approved",
		"module", "showcase/competition-service",
		"layer", "application",
		"competition_id", competition.CompetitionID,
		"actor_id", actor.ID,
	)
	return competition, nil
}

// Reject overwrites any prior decision; unlike projects there is no
// already-rejected guard, a repeat reject simply refreshes the fields.
func (s Service) Reject(ctx context.Context, competitionID string, actor ports.Actor, reason string) (entities.Competition, error) {
	if !actor.IsModerator() {
		return entities.Competition{}, domainerrors.ErrForbidden
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return entities.Competition{}, domainerrors.ErrReasonRequired
	}

	competition, err := s.Repo.GetCompetition(ctx, strings.TrimSpace(competitionID))
	if err != nil {
		return entities.Competition{}, err
	}
	now := s.Clock.Now().UTC()
	competition.Status = entities.ApprovalStatusRejected
	competition.RejectedByID = strings.TrimSpace(actor.ID)
	competition.RejectionReason = reason
	competition.ApprovedByID = ""
	competition.UpdatedAt = now
	if err := s.Repo.UpdateCompetition(ctx, competition); err != nil {
		return entities.Competition{}, err
	}
	if err := s.appendDecisionEvent(ctx, "competition.rejected", competition, actor, reason); err != nil {
		return entities.Competition{}, err
	}
	s.recordAudit(ctx, competition.CompetitionID, "reject", actor, reason, now)

	resolveLogger(s.Logger).Info("competition rejected",
		"event", "competition_rejected",
		"module", "showcase/competition-service",
		"layer", "application",
		"competition_id", competition.CompetitionID,
		"actor_id", actor.ID,
	)
	return competition, nil
}

func (s Service) Delete(ctx context.Context, competitionID string, actor ports.Actor) error {
	if !actor.IsModerator() {
		return domainerrors.ErrForbidden
	}
	competitionID = strings.TrimSpace(competitionID)
	if _, err := s.Repo.GetCompetition(ctx, competitionID); err != nil {
		return err
	}
	if err := s.Repo.DeleteCompetition(ctx, competitionID); err != nil {
		return err
	}
	s.recordAudit(ctx, competitionID, "delete", actor, "", s.Clock.Now().UTC())
	return nil
}

func (s Service) appendDecisionEvent(ctx context.Context, eventType string, competition entities.Competition, actor ports.Actor, reason string) error {
	if s.Outbox == nil {
		return nil
	}
	eventID, err := s.IDGen.NewID(ctx)
	if err != nil {
		return err
	}
	payload := map[string]any{
		"competition_id":   competition.CompetitionID,
		"competition_name": competition.Name,
		"organizer":        competition.Organizer,
		"contact_email":    competition.ContactEmail,
		"status":           string(competition.Status),
		"actor_id":         actor.ID,
	}
	if reason != "" {
		payload["reason"] = reason
	}
	return s.Outbox.AppendOutbox(ctx, events.Envelope{
		EventID:       eventID,
		EventType:     eventType,
		SourceContext: "showcase/competition-service",
		EntityType:    "competition",
		EntityID:      competition.CompetitionID,
		OccurredAt:    competition.UpdatedAt,
		Payload:       payload,
	})
}

func (s Service) recordAudit(ctx context.Context, competitionID string, action string, actor ports.Actor, reason string, occurredAt time.Time) {
	if s.Audit == nil {
		return
	}
	_ = s.Audit.RecordModerationAction(ctx, ports.ModerationAudit{
		EntityType: "competition",
		EntityID:   competitionID,
		Action:     action,
		ActorID:    actor.ID,
		ActorRole:  actor.Role,
		Reason:     reason,
		OccurredAt: occurredAt,
	})
}

func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
		return parsed.UTC(), nil
	}
	parsed, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, err
	}
	return parsed.UTC(), nil
}

func resolveLogger(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}
