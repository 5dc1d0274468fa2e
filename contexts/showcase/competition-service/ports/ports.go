package ports

import (
	"context"
	"time"

	"showcase/contexts/showcase/competition-service/domain/entities"
	"showcase/internal/shared/events"
)

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

type Actor struct {
	ID   string
	Role string
}

const (
	RoleAdmin     = "admin"
	RoleModerator = "moderator"
	RoleDeveloper = "developer"
)

func (a Actor) IsModerator() bool {
	return a.Role == RoleAdmin || a.Role == RoleModerator
}

type CompetitionFilter struct {
	Status   entities.ApprovalStatus
	Search   string
	Page     int
	PageSize int
}

type CompetitionPage struct {
	Items       []entities.Competition
	CurrentPage int
	TotalPages  int
	TotalItems  int64
}

type Repository interface {
	CreateCompetition(ctx context.Context, competition entities.Competition) error
	GetCompetition(ctx context.Context, competitionID string) (entities.Competition, error)
	ListCompetitions(ctx context.Context, filter CompetitionFilter) (CompetitionPage, error)
	UpdateCompetition(ctx context.Context, competition entities.Competition) error
	DeleteCompetition(ctx context.Context, competitionID string) error
}

type ActorDirectory interface {
	ActorExists(ctx context.Context, actorID string) (bool, error)
}

type OutboxWriter interface {
	AppendOutbox(ctx context.Context, envelope events.Envelope) error
}

type AuditSink interface {
	RecordModerationAction(ctx context.Context, action ModerationAudit) error
}

type ModerationAudit struct {
	EntityType string
	EntityID   string
	Action     string
	ActorID    string
	ActorRole  string
	Reason     string
	OccurredAt time.Time
}
