package ports

import (
	"context"
	"time"

	"showcase/contexts/showcase/award-service/domain/entities"
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

type AwardFilter struct {
	Status   entities.ApprovalStatus
	Search   string
	Page     int
	PageSize int
}

type AwardPage struct {
	Items       []entities.Award
	CurrentPage int
	TotalPages  int
	TotalItems  int64
}

type Repository interface {
	CreateAward(ctx context.Context, award entities.Award) error
	GetAward(ctx context.Context, awardID string) (entities.Award, error)
	ListAwards(ctx context.Context, filter AwardFilter) (AwardPage, error)
	UpdateAward(ctx context.Context, award entities.Award) error
	// DeleteAward removes the award row only. The referenced project
	// and competition are owned by their own contexts and stay put.
	DeleteAward(ctx context.Context, awardID string) error
}

// ReferenceDirectory answers whether the project and competition an
// award points at actually exist in their home contexts.
type ReferenceDirectory interface {
	ProjectExists(ctx context.Context, projectID string) (bool, error)
	CompetitionExists(ctx context.Context, competitionID string) (bool, error)
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
