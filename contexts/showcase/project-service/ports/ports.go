package ports

import (
	"context"
	"time"

	"showcase/contexts/showcase/project-service/domain/entities"
	"showcase/internal/shared/events"
)

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

// Actor is the per-request identity threaded into every handler call.
// Resolved at the transport boundary, never read from ambient state.
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

type ProjectFilter struct {
	Status   entities.ApprovalStatus
	Search   string
	Page     int
	PageSize int
}

type ProjectPage struct {
	Items       []entities.Project
	CurrentPage int
	TotalPages  int
	TotalItems  int64
}

// ProjectWithShowcase joins the project with its showcase metadata for
// reads; writes to the pair go through the moderation methods below.
type ProjectWithShowcase struct {
	Project  entities.Project
	Showcase entities.Showcase
}

type Repository interface {
	CreateProject(ctx context.Context, project entities.Project, showcase entities.Showcase) error
	GetProject(ctx context.Context, projectID string) (ProjectWithShowcase, error)
	ListProjects(ctx context.Context, filter ProjectFilter) (ProjectPage, error)
	ListShowcases(ctx context.Context, projectIDs []string) ([]entities.Showcase, error)
	UpdateProject(ctx context.Context, project entities.Project) error
	// RejectProject flips status fields and clears the showcase
	// featured flag inside one database transaction.
	RejectProject(ctx context.Context, project entities.Project, showcase entities.Showcase) error
	UpdateShowcase(ctx context.Context, showcase entities.Showcase) error
	DeleteProject(ctx context.Context, projectID string) error
}

// ActorDirectory resolves moderation actors against the identity
// context. Approve requires the actor to exist as a user row.
type ActorDirectory interface {
	ActorExists(ctx context.Context, actorID string) (bool, error)
}

type OutboxWriter interface {
	AppendOutbox(ctx context.Context, envelope events.Envelope) error
}

// AuditSink feeds the internal-ops audit trail. Nil sinks are treated
// as no-ops so read-only and test wiring stays light.
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
