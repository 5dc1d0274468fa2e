package ports

import (
	"context"
	"time"

	"showcase/contexts/internal-ops/admin-dashboard-service/domain/entities"
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

type AuditRepository interface {
	AppendAudit(ctx context.Context, entry entities.AuditEntry) error
	ListRecentAudits(ctx context.Context, limit int) ([]entities.AuditEntry, error)
}

// StatsSource aggregates counts across the other contexts' tables.
// Cross-context reads are acceptable here; the dashboard only reports.
type StatsSource interface {
	ProjectStatusCounts(ctx context.Context) (map[string]int64, error)
	CompetitionStatusCounts(ctx context.Context) (map[string]int64, error)
	AwardStatusCounts(ctx context.Context) (map[string]int64, error)
	PublishedPostCount(ctx context.Context) (int64, error)
	TotalUsers(ctx context.Context) (int64, error)
	TotalVotes(ctx context.Context) (int64, error)
	TotalVoteChanges(ctx context.Context) (int64, error)
}
