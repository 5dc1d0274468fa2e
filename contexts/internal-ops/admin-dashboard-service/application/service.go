package application

import (
	"context"
	"log/slog"
	"strings"

	"showcase/contexts/internal-ops/admin-dashboard-service/domain/entities"
	domainerrors "showcase/contexts/internal-ops/admin-dashboard-service/domain/errors"
	"showcase/contexts/internal-ops/admin-dashboard-service/ports"
)

const (
	defaultAuditLimit = 50
	maxAuditLimit     = 200
)

type Service struct {
	Audits ports.AuditRepository
	Stats  ports.StatsSource
	Clock  ports.Clock
	IDGen  ports.IDGenerator
	Logger *slog.Logger
}

// RecordModerationAction appends one audit row. The moderation
// services call this through thin per-context sink adapters; failures
// are logged there and never fail the decision itself.
func (s Service) RecordModerationAction(ctx context.Context, entry entities.AuditEntry) error {
	if strings.TrimSpace(entry.AuditID) == "" {
		auditID, err := s.IDGen.NewID(ctx)
		if err != nil {
			return err
		}
		entry.AuditID = auditID
	}
	if entry.OccurredAt.IsZero() {
		entry.OccurredAt = s.Clock.Now().UTC()
	}
	if err := s.Audits.AppendAudit(ctx, entry); err != nil {
		return err
	}
	resolveLogger(s.Logger).Info("moderation action audited",
		"event", "moderation_audited",
		"module", "internal-ops/admin-dashboard-service",
		"layer", "application",
		"entity_type", entry.EntityType,
		"entity_id", entry.EntityID,
		"action", entry.Action,
		"actor_id", entry.ActorID,
	)
	return nil
}

type DashboardView struct {
	Stats        entities.Stats
	RecentAudits []entities.AuditEntry
}

// Dashboard assembles the stats snapshot plus the recent audit trail.
// Moderator-gated like the rest of the admin surface.
func (s Service) Dashboard(ctx context.Context, actor ports.Actor, auditLimit int) (DashboardView, error) {
	if !actor.IsModerator() {
		return DashboardView{}, domainerrors.ErrForbidden
	}
	if auditLimit <= 0 {
		auditLimit = defaultAuditLimit
	}
	if auditLimit > maxAuditLimit {
		auditLimit = maxAuditLimit
	}

	var view DashboardView
	var err error
	if view.Stats.ProjectsByStatus, err = s.Stats.ProjectStatusCounts(ctx); err != nil {
		return DashboardView{}, err
	}
	if view.Stats.CompetitionsByStatus, err = s.Stats.CompetitionStatusCounts(ctx); err != nil {
		return DashboardView{}, err
	}
	if view.Stats.AwardsByStatus, err = s.Stats.AwardStatusCounts(ctx); err != nil {
		return DashboardView{}, err
	}
	if view.Stats.PublishedPosts, err = s.Stats.PublishedPostCount(ctx); err != nil {
		return DashboardView{}, err
	}
	if view.Stats.TotalUsers, err = s.Stats.TotalUsers(ctx); err != nil {
		return DashboardView{}, err
	}
	if view.Stats.TotalVotes, err = s.Stats.TotalVotes(ctx); err != nil {
		return DashboardView{}, err
	}
	if view.Stats.TotalVoteChanges, err = s.Stats.TotalVoteChanges(ctx); err != nil {
		return DashboardView{}, err
	}
	if view.RecentAudits, err = s.Audits.ListRecentAudits(ctx, auditLimit); err != nil {
		return DashboardView{}, err
	}
	return view, nil
}

func resolveLogger(logger *slog.Logger) *slog.Logger {
	if logger != nil {
		return logger
	}
	return slog.Default()
}
