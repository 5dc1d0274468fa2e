package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"showcase/contexts/internal-ops/admin-dashboard-service/application"
	"showcase/contexts/internal-ops/admin-dashboard-service/ports"
	httptransport "showcase/contexts/internal-ops/admin-dashboard-service/transport/http"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) DashboardHandler(ctx context.Context, actor ports.Actor, auditLimit int) (httptransport.DashboardResponse, error) {
	view, err := h.Service.Dashboard(ctx, actor, auditLimit)
	if err != nil {
		return httptransport.DashboardResponse{}, err
	}
	data := httptransport.DashboardData{
		Stats: httptransport.StatsData{
			ProjectsByStatus:     view.Stats.ProjectsByStatus,
			CompetitionsByStatus: view.Stats.CompetitionsByStatus,
			AwardsByStatus:       view.Stats.AwardsByStatus,
			PublishedPosts:       view.Stats.PublishedPosts,
			TotalUsers:           view.Stats.TotalUsers,
			TotalVotes:           view.Stats.TotalVotes,
			TotalVoteChanges:     view.Stats.TotalVoteChanges,
		},
		RecentAudits: make([]httptransport.AuditEntryData, 0, len(view.RecentAudits)),
	}
	for _, entry := range view.RecentAudits {
		data.RecentAudits = append(data.RecentAudits, httptransport.AuditEntryData{
			AuditID:    entry.AuditID,
			EntityType: entry.EntityType,
			EntityID:   entry.EntityID,
			Action:     entry.Action,
			ActorID:    entry.ActorID,
			ActorRole:  entry.ActorRole,
			Reason:     entry.Reason,
			OccurredAt: entry.OccurredAt.UTC().Format(time.RFC3339),
		})
	}
	return httptransport.DashboardResponse{
		Status:    "success",
		Data:      data,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}, nil
}
