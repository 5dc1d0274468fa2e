package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"showcase/contexts/internal-ops/admin-dashboard-service/adapters/memory"
	"showcase/contexts/internal-ops/admin-dashboard-service/domain/entities"
	domainerrors "showcase/contexts/internal-ops/admin-dashboard-service/domain/errors"
	"showcase/contexts/internal-ops/admin-dashboard-service/ports"
)

func newService(t *testing.T) (Service, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	return Service{Audits: store, Stats: store, Clock: store, IDGen: store}, store
}

func TestDashboardIsModeratorGated(t *testing.T) {
	svc, _ := newService(t)

	if _, err := svc.Dashboard(context.Background(), ports.Actor{ID: "dev-1", Role: ports.RoleDeveloper}, 0); !errors.Is(err, domainerrors.ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}
}

func TestDashboardReportsStats(t *testing.T) {
	svc, store := newService(t)
	store.SetStats(entities.Stats{
		ProjectsByStatus:     map[string]int64{"pending": 3, "approved": 7},
		CompetitionsByStatus: map[string]int64{"approved": 2},
		AwardsByStatus:       map[string]int64{"pending": 1},
		PublishedPosts:       4,
		TotalUsers:           12,
		TotalVotes:           40,
		TotalVoteChanges:     5,
	})

	view, err := svc.Dashboard(context.Background(), ports.Actor{ID: "admin-1", Role: ports.RoleAdmin}, 0)
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if view.Stats.ProjectsByStatus["approved"] != 7 {
		t.Fatalf("approved projects = %d, want 7", view.Stats.ProjectsByStatus["approved"])
	}
	if view.Stats.TotalVotes != 40 || view.Stats.TotalVoteChanges != 5 {
		t.Fatalf("vote stats = %+v", view.Stats)
	}
}

func TestRecordModerationActionFillsDefaultsAndOrdersTrail(t *testing.T) {
	svc, _ := newService(t)

	first := entities.AuditEntry{
		EntityType: "project",
		EntityID:   "p1",
		Action:     "accept",
		ActorID:    "admin-1",
		ActorRole:  "admin",
		OccurredAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}
	second := entities.AuditEntry{
		EntityType: "project",
		EntityID:   "p1",
		Action:     "reject",
		ActorID:    "mod-1",
		ActorRole:  "moderator",
		Reason:     "broken demo",
		OccurredAt: time.Date(2026, 3, 1, 11, 0, 0, 0, time.UTC),
	}
	if err := svc.RecordModerationAction(context.Background(), first); err != nil {
		t.Fatalf("record first: %v", err)
	}
	if err := svc.RecordModerationAction(context.Background(), second); err != nil {
		t.Fatalf("record second: %v", err)
	}

	view, err := svc.Dashboard(context.Background(), ports.Actor{ID: "admin-1", Role: ports.RoleAdmin}, 10)
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if len(view.RecentAudits) != 2 {
		t.Fatalf("audit entries = %d, want 2", len(view.RecentAudits))
	}
	if view.RecentAudits[0].Action != "reject" {
		t.Fatalf("latest action = %q, want reject", view.RecentAudits[0].Action)
	}
	if view.RecentAudits[0].AuditID == "" || view.RecentAudits[1].AuditID == "" {
		t.Fatal("audit ids must be generated when absent")
	}
}
