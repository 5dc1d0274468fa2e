package application

import (
	"context"
	"errors"
	"testing"

	"showcase/contexts/showcase/competition-service/adapters/memory"
	"showcase/contexts/showcase/competition-service/domain/entities"
	domainerrors "showcase/contexts/showcase/competition-service/domain/errors"
	"showcase/contexts/showcase/competition-service/ports"
)

func newService(t *testing.T) (Service, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	return Service{
		Repo:   store,
		Actors: store,
		Outbox: store,
		Audit:  store,
		Clock:  store,
		IDGen:  store,
	}, store
}

func submitCompetition(t *testing.T, svc Service) entities.Competition {
	t.Helper()
	competition, err := svc.Create(context.Background(), CreateCompetitionInput{
		Name:         "Regional Robotics Cup",
		Organizer:    "STEM League",
		ContactEmail: "org@stemleague.example",
		StartsAt:     "2026-10-01",
		EndsAt:       "2026-10-03",
	})
	if err != nil {
		t.Fatalf("create competition: %v", err)
	}
	return competition
}

func TestCreateStartsPending(t *testing.T) {
	svc, _ := newService(t)
	competition := submitCompetition(t, svc)

	if competition.Status != entities.ApprovalStatusPending {
		t.Fatalf("status = %q, want pending", competition.Status)
	}
	if competition.CompetitionID == "" {
		t.Fatal("expected generated competition id")
	}
	if competition.EndsAt == nil || competition.EndsAt.Before(competition.StartsAt) {
		t.Fatalf("ends_at not preserved: %v", competition.EndsAt)
	}
}

func TestCreateRejectsInvalidDates(t *testing.T) {
	svc, _ := newService(t)

	cases := map[string]CreateCompetitionInput{
		"missing start": {Name: "Cup", Organizer: "Org", ContactEmail: "a@b.example"},
		"bad start":     {Name: "Cup", Organizer: "Org", ContactEmail: "a@b.example", StartsAt: "next tuesday"},
		"end before start": {
			Name: "Cup", Organizer: "Org", ContactEmail: "a@b.example",
			StartsAt: "2026-10-03", EndsAt: "2026-10-01",
		},
	}
	for name, input := range cases {
		if _, err := svc.Create(context.Background(), input); !errors.Is(err, domainerrors.ErrInvalidCompetitionInput) {
			t.Errorf("%s: err = %v, want ErrInvalidCompetitionInput", name, err)
		}
	}
}

func TestApproveOverwritesRejectionFields(t *testing.T) {
	svc, _ := newService(t)
	competition := submitCompetition(t, svc)

	moderator := ports.Actor{ID: "mod-1", Role: ports.RoleModerator}
	if _, err := svc.Reject(context.Background(), competition.CompetitionID, moderator, "incomplete listing"); err != nil {
		t.Fatalf("reject: %v", err)
	}

	approved, err := svc.Approve(context.Background(), competition.CompetitionID, ports.Actor{ID: "admin-1", Role: ports.RoleAdmin})
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if approved.Status != entities.ApprovalStatusApproved {
		t.Fatalf("status = %q, want approved", approved.Status)
	}
	if approved.ApprovedByID != "admin-1" {
		t.Fatalf("accepted_by = %q, want admin-1", approved.ApprovedByID)
	}
	if approved.RejectedByID != "" || approved.RejectionReason != "" {
		t.Fatalf("rejection residue left: by=%q reason=%q", approved.RejectedByID, approved.RejectionReason)
	}
}

func TestApproveRequiresKnownActor(t *testing.T) {
	svc, _ := newService(t)
	competition := submitCompetition(t, svc)

	if _, err := svc.Approve(context.Background(), competition.CompetitionID, ports.Actor{ID: "ghost", Role: ports.RoleAdmin}); !errors.Is(err, domainerrors.ErrUnknownActor) {
		t.Fatalf("err = %v, want ErrUnknownActor", err)
	}
}

func TestRejectRequiresModeratorRoleAndReason(t *testing.T) {
	svc, _ := newService(t)
	competition := submitCompetition(t, svc)

	if _, err := svc.Reject(context.Background(), competition.CompetitionID, ports.Actor{ID: "dev-1", Role: ports.RoleDeveloper}, "nope"); !errors.Is(err, domainerrors.ErrForbidden) {
		t.Fatalf("developer reject err = %v, want ErrForbidden", err)
	}
	if _, err := svc.Reject(context.Background(), competition.CompetitionID, ports.Actor{ID: "mod-1", Role: ports.RoleModerator}, "   "); !errors.Is(err, domainerrors.ErrReasonRequired) {
		t.Fatalf("blank reason err = %v, want ErrReasonRequired", err)
	}
}

func TestRepeatRejectOverwritesWithoutConflict(t *testing.T) {
	svc, _ := newService(t)
	competition := submitCompetition(t, svc)

	moderator := ports.Actor{ID: "mod-1", Role: ports.RoleModerator}
	if _, err := svc.Reject(context.Background(), competition.CompetitionID, moderator, "first pass"); err != nil {
		t.Fatalf("first reject: %v", err)
	}
	rejected, err := svc.Reject(context.Background(), competition.CompetitionID, ports.Actor{ID: "admin-1", Role: ports.RoleAdmin}, "second pass")
	if err != nil {
		t.Fatalf("second reject: %v", err)
	}
	if rejected.RejectionReason != "second pass" {
		t.Fatalf("reason = %q, want second pass", rejected.RejectionReason)
	}
	if rejected.RejectedByID != "admin-1" {
		t.Fatalf("rejected_by = %q, want admin-1", rejected.RejectedByID)
	}
}

func TestListRejectsUnknownStatus(t *testing.T) {
	svc, _ := newService(t)

	if _, err := svc.List(context.Background(), ListCompetitionsInput{Status: "archived"}); !errors.Is(err, domainerrors.ErrInvalidStatus) {
		t.Fatalf("err = %v, want ErrInvalidStatus", err)
	}
}

func TestDeleteIsRoleGated(t *testing.T) {
	svc, _ := newService(t)
	competition := submitCompetition(t, svc)

	if err := svc.Delete(context.Background(), competition.CompetitionID, ports.Actor{ID: "dev-1", Role: ports.RoleDeveloper}); !errors.Is(err, domainerrors.ErrForbidden) {
		t.Fatalf("developer delete err = %v, want ErrForbidden", err)
	}
	if err := svc.Delete(context.Background(), competition.CompetitionID, ports.Actor{ID: "mod-1", Role: ports.RoleModerator}); err != nil {
		t.Fatalf("moderator delete: %v", err)
	}
	if _, err := svc.Get(context.Background(), competition.CompetitionID); !errors.Is(err, domainerrors.ErrCompetitionNotFound) {
		t.Fatalf("get after delete err = %v, want ErrCompetitionNotFound", err)
	}
}

func TestRejectEmitsOutboxEvent(t *testing.T) {
	svc, store := newService(t)
	competition := submitCompetition(t, svc)

	if _, err := svc.Reject(context.Background(), competition.CompetitionID, ports.Actor{ID: "mod-1", Role: ports.RoleModerator}, "duplicate listing"); err != nil {
		t.Fatalf("reject: %v", err)
	}
	outbox := store.OutboxEvents()
	if len(outbox) != 1 {
		t.Fatalf("outbox events = %d, want 1", len(outbox))
	}
	envelope := outbox[0]
	if envelope.EventType != "competition.rejected" {
		t.Fatalf("event type = %q, want competition.rejected", envelope.EventType)
	}
	payload, ok := envelope.Payload.(map[string]any)
	if !ok {
		t.Fatalf("payload type %T", envelope.Payload)
	}
	if payload["contact_email"] != "org@stemleague.example" {
		t.Fatalf("contact_email = %v", payload["contact_email"])
	}
	if payload["reason"] != "duplicate listing" {
		t.Fatalf("reason = %v", payload["reason"])
	}
}
