package application

import (
	"context"
	"errors"
	"testing"

	"showcase/contexts/showcase/award-service/adapters/memory"
	"showcase/contexts/showcase/award-service/domain/entities"
	domainerrors "showcase/contexts/showcase/award-service/domain/errors"
	"showcase/contexts/showcase/award-service/ports"
)

func newService(t *testing.T) (Service, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	store.SeedProject("p1")
	store.SeedCompetition("c1")
	return Service{
		Repo:       store,
		References: store,
		Actors:     store,
		Outbox:     store,
		Audit:      store,
		Clock:      store,
		IDGen:      store,
	}, store
}

func submitAward(t *testing.T, svc Service) entities.Award {
	t.Helper()
	award, err := svc.Create(context.Background(), CreateAwardInput{
		Name:          "Best Pitch",
		ImageURL:      "https://cdn.example/best-pitch.png",
		ProjectID:     "p1",
		CompetitionID: "c1",
	})
	if err != nil {
		t.Fatalf("create award: %v", err)
	}
	return award
}

func TestCreateStartsPending(t *testing.T) {
	svc, _ := newService(t)
	award := submitAward(t, svc)

	if award.Status != entities.ApprovalStatusPending {
		t.Fatalf("status = %q, want pending", award.Status)
	}
	if award.ApprovedByID != "" || award.RejectedByID != "" {
		t.Fatal("fresh award must carry no moderation attribution")
	}
}

func TestCreateValidatesReferences(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.Create(context.Background(), CreateAwardInput{
		Name: "Best Pitch", ProjectID: "missing", CompetitionID: "c1",
	})
	if !errors.Is(err, domainerrors.ErrUnknownProject) {
		t.Fatalf("err = %v, want ErrUnknownProject", err)
	}

	_, err = svc.Create(context.Background(), CreateAwardInput{
		Name: "Best Pitch", ProjectID: "p1", CompetitionID: "missing",
	})
	if !errors.Is(err, domainerrors.ErrUnknownCompetition) {
		t.Fatalf("err = %v, want ErrUnknownCompetition", err)
	}

	_, err = svc.Create(context.Background(), CreateAwardInput{Name: "Best Pitch", ProjectID: "p1"})
	if !errors.Is(err, domainerrors.ErrInvalidAwardInput) {
		t.Fatalf("err = %v, want ErrInvalidAwardInput", err)
	}
}

func TestAcceptThenGetShowsApproval(t *testing.T) {
	svc, _ := newService(t)
	award := submitAward(t, svc)

	if _, err := svc.Approve(context.Background(), award.AwardID, ports.Actor{ID: "admin-1", Role: ports.RoleAdmin}); err != nil {
		t.Fatalf("approve: %v", err)
	}
	got, err := svc.Get(context.Background(), award.AwardID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != entities.ApprovalStatusApproved {
		t.Fatalf("status = %q, want approved", got.Status)
	}
	if got.ApprovedByID != "admin-1" {
		t.Fatalf("accepted_by = %q, want admin-1", got.ApprovedByID)
	}
	if got.RejectedByID != "" || got.RejectionReason != "" {
		t.Fatalf("rejection fields must stay empty, got by=%q reason=%q", got.RejectedByID, got.RejectionReason)
	}
}

func TestRejectRequiresModeratorRoleAndReason(t *testing.T) {
	svc, _ := newService(t)
	award := submitAward(t, svc)

	if _, err := svc.Reject(context.Background(), award.AwardID, ports.Actor{ID: "dev-1", Role: ports.RoleDeveloper}, "bad"); !errors.Is(err, domainerrors.ErrForbidden) {
		t.Fatalf("developer reject err = %v, want ErrForbidden", err)
	}
	if _, err := svc.Reject(context.Background(), award.AwardID, ports.Actor{ID: "mod-1", Role: ports.RoleModerator}, ""); !errors.Is(err, domainerrors.ErrReasonRequired) {
		t.Fatalf("blank reason err = %v, want ErrReasonRequired", err)
	}
}

func TestDecisionsOverwriteEachOther(t *testing.T) {
	svc, _ := newService(t)
	award := submitAward(t, svc)
	moderator := ports.Actor{ID: "mod-1", Role: ports.RoleModerator}

	if _, err := svc.Reject(context.Background(), award.AwardID, moderator, "wrong competition"); err != nil {
		t.Fatalf("reject: %v", err)
	}
	approved, err := svc.Approve(context.Background(), award.AwardID, ports.Actor{ID: "admin-1", Role: ports.RoleAdmin})
	if err != nil {
		t.Fatalf("approve after reject: %v", err)
	}
	if approved.RejectedByID != "" || approved.RejectionReason != "" {
		t.Fatal("approval must clear rejection attribution")
	}
	rejected, err := svc.Reject(context.Background(), award.AwardID, moderator, "second thoughts")
	if err != nil {
		t.Fatalf("reject after approve: %v", err)
	}
	if rejected.ApprovedByID != "" {
		t.Fatal("rejection must clear approval attribution")
	}
	if rejected.RejectionReason != "second thoughts" {
		t.Fatalf("reason = %q", rejected.RejectionReason)
	}
}

func TestDeleteDoesNotTouchReferences(t *testing.T) {
	svc, store := newService(t)
	award := submitAward(t, svc)

	if err := svc.Delete(context.Background(), award.AwardID, ports.Actor{ID: "mod-1", Role: ports.RoleModerator}); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Get(context.Background(), award.AwardID); !errors.Is(err, domainerrors.ErrAwardNotFound) {
		t.Fatalf("get after delete err = %v, want ErrAwardNotFound", err)
	}
	if ok, _ := store.ProjectExists(context.Background(), "p1"); !ok {
		t.Fatal("project must survive award deletion")
	}
	if ok, _ := store.CompetitionExists(context.Background(), "c1"); !ok {
		t.Fatal("competition must survive award deletion")
	}
}

func TestApproveEmitsOutboxEvent(t *testing.T) {
	svc, store := newService(t)
	award := submitAward(t, svc)

	if _, err := svc.Approve(context.Background(), award.AwardID, ports.Actor{ID: "admin-1", Role: ports.RoleAdmin}); err != nil {
		t.Fatalf("approve: %v", err)
	}
	outbox := store.OutboxEvents()
	if len(outbox) != 1 {
		t.Fatalf("outbox events = %d, want 1", len(outbox))
	}
	if outbox[0].EventType != "award.approved" {
		t.Fatalf("event type = %q", outbox[0].EventType)
	}
	payload, ok := outbox[0].Payload.(map[string]any)
	if !ok {
		t.Fatalf("payload type %T", outbox[0].Payload)
	}
	if payload["project_id"] != "p1" || payload["competition_id"] != "c1" {
		t.Fatalf("payload refs = %v / %v", payload["project_id"], payload["competition_id"])
	}
}
