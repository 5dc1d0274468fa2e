package commands

import (
	"context"
	"errors"
	"testing"

	"showcase/contexts/showcase/project-service/adapters/memory"
	"showcase/contexts/showcase/project-service/domain/entities"
	domainerrors "showcase/contexts/showcase/project-service/domain/errors"
	"showcase/contexts/showcase/project-service/ports"
)

func newModeration(store *memory.Store) ModerationUseCase {
	return ModerationUseCase{
		Repository: store,
		Actors:     store,
		Outbox:     store,
		Audit:      store,
		Clock:      store,
		IDGen:      store,
	}
}

func seedProject(t *testing.T, store *memory.Store) entities.Project {
	t.Helper()
	intake := IntakeUseCase{Repository: store, Clock: store, IDGen: store}
	project, err := intake.Create(context.Background(), CreateProjectCommand{
		Name:      "RoboSort",
		Summary:   "Autonomous waste sorter",
		TeamName:  "Team Binary",
		TeamEmail: "team@binary.example",
	})
	if err != nil {
		t.Fatalf("seed project failed: %v", err)
	}
	return project
}

func TestIntakeStartsPending(t *testing.T) {
	store := memory.NewStore()
	project := seedProject(t, store)
	if project.Status != entities.ApprovalStatusPending {
		t.Fatalf("expected pending status, got %q", project.Status)
	}
}

func TestRejectOverwritesApprovalFields(t *testing.T) {
	store := memory.NewStore()
	uc := newModeration(store)
	project := seedProject(t, store)
	admin := ports.Actor{ID: "admin-1", Role: ports.RoleAdmin}

	if _, err := uc.Approve(context.Background(), project.ProjectID, admin); err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	rejected, err := uc.Reject(context.Background(), project.ProjectID, admin, "incomplete demo")
	if err != nil {
		t.Fatalf("reject failed: %v", err)
	}
	if rejected.Status != entities.ApprovalStatusRejected {
		t.Fatalf("expected rejected status, got %q", rejected.Status)
	}
	if rejected.RejectionReason != "incomplete demo" {
		t.Fatalf("unexpected rejection reason %q", rejected.RejectionReason)
	}
	if rejected.ApprovedByID != "" {
		t.Fatalf("approve attribution must be cleared on reject, got %q", rejected.ApprovedByID)
	}
}

func TestRejectClearsFeaturedAtomically(t *testing.T) {
	store := memory.NewStore()
	uc := newModeration(store)
	project := seedProject(t, store)
	admin := ports.Actor{ID: "admin-1", Role: ports.RoleAdmin}

	if _, err := uc.Approve(context.Background(), project.ProjectID, admin); err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if _, err := uc.Feature(context.Background(), project.ProjectID, true, admin); err != nil {
		t.Fatalf("feature failed: %v", err)
	}
	if _, err := uc.Reject(context.Background(), project.ProjectID, admin, "policy violation"); err != nil {
		t.Fatalf("reject failed: %v", err)
	}

	record, err := store.GetProject(context.Background(), project.ProjectID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if record.Showcase.Featured {
		t.Fatal("featured flag must be cleared when project is rejected")
	}
}

func TestApproveAfterRejectLeavesNoResidue(t *testing.T) {
	store := memory.NewStore()
	uc := newModeration(store)
	project := seedProject(t, store)
	admin := ports.Actor{ID: "admin-1", Role: ports.RoleAdmin}

	if _, err := uc.Approve(context.Background(), project.ProjectID, admin); err != nil {
		t.Fatalf("first approve failed: %v", err)
	}
	if _, err := uc.Reject(context.Background(), project.ProjectID, admin, "needs rework"); err != nil {
		t.Fatalf("reject failed: %v", err)
	}
	final, err := uc.Approve(context.Background(), project.ProjectID, admin)
	if err != nil {
		t.Fatalf("second approve failed: %v", err)
	}
	if final.Status != entities.ApprovalStatusApproved {
		t.Fatalf("expected approved, got %q", final.Status)
	}
	if final.RejectedByID != "" || final.RejectionReason != "" {
		t.Fatalf("rejection fields must be fully overwritten, got by=%q reason=%q",
			final.RejectedByID, final.RejectionReason)
	}
	if final.ApprovedByID != "admin-1" {
		t.Fatalf("expected approve attribution admin-1, got %q", final.ApprovedByID)
	}
}

func TestRejectAlreadyRejectedKeepsOriginalReason(t *testing.T) {
	store := memory.NewStore()
	uc := newModeration(store)
	project := seedProject(t, store)
	admin := ports.Actor{ID: "admin-1", Role: ports.RoleAdmin}

	if _, err := uc.Reject(context.Background(), project.ProjectID, admin, "original reason"); err != nil {
		t.Fatalf("first reject failed: %v", err)
	}
	existing, err := uc.Reject(context.Background(), project.ProjectID, admin, "second reason")
	if !errors.Is(err, domainerrors.ErrAlreadyRejected) {
		t.Fatalf("expected ErrAlreadyRejected, got %v", err)
	}
	if existing.RejectionReason != "original reason" {
		t.Fatalf("stored reason must be unchanged, got %q", existing.RejectionReason)
	}
}

func TestRejectRequiresModeratorRoleAndReason(t *testing.T) {
	store := memory.NewStore()
	uc := newModeration(store)
	project := seedProject(t, store)

	_, err := uc.Reject(context.Background(), project.ProjectID, ports.Actor{ID: "dev-1", Role: ports.RoleDeveloper}, "whatever")
	if !errors.Is(err, domainerrors.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for developer, got %v", err)
	}
	_, err = uc.Reject(context.Background(), project.ProjectID, ports.Actor{ID: "admin-1", Role: ports.RoleAdmin}, "   ")
	if !errors.Is(err, domainerrors.ErrReasonRequired) {
		t.Fatalf("expected ErrReasonRequired for blank reason, got %v", err)
	}
}

func TestFeatureRequiresApprovedStatus(t *testing.T) {
	store := memory.NewStore()
	uc := newModeration(store)
	project := seedProject(t, store)
	admin := ports.Actor{ID: "admin-1", Role: ports.RoleAdmin}

	_, err := uc.Feature(context.Background(), project.ProjectID, true, admin)
	if !errors.Is(err, domainerrors.ErrNotApproved) {
		t.Fatalf("expected ErrNotApproved for pending project, got %v", err)
	}

	if _, err := uc.Approve(context.Background(), project.ProjectID, admin); err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	showcase, err := uc.Feature(context.Background(), project.ProjectID, true, admin)
	if err != nil {
		t.Fatalf("feature failed: %v", err)
	}
	if !showcase.Featured || showcase.FeaturedByID != "admin-1" {
		t.Fatalf("expected featured by admin-1, got featured=%v by=%q", showcase.Featured, showcase.FeaturedByID)
	}

	// Unfeaturing keeps the last featuring attribution.
	showcase, err = uc.Feature(context.Background(), project.ProjectID, false, admin)
	if err != nil {
		t.Fatalf("unfeature failed: %v", err)
	}
	if showcase.Featured || showcase.FeaturedByID != "admin-1" {
		t.Fatalf("unfeature must not touch attribution, got featured=%v by=%q", showcase.Featured, showcase.FeaturedByID)
	}
}

func TestApproveRequiresKnownActor(t *testing.T) {
	store := memory.NewStore()
	uc := newModeration(store)
	project := seedProject(t, store)

	_, err := uc.Approve(context.Background(), project.ProjectID, ports.Actor{ID: "ghost-1", Role: ports.RoleAdmin})
	if !errors.Is(err, domainerrors.ErrUnknownActor) {
		t.Fatalf("expected ErrUnknownActor, got %v", err)
	}
}

func TestApproveEmitsOutboxEvent(t *testing.T) {
	store := memory.NewStore()
	uc := newModeration(store)
	project := seedProject(t, store)

	if _, err := uc.Approve(context.Background(), project.ProjectID, ports.Actor{ID: "mod-1", Role: ports.RoleModerator}); err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	outbox := store.OutboxEvents()
	if len(outbox) != 1 {
		t.Fatalf("expected one outbox event, got %d", len(outbox))
	}
	if outbox[0].EventType != "project.approved" {
		t.Fatalf("unexpected event type %q", outbox[0].EventType)
	}
	payload, ok := outbox[0].Payload.(map[string]any)
	if !ok {
		t.Fatalf("expected map payload, got %T", outbox[0].Payload)
	}
	if payload["team_email"] != "team@binary.example" {
		t.Fatalf("payload must carry the team email, got %v", payload["team_email"])
	}
}

func TestDeleteIsRoleGated(t *testing.T) {
	store := memory.NewStore()
	uc := newModeration(store)
	project := seedProject(t, store)

	if err := uc.Delete(context.Background(), project.ProjectID, ports.Actor{ID: "dev-1", Role: ports.RoleDeveloper}); !errors.Is(err, domainerrors.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err := uc.Delete(context.Background(), project.ProjectID, ports.Actor{ID: "mod-1", Role: ports.RoleModerator}); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := store.GetProject(context.Background(), project.ProjectID); !errors.Is(err, domainerrors.ErrProjectNotFound) {
		t.Fatalf("expected project gone, got %v", err)
	}
}
