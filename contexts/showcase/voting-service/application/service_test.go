package application

import (
	"context"
	"errors"
	"testing"

	"showcase/contexts/showcase/voting-service/adapters/memory"
	domainerrors "showcase/contexts/showcase/voting-service/domain/errors"
)

func newService(t *testing.T) (Service, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	store.SeedVotableProject("p1")
	store.SeedVotableProject("p2")
	return Service{Repo: store, Projects: store, Clock: store}, store
}

func TestFirstVoteStartsChangeCountAtZero(t *testing.T) {
	svc, _ := newService(t)

	outcome, err := svc.RecordVote(context.Background(), "203.0.113.7", "p1")
	if err != nil {
		t.Fatalf("record vote: %v", err)
	}
	if !outcome.HasChanged {
		t.Fatal("first vote must report a change")
	}
	if outcome.Vote.VoteChangeCount != 0 {
		t.Fatalf("vote_change_count = %d, want 0", outcome.Vote.VoteChangeCount)
	}
	if outcome.Vote.FirstVotedAt.IsZero() || !outcome.Vote.FirstVotedAt.Equal(outcome.Vote.LastVotedAt) {
		t.Fatalf("timestamps: first=%v last=%v", outcome.Vote.FirstVotedAt, outcome.Vote.LastVotedAt)
	}
}

func TestSameProjectRevoteIsNoOp(t *testing.T) {
	svc, _ := newService(t)

	if _, err := svc.RecordVote(context.Background(), "203.0.113.7", "p1"); err != nil {
		t.Fatalf("first vote: %v", err)
	}
	outcome, err := svc.RecordVote(context.Background(), "203.0.113.7", "p1")
	if err != nil {
		t.Fatalf("revote: %v", err)
	}
	if outcome.HasChanged {
		t.Fatal("revote for the same project must be a no-op")
	}
	if outcome.Vote.VoteChangeCount != 0 {
		t.Fatalf("vote_change_count = %d, want 0", outcome.Vote.VoteChangeCount)
	}
}

func TestSwitchingProjectsIncrementsChangeCountByOne(t *testing.T) {
	svc, store := newService(t)

	if _, err := svc.RecordVote(context.Background(), "203.0.113.7", "p1"); err != nil {
		t.Fatalf("first vote: %v", err)
	}
	outcome, err := svc.RecordVote(context.Background(), "203.0.113.7", "p2")
	if err != nil {
		t.Fatalf("switch vote: %v", err)
	}
	if !outcome.HasChanged {
		t.Fatal("switching projects must report a change")
	}
	if outcome.Vote.VoteChangeCount != 1 {
		t.Fatalf("vote_change_count = %d, want 1", outcome.Vote.VoteChangeCount)
	}

	counts, err := svc.CountVotes(context.Background(), []string{"p1", "p2"})
	if err != nil {
		t.Fatalf("count votes: %v", err)
	}
	if counts["p1"] != 0 || counts["p2"] != 1 {
		t.Fatalf("counts = %v, the ballot must move not duplicate", counts)
	}
	if total, _ := store.TotalVotes(context.Background()); total != 1 {
		t.Fatalf("total votes = %d, want 1", total)
	}
}

func TestVoteRejectsUnapprovedProject(t *testing.T) {
	svc, _ := newService(t)

	if _, err := svc.RecordVote(context.Background(), "203.0.113.7", "pending-project"); !errors.Is(err, domainerrors.ErrProjectNotVotable) {
		t.Fatalf("err = %v, want ErrProjectNotVotable", err)
	}
	if _, err := svc.RecordVote(context.Background(), "  ", "p1"); !errors.Is(err, domainerrors.ErrInvalidVoterIdentity) {
		t.Fatalf("err = %v, want ErrInvalidVoterIdentity", err)
	}
}

func TestVoteStatusReflectsBallot(t *testing.T) {
	svc, _ := newService(t)

	status, err := svc.GetVoteStatus(context.Background(), "203.0.113.7")
	if err != nil {
		t.Fatalf("status before voting: %v", err)
	}
	if status.HasVoted {
		t.Fatal("fresh voter must report hasVoted=false")
	}

	if _, err := svc.RecordVote(context.Background(), "203.0.113.7", "p1"); err != nil {
		t.Fatalf("vote: %v", err)
	}
	if _, err := svc.RecordVote(context.Background(), "203.0.113.7", "p2"); err != nil {
		t.Fatalf("switch: %v", err)
	}

	status, err = svc.GetVoteStatus(context.Background(), "203.0.113.7")
	if err != nil {
		t.Fatalf("status after voting: %v", err)
	}
	if !status.HasVoted || status.ProjectID != "p2" || status.VoteChangeCount != 1 {
		t.Fatalf("status = %+v", status)
	}
	if status.LastVotedAt.Before(status.FirstVotedAt) {
		t.Fatalf("last_voted_at %v before first_voted_at %v", status.LastVotedAt, status.FirstVotedAt)
	}
}
