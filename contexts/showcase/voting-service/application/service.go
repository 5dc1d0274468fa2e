package application

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"showcase/contexts/showcase/voting-service/domain/entities"
	domainerrors "showcase/contexts/showcase/voting-service/domain/errors"
	"showcase/contexts/showcase/voting-service/ports"
)

type Service struct {
	Repo     ports.Repository
	Projects ports.VotableDirectory
	Clock    ports.Clock
	Logger   *slog.Logger
}

// VoteOutcome reports what RecordVote did with the ballot.
type VoteOutcome struct {
	Vote       entities.Vote
	HasChanged bool
}

// RecordVote holds the one-ballot-per-IP rule: a first vote starts the
// change counter at zero, switching projects increments it by exactly
// one, and re-voting for the held project changes nothing.
func (s Service) RecordVote(ctx context.Context, voterIP string, projectID string) (VoteOutcome, error) {
	voterIP = strings.TrimSpace(voterIP)
	projectID = strings.TrimSpace(projectID)
	if voterIP == "" {
		return VoteOutcome{}, domainerrors.ErrInvalidVoterIdentity
	}
	votable, err := s.Projects.ProjectVotable(ctx, projectID)
	if err != nil {
		return VoteOutcome{}, err
	}
	if !votable {
		return VoteOutcome{}, domainerrors.ErrProjectNotVotable
	}

	now := s.Clock.Now().UTC()
	existing, err := s.Repo.GetVote(ctx, voterIP)
	switch {
	case err == nil && existing.ProjectID == projectID:
		return VoteOutcome{Vote: existing, HasChanged: false}, nil
	case err == nil:
		existing.ProjectID = projectID
		existing.VoteChangeCount++
		existing.LastVotedAt = now
		if err := s.Repo.UpsertVote(ctx, existing); err != nil {
			return VoteOutcome{}, err
		}
		s.logVote("vote moved", existing)
		return VoteOutcome{Vote: existing, HasChanged: true}, nil
	case errors.Is(err, domainerrors.ErrVoteNotFound):
		vote := entities.Vote{
			VoterIP:      voterIP,
			ProjectID:    projectID,
			FirstVotedAt: now,
			LastVotedAt:  now,
		}
		if err := s.Repo.UpsertVote(ctx, vote); err != nil {
			return VoteOutcome{}, err
		}
		s.logVote("vote recorded", vote)
		return VoteOutcome{Vote: vote, HasChanged: true}, nil
	default:
		return VoteOutcome{}, err
	}
}

// VoteStatus is the voter-facing view of their ballot.
type VoteStatus struct {
	HasVoted        bool
	ProjectID       string
	VoteChangeCount int
	FirstVotedAt    time.Time
	LastVotedAt     time.Time
}

func (s Service) GetVoteStatus(ctx context.Context, voterIP string) (VoteStatus, error) {
	voterIP = strings.TrimSpace(voterIP)
	if voterIP == "" {
		return VoteStatus{}, domainerrors.ErrInvalidVoterIdentity
	}
	vote, err := s.Repo.GetVote(ctx, voterIP)
	if errors.Is(err, domainerrors.ErrVoteNotFound) {
		return VoteStatus{}, nil
	}
	if err != nil {
		return VoteStatus{}, err
	}
	return VoteStatus{
		HasVoted:        true,
		ProjectID:       vote.ProjectID,
		VoteChangeCount: vote.VoteChangeCount,
		FirstVotedAt:    vote.FirstVotedAt,
		LastVotedAt:     vote.LastVotedAt,
	}, nil
}

// CountVotes returns per-project tallies for the requested IDs.
// Projects without votes are reported as zero.
func (s Service) CountVotes(ctx context.Context, projectIDs []string) (map[string]int, error) {
	counts, err := s.Repo.CountVotes(ctx, projectIDs)
	if err != nil {
		return nil, err
	}
	for _, projectID := range projectIDs {
		if _, ok := counts[projectID]; !ok {
			counts[projectID] = 0
		}
	}
	return counts, nil
}

func (s Service) logVote(message string, vote entities.Vote) {
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info(message,
		"event", "vote_recorded",
		"module", "showcase/voting-service",
		"layer", "application",
		"project_id", vote.ProjectID,
		"vote_change_count", vote.VoteChangeCount,
	)
}
