package memory

import (
	"context"
	"sync"
	"time"

	"showcase/contexts/showcase/voting-service/domain/entities"
	domainerrors "showcase/contexts/showcase/voting-service/domain/errors"
)

type Store struct {
	mu sync.RWMutex

	votes   map[string]entities.Vote
	votable map[string]bool
}

func NewStore() *Store {
	return &Store{
		votes:   map[string]entities.Vote{},
		votable: map[string]bool{},
	}
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) SeedVotableProject(projectID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.votable[projectID] = true
}

func (s *Store) ProjectVotable(_ context.Context, projectID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.votable[projectID], nil
}

func (s *Store) GetVote(_ context.Context, voterIP string) (entities.Vote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	vote, ok := s.votes[voterIP]
	if !ok {
		return entities.Vote{}, domainerrors.ErrVoteNotFound
	}
	return vote, nil
}

func (s *Store) UpsertVote(_ context.Context, vote entities.Vote) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.votes[vote.VoterIP] = vote
	return nil
}

func (s *Store) CountVotes(_ context.Context, projectIDs []string) (map[string]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	wanted := make(map[string]bool, len(projectIDs))
	for _, projectID := range projectIDs {
		wanted[projectID] = true
	}
	counts := map[string]int{}
	for _, vote := range s.votes {
		if wanted[vote.ProjectID] {
			counts[vote.ProjectID]++
		}
	}
	return counts, nil
}

func (s *Store) TotalVotes(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.votes)), nil
}

func (s *Store) TotalVoteChanges(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var total int64
	for _, vote := range s.votes {
		total += int64(vote.VoteChangeCount)
	}
	return total, nil
}
