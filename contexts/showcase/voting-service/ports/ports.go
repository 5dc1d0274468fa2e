package ports

import (
	"context"
	"time"

	"showcase/contexts/showcase/voting-service/domain/entities"
)

type Clock interface {
	Now() time.Time
}

type Repository interface {
	GetVote(ctx context.Context, voterIP string) (entities.Vote, error)
	// UpsertVote writes the full vote row keyed by voter IP.
	UpsertVote(ctx context.Context, vote entities.Vote) error
	CountVotes(ctx context.Context, projectIDs []string) (map[string]int, error)
	TotalVotes(ctx context.Context) (int64, error)
	TotalVoteChanges(ctx context.Context) (int64, error)
}

// VotableDirectory answers whether a project may currently receive
// votes. Only approved projects qualify.
type VotableDirectory interface {
	ProjectVotable(ctx context.Context, projectID string) (bool, error)
}
