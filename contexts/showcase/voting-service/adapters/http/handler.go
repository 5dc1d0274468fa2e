package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"showcase/contexts/showcase/voting-service/application"
	httptransport "showcase/contexts/showcase/voting-service/transport/http"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) VoteHandler(ctx context.Context, voterIP string, projectID string) (httptransport.VoteResponse, error) {
	outcome, err := h.Service.RecordVote(ctx, voterIP, projectID)
	if err != nil {
		return httptransport.VoteResponse{}, err
	}
	return httptransport.VoteResponse{
		Status: "success",
		Data: httptransport.VoteResultData{
			ProjectID:       outcome.Vote.ProjectID,
			HasChanged:      outcome.HasChanged,
			VoteChangeCount: outcome.Vote.VoteChangeCount,
		},
		Timestamp: timestamp(),
	}, nil
}

func (h Handler) StatusHandler(ctx context.Context, voterIP string) (httptransport.VoteStatusResponse, error) {
	status, err := h.Service.GetVoteStatus(ctx, voterIP)
	if err != nil {
		return httptransport.VoteStatusResponse{}, err
	}
	data := httptransport.VoteStatusData{
		HasVoted:        status.HasVoted,
		VotedProjectID:  status.ProjectID,
		VoteChangeCount: status.VoteChangeCount,
	}
	if status.HasVoted {
		data.FirstVotedAt = status.FirstVotedAt.UTC().Format(time.RFC3339)
		data.LastVotedAt = status.LastVotedAt.UTC().Format(time.RFC3339)
	}
	return httptransport.VoteStatusResponse{
		Status:    "success",
		Data:      data,
		Timestamp: timestamp(),
	}, nil
}

// CountVotes satisfies the vote counter the project listings consume.
func (h Handler) CountVotes(ctx context.Context, projectIDs []string) (map[string]int, error) {
	return h.Service.CountVotes(ctx, projectIDs)
}

func timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}
