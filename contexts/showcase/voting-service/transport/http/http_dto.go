package httptransport

type VoteResultData struct {
	ProjectID       string `json:"project_id"`
	HasChanged      bool   `json:"has_changed"`
	VoteChangeCount int    `json:"vote_change_count"`
}

type VoteResponse struct {
	Status    string         `json:"status"`
	Data      VoteResultData `json:"data"`
	Timestamp string         `json:"timestamp"`
}

type VoteStatusData struct {
	HasVoted        bool   `json:"hasVoted"`
	VotedProjectID  string `json:"votedProjectId,omitempty"`
	VoteChangeCount int    `json:"voteChangeCount"`
	FirstVotedAt    string `json:"firstVotedAt,omitempty"`
	LastVotedAt     string `json:"lastVotedAt,omitempty"`
}

type VoteStatusResponse struct {
	Status    string         `json:"status"`
	Data      VoteStatusData `json:"data"`
	Timestamp string         `json:"timestamp"`
}

type ErrorBody struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

type ErrorEnvelope struct {
	Status    string    `json:"status"`
	Error     ErrorBody `json:"error"`
	Timestamp string    `json:"timestamp"`
}
