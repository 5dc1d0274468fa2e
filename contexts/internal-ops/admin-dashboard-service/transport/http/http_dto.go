package httptransport

type StatsData struct {
	ProjectsByStatus     map[string]int64 `json:"projects_by_status"`
	CompetitionsByStatus map[string]int64 `json:"competitions_by_status"`
	AwardsByStatus       map[string]int64 `json:"awards_by_status"`
	PublishedPosts       int64            `json:"published_posts"`
	TotalUsers           int64            `json:"total_users"`
	TotalVotes           int64            `json:"total_votes"`
	TotalVoteChanges     int64            `json:"total_vote_changes"`
}

type AuditEntryData struct {
	AuditID    string `json:"audit_id"`
	EntityType string `json:"entity_type"`
	EntityID   string `json:"entity_id"`
	Action     string `json:"action"`
	ActorID    string `json:"actor_id"`
	ActorRole  string `json:"actor_role"`
	Reason     string `json:"reason,omitempty"`
	OccurredAt string `json:"occurred_at"`
}

type DashboardData struct {
	Stats        StatsData        `json:"stats"`
	RecentAudits []AuditEntryData `json:"recent_audits"`
}

type DashboardResponse struct {
	Status    string        `json:"status"`
	Data      DashboardData `json:"data"`
	Timestamp string        `json:"timestamp"`
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
