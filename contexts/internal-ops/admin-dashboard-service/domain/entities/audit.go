package entities

import "time"

// AuditEntry records one moderation decision. Entries are append-only;
// nothing in the system edits or removes them.
type AuditEntry struct {
	AuditID    string
	EntityType string
	EntityID   string
	Action     string
	ActorID    string
	ActorRole  string
	Reason     string
	OccurredAt time.Time
}

// Stats is the aggregate snapshot served to the admin dashboard.
type Stats struct {
	ProjectsByStatus     map[string]int64
	CompetitionsByStatus map[string]int64
	AwardsByStatus       map[string]int64
	PublishedPosts       int64
	TotalUsers           int64
	TotalVotes           int64
	TotalVoteChanges     int64
}
