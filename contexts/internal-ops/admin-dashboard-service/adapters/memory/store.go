package memory

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"showcase/contexts/internal-ops/admin-dashboard-service/domain/entities"
)

// Store holds the audit trail plus hand-set stats for tests.
type Store struct {
	mu sync.RWMutex

	audits   []entities.AuditEntry
	stats    entities.Stats
	sequence uint64
}

func NewStore() *Store {
	return &Store{
		stats: entities.Stats{
			ProjectsByStatus:     map[string]int64{},
			CompetitionsByStatus: map[string]int64{},
			AwardsByStatus:       map[string]int64{},
		},
	}
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return fmt.Sprintf("audit-id-%d", atomic.AddUint64(&s.sequence, 1)), nil
}

func (s *Store) SetStats(stats entities.Stats) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats = stats
}

func (s *Store) AppendAudit(_ context.Context, entry entities.AuditEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.audits = append(s.audits, entry)
	return nil
}

func (s *Store) ListRecentAudits(_ context.Context, limit int) ([]entities.AuditEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entities.AuditEntry, 0, limit)
	for i := len(s.audits) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, s.audits[i])
	}
	return out, nil
}

func (s *Store) ProjectStatusCounts(_ context.Context) (map[string]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneCounts(s.stats.ProjectsByStatus), nil
}

func (s *Store) CompetitionStatusCounts(_ context.Context) (map[string]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneCounts(s.stats.CompetitionsByStatus), nil
}

func (s *Store) AwardStatusCounts(_ context.Context) (map[string]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneCounts(s.stats.AwardsByStatus), nil
}

func (s *Store) PublishedPostCount(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stats.PublishedPosts, nil
}

func (s *Store) TotalUsers(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stats.TotalUsers, nil
}

func (s *Store) TotalVotes(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stats.TotalVotes, nil
}

func (s *Store) TotalVoteChanges(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stats.TotalVoteChanges, nil
}

func cloneCounts(counts map[string]int64) map[string]int64 {
	out := make(map[string]int64, len(counts))
	for status, count := range counts {
		out[status] = count
	}
	return out
}
