package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"showcase/contexts/showcase/award-service/domain/entities"
	domainerrors "showcase/contexts/showcase/award-service/domain/errors"
	"showcase/contexts/showcase/award-service/ports"
	"showcase/internal/shared/events"
)

// Store backs the award module with plain maps. It implements every
// port the application layer needs, which keeps tests wiring-free.
type Store struct {
	mu sync.RWMutex

	awards       map[string]entities.Award
	actors       map[string]bool
	projects     map[string]bool
	competitions map[string]bool
	outbox       []events.Envelope
	audits       []ports.ModerationAudit
	sequence     uint64
}

func NewStore() *Store {
	return &Store{
		awards: map[string]entities.Award{},
		actors: map[string]bool{
			"admin-1": true,
			"mod-1":   true,
		},
		projects:     map[string]bool{},
		competitions: map[string]bool{},
	}
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return fmt.Sprintf("award-id-%d", atomic.AddUint64(&s.sequence, 1)), nil
}

func (s *Store) SeedProject(projectID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.projects[projectID] = true
}

func (s *Store) SeedCompetition(competitionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.competitions[competitionID] = true
}

func (s *Store) ActorExists(_ context.Context, actorID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.actors[strings.TrimSpace(actorID)], nil
}

func (s *Store) ProjectExists(_ context.Context, projectID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.projects[projectID], nil
}

func (s *Store) CompetitionExists(_ context.Context, competitionID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.competitions[competitionID], nil
}

func (s *Store) CreateAward(_ context.Context, award entities.Award) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.awards[award.AwardID]; ok {
		return domainerrors.ErrInvalidAwardInput
	}
	s.awards[award.AwardID] = award
	return nil
}

func (s *Store) GetAward(_ context.Context, awardID string) (entities.Award, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	award, ok := s.awards[awardID]
	if !ok {
		return entities.Award{}, domainerrors.ErrAwardNotFound
	}
	return award, nil
}

func (s *Store) ListAwards(_ context.Context, filter ports.AwardFilter) (ports.AwardPage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]entities.Award, 0, len(s.awards))
	needle := strings.ToLower(filter.Search)
	for _, award := range s.awards {
		if filter.Status != "" && award.Status != filter.Status {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(award.Name), needle) {
			continue
		}
		matched = append(matched, award)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	page := ports.AwardPage{TotalItems: int64(len(matched)), CurrentPage: filter.Page}
	page.TotalPages = int((page.TotalItems + int64(filter.PageSize) - 1) / int64(filter.PageSize))
	start := (filter.Page - 1) * filter.PageSize
	if start >= len(matched) {
		page.Items = []entities.Award{}
		return page, nil
	}
	end := start + filter.PageSize
	if end > len(matched) {
		end = len(matched)
	}
	page.Items = matched[start:end]
	return page, nil
}

func (s *Store) UpdateAward(_ context.Context, award entities.Award) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.awards[award.AwardID]; !ok {
		return domainerrors.ErrAwardNotFound
	}
	s.awards[award.AwardID] = award
	return nil
}

func (s *Store) DeleteAward(_ context.Context, awardID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.awards[awardID]; !ok {
		return domainerrors.ErrAwardNotFound
	}
	delete(s.awards, awardID)
	return nil
}

func (s *Store) AppendOutbox(_ context.Context, envelope events.Envelope) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.outbox = append(s.outbox, envelope)
	return nil
}

func (s *Store) RecordModerationAction(_ context.Context, action ports.ModerationAudit) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.audits = append(s.audits, action)
	return nil
}

func (s *Store) OutboxEvents() []events.Envelope {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]events.Envelope(nil), s.outbox...)
}

func (s *Store) AuditEntries() []ports.ModerationAudit {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]ports.ModerationAudit(nil), s.audits...)
}
