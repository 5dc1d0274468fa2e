package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"showcase/contexts/showcase/competition-service/domain/entities"
	domainerrors "showcase/contexts/showcase/competition-service/domain/errors"
	"showcase/contexts/showcase/competition-service/ports"
	"showcase/internal/shared/events"
)

type Store struct {
	mu sync.RWMutex

	competitions map[string]entities.Competition
	actors       map[string]bool
	outbox       []events.Envelope
	audits       []ports.ModerationAudit
	sequence     uint64
}

func NewStore() *Store {
	return &Store{
		competitions: map[string]entities.Competition{},
		actors: map[string]bool{
			"admin-1": true,
			"mod-1":   true,
		},
	}
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return fmt.Sprintf("comp-id-%d", atomic.AddUint64(&s.sequence, 1)), nil
}

func (s *Store) ActorExists(_ context.Context, actorID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.actors[strings.TrimSpace(actorID)], nil
}

func (s *Store) CreateCompetition(_ context.Context, competition entities.Competition) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.competitions[competition.CompetitionID]; ok {
		return domainerrors.ErrInvalidCompetitionInput
	}
	s.competitions[competition.CompetitionID] = competition
	return nil
}

func (s *Store) GetCompetition(_ context.Context, competitionID string) (entities.Competition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	competition, ok := s.competitions[competitionID]
	if !ok {
		return entities.Competition{}, domainerrors.ErrCompetitionNotFound
	}
	return competition, nil
}

func (s *Store) ListCompetitions(_ context.Context, filter ports.CompetitionFilter) (ports.CompetitionPage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]entities.Competition, 0, len(s.competitions))
	needle := strings.ToLower(filter.Search)
	for _, competition := range s.competitions {
		if filter.Status != "" && competition.Status != filter.Status {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(competition.Name), needle) {
			continue
		}
		matched = append(matched, competition)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].StartsAt.After(matched[j].StartsAt)
	})

	total := int64(len(matched))
	totalPages := int((total + int64(filter.PageSize) - 1) / int64(filter.PageSize))
	start := (filter.Page - 1) * filter.PageSize
	if start >= len(matched) {
		return ports.CompetitionPage{Items: []entities.Competition{}, CurrentPage: filter.Page, TotalPages: totalPages, TotalItems: total}, nil
	}
	end := start + filter.PageSize
	if end > len(matched) {
		end = len(matched)
	}
	return ports.CompetitionPage{
		Items:       append([]entities.Competition(nil), matched[start:end]...),
		CurrentPage: filter.Page,
		TotalPages:  totalPages,
		TotalItems:  total,
	}, nil
}

func (s *Store) UpdateCompetition(_ context.Context, competition entities.Competition) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.competitions[competition.CompetitionID]; !ok {
		return domainerrors.ErrCompetitionNotFound
	}
	s.competitions[competition.CompetitionID] = competition
	return nil
}

func (s *Store) DeleteCompetition(_ context.Context, competitionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.competitions[competitionID]; !ok {
		return domainerrors.ErrCompetitionNotFound
	}
	delete(s.competitions, competitionID)
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
