package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"showcase/contexts/showcase/project-service/domain/entities"
	domainerrors "showcase/contexts/showcase/project-service/domain/errors"
	"showcase/contexts/showcase/project-service/ports"
	"showcase/internal/shared/events"
)

// Store implements every project-service port in memory. Tests wire it
// as repository, actor directory, outbox, audit sink, clock and id
// generator at once.
type Store struct {
	mu sync.RWMutex

	projects  map[string]entities.Project
	showcases map[string]entities.Showcase
	actors    map[string]bool
	outbox    []events.Envelope
	audits    []ports.ModerationAudit
	sequence  uint64

	// FixedNow pins the clock for deterministic assertions.
	FixedNow time.Time
}

func NewStore() *Store {
	return &Store{
		projects:  map[string]entities.Project{},
		showcases: map[string]entities.Showcase{},
		actors: map[string]bool{
			"admin-1": true,
			"mod-1":   true,
		},
	}
}

func (s *Store) Now() time.Time {
	if !s.FixedNow.IsZero() {
		return s.FixedNow
	}
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return fmt.Sprintf("id-%d", atomic.AddUint64(&s.sequence, 1)), nil
}

func (s *Store) ActorExists(_ context.Context, actorID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.actors[strings.TrimSpace(actorID)], nil
}

func (s *Store) SeedActor(actorID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.actors[actorID] = true
}

func (s *Store) CreateProject(_ context.Context, project entities.Project, showcase entities.Showcase) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.projects[project.ProjectID]; ok {
		return domainerrors.ErrInvalidProjectInput
	}
	s.projects[project.ProjectID] = project
	s.showcases[project.ProjectID] = showcase
	return nil
}

func (s *Store) GetProject(_ context.Context, projectID string) (ports.ProjectWithShowcase, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	project, ok := s.projects[projectID]
	if !ok {
		return ports.ProjectWithShowcase{}, domainerrors.ErrProjectNotFound
	}
	return ports.ProjectWithShowcase{
		Project:  project,
		Showcase: s.showcases[projectID],
	}, nil
}

func (s *Store) ListProjects(_ context.Context, filter ports.ProjectFilter) (ports.ProjectPage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]entities.Project, 0, len(s.projects))
	needle := strings.ToLower(filter.Search)
	for _, project := range s.projects {
		if filter.Status != "" && project.Status != filter.Status {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(project.Name), needle) {
			continue
		}
		matched = append(matched, project)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	return paginate(matched, filter.Page, filter.PageSize), nil
}

func paginate(items []entities.Project, page int, pageSize int) ports.ProjectPage {
	total := int64(len(items))
	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	start := (page - 1) * pageSize
	if start >= len(items) {
		return ports.ProjectPage{Items: []entities.Project{}, CurrentPage: page, TotalPages: totalPages, TotalItems: total}
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return ports.ProjectPage{
		Items:       append([]entities.Project(nil), items[start:end]...),
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalItems:  total,
	}
}

func (s *Store) ListShowcases(_ context.Context, projectIDs []string) ([]entities.Showcase, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]entities.Showcase, 0, len(projectIDs))
	for _, id := range projectIDs {
		if showcase, ok := s.showcases[id]; ok {
			items = append(items, showcase)
		}
	}
	return items, nil
}

func (s *Store) UpdateProject(_ context.Context, project entities.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.projects[project.ProjectID]; !ok {
		return domainerrors.ErrProjectNotFound
	}
	s.projects[project.ProjectID] = project
	return nil
}

func (s *Store) RejectProject(_ context.Context, project entities.Project, showcase entities.Showcase) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.projects[project.ProjectID]; !ok {
		return domainerrors.ErrProjectNotFound
	}
	s.projects[project.ProjectID] = project
	s.showcases[project.ProjectID] = showcase
	return nil
}

func (s *Store) UpdateShowcase(_ context.Context, showcase entities.Showcase) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.showcases[showcase.ProjectID]; !ok {
		return domainerrors.ErrProjectNotFound
	}
	s.showcases[showcase.ProjectID] = showcase
	return nil
}

func (s *Store) DeleteProject(_ context.Context, projectID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.projects[projectID]; !ok {
		return domainerrors.ErrProjectNotFound
	}
	delete(s.projects, projectID)
	delete(s.showcases, projectID)
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
