package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"showcase/contexts/identity/user-service/domain/entities"
	domainerrors "showcase/contexts/identity/user-service/domain/errors"
	"showcase/contexts/identity/user-service/ports"
)

type Store struct {
	mu sync.RWMutex

	users    map[string]entities.User
	sequence uint64
}

func NewStore() *Store {
	return &Store{users: map[string]entities.User{}}
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return fmt.Sprintf("user-id-%d", atomic.AddUint64(&s.sequence, 1)), nil
}

func (s *Store) CreateUser(_ context.Context, user entities.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Username == user.Username || existing.Email == user.Email {
			return domainerrors.ErrDuplicateUser
		}
	}
	s.users[user.UserID] = user
	return nil
}

func (s *Store) GetUser(_ context.Context, userID string) (entities.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[userID]
	if !ok {
		return entities.User{}, domainerrors.ErrUserNotFound
	}
	return user, nil
}

func (s *Store) ListUsers(_ context.Context, filter ports.UserFilter) (ports.UserPage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]entities.User, 0, len(s.users))
	needle := strings.ToLower(filter.Search)
	for _, user := range s.users {
		if filter.Role != "" && user.Role != filter.Role {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(user.Username), needle) &&
			!strings.Contains(strings.ToLower(user.Email), needle) {
			continue
		}
		matched = append(matched, user)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	page := ports.UserPage{TotalItems: int64(len(matched)), CurrentPage: filter.Page}
	page.TotalPages = int((page.TotalItems + int64(filter.PageSize) - 1) / int64(filter.PageSize))
	start := (filter.Page - 1) * filter.PageSize
	if start >= len(matched) {
		page.Items = []entities.User{}
		return page, nil
	}
	end := start + filter.PageSize
	if end > len(matched) {
		end = len(matched)
	}
	page.Items = matched[start:end]
	return page, nil
}

func (s *Store) UpdateUser(_ context.Context, user entities.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.UserID]; !ok {
		return domainerrors.ErrUserNotFound
	}
	s.users[user.UserID] = user
	return nil
}

func (s *Store) DeleteUser(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[userID]; !ok {
		return domainerrors.ErrUserNotFound
	}
	delete(s.users, userID)
	return nil
}
