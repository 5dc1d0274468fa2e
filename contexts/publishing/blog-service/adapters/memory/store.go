package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"showcase/contexts/publishing/blog-service/domain/entities"
	domainerrors "showcase/contexts/publishing/blog-service/domain/errors"
	"showcase/contexts/publishing/blog-service/ports"
)

type Store struct {
	mu sync.RWMutex

	posts    map[string]entities.Post
	sequence uint64
}

func NewStore() *Store {
	return &Store{posts: map[string]entities.Post{}}
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return fmt.Sprintf("post-id-%d", atomic.AddUint64(&s.sequence, 1)), nil
}

func (s *Store) CreatePost(_ context.Context, post entities.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.posts[post.PostID]; ok {
		return domainerrors.ErrInvalidPostInput
	}
	s.posts[post.PostID] = post
	return nil
}

func (s *Store) GetPost(_ context.Context, postID string) (entities.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	post, ok := s.posts[postID]
	if !ok {
		return entities.Post{}, domainerrors.ErrPostNotFound
	}
	return post, nil
}

func (s *Store) GetPostBySlug(_ context.Context, slug string) (entities.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, post := range s.posts {
		if post.Slug == slug {
			return post, nil
		}
	}
	return entities.Post{}, domainerrors.ErrPostNotFound
}

func (s *Store) ListPosts(_ context.Context, filter ports.PostFilter) (ports.PostPage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]entities.Post, 0, len(s.posts))
	needle := strings.ToLower(filter.Search)
	for _, post := range s.posts {
		if filter.Status != "" && post.Status != filter.Status {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(post.Title), needle) {
			continue
		}
		matched = append(matched, post)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	page := ports.PostPage{TotalItems: int64(len(matched)), CurrentPage: filter.Page}
	page.TotalPages = int((page.TotalItems + int64(filter.PageSize) - 1) / int64(filter.PageSize))
	start := (filter.Page - 1) * filter.PageSize
	if start >= len(matched) {
		page.Items = []entities.Post{}
		return page, nil
	}
	end := start + filter.PageSize
	if end > len(matched) {
		end = len(matched)
	}
	page.Items = matched[start:end]
	return page, nil
}

func (s *Store) UpdatePost(_ context.Context, post entities.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.posts[post.PostID]; !ok {
		return domainerrors.ErrPostNotFound
	}
	s.posts[post.PostID] = post
	return nil
}

func (s *Store) DeletePost(_ context.Context, postID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.posts[postID]; !ok {
		return domainerrors.ErrPostNotFound
	}
	delete(s.posts, postID)
	return nil
}
