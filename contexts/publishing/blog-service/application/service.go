package application

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"showcase/contexts/publishing/blog-service/domain/entities"
	domainerrors "showcase/contexts/publishing/blog-service/domain/errors"
	"showcase/contexts/publishing/blog-service/ports"
)

const (
	defaultPageSize = 10
	maxPageSize     = 50
)

type Service struct {
	Repo   ports.Repository
	Covers ports.CoverStore
	Clock  ports.Clock
	IDGen  ports.IDGenerator
	Logger *slog.Logger
}

type CreatePostInput struct {
	Title   string
	Excerpt string
	Body    string
	Cover   []byte
	// CoverContentType accompanies Cover when a cover image is
	// uploaded inline with the post.
	CoverContentType string
}

func (s Service) Create(ctx context.Context, actor ports.Actor, input CreatePostInput) (entities.Post, error) {
	if !actor.IsEditor() {
		return entities.Post{}, domainerrors.ErrForbidden
	}
	post := entities.Post{
		Title:    strings.TrimSpace(input.Title),
		Excerpt:  strings.TrimSpace(input.Excerpt),
		Body:     strings.TrimSpace(input.Body),
		AuthorID: actor.ID,
		Status:   entities.PostStatusDraft,
	}
	if !post.ValidateCreate() {
		return entities.Post{}, domainerrors.ErrInvalidPostInput
	}
	post.Slug = entities.Slugify(post.Title)
	if post.Slug == "" {
		return entities.Post{}, domainerrors.ErrInvalidPostInput
	}
	if _, err := s.Repo.GetPostBySlug(ctx, post.Slug); err == nil {
		return entities.Post{}, domainerrors.ErrSlugTaken
	} else if !errors.Is(err, domainerrors.ErrPostNotFound) {
		return entities.Post{}, err
	}

	if len(input.Cover) > 0 && s.Covers != nil {
		coverURL, err := s.Covers.Upload(ctx, input.Cover, input.CoverContentType)
		if err != nil {
			return entities.Post{}, err
		}
		post.CoverURL = coverURL
	}

	postID, err := s.IDGen.NewID(ctx)
	if err != nil {
		return entities.Post{}, err
	}
	now := s.Clock.Now().UTC()
	post.PostID = postID
	post.CreatedAt = now
	post.UpdatedAt = now
	if err := s.Repo.CreatePost(ctx, post); err != nil {
		return entities.Post{}, err
	}

	resolveLogger(s.Logger).Info("post drafted",
		"event", "post_drafted",
		"module", "publishing/blog-service",
		"layer", "application",
		"post_id", post.PostID,
		"slug", post.Slug,
	)
	return post, nil
}

type UpdatePostInput struct {
	Title            string
	Excerpt          string
	Body             string
	Cover            []byte
	CoverContentType string
}

func (s Service) Update(ctx context.Context, actor ports.Actor, postID string, input UpdatePostInput) (entities.Post, error) {
	if !actor.IsEditor() {
		return entities.Post{}, domainerrors.ErrForbidden
	}
	post, err := s.Repo.GetPost(ctx, strings.TrimSpace(postID))
	if err != nil {
		return entities.Post{}, err
	}
	if title := strings.TrimSpace(input.Title); title != "" && title != post.Title {
		slug := entities.Slugify(title)
		existing, err := s.Repo.GetPostBySlug(ctx, slug)
		if err == nil && existing.PostID != post.PostID {
			return entities.Post{}, domainerrors.ErrSlugTaken
		}
		if err != nil && !errors.Is(err, domainerrors.ErrPostNotFound) {
			return entities.Post{}, err
		}
		post.Title = title
		post.Slug = slug
	}
	if excerpt := strings.TrimSpace(input.Excerpt); excerpt != "" {
		post.Excerpt = excerpt
	}
	if body := strings.TrimSpace(input.Body); body != "" {
		post.Body = body
	}
	if len(input.Cover) > 0 && s.Covers != nil {
		coverURL, err := s.Covers.Upload(ctx, input.Cover, input.CoverContentType)
		if err != nil {
			return entities.Post{}, err
		}
		post.CoverURL = coverURL
	}
	post.UpdatedAt = s.Clock.Now().UTC()
	if err := s.Repo.UpdatePost(ctx, post); err != nil {
		return entities.Post{}, err
	}
	return post, nil
}

func (s Service) Publish(ctx context.Context, actor ports.Actor, postID string) (entities.Post, error) {
	return s.setStatus(ctx, actor, postID, entities.PostStatusPublished)
}

func (s Service) Unpublish(ctx context.Context, actor ports.Actor, postID string) (entities.Post, error) {
	return s.setStatus(ctx, actor, postID, entities.PostStatusDraft)
}

func (s Service) setStatus(ctx context.Context, actor ports.Actor, postID string, status entities.PostStatus) (entities.Post, error) {
	if !actor.IsEditor() {
		return entities.Post{}, domainerrors.ErrForbidden
	}
	post, err := s.Repo.GetPost(ctx, strings.TrimSpace(postID))
	if err != nil {
		return entities.Post{}, err
	}
	now := s.Clock.Now().UTC()
	post.Status = status
	post.UpdatedAt = now
	if status == entities.PostStatusPublished {
		post.PublishedAt = &now
	} else {
		post.PublishedAt = nil
	}
	if err := s.Repo.UpdatePost(ctx, post); err != nil {
		return entities.Post{}, err
	}

	resolveLogger(s.Logger).Info("post status changed",
		"event", "post_status_changed",
		"module", "publishing/blog-service",
		"layer", "application",
		"post_id", post.PostID,
		"post_status", string(status),
	)
	return post, nil
}

func (s Service) Delete(ctx context.Context, actor ports.Actor, postID string) error {
	if !actor.IsEditor() {
		return domainerrors.ErrForbidden
	}
	postID = strings.TrimSpace(postID)
	if _, err := s.Repo.GetPost(ctx, postID); err != nil {
		return err
	}
	return s.Repo.DeletePost(ctx, postID)
}

func (s Service) Get(ctx context.Context, postID string) (entities.Post, error) {
	return s.Repo.GetPost(ctx, strings.TrimSpace(postID))
}

func (s Service) GetBySlug(ctx context.Context, slug string) (entities.Post, error) {
	return s.Repo.GetPostBySlug(ctx, strings.TrimSpace(slug))
}

type ListPostsInput struct {
	Search   string
	Page     int
	PageSize int
	// PublishedOnly pins the listing to the public view.
	PublishedOnly bool
}

func (s Service) List(ctx context.Context, input ListPostsInput) (ports.PostPage, error) {
	filter := ports.PostFilter{
		Search:   strings.TrimSpace(input.Search),
		Page:     input.Page,
		PageSize: input.PageSize,
	}
	if input.PublishedOnly {
		filter.Status = entities.PostStatusPublished
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = defaultPageSize
	}
	if filter.PageSize > maxPageSize {
		filter.PageSize = maxPageSize
	}
	return s.Repo.ListPosts(ctx, filter)
}

func resolveLogger(logger *slog.Logger) *slog.Logger {
	if logger != nil {
		return logger
	}
	return slog.Default()
}
