package ports

import (
	"context"
	"time"

	"showcase/contexts/publishing/blog-service/domain/entities"
)

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

type Actor struct {
	ID   string
	Role string
}

const (
	RoleAdmin     = "admin"
	RoleModerator = "moderator"
	RoleDeveloper = "developer"
)

// IsEditor gates authoring operations. Admins and moderators edit the
// blog; developers only read it.
func (a Actor) IsEditor() bool {
	return a.Role == RoleAdmin || a.Role == RoleModerator
}

type PostFilter struct {
	Status   entities.PostStatus
	Search   string
	Page     int
	PageSize int
}

type PostPage struct {
	Items       []entities.Post
	CurrentPage int
	TotalPages  int
	TotalItems  int64
}

type Repository interface {
	CreatePost(ctx context.Context, post entities.Post) error
	GetPost(ctx context.Context, postID string) (entities.Post, error)
	GetPostBySlug(ctx context.Context, slug string) (entities.Post, error)
	ListPosts(ctx context.Context, filter PostFilter) (PostPage, error)
	UpdatePost(ctx context.Context, post entities.Post) error
	DeletePost(ctx context.Context, postID string) error
}

// CoverStore persists uploaded cover images and hands back a public
// URL for the post to reference.
type CoverStore interface {
	Upload(ctx context.Context, data []byte, contentType string) (string, error)
}
