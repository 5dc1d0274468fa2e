package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"showcase/contexts/publishing/blog-service/domain/entities"
	domainerrors "showcase/contexts/publishing/blog-service/domain/errors"
	"showcase/contexts/publishing/blog-service/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{db: db, logger: logger}
}

type UUIDGenerator struct{}

func (UUIDGenerator) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

func (r *Repository) CreatePost(ctx context.Context, post entities.Post) error {
	row := postModelFromEntity(post)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrSlugTaken
		}
		return err
	}
	return nil
}

func (r *Repository) GetPost(ctx context.Context, postID string) (entities.Post, error) {
	var row postModel
	err := r.db.WithContext(ctx).
		Where("post_id = ?", strings.TrimSpace(postID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Post{}, domainerrors.ErrPostNotFound
		}
		return entities.Post{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) GetPostBySlug(ctx context.Context, slug string) (entities.Post, error) {
	var row postModel
	err := r.db.WithContext(ctx).
		Where("slug = ?", strings.TrimSpace(slug)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Post{}, domainerrors.ErrPostNotFound
		}
		return entities.Post{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) ListPosts(ctx context.Context, filter ports.PostFilter) (ports.PostPage, error) {
	tx := r.db.WithContext(ctx).Model(&postModel{})
	if filter.Status != "" {
		tx = tx.Where("status = ?", string(filter.Status))
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		tx = tx.Where("title ILIKE ?", "%"+search+"%")
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return ports.PostPage{}, err
	}

	var rows []postModel
	if err := tx.
		Order("created_at DESC").
		Limit(filter.PageSize).
		Offset((filter.Page - 1) * filter.PageSize).
		Find(&rows).
		Error; err != nil {
		return ports.PostPage{}, err
	}

	items := make([]entities.Post, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	totalPages := int((total + int64(filter.PageSize) - 1) / int64(filter.PageSize))
	return ports.PostPage{
		Items:       items,
		CurrentPage: filter.Page,
		TotalPages:  totalPages,
		TotalItems:  total,
	}, nil
}

func (r *Repository) UpdatePost(ctx context.Context, post entities.Post) error {
	row := postModelFromEntity(post)
	result := r.db.WithContext(ctx).
		Model(&postModel{}).
		Where("post_id = ?", row.PostID).
		Updates(map[string]any{
			"title":        row.Title,
			"slug":         row.Slug,
			"excerpt":      row.Excerpt,
			"body":         row.Body,
			"cover_url":    row.CoverURL,
			"status":       row.Status,
			"published_at": row.PublishedAt,
			"updated_at":   row.UpdatedAt,
		})
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return domainerrors.ErrSlugTaken
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrPostNotFound
	}
	return nil
}

func (r *Repository) DeletePost(ctx context.Context, postID string) error {
	result := r.db.WithContext(ctx).
		Where("post_id = ?", strings.TrimSpace(postID)).
		Delete(&postModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrPostNotFound
	}
	return nil
}

type postModel struct {
	PostID      string     `gorm:"column:post_id;primaryKey"`
	Title       string     `gorm:"column:title"`
	Slug        string     `gorm:"column:slug;uniqueIndex"`
	Excerpt     string     `gorm:"column:excerpt"`
	Body        string     `gorm:"column:body"`
	CoverURL    string     `gorm:"column:cover_url"`
	AuthorID    string     `gorm:"column:author_id"`
	Status      string     `gorm:"column:status"`
	PublishedAt *time.Time `gorm:"column:published_at"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at"`
}

func (postModel) TableName() string {
	return "blog_posts"
}

func postModelFromEntity(item entities.Post) postModel {
	row := postModel{
		PostID:    strings.TrimSpace(item.PostID),
		Title:     strings.TrimSpace(item.Title),
		Slug:      strings.TrimSpace(item.Slug),
		Excerpt:   strings.TrimSpace(item.Excerpt),
		Body:      item.Body,
		CoverURL:  strings.TrimSpace(item.CoverURL),
		AuthorID:  strings.TrimSpace(item.AuthorID),
		Status:    string(item.Status),
		CreatedAt: item.CreatedAt.UTC(),
		UpdatedAt: item.UpdatedAt.UTC(),
	}
	if item.PublishedAt != nil {
		publishedAt := item.PublishedAt.UTC()
		row.PublishedAt = &publishedAt
	}
	return row
}

func (m postModel) toEntity() entities.Post {
	item := entities.Post{
		PostID:    m.PostID,
		Title:     m.Title,
		Slug:      m.Slug,
		Excerpt:   m.Excerpt,
		Body:      m.Body,
		CoverURL:  m.CoverURL,
		AuthorID:  m.AuthorID,
		Status:    entities.PostStatus(m.Status),
		CreatedAt: m.CreatedAt.UTC(),
		UpdatedAt: m.UpdatedAt.UTC(),
	}
	if m.PublishedAt != nil {
		publishedAt := m.PublishedAt.UTC()
		item.PublishedAt = &publishedAt
	}
	return item
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
