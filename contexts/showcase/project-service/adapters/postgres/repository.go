package postgresadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"showcase/contexts/showcase/project-service/domain/entities"
	domainerrors "showcase/contexts/showcase/project-service/domain/errors"
	"showcase/contexts/showcase/project-service/ports"
	"showcase/internal/shared/events"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	outboxStatusPending   = "pending"
	outboxStatusPublished = "published"
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

func (r *Repository) CreateProject(ctx context.Context, project entities.Project, showcase entities.Showcase) error {
	projectRow := projectModelFromEntity(project)
	showcaseRow := showcaseModelFromEntity(showcase)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&projectRow).Error; err != nil {
			return err
		}
		return tx.Create(&showcaseRow).Error
	})
	if err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrInvalidProjectInput
		}
		return err
	}
	return nil
}

func (r *Repository) GetProject(ctx context.Context, projectID string) (ports.ProjectWithShowcase, error) {
	var projectRow projectModel
	err := r.db.WithContext(ctx).
		Where("project_id = ?", strings.TrimSpace(projectID)).
		First(&projectRow).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.ProjectWithShowcase{}, domainerrors.ErrProjectNotFound
		}
		return ports.ProjectWithShowcase{}, err
	}

	var showcaseRow showcaseModel
	err = r.db.WithContext(ctx).
		Where("project_id = ?", projectRow.ProjectID).
		First(&showcaseRow).
		Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return ports.ProjectWithShowcase{}, err
	}

	return ports.ProjectWithShowcase{
		Project:  projectRow.toEntity(),
		Showcase: showcaseRow.toEntity(),
	}, nil
}

func (r *Repository) ListProjects(ctx context.Context, filter ports.ProjectFilter) (ports.ProjectPage, error) {
	tx := r.db.WithContext(ctx).Model(&projectModel{})
	if filter.Status != "" {
		tx = tx.Where("status = ?", string(filter.Status))
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		tx = tx.Where("name ILIKE ?", "%"+search+"%")
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return ports.ProjectPage{}, err
	}

	var rows []projectModel
	if err := tx.
		Order("created_at DESC").
		Limit(filter.PageSize).
		Offset((filter.Page - 1) * filter.PageSize).
		Find(&rows).
		Error; err != nil {
		return ports.ProjectPage{}, err
	}

	items := make([]entities.Project, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	totalPages := int((total + int64(filter.PageSize) - 1) / int64(filter.PageSize))
	return ports.ProjectPage{
		Items:       items,
		CurrentPage: filter.Page,
		TotalPages:  totalPages,
		TotalItems:  total,
	}, nil
}

func (r *Repository) ListShowcases(ctx context.Context, projectIDs []string) ([]entities.Showcase, error) {
	if len(projectIDs) == 0 {
		return nil, nil
	}
	var rows []showcaseModel
	if err := r.db.WithContext(ctx).
		Where("project_id IN ?", projectIDs).
		Find(&rows).
		Error; err != nil {
		return nil, err
	}
	items := make([]entities.Showcase, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) UpdateProject(ctx context.Context, project entities.Project) error {
	result := r.db.WithContext(ctx).
		Model(&projectModel{}).
		Where("project_id = ?", strings.TrimSpace(project.ProjectID)).
		Updates(projectUpdatesFromEntity(project))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrProjectNotFound
	}
	return nil
}

// RejectProject applies the status flip and the showcase un-feature as
// one transaction so a rejected-but-still-featured project is never
// observable.
func (r *Repository) RejectProject(ctx context.Context, project entities.Project, showcase entities.Showcase) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&projectModel{}).
			Where("project_id = ?", strings.TrimSpace(project.ProjectID)).
			Updates(projectUpdatesFromEntity(project))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerrors.ErrProjectNotFound
		}
		return tx.Model(&showcaseModel{}).
			Where("project_id = ?", strings.TrimSpace(showcase.ProjectID)).
			Updates(map[string]any{
				"featured":   showcase.Featured,
				"updated_at": showcase.UpdatedAt.UTC(),
			}).Error
	})
}

func (r *Repository) UpdateShowcase(ctx context.Context, showcase entities.Showcase) error {
	result := r.db.WithContext(ctx).
		Model(&showcaseModel{}).
		Where("project_id = ?", strings.TrimSpace(showcase.ProjectID)).
		Updates(map[string]any{
			"featured":       showcase.Featured,
			"featured_by_id": strings.TrimSpace(showcase.FeaturedByID),
			"cover_url":      strings.TrimSpace(showcase.CoverURL),
			"updated_at":     showcase.UpdatedAt.UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrProjectNotFound
	}
	return nil
}

func (r *Repository) DeleteProject(ctx context.Context, projectID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("project_id = ?", strings.TrimSpace(projectID)).Delete(&projectModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerrors.ErrProjectNotFound
		}
		return tx.Where("project_id = ?", strings.TrimSpace(projectID)).Delete(&showcaseModel{}).Error
	})
}

func (r *Repository) AppendOutbox(ctx context.Context, envelope events.Envelope) error {
	payload, err := json.Marshal(envelope)
	if err != nil {
		return err
	}
	row := outboxModel{
		OutboxID:  strings.TrimSpace(envelope.EventID),
		EventType: strings.TrimSpace(envelope.EventType),
		Payload:   payload,
		Status:    outboxStatusPending,
		CreatedAt: envelope.OccurredAt.UTC(),
	}
	if row.OutboxID == "" {
		row.OutboxID = uuid.NewString()
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "outbox_id"}},
			DoNothing: true,
		}).
		Create(&row).
		Error
}

func (r *Repository) ListPendingOutbox(ctx context.Context, limit int) ([]events.Envelope, error) {
	if limit <= 0 {
		limit = 100
	}
	var rows []outboxModel
	if err := r.db.WithContext(ctx).
		Where("status = ?", outboxStatusPending).
		Order("created_at ASC").
		Limit(limit).
		Find(&rows).
		Error; err != nil {
		return nil, err
	}
	items := make([]events.Envelope, 0, len(rows))
	for _, row := range rows {
		var envelope events.Envelope
		if err := json.Unmarshal(row.Payload, &envelope); err != nil {
			r.logger.Error("outbox row payload is not a valid envelope",
				"event", "project_outbox_decode_failed",
				"module", "showcase/project-service",
				"layer", "adapter",
				"outbox_id", row.OutboxID,
				"error", err.Error(),
			)
			continue
		}
		items = append(items, envelope)
	}
	return items, nil
}

func (r *Repository) MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&outboxModel{}).
		Where("outbox_id = ?", strings.TrimSpace(outboxID)).
		Updates(map[string]any{
			"status":       outboxStatusPublished,
			"published_at": publishedAt.UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrProjectNotFound
	}
	return nil
}

type projectModel struct {
	ProjectID       string    `gorm:"column:project_id;primaryKey"`
	Name            string    `gorm:"column:name"`
	Summary         string    `gorm:"column:summary"`
	Description     string    `gorm:"column:description"`
	TeamName        string    `gorm:"column:team_name"`
	TeamEmail       string    `gorm:"column:team_email"`
	RepoURL         string    `gorm:"column:repo_url"`
	DemoURL         string    `gorm:"column:demo_url"`
	Status          string    `gorm:"column:status"`
	ApprovedByID    string    `gorm:"column:approved_by_id"`
	RejectedByID    string    `gorm:"column:rejected_by_id"`
	RejectionReason string    `gorm:"column:rejection_reason"`
	CreatedAt       time.Time `gorm:"column:created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at"`
}

func (projectModel) TableName() string {
	return "projects"
}

func projectModelFromEntity(item entities.Project) projectModel {
	return projectModel{
		ProjectID:       strings.TrimSpace(item.ProjectID),
		Name:            strings.TrimSpace(item.Name),
		Summary:         strings.TrimSpace(item.Summary),
		Description:     strings.TrimSpace(item.Description),
		TeamName:        strings.TrimSpace(item.TeamName),
		TeamEmail:       strings.TrimSpace(item.TeamEmail),
		RepoURL:         strings.TrimSpace(item.RepoURL),
		DemoURL:         strings.TrimSpace(item.DemoURL),
		Status:          string(item.Status),
		ApprovedByID:    strings.TrimSpace(item.ApprovedByID),
		RejectedByID:    strings.TrimSpace(item.RejectedByID),
		RejectionReason: strings.TrimSpace(item.RejectionReason),
		CreatedAt:       item.CreatedAt.UTC(),
		UpdatedAt:       item.UpdatedAt.UTC(),
	}
}

func projectUpdatesFromEntity(item entities.Project) map[string]any {
	row := projectModelFromEntity(item)
	return map[string]any{
		"name":             row.Name,
		"summary":          row.Summary,
		"description":      row.Description,
		"team_name":        row.TeamName,
		"team_email":       row.TeamEmail,
		"repo_url":         row.RepoURL,
		"demo_url":         row.DemoURL,
		"status":           row.Status,
		"approved_by_id":   row.ApprovedByID,
		"rejected_by_id":   row.RejectedByID,
		"rejection_reason": row.RejectionReason,
		"updated_at":       row.UpdatedAt,
	}
}

func (m projectModel) toEntity() entities.Project {
	return entities.Project{
		ProjectID:       m.ProjectID,
		Name:            m.Name,
		Summary:         m.Summary,
		Description:     m.Description,
		TeamName:        m.TeamName,
		TeamEmail:       m.TeamEmail,
		RepoURL:         m.RepoURL,
		DemoURL:         m.DemoURL,
		Status:          entities.ApprovalStatus(m.Status),
		ApprovedByID:    m.ApprovedByID,
		RejectedByID:    m.RejectedByID,
		RejectionReason: m.RejectionReason,
		CreatedAt:       m.CreatedAt.UTC(),
		UpdatedAt:       m.UpdatedAt.UTC(),
	}
}

type showcaseModel struct {
	ProjectID    string    `gorm:"column:project_id;primaryKey"`
	Featured     bool      `gorm:"column:featured"`
	FeaturedByID string    `gorm:"column:featured_by_id"`
	CoverURL     string    `gorm:"column:cover_url"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (showcaseModel) TableName() string {
	return "project_showcases"
}

func showcaseModelFromEntity(item entities.Showcase) showcaseModel {
	return showcaseModel{
		ProjectID:    strings.TrimSpace(item.ProjectID),
		Featured:     item.Featured,
		FeaturedByID: strings.TrimSpace(item.FeaturedByID),
		CoverURL:     strings.TrimSpace(item.CoverURL),
		UpdatedAt:    item.UpdatedAt.UTC(),
	}
}

func (m showcaseModel) toEntity() entities.Showcase {
	return entities.Showcase{
		ProjectID:    m.ProjectID,
		Featured:     m.Featured,
		FeaturedByID: m.FeaturedByID,
		CoverURL:     m.CoverURL,
		UpdatedAt:    m.UpdatedAt.UTC(),
	}
}

type outboxModel struct {
	OutboxID    string     `gorm:"column:outbox_id;primaryKey"`
	EventType   string     `gorm:"column:event_type"`
	Payload     []byte     `gorm:"column:payload"`
	Status      string     `gorm:"column:status"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
	PublishedAt *time.Time `gorm:"column:published_at"`
}

func (outboxModel) TableName() string {
	return "project_outbox"
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
