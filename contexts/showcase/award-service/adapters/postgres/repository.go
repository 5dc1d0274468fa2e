package postgresadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"showcase/contexts/showcase/award-service/domain/entities"
	domainerrors "showcase/contexts/showcase/award-service/domain/errors"
	"showcase/contexts/showcase/award-service/ports"
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

type UUIDGenerator struct{}

func (UUIDGenerator) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// ReferenceDirectory checks award associations against the project and
// competition tables owned by their sibling contexts. Read-only access
// across contexts is fine; the rows are never written from here.
type ReferenceDirectory struct {
	db *gorm.DB
}

func NewReferenceDirectory(db *gorm.DB) *ReferenceDirectory {
	return &ReferenceDirectory{db: db}
}

func (d *ReferenceDirectory) ProjectExists(ctx context.Context, projectID string) (bool, error) {
	var count int64
	err := d.db.WithContext(ctx).
		Table("projects").
		Where("project_id = ?", strings.TrimSpace(projectID)).
		Count(&count).
		Error
	return count > 0, err
}

func (d *ReferenceDirectory) CompetitionExists(ctx context.Context, competitionID string) (bool, error) {
	var count int64
	err := d.db.WithContext(ctx).
		Table("competitions").
		Where("competition_id = ?", strings.TrimSpace(competitionID)).
		Count(&count).
		Error
	return count > 0, err
}

func (r *Repository) CreateAward(ctx context.Context, award entities.Award) error {
	row := awardModelFromEntity(award)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrInvalidAwardInput
		}
		return err
	}
	return nil
}

func (r *Repository) GetAward(ctx context.Context, awardID string) (entities.Award, error) {
	var row awardModel
	err := r.db.WithContext(ctx).
		Where("award_id = ?", strings.TrimSpace(awardID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Award{}, domainerrors.ErrAwardNotFound
		}
		return entities.Award{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) ListAwards(ctx context.Context, filter ports.AwardFilter) (ports.AwardPage, error) {
	tx := r.db.WithContext(ctx).Model(&awardModel{})
	if filter.Status != "" {
		tx = tx.Where("status = ?", string(filter.Status))
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		tx = tx.Where("name ILIKE ?", "%"+search+"%")
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return ports.AwardPage{}, err
	}

	var rows []awardModel
	if err := tx.
		Order("created_at DESC").
		Limit(filter.PageSize).
		Offset((filter.Page - 1) * filter.PageSize).
		Find(&rows).
		Error; err != nil {
		return ports.AwardPage{}, err
	}

	items := make([]entities.Award, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	totalPages := int((total + int64(filter.PageSize) - 1) / int64(filter.PageSize))
	return ports.AwardPage{
		Items:       items,
		CurrentPage: filter.Page,
		TotalPages:  totalPages,
		TotalItems:  total,
	}, nil
}

func (r *Repository) UpdateAward(ctx context.Context, award entities.Award) error {
	row := awardModelFromEntity(award)
	result := r.db.WithContext(ctx).
		Model(&awardModel{}).
		Where("award_id = ?", row.AwardID).
		Updates(map[string]any{
			"name":             row.Name,
			"description":      row.Description,
			"image_url":        row.ImageURL,
			"status":           row.Status,
			"approved_by_id":   row.ApprovedByID,
			"rejected_by_id":   row.RejectedByID,
			"rejection_reason": row.RejectionReason,
			"updated_at":       row.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrAwardNotFound
	}
	return nil
}

// DeleteAward removes only the award row. Project and competition rows
// live in other contexts and are never cascaded.
func (r *Repository) DeleteAward(ctx context.Context, awardID string) error {
	result := r.db.WithContext(ctx).
		Where("award_id = ?", strings.TrimSpace(awardID)).
		Delete(&awardModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrAwardNotFound
	}
	return nil
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
		return domainerrors.ErrAwardNotFound
	}
	return nil
}

type awardModel struct {
	AwardID         string    `gorm:"column:award_id;primaryKey"`
	Name            string    `gorm:"column:name"`
	Description     string    `gorm:"column:description"`
	ImageURL        string    `gorm:"column:image_url"`
	ProjectID       string    `gorm:"column:project_id"`
	CompetitionID   string    `gorm:"column:competition_id"`
	Status          string    `gorm:"column:status"`
	ApprovedByID    string    `gorm:"column:approved_by_id"`
	RejectedByID    string    `gorm:"column:rejected_by_id"`
	RejectionReason string    `gorm:"column:rejection_reason"`
	CreatedAt       time.Time `gorm:"column:created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at"`
}

func (awardModel) TableName() string {
	return "awards"
}

func awardModelFromEntity(item entities.Award) awardModel {
	return awardModel{
		AwardID:         strings.TrimSpace(item.AwardID),
		Name:            strings.TrimSpace(item.Name),
		Description:     strings.TrimSpace(item.Description),
		ImageURL:        strings.TrimSpace(item.ImageURL),
		ProjectID:       strings.TrimSpace(item.ProjectID),
		CompetitionID:   strings.TrimSpace(item.CompetitionID),
		Status:          string(item.Status),
		ApprovedByID:    strings.TrimSpace(item.ApprovedByID),
		RejectedByID:    strings.TrimSpace(item.RejectedByID),
		RejectionReason: strings.TrimSpace(item.RejectionReason),
		CreatedAt:       item.CreatedAt.UTC(),
		UpdatedAt:       item.UpdatedAt.UTC(),
	}
}

func (m awardModel) toEntity() entities.Award {
	return entities.Award{
		AwardID:         m.AwardID,
		Name:            m.Name,
		Description:     m.Description,
		ImageURL:        m.ImageURL,
		ProjectID:       m.ProjectID,
		CompetitionID:   m.CompetitionID,
		Status:          entities.ApprovalStatus(m.Status),
		ApprovedByID:    m.ApprovedByID,
		RejectedByID:    m.RejectedByID,
		RejectionReason: m.RejectionReason,
		CreatedAt:       m.CreatedAt.UTC(),
		UpdatedAt:       m.UpdatedAt.UTC(),
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
	return "award_outbox"
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
