package postgresadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"showcase/contexts/showcase/competition-service/domain/entities"
	domainerrors "showcase/contexts/showcase/competition-service/domain/errors"
	"showcase/contexts/showcase/competition-service/ports"
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

// UUIDGenerator creates UUIDv4 identifiers for competitions and events.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

func (r *Repository) CreateCompetition(ctx context.Context, competition entities.Competition) error {
	row := competitionModelFromEntity(competition)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrInvalidCompetitionInput
		}
		return err
	}
	return nil
}

func (r *Repository) GetCompetition(ctx context.Context, competitionID string) (entities.Competition, error) {
	var row competitionModel
	err := r.db.WithContext(ctx).
		Where("competition_id = ?", strings.TrimSpace(competitionID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Competition{}, domainerrors.ErrCompetitionNotFound
		}
		return entities.Competition{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) ListCompetitions(ctx context.Context, filter ports.CompetitionFilter) (ports.CompetitionPage, error) {
	tx := r.db.WithContext(ctx).Model(&competitionModel{})
	if filter.Status != "" {
		tx = tx.Where("status = ?", string(filter.Status))
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		tx = tx.Where("name ILIKE ?", "%"+search+"%")
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return ports.CompetitionPage{}, err
	}

	var rows []competitionModel
	if err := tx.
		Order("starts_at DESC").
		Limit(filter.PageSize).
		Offset((filter.Page - 1) * filter.PageSize).
		Find(&rows).
		Error; err != nil {
		return ports.CompetitionPage{}, err
	}

	items := make([]entities.Competition, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	totalPages := int((total + int64(filter.PageSize) - 1) / int64(filter.PageSize))
	return ports.CompetitionPage{
		Items:       items,
		CurrentPage: filter.Page,
		TotalPages:  totalPages,
		TotalItems:  total,
	}, nil
}

func (r *Repository) UpdateCompetition(ctx context.Context, competition entities.Competition) error {
	row := competitionModelFromEntity(competition)
	result := r.db.WithContext(ctx).
		Model(&competitionModel{}).
		Where("competition_id = ?", row.CompetitionID).
		Updates(map[string]any{
			"name":             row.Name,
			"description":      row.Description,
			"organizer":        row.Organizer,
			"contact_email":    row.ContactEmail,
			"website_url":      row.WebsiteURL,
			"starts_at":        row.StartsAt,
			"ends_at":          row.EndsAt,
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
		return domainerrors.ErrCompetitionNotFound
	}
	return nil
}

func (r *Repository) DeleteCompetition(ctx context.Context, competitionID string) error {
	result := r.db.WithContext(ctx).
		Where("competition_id = ?", strings.TrimSpace(competitionID)).
		Delete(&competitionModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrCompetitionNotFound
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
		return domainerrors.ErrCompetitionNotFound
	}
	return nil
}

type competitionModel struct {
	CompetitionID   string     `gorm:"column:competition_id;primaryKey"`
	Name            string     `gorm:"column:name"`
	Description     string     `gorm:"column:description"`
	Organizer       string     `gorm:"column:organizer"`
	ContactEmail    string     `gorm:"column:contact_email"`
	WebsiteURL      string     `gorm:"column:website_url"`
	StartsAt        time.Time  `gorm:"column:starts_at"`
	EndsAt          *time.Time `gorm:"column:ends_at"`
	Status          string     `gorm:"column:status"`
	ApprovedByID    string     `gorm:"column:approved_by_id"`
	RejectedByID    string     `gorm:"column:rejected_by_id"`
	RejectionReason string     `gorm:"column:rejection_reason"`
	CreatedAt       time.Time  `gorm:"column:created_at"`
	UpdatedAt       time.Time  `gorm:"column:updated_at"`
}

func (competitionModel) TableName() string {
	return "competitions"
}

func competitionModelFromEntity(item entities.Competition) competitionModel {
	return competitionModel{
		CompetitionID:   strings.TrimSpace(item.CompetitionID),
		Name:            strings.TrimSpace(item.Name),
		Description:     strings.TrimSpace(item.Description),
		Organizer:       strings.TrimSpace(item.Organizer),
		ContactEmail:    strings.TrimSpace(item.ContactEmail),
		WebsiteURL:      strings.TrimSpace(item.WebsiteURL),
		StartsAt:        item.StartsAt.UTC(),
		EndsAt:          normalizeOptionalTime(item.EndsAt),
		Status:          string(item.Status),
		ApprovedByID:    strings.TrimSpace(item.ApprovedByID),
		RejectedByID:    strings.TrimSpace(item.RejectedByID),
		RejectionReason: strings.TrimSpace(item.RejectionReason),
		CreatedAt:       item.CreatedAt.UTC(),
		UpdatedAt:       item.UpdatedAt.UTC(),
	}
}

func (m competitionModel) toEntity() entities.Competition {
	return entities.Competition{
		CompetitionID:   m.CompetitionID,
		Name:            m.Name,
		Description:     m.Description,
		Organizer:       m.Organizer,
		ContactEmail:    m.ContactEmail,
		WebsiteURL:      m.WebsiteURL,
		StartsAt:        m.StartsAt.UTC(),
		EndsAt:          normalizeOptionalTime(m.EndsAt),
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
	return "competition_outbox"
}

func normalizeOptionalTime(value *time.Time) *time.Time {
	if value == nil {
		return nil
	}
	timestamp := value.UTC()
	return &timestamp
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
