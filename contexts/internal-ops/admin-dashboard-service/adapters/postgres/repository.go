package postgresadapter

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"showcase/contexts/internal-ops/admin-dashboard-service/domain/entities"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
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

func (r *Repository) AppendAudit(ctx context.Context, entry entities.AuditEntry) error {
	row := auditModelFromEntity(entry)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "audit_id"}},
			DoNothing: true,
		}).
		Create(&row).
		Error
}

func (r *Repository) ListRecentAudits(ctx context.Context, limit int) ([]entities.AuditEntry, error) {
	var rows []auditModel
	if err := r.db.WithContext(ctx).
		Order("occurred_at DESC").
		Limit(limit).
		Find(&rows).
		Error; err != nil {
		return nil, err
	}
	items := make([]entities.AuditEntry, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) ProjectStatusCounts(ctx context.Context) (map[string]int64, error) {
	return r.statusCounts(ctx, "projects")
}

func (r *Repository) CompetitionStatusCounts(ctx context.Context) (map[string]int64, error) {
	return r.statusCounts(ctx, "competitions")
}

func (r *Repository) AwardStatusCounts(ctx context.Context) (map[string]int64, error) {
	return r.statusCounts(ctx, "awards")
}

func (r *Repository) statusCounts(ctx context.Context, table string) (map[string]int64, error) {
	type tally struct {
		Status string `gorm:"column:status"`
		Total  int64  `gorm:"column:total"`
	}
	var rows []tally
	err := r.db.WithContext(ctx).
		Table(table).
		Select("status, COUNT(*) AS total").
		Group("status").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	counts := map[string]int64{}
	for _, row := range rows {
		counts[row.Status] = row.Total
	}
	return counts, nil
}

func (r *Repository) PublishedPostCount(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Table("blog_posts").
		Where("status = ?", "published").
		Count(&total).
		Error
	return total, err
}

func (r *Repository) TotalUsers(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Table("users").Count(&total).Error
	return total, err
}

func (r *Repository) TotalVotes(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Table("project_votes").Count(&total).Error
	return total, err
}

func (r *Repository) TotalVoteChanges(ctx context.Context) (int64, error) {
	var total *int64
	err := r.db.WithContext(ctx).
		Table("project_votes").
		Select("SUM(vote_change_count)").
		Scan(&total).
		Error
	if err != nil || total == nil {
		return 0, err
	}
	return *total, nil
}

type auditModel struct {
	AuditID    string    `gorm:"column:audit_id;primaryKey"`
	EntityType string    `gorm:"column:entity_type"`
	EntityID   string    `gorm:"column:entity_id"`
	Action     string    `gorm:"column:action"`
	ActorID    string    `gorm:"column:actor_id"`
	ActorRole  string    `gorm:"column:actor_role"`
	Reason     string    `gorm:"column:reason"`
	OccurredAt time.Time `gorm:"column:occurred_at"`
}

func (auditModel) TableName() string {
	return "moderation_audits"
}

func auditModelFromEntity(item entities.AuditEntry) auditModel {
	return auditModel{
		AuditID:    strings.TrimSpace(item.AuditID),
		EntityType: strings.TrimSpace(item.EntityType),
		EntityID:   strings.TrimSpace(item.EntityID),
		Action:     strings.TrimSpace(item.Action),
		ActorID:    strings.TrimSpace(item.ActorID),
		ActorRole:  strings.TrimSpace(item.ActorRole),
		Reason:     strings.TrimSpace(item.Reason),
		OccurredAt: item.OccurredAt.UTC(),
	}
}

func (m auditModel) toEntity() entities.AuditEntry {
	return entities.AuditEntry{
		AuditID:    m.AuditID,
		EntityType: m.EntityType,
		EntityID:   m.EntityID,
		Action:     m.Action,
		ActorID:    m.ActorID,
		ActorRole:  m.ActorRole,
		Reason:     m.Reason,
		OccurredAt: m.OccurredAt.UTC(),
	}
}
