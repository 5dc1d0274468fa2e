package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"showcase/contexts/identity/user-service/domain/entities"
	domainerrors "showcase/contexts/identity/user-service/domain/errors"
	"showcase/contexts/identity/user-service/ports"

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

func (r *Repository) CreateUser(ctx context.Context, user entities.User) error {
	row := userModelFromEntity(user)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrDuplicateUser
		}
		return err
	}
	return nil
}

func (r *Repository) GetUser(ctx context.Context, userID string) (entities.User, error) {
	var row userModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", strings.TrimSpace(userID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.User{}, domainerrors.ErrUserNotFound
		}
		return entities.User{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) ListUsers(ctx context.Context, filter ports.UserFilter) (ports.UserPage, error) {
	tx := r.db.WithContext(ctx).Model(&userModel{})
	if filter.Role != "" {
		tx = tx.Where("role = ?", string(filter.Role))
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + search + "%"
		tx = tx.Where("username ILIKE ? OR email ILIKE ?", like, like)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return ports.UserPage{}, err
	}

	var rows []userModel
	if err := tx.
		Order("created_at DESC").
		Limit(filter.PageSize).
		Offset((filter.Page - 1) * filter.PageSize).
		Find(&rows).
		Error; err != nil {
		return ports.UserPage{}, err
	}

	items := make([]entities.User, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	totalPages := int((total + int64(filter.PageSize) - 1) / int64(filter.PageSize))
	return ports.UserPage{
		Items:       items,
		CurrentPage: filter.Page,
		TotalPages:  totalPages,
		TotalItems:  total,
	}, nil
}

func (r *Repository) UpdateUser(ctx context.Context, user entities.User) error {
	row := userModelFromEntity(user)
	result := r.db.WithContext(ctx).
		Model(&userModel{}).
		Where("user_id = ?", row.UserID).
		Updates(map[string]any{
			"display_name": row.DisplayName,
			"role":         row.Role,
			"updated_at":   row.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrUserNotFound
	}
	return nil
}

func (r *Repository) DeleteUser(ctx context.Context, userID string) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ?", strings.TrimSpace(userID)).
		Delete(&userModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrUserNotFound
	}
	return nil
}

type userModel struct {
	UserID      string    `gorm:"column:user_id;primaryKey"`
	Username    string    `gorm:"column:username;uniqueIndex"`
	Email       string    `gorm:"column:email;uniqueIndex"`
	DisplayName string    `gorm:"column:display_name"`
	Role        string    `gorm:"column:role"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (userModel) TableName() string {
	return "users"
}

func userModelFromEntity(item entities.User) userModel {
	return userModel{
		UserID:      strings.TrimSpace(item.UserID),
		Username:    strings.TrimSpace(item.Username),
		Email:       strings.TrimSpace(item.Email),
		DisplayName: strings.TrimSpace(item.DisplayName),
		Role:        string(item.Role),
		CreatedAt:   item.CreatedAt.UTC(),
		UpdatedAt:   item.UpdatedAt.UTC(),
	}
}

func (m userModel) toEntity() entities.User {
	return entities.User{
		UserID:      m.UserID,
		Username:    m.Username,
		Email:       m.Email,
		DisplayName: m.DisplayName,
		Role:        entities.Role(m.Role),
		CreatedAt:   m.CreatedAt.UTC(),
		UpdatedAt:   m.UpdatedAt.UTC(),
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
