package application

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"showcase/contexts/identity/user-service/domain/entities"
	domainerrors "showcase/contexts/identity/user-service/domain/errors"
	"showcase/contexts/identity/user-service/ports"
)

const (
	defaultPageSize = 10
	maxPageSize     = 50
)

type Service struct {
	Repo   ports.Repository
	Clock  ports.Clock
	IDGen  ports.IDGenerator
	Logger *slog.Logger
}

type CreateUserInput struct {
	Username    string
	Email       string
	DisplayName string
	Role        string
}

func (s Service) Create(ctx context.Context, input CreateUserInput) (entities.User, error) {
	user := entities.User{
		Username:    strings.TrimSpace(input.Username),
		Email:       strings.ToLower(strings.TrimSpace(input.Email)),
		DisplayName: strings.TrimSpace(input.DisplayName),
		Role:        entities.RoleDeveloper,
	}
	if raw := strings.TrimSpace(input.Role); raw != "" {
		role, ok := entities.ParseRole(raw)
		if !ok {
			return entities.User{}, domainerrors.ErrInvalidRole
		}
		user.Role = role
	}
	if !user.ValidateCreate() {
		return entities.User{}, domainerrors.ErrInvalidUserInput
	}

	userID, err := s.IDGen.NewID(ctx)
	if err != nil {
		return entities.User{}, err
	}
	now := s.Clock.Now().UTC()
	user.UserID = userID
	user.CreatedAt = now
	user.UpdatedAt = now
	if err := s.Repo.CreateUser(ctx, user); err != nil {
		return entities.User{}, err
	}

	resolveLogger(s.Logger).Info("user registered",
		"event", "user_registered",
		"module", "identity/user-service",
		"layer", "application",
		"user_id", user.UserID,
		"role", string(user.Role),
	)
	return user, nil
}

func (s Service) Get(ctx context.Context, userID string) (entities.User, error) {
	return s.Repo.GetUser(ctx, strings.TrimSpace(userID))
}

type ListUsersInput struct {
	Role     string
	Search   string
	Page     int
	PageSize int
}

// List is reserved for moderators and admins.
func (s Service) List(ctx context.Context, actor ports.Actor, input ListUsersInput) (ports.UserPage, error) {
	if !actor.IsModerator() {
		return ports.UserPage{}, domainerrors.ErrForbidden
	}
	filter := ports.UserFilter{
		Search:   strings.TrimSpace(input.Search),
		Page:     input.Page,
		PageSize: input.PageSize,
	}
	if raw := strings.TrimSpace(input.Role); raw != "" {
		role, ok := entities.ParseRole(raw)
		if !ok {
			return ports.UserPage{}, domainerrors.ErrInvalidRole
		}
		filter.Role = role
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
	return s.Repo.ListUsers(ctx, filter)
}

// ChangeRole is admin-only.
func (s Service) ChangeRole(ctx context.Context, actor ports.Actor, userID string, roleRaw string) (entities.User, error) {
	if !actor.IsAdmin() {
		return entities.User{}, domainerrors.ErrForbidden
	}
	role, ok := entities.ParseRole(roleRaw)
	if !ok {
		return entities.User{}, domainerrors.ErrInvalidRole
	}
	user, err := s.Repo.GetUser(ctx, strings.TrimSpace(userID))
	if err != nil {
		return entities.User{}, err
	}
	user.Role = role
	user.UpdatedAt = s.Clock.Now().UTC()
	if err := s.Repo.UpdateUser(ctx, user); err != nil {
		return entities.User{}, err
	}

	resolveLogger(s.Logger).Info("user role changed",
		"event", "user_role_changed",
		"module", "identity/user-service",
		"layer", "application",
		"user_id", user.UserID,
		"role", string(role),
		"actor_id", actor.ID,
	)
	return user, nil
}

// Delete is admin-only and an admin can never remove their own
// account.
func (s Service) Delete(ctx context.Context, actor ports.Actor, userID string) error {
	if !actor.IsAdmin() {
		return domainerrors.ErrForbidden
	}
	userID = strings.TrimSpace(userID)
	if userID == actor.ID {
		return domainerrors.ErrSelfDeletion
	}
	if _, err := s.Repo.GetUser(ctx, userID); err != nil {
		return err
	}
	return s.Repo.DeleteUser(ctx, userID)
}

// ActorExists implements the actor directory consumed by the
// moderation services.
func (s Service) ActorExists(ctx context.Context, actorID string) (bool, error) {
	_, err := s.Repo.GetUser(ctx, strings.TrimSpace(actorID))
	if errors.Is(err, domainerrors.ErrUserNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func resolveLogger(logger *slog.Logger) *slog.Logger {
	if logger != nil {
		return logger
	}
	return slog.Default()
}
