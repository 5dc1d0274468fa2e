package ports

import (
	"context"
	"time"

	"showcase/contexts/identity/user-service/domain/entities"
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

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

func (a Actor) IsModerator() bool {
	return a.Role == RoleAdmin || a.Role == RoleModerator
}

type UserFilter struct {
	Role     entities.Role
	Search   string
	Page     int
	PageSize int
}

type UserPage struct {
	Items       []entities.User
	CurrentPage int
	TotalPages  int
	TotalItems  int64
}

type Repository interface {
	CreateUser(ctx context.Context, user entities.User) error
	GetUser(ctx context.Context, userID string) (entities.User, error)
	ListUsers(ctx context.Context, filter UserFilter) (UserPage, error)
	UpdateUser(ctx context.Context, user entities.User) error
	DeleteUser(ctx context.Context, userID string) error
}
