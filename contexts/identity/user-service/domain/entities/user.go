package entities

import (
	"strings"
	"time"
)

type Role string

const (
	RoleAdmin     Role = "admin"
	RoleModerator Role = "moderator"
	RoleDeveloper Role = "developer"
)

func ParseRole(raw string) (Role, bool) {
	switch Role(strings.ToLower(strings.TrimSpace(raw))) {
	case RoleAdmin:
		return RoleAdmin, true
	case RoleModerator:
		return RoleModerator, true
	case RoleDeveloper:
		return RoleDeveloper, true
	default:
		return "", false
	}
}

type User struct {
	UserID      string
	Username    string
	Email       string
	DisplayName string
	Role        Role
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (u User) ValidateCreate() bool {
	return u.Username != "" && u.Email != "" && strings.Contains(u.Email, "@")
}
