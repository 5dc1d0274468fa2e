package application

import (
	"context"
	"errors"
	"testing"

	"showcase/contexts/identity/user-service/adapters/memory"
	"showcase/contexts/identity/user-service/domain/entities"
	domainerrors "showcase/contexts/identity/user-service/domain/errors"
	"showcase/contexts/identity/user-service/ports"
)

func newService(t *testing.T) (Service, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	return Service{Repo: store, Clock: store, IDGen: store}, store
}

func registerUser(t *testing.T, svc Service, username string, role string) entities.User {
	t.Helper()
	user, err := svc.Create(context.Background(), CreateUserInput{
		Username: username,
		Email:    username + "@example.org",
		Role:     role,
	})
	if err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return user
}

func TestCreateDefaultsToDeveloperRole(t *testing.T) {
	svc, _ := newService(t)

	user := registerUser(t, svc, "maya", "")
	if user.Role != entities.RoleDeveloper {
		t.Fatalf("role = %q, want developer", user.Role)
	}
}

func TestCreateRejectsBadInput(t *testing.T) {
	svc, _ := newService(t)

	if _, err := svc.Create(context.Background(), CreateUserInput{Username: "x", Email: "not-an-email"}); !errors.Is(err, domainerrors.ErrInvalidUserInput) {
		t.Fatalf("err = %v, want ErrInvalidUserInput", err)
	}
	if _, err := svc.Create(context.Background(), CreateUserInput{Username: "x", Email: "x@example.org", Role: "superuser"}); !errors.Is(err, domainerrors.ErrInvalidRole) {
		t.Fatalf("err = %v, want ErrInvalidRole", err)
	}

	registerUser(t, svc, "taken", "")
	if _, err := svc.Create(context.Background(), CreateUserInput{Username: "taken", Email: "other@example.org"}); !errors.Is(err, domainerrors.ErrDuplicateUser) {
		t.Fatalf("err = %v, want ErrDuplicateUser", err)
	}
}

func TestListRequiresModerator(t *testing.T) {
	svc, _ := newService(t)
	registerUser(t, svc, "maya", "")

	if _, err := svc.List(context.Background(), ports.Actor{ID: "dev-1", Role: ports.RoleDeveloper}, ListUsersInput{}); !errors.Is(err, domainerrors.ErrForbidden) {
		t.Fatalf("developer list err = %v, want ErrForbidden", err)
	}
	page, err := svc.List(context.Background(), ports.Actor{ID: "mod-1", Role: ports.RoleModerator}, ListUsersInput{})
	if err != nil {
		t.Fatalf("moderator list: %v", err)
	}
	if page.TotalItems != 1 {
		t.Fatalf("total items = %d, want 1", page.TotalItems)
	}
}

func TestChangeRoleIsAdminOnly(t *testing.T) {
	svc, _ := newService(t)
	user := registerUser(t, svc, "maya", "")

	if _, err := svc.ChangeRole(context.Background(), ports.Actor{ID: "mod-1", Role: ports.RoleModerator}, user.UserID, "moderator"); !errors.Is(err, domainerrors.ErrForbidden) {
		t.Fatalf("moderator change err = %v, want ErrForbidden", err)
	}
	changed, err := svc.ChangeRole(context.Background(), ports.Actor{ID: "admin-1", Role: ports.RoleAdmin}, user.UserID, "moderator")
	if err != nil {
		t.Fatalf("admin change: %v", err)
	}
	if changed.Role != entities.RoleModerator {
		t.Fatalf("role = %q, want moderator", changed.Role)
	}
	if _, err := svc.ChangeRole(context.Background(), ports.Actor{ID: "admin-1", Role: ports.RoleAdmin}, user.UserID, "ruler"); !errors.Is(err, domainerrors.ErrInvalidRole) {
		t.Fatalf("bad role err = %v, want ErrInvalidRole", err)
	}
}

func TestDeleteForbidsSelfAndNonAdmins(t *testing.T) {
	svc, _ := newService(t)
	admin := registerUser(t, svc, "root", "admin")
	victim := registerUser(t, svc, "maya", "")

	if err := svc.Delete(context.Background(), ports.Actor{ID: "mod-1", Role: ports.RoleModerator}, victim.UserID); !errors.Is(err, domainerrors.ErrForbidden) {
		t.Fatalf("moderator delete err = %v, want ErrForbidden", err)
	}
	if err := svc.Delete(context.Background(), ports.Actor{ID: admin.UserID, Role: ports.RoleAdmin}, admin.UserID); !errors.Is(err, domainerrors.ErrSelfDeletion) {
		t.Fatalf("self delete err = %v, want ErrSelfDeletion", err)
	}
	if err := svc.Delete(context.Background(), ports.Actor{ID: admin.UserID, Role: ports.RoleAdmin}, victim.UserID); err != nil {
		t.Fatalf("admin delete: %v", err)
	}
	if _, err := svc.Get(context.Background(), victim.UserID); !errors.Is(err, domainerrors.ErrUserNotFound) {
		t.Fatalf("get after delete err = %v, want ErrUserNotFound", err)
	}
}

func TestActorExists(t *testing.T) {
	svc, _ := newService(t)
	user := registerUser(t, svc, "maya", "")

	exists, err := svc.ActorExists(context.Background(), user.UserID)
	if err != nil || !exists {
		t.Fatalf("exists = %v err = %v, want true", exists, err)
	}
	exists, err = svc.ActorExists(context.Background(), "ghost")
	if err != nil || exists {
		t.Fatalf("exists = %v err = %v, want false", exists, err)
	}
}
