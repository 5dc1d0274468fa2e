package httpserver

import (
	"errors"
	"net/http"
	"time"

	usererrors "showcase/contexts/identity/user-service/domain/errors"
	userports "showcase/contexts/identity/user-service/ports"
	userhttp "showcase/contexts/identity/user-service/transport/http"
)

func writeUserError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, userhttp.ErrorEnvelope{
		Status: "error",
		Error: userhttp.ErrorBody{
			Code:    code,
			Message: message,
		},
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func writeUserDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, usererrors.ErrUserNotFound):
		writeUserError(w, http.StatusNotFound, "USER_NOT_FOUND", err.Error())
	case errors.Is(err, usererrors.ErrInvalidUserInput),
		errors.Is(err, usererrors.ErrInvalidRole):
		writeUserError(w, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
	case errors.Is(err, usererrors.ErrDuplicateUser):
		writeUserError(w, http.StatusConflict, "USER_ALREADY_EXISTS", err.Error())
	case errors.Is(err, usererrors.ErrSelfDeletion):
		writeUserError(w, http.StatusConflict, "SELF_DELETION", err.Error())
	case errors.Is(err, usererrors.ErrForbidden):
		writeUserError(w, http.StatusForbidden, "PERMISSION_DENIED", err.Error())
	default:
		writeUserError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}

func (s *Server) requireUserActor(w http.ResponseWriter, r *http.Request) (userports.Actor, bool) {
	if !hasBearerToken(r) {
		writeUserError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authorization bearer token is required")
		return userports.Actor{}, false
	}
	who := resolveIdentity(r)
	if who.ID == "" || who.Role == "" {
		writeUserError(w, http.StatusUnauthorized, "IDENTITY_REQUIRED", "X-User-Id and X-User-Role headers are required")
		return userports.Actor{}, false
	}
	return userports.Actor{ID: who.ID, Role: who.Role}, true
}

func (s *Server) handleAdminListUsers(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.requireUserActor(w, r)
	if !ok {
		return
	}
	page, pageSize := queryPage(r)
	resp, err := s.modules.Users.Handler.ListHandler(
		r.Context(),
		actor,
		r.URL.Query().Get("role"),
		r.URL.Query().Get("search"),
		page,
		pageSize,
	)
	if err != nil {
		writeUserDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireUserActor(w, r); !ok {
		return
	}
	var req userhttp.CreateUserRequest
	if !s.decodeJSON(w, r, &req, func(w http.ResponseWriter, status int, code string, message string) {
		writeUserError(w, status, "INVALID_JSON", message)
	}) {
		return
	}
	resp, err := s.modules.Users.Handler.CreateHandler(r.Context(), req)
	if err != nil {
		writeUserDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleChangeUserRole(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.requireUserActor(w, r)
	if !ok {
		return
	}
	var req userhttp.ChangeRoleRequest
	if !s.decodeJSON(w, r, &req, func(w http.ResponseWriter, status int, code string, message string) {
		writeUserError(w, status, "INVALID_JSON", message)
	}) {
		return
	}
	resp, err := s.modules.Users.Handler.ChangeRoleHandler(r.Context(), actor, r.PathValue("user_id"), req)
	if err != nil {
		writeUserDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.requireUserActor(w, r)
	if !ok {
		return
	}
	resp, err := s.modules.Users.Handler.DeleteHandler(r.Context(), actor, r.PathValue("user_id"))
	if err != nil {
		writeUserDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
