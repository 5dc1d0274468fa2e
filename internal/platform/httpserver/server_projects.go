package httpserver

import (
	"errors"
	"net/http"
	"time"

	projecterrors "showcase/contexts/showcase/project-service/domain/errors"
	projectports "showcase/contexts/showcase/project-service/ports"
	projecthttp "showcase/contexts/showcase/project-service/transport/http"
)

func writeProjectError(w http.ResponseWriter, status int, code string, message string, details map[string]any) {
	writeJSON(w, status, projecthttp.ErrorEnvelope{
		Status: "error",
		Error: projecthttp.ErrorBody{
			Code:    code,
			Message: message,
			Details: details,
		},
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func writeProjectDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, projecterrors.ErrProjectNotFound):
		writeProjectError(w, http.StatusNotFound, "PROJECT_NOT_FOUND", err.Error(), nil)
	case errors.Is(err, projecterrors.ErrInvalidProjectInput),
		errors.Is(err, projecterrors.ErrInvalidStatus),
		errors.Is(err, projecterrors.ErrReasonRequired),
		errors.Is(err, projecterrors.ErrNotApproved):
		writeProjectError(w, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
	case errors.Is(err, projecterrors.ErrUnknownActor):
		writeProjectError(w, http.StatusUnauthorized, "UNKNOWN_ACTOR", err.Error(), nil)
	case errors.Is(err, projecterrors.ErrForbidden):
		writeProjectError(w, http.StatusForbidden, "PERMISSION_DENIED", err.Error(), nil)
	default:
		writeProjectError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error", nil)
	}
}

func (s *Server) requireProjectActor(w http.ResponseWriter, r *http.Request) (projectports.Actor, bool) {
	if !hasBearerToken(r) {
		writeProjectError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authorization bearer token is required", nil)
		return projectports.Actor{}, false
	}
	who := resolveIdentity(r)
	if who.ID == "" || who.Role == "" {
		writeProjectError(w, http.StatusUnauthorized, "IDENTITY_REQUIRED", "X-User-Id and X-User-Role headers are required", nil)
		return projectports.Actor{}, false
	}
	return projectports.Actor{ID: who.ID, Role: who.Role}, true
}

func (s *Server) handleSubmitProject(w http.ResponseWriter, r *http.Request) {
	var req projecthttp.CreateProjectRequest
	if !s.decodeJSON(w, r, &req, func(w http.ResponseWriter, status int, code string, message string) {
		writeProjectError(w, status, "INVALID_JSON", message, nil)
	}) {
		return
	}
	resp, err := s.modules.Projects.Handler.CreateHandler(r.Context(), req)
	if err != nil {
		writeProjectDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleGetProject(w http.ResponseWriter, r *http.Request) {
	resp, err := s.modules.Projects.Handler.GetHandler(r.Context(), r.PathValue("project_id"))
	if err != nil {
		writeProjectDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListPublicProjects(w http.ResponseWriter, r *http.Request) {
	page, pageSize := queryPage(r)
	resp, err := s.modules.Projects.Handler.ListPublicHandler(r.Context(), r.URL.Query().Get("search"), page, pageSize)
	if err != nil {
		writeProjectDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAdminListProjects(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireProjectActor(w, r); !ok {
		return
	}
	page, pageSize := queryPage(r)
	resp, err := s.modules.Projects.Handler.ListHandler(
		r.Context(),
		r.URL.Query().Get("status"),
		r.URL.Query().Get("search"),
		page,
		pageSize,
	)
	if err != nil {
		writeProjectDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAcceptProject(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.requireProjectActor(w, r)
	if !ok {
		return
	}
	resp, err := s.modules.Projects.Handler.AcceptHandler(r.Context(), r.PathValue("project_id"), actor)
	if err != nil {
		writeProjectDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRejectProject(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.requireProjectActor(w, r)
	if !ok {
		return
	}
	var req projecthttp.RejectProjectRequest
	if !s.decodeJSON(w, r, &req, func(w http.ResponseWriter, status int, code string, message string) {
		writeProjectError(w, status, "INVALID_JSON", message, nil)
	}) {
		return
	}
	resp, prior, err := s.modules.Projects.Handler.RejectHandler(r.Context(), r.PathValue("project_id"), actor, req)
	if err != nil {
		// A repeat rejection keeps the first decision; the conflict
		// payload carries the reason already on record.
		if errors.Is(err, projecterrors.ErrAlreadyRejected) {
			writeProjectError(w, http.StatusConflict, "ALREADY_REJECTED", err.Error(), map[string]any{
				"rejected_reason": prior.RejectionReason,
				"rejected_by":     prior.RejectedByID,
			})
			return
		}
		writeProjectDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleFeatureProject(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.requireProjectActor(w, r)
	if !ok {
		return
	}
	var req projecthttp.FeatureProjectRequest
	if !s.decodeJSON(w, r, &req, func(w http.ResponseWriter, status int, code string, message string) {
		writeProjectError(w, status, "INVALID_JSON", message, nil)
	}) {
		return
	}
	resp, err := s.modules.Projects.Handler.FeatureHandler(r.Context(), actor, req)
	if err != nil {
		writeProjectDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteProject(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.requireProjectActor(w, r)
	if !ok {
		return
	}
	resp, err := s.modules.Projects.Handler.DeleteHandler(r.Context(), r.PathValue("project_id"), actor)
	if err != nil {
		writeProjectDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
