package httpserver

import (
	"errors"
	"net/http"
	"time"

	blogerrors "showcase/contexts/publishing/blog-service/domain/errors"
	blogports "showcase/contexts/publishing/blog-service/ports"
	bloghttp "showcase/contexts/publishing/blog-service/transport/http"
)

func writePostError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, bloghttp.ErrorEnvelope{
		Status: "error",
		Error: bloghttp.ErrorBody{
			Code:    code,
			Message: message,
		},
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func writePostDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, blogerrors.ErrPostNotFound):
		writePostError(w, http.StatusNotFound, "POST_NOT_FOUND", err.Error())
	case errors.Is(err, blogerrors.ErrInvalidPostInput):
		writePostError(w, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
	case errors.Is(err, blogerrors.ErrSlugTaken):
		writePostError(w, http.StatusConflict, "SLUG_TAKEN", err.Error())
	case errors.Is(err, blogerrors.ErrForbidden):
		writePostError(w, http.StatusForbidden, "PERMISSION_DENIED", err.Error())
	default:
		writePostError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}

func (s *Server) requirePostActor(w http.ResponseWriter, r *http.Request) (blogports.Actor, bool) {
	if !hasBearerToken(r) {
		writePostError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authorization bearer token is required")
		return blogports.Actor{}, false
	}
	who := resolveIdentity(r)
	if who.ID == "" || who.Role == "" {
		writePostError(w, http.StatusUnauthorized, "IDENTITY_REQUIRED", "X-User-Id and X-User-Role headers are required")
		return blogports.Actor{}, false
	}
	return blogports.Actor{ID: who.ID, Role: who.Role}, true
}

func (s *Server) handleListPublicPosts(w http.ResponseWriter, r *http.Request) {
	page, pageSize := queryPage(r)
	resp, err := s.modules.Posts.Handler.ListHandler(r.Context(), r.URL.Query().Get("search"), page, pageSize, true)
	if err != nil {
		writePostDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetPostBySlug(w http.ResponseWriter, r *http.Request) {
	resp, err := s.modules.Posts.Handler.GetBySlugHandler(r.Context(), r.PathValue("slug"))
	if err != nil {
		writePostDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAdminListPosts(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requirePostActor(w, r); !ok {
		return
	}
	page, pageSize := queryPage(r)
	resp, err := s.modules.Posts.Handler.ListHandler(r.Context(), r.URL.Query().Get("search"), page, pageSize, false)
	if err != nil {
		writePostDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreatePost(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.requirePostActor(w, r)
	if !ok {
		return
	}
	var req bloghttp.CreatePostRequest
	if !s.decodeJSON(w, r, &req, func(w http.ResponseWriter, status int, code string, message string) {
		writePostError(w, status, "INVALID_JSON", message)
	}) {
		return
	}
	resp, err := s.modules.Posts.Handler.CreateHandler(r.Context(), actor, req)
	if err != nil {
		writePostDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleUpdatePost(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.requirePostActor(w, r)
	if !ok {
		return
	}
	var req bloghttp.UpdatePostRequest
	if !s.decodeJSON(w, r, &req, func(w http.ResponseWriter, status int, code string, message string) {
		writePostError(w, status, "INVALID_JSON", message)
	}) {
		return
	}
	resp, err := s.modules.Posts.Handler.UpdateHandler(r.Context(), actor, r.PathValue("post_id"), req)
	if err != nil {
		writePostDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handlePublishPost(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.requirePostActor(w, r)
	if !ok {
		return
	}
	resp, err := s.modules.Posts.Handler.PublishHandler(r.Context(), actor, r.PathValue("post_id"))
	if err != nil {
		writePostDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUnpublishPost(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.requirePostActor(w, r)
	if !ok {
		return
	}
	resp, err := s.modules.Posts.Handler.UnpublishHandler(r.Context(), actor, r.PathValue("post_id"))
	if err != nil {
		writePostDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeletePost(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.requirePostActor(w, r)
	if !ok {
		return
	}
	resp, err := s.modules.Posts.Handler.DeleteHandler(r.Context(), actor, r.PathValue("post_id"))
	if err != nil {
		writePostDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
