package httpserver

import (
	"errors"
	"net/http"
	"time"

	awarderrors "showcase/contexts/showcase/award-service/domain/errors"
	awardports "showcase/contexts/showcase/award-service/ports"
	awardhttp "showcase/contexts/showcase/award-service/transport/http"
)

func writeAwardError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, awardhttp.ErrorEnvelope{
		Status: "error",
		Error: awardhttp.ErrorBody{
			Code:    code,
			Message: message,
		},
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func writeAwardDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, awarderrors.ErrAwardNotFound):
		writeAwardError(w, http.StatusNotFound, "AWARD_NOT_FOUND", err.Error())
	case errors.Is(err, awarderrors.ErrInvalidAwardInput),
		errors.Is(err, awarderrors.ErrInvalidStatus),
		errors.Is(err, awarderrors.ErrReasonRequired),
		errors.Is(err, awarderrors.ErrUnknownProject),
		errors.Is(err, awarderrors.ErrUnknownCompetition):
		writeAwardError(w, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
	case errors.Is(err, awarderrors.ErrUnknownActor):
		writeAwardError(w, http.StatusUnauthorized, "UNKNOWN_ACTOR", err.Error())
	case errors.Is(err, awarderrors.ErrForbidden):
		writeAwardError(w, http.StatusForbidden, "PERMISSION_DENIED", err.Error())
	default:
		writeAwardError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}

func (s *Server) requireAwardActor(w http.ResponseWriter, r *http.Request) (awardports.Actor, bool) {
	if !hasBearerToken(r) {
		writeAwardError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authorization bearer token is required")
		return awardports.Actor{}, false
	}
	who := resolveIdentity(r)
	if who.ID == "" || who.Role == "" {
		writeAwardError(w, http.StatusUnauthorized, "IDENTITY_REQUIRED", "X-User-Id and X-User-Role headers are required")
		return awardports.Actor{}, false
	}
	return awardports.Actor{ID: who.ID, Role: who.Role}, true
}

func (s *Server) handleSubmitAward(w http.ResponseWriter, r *http.Request) {
	var req awardhttp.CreateAwardRequest
	if !s.decodeJSON(w, r, &req, func(w http.ResponseWriter, status int, code string, message string) {
		writeAwardError(w, status, "INVALID_JSON", message)
	}) {
		return
	}
	resp, err := s.modules.Awards.Handler.CreateHandler(r.Context(), req)
	if err != nil {
		writeAwardDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleGetAward(w http.ResponseWriter, r *http.Request) {
	resp, err := s.modules.Awards.Handler.GetHandler(r.Context(), r.PathValue("award_id"))
	if err != nil {
		writeAwardDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListPublicAwards(w http.ResponseWriter, r *http.Request) {
	page, pageSize := queryPage(r)
	resp, err := s.modules.Awards.Handler.ListHandler(r.Context(), "approved", r.URL.Query().Get("search"), page, pageSize)
	if err != nil {
		writeAwardDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAdminListAwards(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireAwardActor(w, r); !ok {
		return
	}
	page, pageSize := queryPage(r)
	resp, err := s.modules.Awards.Handler.ListHandler(
		r.Context(),
		r.URL.Query().Get("status"),
		r.URL.Query().Get("search"),
		page,
		pageSize,
	)
	if err != nil {
		writeAwardDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAcceptAward(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.requireAwardActor(w, r)
	if !ok {
		return
	}
	resp, err := s.modules.Awards.Handler.AcceptHandler(r.Context(), r.PathValue("award_id"), actor)
	if err != nil {
		writeAwardDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRejectAward(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.requireAwardActor(w, r)
	if !ok {
		return
	}
	var req awardhttp.RejectAwardRequest
	if !s.decodeJSON(w, r, &req, func(w http.ResponseWriter, status int, code string, message string) {
		writeAwardError(w, status, "INVALID_JSON", message)
	}) {
		return
	}
	resp, err := s.modules.Awards.Handler.RejectHandler(r.Context(), r.PathValue("award_id"), actor, req)
	if err != nil {
		writeAwardDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteAward(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.requireAwardActor(w, r)
	if !ok {
		return
	}
	resp, err := s.modules.Awards.Handler.DeleteHandler(r.Context(), r.PathValue("award_id"), actor)
	if err != nil {
		writeAwardDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
