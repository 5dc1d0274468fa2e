package httpserver

import (
	"errors"
	"net/http"
	"time"

	competitionerrors "showcase/contexts/showcase/competition-service/domain/errors"
	competitionports "showcase/contexts/showcase/competition-service/ports"
	competitionhttp "showcase/contexts/showcase/competition-service/transport/http"
)

func writeCompetitionError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, competitionhttp.ErrorEnvelope{
		Status: "error",
		Error: competitionhttp.ErrorBody{
			Code:    code,
			Message: message,
		},
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func writeCompetitionDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, competitionerrors.ErrCompetitionNotFound):
		writeCompetitionError(w, http.StatusNotFound, "COMPETITION_NOT_FOUND", err.Error())
	case errors.Is(err, competitionerrors.ErrInvalidCompetitionInput),
		errors.Is(err, competitionerrors.ErrInvalidStatus),
		errors.Is(err, competitionerrors.ErrReasonRequired):
		writeCompetitionError(w, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
	case errors.Is(err, competitionerrors.ErrUnknownActor):
		writeCompetitionError(w, http.StatusUnauthorized, "UNKNOWN_ACTOR", err.Error())
	case errors.Is(err, competitionerrors.ErrForbidden):
		writeCompetitionError(w, http.StatusForbidden, "PERMISSION_DENIED", err.Error())
	default:
		writeCompetitionError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}

func (s *Server) requireCompetitionActor(w http.ResponseWriter, r *http.Request) (competitionports.Actor, bool) {
	if !hasBearerToken(r) {
		writeCompetitionError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authorization bearer token is required")
		return competitionports.Actor{}, false
	}
	who := resolveIdentity(r)
	if who.ID == "" || who.Role == "" {
		writeCompetitionError(w, http.StatusUnauthorized, "IDENTITY_REQUIRED", "X-User-Id and X-User-Role headers are required")
		return competitionports.Actor{}, false
	}
	return competitionports.Actor{ID: who.ID, Role: who.Role}, true
}

func (s *Server) handleSubmitCompetition(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireCompetitionActor(w, r); !ok {
		return
	}
	var req competitionhttp.CreateCompetitionRequest
	if !s.decodeJSON(w, r, &req, func(w http.ResponseWriter, status int, code string, message string) {
		writeCompetitionError(w, status, "INVALID_JSON", message)
	}) {
		return
	}
	resp, err := s.modules.Competitions.Handler.CreateHandler(r.Context(), req)
	if err != nil {
		writeCompetitionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleGetCompetition(w http.ResponseWriter, r *http.Request) {
	resp, err := s.modules.Competitions.Handler.GetHandler(r.Context(), r.PathValue("competition_id"))
	if err != nil {
		writeCompetitionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Public listings only ever surface approved competitions.
func (s *Server) handleListPublicCompetitions(w http.ResponseWriter, r *http.Request) {
	page, pageSize := queryPage(r)
	resp, err := s.modules.Competitions.Handler.ListHandler(r.Context(), "approved", r.URL.Query().Get("search"), page, pageSize)
	if err != nil {
		writeCompetitionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAdminListCompetitions(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireCompetitionActor(w, r); !ok {
		return
	}
	page, pageSize := queryPage(r)
	resp, err := s.modules.Competitions.Handler.ListHandler(
		r.Context(),
		r.URL.Query().Get("status"),
		r.URL.Query().Get("search"),
		page,
		pageSize,
	)
	if err != nil {
		writeCompetitionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAcceptCompetition(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.requireCompetitionActor(w, r)
	if !ok {
		return
	}
	resp, err := s.modules.Competitions.Handler.AcceptHandler(r.Context(), r.PathValue("competition_id"), actor)
	if err != nil {
		writeCompetitionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRejectCompetition(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.requireCompetitionActor(w, r)
	if !ok {
		return
	}
	var req competitionhttp.RejectCompetitionRequest
	if !s.decodeJSON(w, r, &req, func(w http.ResponseWriter, status int, code string, message string) {
		writeCompetitionError(w, status, "INVALID_JSON", message)
	}) {
		return
	}
	resp, err := s.modules.Competitions.Handler.RejectHandler(r.Context(), r.PathValue("competition_id"), actor, req)
	if err != nil {
		writeCompetitionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteCompetition(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.requireCompetitionActor(w, r)
	if !ok {
		return
	}
	resp, err := s.modules.Competitions.Handler.DeleteHandler(r.Context(), r.PathValue("competition_id"), actor)
	if err != nil {
		writeCompetitionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
