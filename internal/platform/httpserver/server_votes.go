package httpserver

import (
	"errors"
	"net/http"
	"time"

	votingerrors "showcase/contexts/showcase/voting-service/domain/errors"
	votinghttp "showcase/contexts/showcase/voting-service/transport/http"
)

func writeVoteError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, votinghttp.ErrorEnvelope{
		Status: "error",
		Error: votinghttp.ErrorBody{
			Code:    code,
			Message: message,
		},
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func writeVoteDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, votingerrors.ErrInvalidVoterIdentity):
		writeVoteError(w, http.StatusBadRequest, "INVALID_VOTER", err.Error())
	case errors.Is(err, votingerrors.ErrProjectNotVotable):
		writeVoteError(w, http.StatusConflict, "PROJECT_NOT_VOTABLE", err.Error())
	case errors.Is(err, votingerrors.ErrVoteNotFound):
		writeVoteError(w, http.StatusNotFound, "VOTE_NOT_FOUND", err.Error())
	default:
		writeVoteError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}

func (s *Server) handleVote(w http.ResponseWriter, r *http.Request) {
	resp, err := s.modules.Votes.Handler.VoteHandler(r.Context(), resolveClientIP(r), r.PathValue("project_id"))
	if err != nil {
		writeVoteDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleVoteStatus(w http.ResponseWriter, r *http.Request) {
	resp, err := s.modules.Votes.Handler.StatusHandler(r.Context(), resolveClientIP(r))
	if err != nil {
		writeVoteDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
