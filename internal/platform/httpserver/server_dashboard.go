package httpserver

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	dashboarderrors "showcase/contexts/internal-ops/admin-dashboard-service/domain/errors"
	dashboardports "showcase/contexts/internal-ops/admin-dashboard-service/ports"
	dashboardhttp "showcase/contexts/internal-ops/admin-dashboard-service/transport/http"
)

func writeDashboardError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, dashboardhttp.ErrorEnvelope{
		Status: "error",
		Error: dashboardhttp.ErrorBody{
			Code:    code,
			Message: message,
		},
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if !hasBearerToken(r) {
		writeDashboardError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authorization bearer token is required")
		return
	}
	who := resolveIdentity(r)
	if who.ID == "" || who.Role == "" {
		writeDashboardError(w, http.StatusUnauthorized, "IDENTITY_REQUIRED", "X-User-Id and X-User-Role headers are required")
		return
	}
	auditLimit := 0
	if raw := r.URL.Query().Get("audit_limit"); raw != "" {
		auditLimit, _ = strconv.Atoi(raw)
	}
	actor := dashboardports.Actor{ID: who.ID, Role: who.Role}
	resp, err := s.modules.Dashboard.Handler.DashboardHandler(r.Context(), actor, auditLimit)
	if err != nil {
		if errors.Is(err, dashboarderrors.ErrForbidden) {
			writeDashboardError(w, http.StatusForbidden, "PERMISSION_DENIED", err.Error())
			return
		}
		writeDashboardError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
