package httpserver

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCompetitionCreateRequiresAuthorization(t *testing.T) {
	server := newTestServer()
	req := httptest.NewRequest(http.MethodPost, "/api/admin/competitions", bytes.NewReader([]byte(`{
		"name":"Regional Robotics Cup",
		"organizer":"STEM League"
	}`)))
	req.Header.Set("X-User-Id", "admin-1")
	req.Header.Set("X-User-Role", "admin")
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestAwardRejectRequiresModeratorRole(t *testing.T) {
	server := newTestServer()
	req := httptest.NewRequest(http.MethodPost, "/api/admin/awards/award-1/reject", bytes.NewReader([]byte(`{
		"reason":"duplicate entry"
	}`)))
	req.Header.Set("Authorization", "Bearer token")
	req.Header.Set("X-User-Id", "mod-1")
	req.Header.Set("X-User-Role", "developer")
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestPostCreateRequiresEditorRole(t *testing.T) {
	server := newTestServer()
	req := httptest.NewRequest(http.MethodPost, "/api/admin/posts", bytes.NewReader([]byte(`{
		"title":"Showcase Recap",
		"body":"What a week."
	}`)))
	req.Header.Set("Authorization", "Bearer token")
	req.Header.Set("X-User-Id", "dev-1")
	req.Header.Set("X-User-Role", "developer")
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestUserRoleChangeIsAdminOnly(t *testing.T) {
	server := newTestServer()
	req := httptest.NewRequest(http.MethodPut, "/api/admin/users/user-1/role", bytes.NewReader([]byte(`{
		"role":"moderator"
	}`)))
	req.Header.Set("Authorization", "Bearer token")
	req.Header.Set("X-User-Id", "mod-1")
	req.Header.Set("X-User-Role", "moderator")
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestDashboardRequiresModeratorRole(t *testing.T) {
	server := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/api/admin/dashboard", nil)
	req.Header.Set("Authorization", "Bearer token")
	req.Header.Set("X-User-Id", "dev-1")
	req.Header.Set("X-User-Role", "developer")

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestUploadRequiresAuthorization(t *testing.T) {
	server := newTestServer()
	req := httptest.NewRequest(http.MethodPost, "/api/admin/uploads", nil)
	req.Header.Set("X-User-Id", "mod-1")
	req.Header.Set("X-User-Role", "moderator")

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d body=%s", rr.Code, rr.Body.String())
	}
}
