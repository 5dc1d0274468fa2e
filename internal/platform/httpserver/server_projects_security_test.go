package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func submitTestProject(t *testing.T, server *Server) string {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/projects", bytes.NewReader([]byte(`{
		"name":"Trash Sorting Robot",
		"summary":"A robot arm that sorts recyclables",
		"team_name":"Team Recyclotron",
		"team_email":"team@recyclotron.example"
	}`)))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rr.Code, rr.Body.String())
	}

	var resp struct {
		Data struct {
			ProjectID string `json:"project_id"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode submit response: %v", err)
	}
	return resp.Data.ProjectID
}

func TestProjectAcceptRequiresAuthorization(t *testing.T) {
	server := newTestServer()
	req := httptest.NewRequest(http.MethodPost, "/api/admin/projects/proj-1/accept", nil)
	req.Header.Set("X-User-Id", "mod-1")
	req.Header.Set("X-User-Role", "moderator")

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestProjectRejectRequiresModeratorRole(t *testing.T) {
	server := newTestServer()
	projectID := submitTestProject(t, server)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/projects/"+projectID+"/reject", bytes.NewReader([]byte(`{
		"reason":"missing demo video"
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

func TestProjectRejectRequiresReason(t *testing.T) {
	server := newTestServer()
	projectID := submitTestProject(t, server)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/projects/"+projectID+"/reject", bytes.NewReader([]byte(`{"reason":"  "}`)))
	req.Header.Set("Authorization", "Bearer token")
	req.Header.Set("X-User-Id", "mod-1")
	req.Header.Set("X-User-Role", "moderator")
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestRepeatProjectRejectionConflictsWithPriorReason(t *testing.T) {
	server := newTestServer()
	projectID := submitTestProject(t, server)

	reject := func(reason string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/admin/projects/"+projectID+"/reject", bytes.NewReader([]byte(`{"reason":"`+reason+`"}`)))
		req.Header.Set("Authorization", "Bearer token")
		req.Header.Set("X-User-Id", "mod-1")
		req.Header.Set("X-User-Role", "moderator")
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		server.mux.ServeHTTP(rr, req)
		return rr
	}

	if rr := reject("missing demo video"); rr.Code != http.StatusOK {
		t.Fatalf("first rejection: expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}

	rr := reject("different reason")
	if rr.Code != http.StatusConflict {
		t.Fatalf("second rejection: expected 409, got %d body=%s", rr.Code, rr.Body.String())
	}
	var resp struct {
		Error struct {
			Details map[string]any `json:"details"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode conflict response: %v", err)
	}
	if resp.Error.Details["rejected_reason"] != "missing demo video" {
		t.Fatalf("expected prior reason in details, got %v", resp.Error.Details)
	}
}

func TestFeatureProjectRequiresIdentityHeaders(t *testing.T) {
	server := newTestServer()
	req := httptest.NewRequest(http.MethodPost, "/api/admin/projects/feature", bytes.NewReader([]byte(`{
		"project_id":"proj-1",
		"featured":true
	}`)))
	req.Header.Set("Authorization", "Bearer token")
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d body=%s", rr.Code, rr.Body.String())
	}
}
