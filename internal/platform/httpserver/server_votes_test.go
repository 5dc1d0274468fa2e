package httpserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestVoteRejectsProjectsOutsideTheApprovedSet(t *testing.T) {
	server := newTestServer()
	req := httptest.NewRequest(http.MethodPost, "/api/projects/proj-unknown/vote", nil)
	req.RemoteAddr = "203.0.113.7:51234"

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestVoteUsesForwardedForClientAddress(t *testing.T) {
	server := newTestServer()
	server.modules.Votes.Store.SeedVotableProject("proj-1")

	req := httptest.NewRequest(http.MethodPost, "/api/projects/proj-1/vote", nil)
	req.RemoteAddr = "10.0.0.5:443"
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.5")

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}

	status := httptest.NewRequest(http.MethodGet, "/api/projects/vote/status", nil)
	status.RemoteAddr = "198.51.100.9:1234"
	status.Header.Set("X-Forwarded-For", "203.0.113.7")

	rr = httptest.NewRecorder()
	server.mux.ServeHTTP(rr, status)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	var resp struct {
		Data struct {
			HasVoted       bool   `json:"hasVoted"`
			VotedProjectID string `json:"votedProjectId"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode status response: %v", err)
	}
	if !resp.Data.HasVoted || resp.Data.VotedProjectID != "proj-1" {
		t.Fatalf("expected ballot for proj-1, got %+v", resp.Data)
	}
}

func TestVoteStatusIsEmptyForNewCallers(t *testing.T) {
	server := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/api/projects/vote/status", nil)
	req.RemoteAddr = "203.0.113.200:9999"

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	var resp struct {
		Data struct {
			HasVoted bool `json:"hasVoted"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode status response: %v", err)
	}
	if resp.Data.HasVoted {
		t.Fatalf("expected no ballot, got %+v", resp.Data)
	}
}
