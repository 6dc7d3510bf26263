// Copyright (c) 2025 The Ballotbox Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/campusvote/ballotbox/models"
	"github.com/campusvote/ballotbox/testutil"
)

func TestRouterEndToEnd(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig(t)
	mux := NewRouter(conn, cfg)

	do := func(method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
		req := testutil.MakeRequest(method, path, body, headers)
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)
		return w
	}

	// Health and root
	testutil.AssertStatus(t, do("GET", "/health", nil, nil), http.StatusOK)
	testutil.AssertStatus(t, do("GET", "/", nil, nil), http.StatusOK)

	// First settings read creates defaults (voting closed)
	w := do("GET", "/api/settings", nil, nil)
	testutil.AssertStatus(t, w, http.StatusOK)
	var settings models.ElectionSettings
	testutil.AssertJSON(t, w, &settings)
	if settings.VotingStatus != models.StatusClosed {
		t.Fatalf("fresh install voting status = %q, want CLOSED", settings.VotingStatus)
	}

	// Admin login
	w = do("POST", "/api/admin/login", models.AdminLoginRequest{Password: cfg.AdminPassword}, nil)
	testutil.AssertStatus(t, w, http.StatusOK)
	var login models.AdminLoginResponse
	testutil.AssertJSON(t, w, &login)
	adminHeaders := map[string]string{"X-Admin-Token": login.Token}

	// Open the election
	settings.VotingStatus = models.StatusOpen
	testutil.AssertStatus(t, do("PUT", "/api/admin/settings", settings, adminHeaders), http.StatusOK)

	// Register candidates and load the roster
	testutil.AssertStatus(t, do("POST", "/api/admin/candidates", models.AddCandidateRequest{
		Name: "Rahul Verma", PositionID: "cr_boy", Gender: models.GenderBoy,
	}, adminHeaders), http.StatusCreated)
	testutil.AddTestStudent(t, conn, "Asha Rao", 12, "Science", "A")

	// Identify, then vote
	w = do("POST", "/api/student/identify", models.IdentifyRequest{
		Name: "Asha Rao", RollNumber: 12, Stream: "Science", Division: "A",
	}, nil)
	testutil.AssertStatus(t, w, http.StatusOK)
	var identified models.IdentifyResponse
	testutil.AssertJSON(t, w, &identified)

	w = do("POST", "/api/vote", models.VoteRequest{
		VoterID:    identified.VoterID,
		Selections: map[string]string{"cr_boy": "Rahul Verma"},
	}, nil)
	testutil.AssertStatus(t, w, http.StatusCreated)

	// A second identify for the same student is refused
	w = do("POST", "/api/student/identify", models.IdentifyRequest{
		Name: "Asha Rao", RollNumber: 12, Stream: "Science", Division: "A",
	}, nil)
	testutil.AssertStatus(t, w, http.StatusForbidden)

	// Results reflect the vote
	w = do("GET", "/api/admin/results", nil, adminHeaders)
	testutil.AssertStatus(t, w, http.StatusOK)
	var results models.Results
	testutil.AssertJSON(t, w, &results)
	if results.Turnout.TotalVotesCast != 1 {
		t.Errorf("votes cast = %d, want 1", results.Turnout.TotalVotesCast)
	}
	if results.Positions[0].Winner != "Rahul Verma" {
		t.Errorf("winner = %q, want Rahul Verma", results.Positions[0].Winner)
	}
}

func TestRouterMethodRestrictions(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig(t)
	mux := NewRouter(conn, cfg)

	tests := []struct {
		method string
		path   string
	}{
		{"DELETE", "/api/vote"},
		{"GET", "/api/student/identify"},
		{"POST", "/api/settings"},
	}

	for _, tt := range tests {
		req := testutil.MakeRequest(tt.method, tt.path, nil, nil)
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)
		if w.Code != http.StatusMethodNotAllowed && w.Code != http.StatusNotFound {
			t.Errorf("%s %s = %d, want method rejection", tt.method, tt.path, w.Code)
		}
	}
}
