// Copyright (c) 2025 The Ballotbox Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/campusvote/ballotbox/cliparse"
	"github.com/campusvote/ballotbox/db"
	"github.com/campusvote/ballotbox/models"
)

// SetupTestDB creates a fresh SQLite database in a per-test temp
// directory with the full schema. The file is removed with the temp
// dir when the test finishes.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "ballotbox_test.db")
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	// Single writer, same as production sqlite config
	conn.SetMaxOpenConns(1)

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	t.Cleanup(func() { conn.Close() })
	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig(t *testing.T) cliparse.Config {
	t.Helper()
	return cliparse.Config{
		Port:          3318,
		DatabaseURL:   "test.db",
		DatabaseType:  "sqlite",
		AdminPassword: "test-admin-password",
		SessionSecret: "test-session-secret",
		StaticDir:     t.TempDir(),
	}
}

// SeedSettings writes settings directly, bypassing the store
func SeedSettings(t *testing.T, conn *sql.DB, settings models.ElectionSettings) {
	t.Helper()

	payload, err := json.Marshal(settings)
	if err != nil {
		t.Fatalf("Failed to encode settings: %v", err)
	}
	_, err = conn.Exec(`
		INSERT INTO settings (id, payload, updated_at)
		VALUES ('global', $1, $2)
		ON CONFLICT (id) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at
	`, payload, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to seed settings: %v", err)
	}
}

// OpenSettings returns DefaultSettings with voting switched to OPEN
func OpenSettings() models.ElectionSettings {
	settings := models.DefaultSettings()
	settings.VotingStatus = models.StatusOpen
	return settings
}

// AddTestCandidate inserts a candidate and returns its ID
func AddTestCandidate(t *testing.T, conn *sql.DB, name, positionID, gender string) string {
	t.Helper()

	id := uuid.NewString()
	_, err := conn.Exec(`
		INSERT INTO candidate (id, name, position_id, gender, photo_url, created_at)
		VALUES ($1, $2, $3, $4, '', $5)
	`, id, name, positionID, gender, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test candidate: %v", err)
	}
	return id
}

// AddTestStudent inserts one roster row
func AddTestStudent(t *testing.T, conn *sql.DB, name string, roll int, stream, division string) {
	t.Helper()

	_, err := conn.Exec(`
		INSERT INTO student (name, roll_number, stream, division)
		VALUES ($1, $2, $3, $4)
	`, name, roll, stream, division)
	if err != nil {
		t.Fatalf("Failed to create test student: %v", err)
	}
}

// SubmitTestBallot writes a ballot and its voted marker directly
func SubmitTestBallot(t *testing.T, conn *sql.DB, voterID string, selections map[string]string) string {
	t.Helper()

	payload, err := json.Marshal(selections)
	if err != nil {
		t.Fatalf("Failed to encode selections: %v", err)
	}

	now := time.Now().UTC()
	_, err = conn.Exec(`
		INSERT INTO voted_marker (voter_id, marked_at) VALUES ($1, $2)
	`, voterID, now)
	if err != nil {
		t.Fatalf("Failed to create voted marker: %v", err)
	}

	ballotID := uuid.NewString()
	_, err = conn.Exec(`
		INSERT INTO ballot (id, voter_id, selections, submitted_at)
		VALUES ($1, $2, $3, $4)
	`, ballotID, voterID, payload, now)
	if err != nil {
		t.Fatalf("Failed to create test ballot: %v", err)
	}
	return ballotID
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
