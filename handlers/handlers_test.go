// Copyright (c) 2025 The Ballotbox Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"testing"
	"time"

	"github.com/campusvote/ballotbox/auth"
	"github.com/campusvote/ballotbox/cliparse"
	"github.com/campusvote/ballotbox/election"
	"github.com/campusvote/ballotbox/store"
	"github.com/campusvote/ballotbox/testutil"
)

// testEnv wires a full handler stack against a fresh test database,
// mirroring the wiring in the router package.
type testEnv struct {
	conn      *sql.DB
	cfg       cliparse.Config
	snapshots *election.SnapshotProvider

	student *StudentHandler
	admin   *AdminHandler
	results *ResultsHandler

	adminToken string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	conn := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig(t)

	auditStore := store.NewAuditStore(conn)
	settingsStore := store.NewSettingsStore(conn, auditStore)
	rosterStore := store.NewRosterStore(conn)
	candidateStore := store.NewCandidateStore(conn)
	ledgerStore := store.NewLedgerStore(conn)

	// Zero TTL keeps Current() as fresh as Fresh() so tests never race
	// the snapshot cache
	snapshots := election.NewSnapshotProvider(settingsStore, time.Nanosecond)
	resolver := election.NewResolver(snapshots, rosterStore, ledgerStore)
	validator := election.NewValidator(candidateStore)
	ledger := election.NewLedger(ledgerStore, auditStore)
	tally := election.NewTally(candidateStore, ledgerStore, rosterStore)

	token, _, err := auth.NewSessionToken(cfg.SessionSecret)
	if err != nil {
		t.Fatalf("Failed to issue test session token: %v", err)
	}

	return &testEnv{
		conn:       conn,
		cfg:        cfg,
		snapshots:  snapshots,
		student:    NewStudentHandler(snapshots, resolver, validator, ledger, candidateStore),
		admin:      NewAdminHandler(cfg, snapshots, settingsStore, rosterStore, candidateStore, ledgerStore, auditStore),
		results:    NewResultsHandler(cfg, snapshots, tally),
		adminToken: token,
	}
}

func (env *testEnv) adminHeaders() map[string]string {
	return map[string]string{"X-Admin-Token": env.adminToken}
}
