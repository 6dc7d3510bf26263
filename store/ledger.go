// Copyright (c) 2025 The Ballotbox Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/campusvote/ballotbox/db"
	"github.com/campusvote/ballotbox/election"
	"github.com/campusvote/ballotbox/models"
)

// LedgerStore persists committed ballots and voted markers. The marker
// primary key is the authoritative uniqueness arbiter: an application-
// level HasVoted is only ever an optimistic pre-check.
type LedgerStore struct {
	db *sql.DB
}

func NewLedgerStore(db *sql.DB) *LedgerStore {
	return &LedgerStore{db: db}
}

func (s *LedgerStore) HasVoted(ctx context.Context, voterID string) (bool, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var exists int
	err := s.db.QueryRowContext(ctx, `
		SELECT 1 FROM voted_marker WHERE voter_id = $1
	`, voterID).Scan(&exists)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check voted marker: %w", err)
	}
	return true, nil
}

// Commit inserts the marker and the ballot in one transaction. The
// marker insert fails on key collision, so concurrently racing commits
// for one identity produce exactly one acceptance and no partial state.
func (s *LedgerStore) Commit(ctx context.Context, ballot models.Ballot) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	selections, err := json.Marshal(ballot.Selections)
	if err != nil {
		return fmt.Errorf("failed to encode selections: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO voted_marker (voter_id, marked_at)
		VALUES ($1, $2)
	`, ballot.VoterID, time.Now().UTC())
	if err != nil {
		if db.IsUniqueViolation(err) {
			return election.ErrAlreadyVoted
		}
		return fmt.Errorf("failed to insert voted marker: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO ballot (id, voter_id, selections, submitted_at)
		VALUES ($1, $2, $3, $4)
	`, ballot.ID, ballot.VoterID, selections, ballot.SubmittedAt)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return election.ErrAlreadyVoted
		}
		return fmt.Errorf("failed to insert ballot: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit ballot transaction: %w", err)
	}
	return nil
}

func (s *LedgerStore) CountBallots(ctx context.Context) (int, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM ballot`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count ballots: %w", err)
	}
	return count, nil
}

func (s *LedgerStore) CountMarkers(ctx context.Context) (int, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM voted_marker`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count voted markers: %w", err)
	}
	return count, nil
}

// CountByPosition tallies selections for one position across all
// ballots. Ballots that omitted the position contribute nothing;
// selections are counted whether or not the named candidate is still
// registered, so the tally decides what to surface.
func (s *LedgerStore) CountByPosition(ctx context.Context, positionID string) (map[string]int, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, `SELECT selections FROM ballot`)
	if err != nil {
		return nil, fmt.Errorf("failed to query ballots: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("failed to scan ballot: %w", err)
		}
		var selections map[string]string
		if err := json.Unmarshal(raw, &selections); err != nil {
			return nil, fmt.Errorf("failed to parse ballot selections: %w", err)
		}
		if name, ok := selections[positionID]; ok {
			counts[name]++
		}
	}
	return counts, rows.Err()
}

// Reset clears ballots and markers together in one transaction so the
// ledger can never be observed half-cleared.
func (s *LedgerStore) Reset(ctx context.Context) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM ballot`); err != nil {
		return fmt.Errorf("failed to clear ballots: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM voted_marker`); err != nil {
		return fmt.Errorf("failed to clear voted markers: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit reset: %w", err)
	}
	return nil
}
