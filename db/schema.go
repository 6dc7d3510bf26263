// Copyright (c) 2025 The Ballotbox Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// The DDL sticks to the SQL subset both supported drivers accept:
// no server-side defaults for timestamps, $N placeholders everywhere.
const schema = `
-- Election settings: a single JSON document row
CREATE TABLE IF NOT EXISTS settings (
    id TEXT PRIMARY KEY CHECK (id = 'global'),
    payload TEXT NOT NULL,
    updated_at TIMESTAMP NOT NULL
);

-- Candidates
CREATE TABLE IF NOT EXISTS candidate (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    position_id TEXT NOT NULL,
    gender TEXT NOT NULL CHECK (gender IN ('boy', 'girl')),
    photo_url TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMP NOT NULL,
    UNIQUE (position_id, name)
);

CREATE INDEX IF NOT EXISTS idx_candidate_position ON candidate(position_id);

-- Student roster
CREATE TABLE IF NOT EXISTS student (
    name TEXT NOT NULL,
    roll_number INTEGER NOT NULL,
    stream TEXT NOT NULL,
    division TEXT NOT NULL DEFAULT '',
    UNIQUE (stream, division, roll_number)
);

CREATE INDEX IF NOT EXISTS idx_student_lookup ON student(stream, division, roll_number);

-- Ballots: one per voter identity, ever
CREATE TABLE IF NOT EXISTS ballot (
    id TEXT PRIMARY KEY,
    voter_id TEXT NOT NULL UNIQUE,
    selections TEXT NOT NULL,
    submitted_at TIMESTAMP NOT NULL
);

-- Voted markers: the uniqueness arbiter for the exactly-once invariant.
-- The PRIMARY KEY makes the duplicate check an atomic insert-or-fail.
CREATE TABLE IF NOT EXISTS voted_marker (
    voter_id TEXT PRIMARY KEY,
    marked_at TIMESTAMP NOT NULL
);

-- Activity log: append-only
CREATE TABLE IF NOT EXISTS audit_log (
    id TEXT PRIMARY KEY,
    ts TIMESTAMP NOT NULL,
    actor TEXT NOT NULL,
    action TEXT NOT NULL,
    details TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_audit_log_ts ON audit_log(ts);
`
