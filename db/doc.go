// Copyright (c) 2025 The Ballotbox Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database connections and schema creation.

# Opening a Connection

Open selects the driver from the config and verifies the connection:

	conn, err := db.Open(cfg)

Supported database types are "sqlite" (modernc.org/sqlite, the kiosk
default) and "postgres" (lib/pq). The sqlite pool is limited to one
connection since SQLite allows a single writer.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

The schema includes:

  - settings: single-row JSON election configuration document
  - candidate: registered candidates, unique per (position_id, name)
  - student: voter roster, unique per (stream, division, roll_number)
  - ballot: committed ballots, one per voter identity
  - voted_marker: voter identities that have voted
  - audit_log: append-only activity log

# Uniqueness Constraints

Two constraints carry the exactly-once-vote invariant:

  - voted_marker.voter_id PRIMARY KEY
  - ballot.voter_id UNIQUE

A duplicate commit fails on the marker insert regardless of any earlier
application-level check. IsUniqueViolation recognizes the failure for
both drivers.
*/
package db
