// Copyright (c) 2025 The Ballotbox Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store implements the election collaborator interfaces over SQL.

# Stores

Each store wraps *sql.DB for one concern:

  - SettingsStore: single-row JSON settings document (election.SettingsSource)
  - RosterStore: student roster (election.Roster)
  - CandidateStore: candidate registry (election.CandidateRegistry)
  - LedgerStore: ballots + voted markers (election.BallotLedger)
  - AuditStore: append-only activity log (election.AuditSink)

All methods are context-first and bounded by a 5 second timeout; a
stalled backend surfaces as a deadline error rather than hanging the
caller.

# Uniqueness at the Storage Level

LedgerStore.Commit relies on the voted_marker primary key: the insert
either succeeds or collides, independent of any earlier HasVoted check.
Both writes share one transaction, so a duplicate leaves no partial
state. CandidateStore.Add relies on the (position_id, name) constraint
the same way.

Driver-specific unique-violation errors are recognized via
db.IsUniqueViolation and mapped to the election sentinel errors.
*/
package store
