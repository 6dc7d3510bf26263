// Copyright (c) 2025 The Ballotbox Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package election implements the vote-casting and tallying engine.

# Components

The engine is four components plus a settings snapshot provider, wired
against collaborator interfaces so storage stays swappable:

  - SnapshotProvider: TTL-cached immutable settings views
  - Resolver: identification form → canonical voter identity
  - Validator: ballot draft → accepted or rejected against live config
  - Ledger: atomic exactly-once commit of marker + ballot
  - Tally: on-demand aggregation with winner and tie determination

Control flow for one voter session:

	identity, err := resolver.Resolve(ctx, form)      // read-only
	settings, err := snapshots.Fresh(ctx)             // no stale config
	err = validator.Validate(ctx, selections, settings)
	ballot, err := ledger.Commit(ctx, identity, selections)

# Identity Keys

IdentityKey derives the duplicate-detection key from stream, division,
and roll number only:

	Science-B-42
	Arts-NA-7

Names never enter the key, so name capitalization or whitespace
variation cannot produce a second vote for the same student.

# Exactly-Once Enforcement

Resolver performs an optimistic HasVoted pre-check; the authoritative
check is the voted_marker primary-key insert inside Ledger.Commit. When
N commits race for one identity, exactly one insert succeeds and the
rest fail with ErrAlreadyVoted. Marker and ballot writes share one
transaction, so no error path leaves one without the other.

# Error Taxonomy

Sentinel errors classify every failure a caller can act on:

	ErrInvalidStream, ErrInvalidDivision, ErrNameRequired,
	ErrStudentNotFound              → identification input errors
	ErrAlreadyVoted                 → terminal for that voter
	ErrVotingClosed, ErrUnknownPosition, ErrUnknownCandidate
	                                → ballot rejected, correct and retry

Backend failures propagate wrapped; a commit timeout is never
interpreted as success or failure - Ledger.Commit re-queries HasVoted
before reporting either outcome.
*/
package election
