// Copyright (c) 2025 The Ballotbox Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"context"
	"fmt"
	"strings"

	"github.com/campusvote/ballotbox/models"
)

// SettingsSource provides the current election configuration. The first
// read creates defaults if no configuration exists yet.
type SettingsSource interface {
	Load(ctx context.Context) (models.ElectionSettings, error)
}

// Roster looks up students. Find with an empty name matches on
// (roll, stream, division) alone; otherwise the name must match too,
// case-insensitively. Returns ErrStudentNotFound when no row matches.
type Roster interface {
	Find(ctx context.Context, roll int, stream, division, name string) (models.Student, error)
	Count(ctx context.Context) (int, error)
}

// CandidateRegistry lists registered candidates in registration order.
// An empty positionID lists all candidates.
type CandidateRegistry interface {
	List(ctx context.Context, positionID string) ([]models.Candidate, error)
}

// BallotLedger is the storage contract for committed ballots and voted
// markers. Commit must be atomic: the marker insert is the uniqueness
// arbiter, and a collision fails the whole commit with ErrAlreadyVoted
// leaving no partial state.
type BallotLedger interface {
	HasVoted(ctx context.Context, voterID string) (bool, error)
	Commit(ctx context.Context, ballot models.Ballot) error
	CountBallots(ctx context.Context) (int, error)
	CountMarkers(ctx context.Context) (int, error)
	CountByPosition(ctx context.Context, positionID string) (map[string]int, error)
}

// AuditSink appends activity log entries.
type AuditSink interface {
	Append(ctx context.Context, actor, action, details string) error
}

// Identity is a resolved voter: the canonical key used for duplicate
// detection plus the roster display name.
type Identity struct {
	Key         string
	DisplayName string
}

// noDivision is the placeholder used in identity keys for streams
// configured without divisions.
const noDivision = "NA"

// IdentityKey builds the canonical voter identity key. It depends only
// on stream, division, and roll number - never on the name - so a name
// variation can never yield a second key for the same student.
func IdentityKey(stream, division string, roll int) string {
	div := strings.TrimSpace(division)
	if div == "" {
		div = noDivision
	}
	return fmt.Sprintf("%s-%s-%d", stream, div, roll)
}
