// Copyright (c) 2025 The Ballotbox Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import "errors"

// Identity resolution failures. All are user-correctable input errors
// and are never retried automatically.
var (
	ErrInvalidStream   = errors.New("invalid stream selected")
	ErrInvalidDivision = errors.New("invalid division for stream")
	ErrNameRequired    = errors.New("name is required for identification")
	ErrStudentNotFound = errors.New("student not found")
)

// ErrAlreadyVoted is terminal for a voter identity. A commit that loses
// the insert race surfaces as this same error, since the outcome is
// identical from the voter's perspective.
var ErrAlreadyVoted = errors.New("student has already voted")

// Ballot validation failures. The voter may correct and retry while
// voting remains open.
var (
	ErrVotingClosed     = errors.New("voting is currently closed")
	ErrUnknownPosition  = errors.New("unknown position in ballot")
	ErrUnknownCandidate = errors.New("candidate is not valid for position")
)

// Administrative failures.
var (
	ErrCandidateExists   = errors.New("candidate already exists for this position")
	ErrCandidateNotFound = errors.New("candidate not found")
)
