// Copyright (c) 2025 The Ballotbox Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/campusvote/ballotbox/models"
)

// Validator checks submitted ballots against the current settings and
// the candidate registry. No side effects.
type Validator struct {
	candidates CandidateRegistry
}

func NewValidator(candidates CandidateRegistry) *Validator {
	return &Validator{candidates: candidates}
}

// Validate rejects the whole ballot when voting is closed, when a
// selection names a position absent from settings, or when a selection
// names a candidate not registered for that position. Callers pass a
// freshly loaded settings value so stale client-side configuration
// cannot be trusted.
//
// Positions omitted from the draft are tolerated: ballots are validated
// against whatever positions the voter was shown, and the tally must
// already cope with heterogeneous historical ballots. An omission for a
// position that has candidates is logged as a configuration smell.
func (v *Validator) Validate(ctx context.Context, selections map[string]string, settings models.ElectionSettings) error {
	if settings.VotingStatus == models.StatusClosed {
		return ErrVotingClosed
	}

	positions := make(map[string]models.Position, len(settings.Positions))
	for _, p := range settings.Positions {
		positions[p.ID] = p
	}

	for positionID, candidateName := range selections {
		if _, ok := positions[positionID]; !ok {
			return fmt.Errorf("%w: %q", ErrUnknownPosition, positionID)
		}

		name := strings.TrimSpace(candidateName)
		if name == "" {
			// Explicit empty/placeholder selections are rejected
			return fmt.Errorf("%w: empty selection for %q", ErrUnknownCandidate, positionID)
		}

		registered, err := v.candidates.List(ctx, positionID)
		if err != nil {
			return fmt.Errorf("failed to list candidates: %w", err)
		}

		found := false
		for _, c := range registered {
			if c.Name == name {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("%w: %q for %q", ErrUnknownCandidate, name, positionID)
		}
	}

	for _, p := range settings.Positions {
		if _, ok := selections[p.ID]; ok {
			continue
		}
		registered, err := v.candidates.List(ctx, p.ID)
		if err != nil {
			return fmt.Errorf("failed to list candidates: %w", err)
		}
		if len(registered) > 0 {
			slog.Warn("ballot omits a contested position", "position_id", p.ID)
		}
	}

	return nil
}
