// Copyright (c) 2025 The Ballotbox Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"context"
	"fmt"
	"strings"

	"github.com/campusvote/ballotbox/models"
)

// IdentifyForm is a voter's submitted identification.
type IdentifyForm struct {
	Name       string
	RollNumber int
	Stream     string
	Division   string
}

// Resolver maps identification forms to canonical voter identities
// against the roster. Read-only; the duplicate check here is an
// optimistic pre-check that the ledger re-verifies atomically at commit.
type Resolver struct {
	settings *SnapshotProvider
	roster   Roster
	ledger   BallotLedger
}

func NewResolver(settings *SnapshotProvider, roster Roster, ledger BallotLedger) *Resolver {
	return &Resolver{settings: settings, roster: roster, ledger: ledger}
}

// Resolve validates the form against the academic structure, matches it
// to a roster record, and derives the identity key.
func (r *Resolver) Resolve(ctx context.Context, form IdentifyForm) (Identity, error) {
	settings, err := r.settings.Current(ctx)
	if err != nil {
		return Identity{}, fmt.Errorf("failed to load settings: %w", err)
	}

	stream, division, err := normalizeStructure(settings, form.Stream, form.Division)
	if err != nil {
		return Identity{}, err
	}

	name := strings.TrimSpace(form.Name)
	if settings.IdentificationMode == models.ModeNameAndID {
		if name == "" {
			return Identity{}, ErrNameRequired
		}
	} else {
		// id_only mode ignores the name for matching
		name = ""
	}

	student, err := r.roster.Find(ctx, form.RollNumber, stream, division, name)
	if err != nil {
		return Identity{}, err
	}

	identity := Identity{
		Key:         IdentityKey(stream, division, form.RollNumber),
		DisplayName: student.Name,
	}

	voted, err := r.ledger.HasVoted(ctx, identity.Key)
	if err != nil {
		return Identity{}, fmt.Errorf("failed to check voted marker: %w", err)
	}
	if voted {
		return Identity{}, ErrAlreadyVoted
	}

	return identity, nil
}

// normalizeStructure checks the stream against the academic structure
// and returns the normalized division: a member of the stream's division
// list, or empty for streams without divisions (any submitted division
// is rejected there).
func normalizeStructure(settings models.ElectionSettings, stream, division string) (string, string, error) {
	stream = strings.TrimSpace(stream)
	division = strings.TrimSpace(division)

	var cfg *models.StreamConfig
	for i := range settings.AcademicStructure {
		if settings.AcademicStructure[i].StreamName == stream {
			cfg = &settings.AcademicStructure[i]
			break
		}
	}
	if cfg == nil {
		return "", "", ErrInvalidStream
	}

	if len(cfg.Divisions) == 0 {
		if division != "" {
			return "", "", ErrInvalidDivision
		}
		return stream, "", nil
	}

	for _, d := range cfg.Divisions {
		if d == division {
			return stream, division, nil
		}
	}
	return "", "", ErrInvalidDivision
}
