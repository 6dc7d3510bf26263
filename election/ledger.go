// Copyright (c) 2025 The Ballotbox Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/campusvote/ballotbox/models"
)

// Ledger commits validated ballots. The storage layer's marker insert is
// the single atomic uniqueness-enforcing operation; concurrent commits
// for one identity yield exactly one acceptance.
type Ledger struct {
	store BallotLedger
	audit AuditSink
}

func NewLedger(store BallotLedger, audit AuditSink) *Ledger {
	return &Ledger{store: store, audit: audit}
}

// Commit writes the marker and the ballot atomically. A duplicate
// identity returns ErrAlreadyVoted with no partial state. Once Commit
// returns successfully the vote is final.
func (l *Ledger) Commit(ctx context.Context, identity Identity, selections map[string]string) (models.Ballot, error) {
	ballot := models.Ballot{
		ID:          uuid.NewString(),
		VoterID:     identity.Key,
		Selections:  selections,
		SubmittedAt: time.Now().UTC(),
	}

	if err := l.store.Commit(ctx, ballot); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			// A timed-out commit may still have landed. The marker is
			// the only state worth consulting before reporting either
			// outcome; the original context may already be expired.
			voted, hvErr := l.store.HasVoted(context.WithoutCancel(ctx), identity.Key)
			if hvErr == nil && voted {
				return models.Ballot{}, ErrAlreadyVoted
			}
		}
		return models.Ballot{}, err
	}

	// The vote is durable at this point; a failed audit write must not
	// surface as a failed vote.
	if err := l.audit.Append(ctx, "Student", "Vote Cast", "Identifier: "+identity.Key); err != nil {
		slog.Warn("failed to append audit entry for vote", "error", err, "voter_id", identity.Key)
	}

	slog.Info("ballot committed", "ballot_id", ballot.ID, "voter_id", identity.Key)
	return ballot, nil
}
