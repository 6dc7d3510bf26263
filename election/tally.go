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

// NoWinner is reported for positions where every candidate has zero votes.
const NoWinner = "N/A"

// Tally aggregates committed ballots into per-position results. Computed
// fresh on every call; a pure function of settings, candidates, and
// ballots.
type Tally struct {
	candidates CandidateRegistry
	ledger     BallotLedger
	roster     Roster
}

func NewTally(candidates CandidateRegistry, ledger BallotLedger, roster Roster) *Tally {
	return &Tally{candidates: candidates, ledger: ledger, roster: roster}
}

// Compute walks positions in settings order and candidates in
// registration order, so repeated calls over identical data produce
// identical output regardless of ballot insertion order.
func (t *Tally) Compute(ctx context.Context, settings models.ElectionSettings) (models.Results, error) {
	results := models.Results{
		Positions: make([]models.PositionResult, 0, len(settings.Positions)),
	}

	for _, pos := range settings.Positions {
		registered, err := t.candidates.List(ctx, pos.ID)
		if err != nil {
			return models.Results{}, fmt.Errorf("failed to list candidates for %q: %w", pos.ID, err)
		}

		counted, err := t.ledger.CountByPosition(ctx, pos.ID)
		if err != nil {
			return models.Results{}, fmt.Errorf("failed to count ballots for %q: %w", pos.ID, err)
		}

		// Zero-fill from the registry; selections naming unregistered
		// candidates (stale historical ballots) are ignored.
		counts := make(map[string]int, len(registered))
		for _, c := range registered {
			counts[c.Name] = counted[c.Name]
		}

		winner, tie := determineWinner(registered, counts)

		results.Positions = append(results.Positions, models.PositionResult{
			PositionID:    pos.ID,
			PositionTitle: pos.Title,
			VoteCounts:    counts,
			Winner:        winner,
			Tie:           tie,
		})
	}

	totalStudents, err := t.roster.Count(ctx)
	if err != nil {
		return models.Results{}, fmt.Errorf("failed to count students: %w", err)
	}
	totalBallots, err := t.ledger.CountBallots(ctx)
	if err != nil {
		return models.Results{}, fmt.Errorf("failed to count ballots: %w", err)
	}
	totalMarkers, err := t.ledger.CountMarkers(ctx)
	if err != nil {
		return models.Results{}, fmt.Errorf("failed to count markers: %w", err)
	}

	// Turnout uses the ballot count; a marker mismatch is surfaced, not
	// masked.
	results.Turnout = models.Turnout{
		TotalStudents:  totalStudents,
		TotalVotesCast: totalBallots,
	}
	if totalStudents > 0 {
		results.Turnout.Ratio = float64(totalBallots) / float64(totalStudents)
	}

	results.LedgerConsistent = totalBallots == totalMarkers
	if !results.LedgerConsistent {
		slog.Warn("ballot and marker counts diverge",
			"ballots", totalBallots, "markers", totalMarkers)
	}

	return results, nil
}

// determineWinner picks every candidate sharing the maximum count.
// Co-winners are reported in registration order, never count order.
func determineWinner(registered []models.Candidate, counts map[string]int) (string, bool) {
	maxVotes := 0
	for _, c := range registered {
		if counts[c.Name] > maxVotes {
			maxVotes = counts[c.Name]
		}
	}
	if maxVotes == 0 {
		return NoWinner, false
	}

	var winners []string
	for _, c := range registered {
		if counts[c.Name] == maxVotes {
			winners = append(winners, c.Name)
		}
	}

	if len(winners) > 1 {
		return strings.Join(winners, " & ") + " (TIE!)", true
	}
	return winners[0], false
}
