// Copyright (c) 2025 The Ballotbox Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"context"
	"fmt"
	"testing"

	"github.com/campusvote/ballotbox/models"
)

func seedBallots(t *testing.T, ledger *fakeLedger, selections []map[string]string) {
	t.Helper()
	for i, sel := range selections {
		ballot := models.Ballot{
			ID:         fmt.Sprintf("b%d", i),
			VoterID:    fmt.Sprintf("Science-A-%d", i+1),
			Selections: sel,
		}
		if err := ledger.Commit(context.Background(), ballot); err != nil {
			t.Fatalf("failed to seed ballot %d: %v", i, err)
		}
	}
}

func rosterOfSize(n int) *fakeRoster {
	roster := &fakeRoster{}
	for i := 1; i <= n; i++ {
		roster.students = append(roster.students, models.Student{
			Name: fmt.Sprintf("Student %d", i), RollNumber: i, Stream: "Science", Division: "A",
		})
	}
	return roster
}

func TestCompute_SingleWinner(t *testing.T) {
	ledger := newFakeLedger()
	seedBallots(t, ledger, []map[string]string{
		{"cr_boy": "Rahul Verma", "cr_girl": "Priya Nair"},
		{"cr_boy": "Rahul Verma"},
		{"cr_boy": "Vikram Shah"},
	})

	tally := NewTally(testRegistry(), ledger, rosterOfSize(10))
	results, err := tally.Compute(context.Background(), openSettings())
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}

	if len(results.Positions) != 2 {
		t.Fatalf("expected 2 positions, got %d", len(results.Positions))
	}

	boys := results.Positions[0]
	if boys.PositionID != "cr_boy" {
		t.Errorf("positions out of settings order: first is %q", boys.PositionID)
	}
	if boys.Winner != "Rahul Verma" {
		t.Errorf("winner = %q, want Rahul Verma", boys.Winner)
	}
	if boys.Tie {
		t.Error("expected no tie for cr_boy")
	}
	if boys.VoteCounts["Rahul Verma"] != 2 || boys.VoteCounts["Vikram Shah"] != 1 {
		t.Errorf("unexpected counts: %v", boys.VoteCounts)
	}

	girls := results.Positions[1]
	if girls.Winner != "Priya Nair" {
		t.Errorf("winner = %q, want Priya Nair", girls.Winner)
	}
	if girls.VoteCounts["Priya Nair"] != 1 {
		t.Errorf("unexpected counts: %v", girls.VoteCounts)
	}
}

func TestCompute_TieFormatting(t *testing.T) {
	registry := &fakeRegistry{candidates: []models.Candidate{
		{ID: "c1", Name: "Alpha", PositionID: "cr_boy"},
		{ID: "c2", Name: "Beta", PositionID: "cr_boy"},
		{ID: "c3", Name: "Gamma", PositionID: "cr_boy"},
	}}

	ledger := newFakeLedger()
	// Alpha 3, Beta 3, Gamma 1
	seedBallots(t, ledger, []map[string]string{
		{"cr_boy": "Alpha"}, {"cr_boy": "Alpha"}, {"cr_boy": "Alpha"},
		{"cr_boy": "Beta"}, {"cr_boy": "Beta"}, {"cr_boy": "Beta"},
		{"cr_boy": "Gamma"},
	})

	tally := NewTally(registry, ledger, rosterOfSize(10))
	results, err := tally.Compute(context.Background(), openSettings())
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}

	boys := results.Positions[0]
	if !boys.Tie {
		t.Error("expected tie flag")
	}
	// Co-winners in registration order, third place excluded
	if boys.Winner != "Alpha & Beta (TIE!)" {
		t.Errorf("winner = %q, want \"Alpha & Beta (TIE!)\"", boys.Winner)
	}
}

func TestCompute_ZeroVotes(t *testing.T) {
	tally := NewTally(testRegistry(), newFakeLedger(), rosterOfSize(10))
	results, err := tally.Compute(context.Background(), openSettings())
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}

	for _, pos := range results.Positions {
		if pos.Winner != NoWinner {
			t.Errorf("position %q winner = %q, want %q", pos.PositionID, pos.Winner, NoWinner)
		}
		if pos.Tie {
			t.Errorf("position %q should not report a tie at zero votes", pos.PositionID)
		}
		// Registered candidates appear with explicit zeros
		for name, count := range pos.VoteCounts {
			if count != 0 {
				t.Errorf("candidate %q count = %d, want 0", name, count)
			}
		}
	}
}

func TestCompute_Turnout(t *testing.T) {
	ledger := newFakeLedger()
	selections := make([]map[string]string, 10)
	for i := range selections {
		selections[i] = map[string]string{"cr_boy": "Rahul Verma"}
	}
	seedBallots(t, ledger, selections)

	tally := NewTally(testRegistry(), ledger, rosterOfSize(50))
	results, err := tally.Compute(context.Background(), openSettings())
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}

	turnout := results.Turnout
	if turnout.TotalStudents != 50 {
		t.Errorf("total students = %d, want 50", turnout.TotalStudents)
	}
	if turnout.TotalVotesCast != 10 {
		t.Errorf("total votes = %d, want 10", turnout.TotalVotesCast)
	}
	if turnout.Ratio != 0.20 {
		t.Errorf("ratio = %v, want 0.20", turnout.Ratio)
	}
	if !results.LedgerConsistent {
		t.Error("expected consistent ledger")
	}
}

func TestCompute_EmptyRoster(t *testing.T) {
	tally := NewTally(testRegistry(), newFakeLedger(), &fakeRoster{})
	results, err := tally.Compute(context.Background(), openSettings())
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}

	if results.Turnout.Ratio != 0 {
		t.Errorf("ratio = %v, want 0 with empty roster", results.Turnout.Ratio)
	}
}

func TestCompute_Deterministic(t *testing.T) {
	ledger := newFakeLedger()
	seedBallots(t, ledger, []map[string]string{
		{"cr_boy": "Vikram Shah"},
		{"cr_boy": "Rahul Verma"},
		{"cr_girl": "Priya Nair"},
	})

	tally := NewTally(testRegistry(), ledger, rosterOfSize(5))

	first, err := tally.Compute(context.Background(), openSettings())
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	for i := 0; i < 3; i++ {
		again, err := tally.Compute(context.Background(), openSettings())
		if err != nil {
			t.Fatalf("Compute() error = %v", err)
		}
		if len(again.Positions) != len(first.Positions) {
			t.Fatal("position count changed between runs")
		}
		for j := range again.Positions {
			if again.Positions[j].PositionID != first.Positions[j].PositionID {
				t.Error("position order changed between runs")
			}
			if again.Positions[j].Winner != first.Positions[j].Winner {
				t.Error("winner changed between runs")
			}
		}
	}
}
