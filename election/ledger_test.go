// Copyright (c) 2025 The Ballotbox Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/campusvote/ballotbox/models"
)

func TestLedgerCommit(t *testing.T) {
	store := newFakeLedger()
	audit := &fakeAudit{}
	ledger := NewLedger(store, audit)

	identity := Identity{Key: "Science-A-12", DisplayName: "Asha Rao"}
	selections := map[string]string{"cr_boy": "Rahul Verma"}

	ballot, err := ledger.Commit(context.Background(), identity, selections)
	if err != nil {
		t.Fatalf("Commit() error = %v", err)
	}

	if ballot.ID == "" {
		t.Error("expected a generated ballot ID")
	}
	if ballot.VoterID != identity.Key {
		t.Errorf("voter ID = %q, want %q", ballot.VoterID, identity.Key)
	}
	if ballot.SubmittedAt.IsZero() {
		t.Error("expected a submission timestamp")
	}
	if audit.count() != 1 {
		t.Errorf("expected 1 audit entry, got %d", audit.count())
	}
}

func TestLedgerCommit_Duplicate(t *testing.T) {
	ledger := NewLedger(newFakeLedger(), &fakeAudit{})
	identity := Identity{Key: "Science-A-12"}

	if _, err := ledger.Commit(context.Background(), identity, map[string]string{"cr_boy": "Rahul Verma"}); err != nil {
		t.Fatalf("first Commit() error = %v", err)
	}

	// The second attempt must fail even with different selections
	_, err := ledger.Commit(context.Background(), identity, map[string]string{"cr_boy": "Vikram Shah"})
	if !errors.Is(err, ErrAlreadyVoted) {
		t.Errorf("second Commit() = %v, want ErrAlreadyVoted", err)
	}
}

// timeoutLedger times out on Commit while optionally recording the
// ballot anyway, mimicking a write that landed after the deadline.
type timeoutLedger struct {
	*fakeLedger
	landed bool
}

func (f *timeoutLedger) Commit(ctx context.Context, ballot models.Ballot) error {
	if f.landed {
		f.fakeLedger.Commit(ctx, ballot)
	}
	return context.DeadlineExceeded
}

func TestLedgerCommit_TimeoutWithLandedWrite(t *testing.T) {
	store := &timeoutLedger{fakeLedger: newFakeLedger(), landed: true}
	ledger := NewLedger(store, &fakeAudit{})

	_, err := ledger.Commit(context.Background(), Identity{Key: "Science-A-12"}, map[string]string{"cr_boy": "Rahul Verma"})
	if !errors.Is(err, ErrAlreadyVoted) {
		t.Errorf("Commit() = %v, want ErrAlreadyVoted once the marker is found", err)
	}
}

func TestLedgerCommit_TimeoutWithoutLandedWrite(t *testing.T) {
	store := &timeoutLedger{fakeLedger: newFakeLedger()}
	ledger := NewLedger(store, &fakeAudit{})

	_, err := ledger.Commit(context.Background(), Identity{Key: "Science-A-12"}, map[string]string{"cr_boy": "Rahul Verma"})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Commit() = %v, want the timeout surfaced as-is", err)
	}
}

func TestLedgerCommit_ConcurrentSameIdentity(t *testing.T) {
	store := newFakeLedger()
	ledger := NewLedger(store, &fakeAudit{})
	identity := Identity{Key: "Commerce-B-7"}

	const attempts = 20
	var accepted atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := ledger.Commit(context.Background(), identity, map[string]string{"cr_boy": "Rahul Verma"})
			if err == nil {
				accepted.Add(1)
			} else if !errors.Is(err, ErrAlreadyVoted) {
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if accepted.Load() != 1 {
		t.Errorf("expected exactly 1 accepted commit, got %d", accepted.Load())
	}

	count, err := store.CountBallots(context.Background())
	if err != nil {
		t.Fatalf("CountBallots() error = %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 stored ballot, got %d", count)
	}
}
