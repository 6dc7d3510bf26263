// Copyright (c) 2025 The Ballotbox Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/campusvote/ballotbox/db"
	"github.com/campusvote/ballotbox/election"
	"github.com/campusvote/ballotbox/models"
)

// CandidateStore holds registered candidates. Registration order (the
// tally's deterministic secondary order) is created_at with id as the
// tiebreak.
type CandidateStore struct {
	db *sql.DB
}

func NewCandidateStore(db *sql.DB) *CandidateStore {
	return &CandidateStore{db: db}
}

// List returns candidates in registration order, optionally filtered by
// position.
func (s *CandidateStore) List(ctx context.Context, positionID string) ([]models.Candidate, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, name, position_id, gender, photo_url, created_at
		FROM candidate
	`
	args := []any{}
	if positionID != "" {
		query += ` WHERE position_id = $1`
		args = append(args, positionID)
	}
	query += ` ORDER BY created_at, id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query candidates: %w", err)
	}
	defer rows.Close()

	candidates := []models.Candidate{}
	for rows.Next() {
		var c models.Candidate
		if err := rows.Scan(&c.ID, &c.Name, &c.PositionID, &c.Gender, &c.PhotoURL, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		candidates = append(candidates, c)
	}
	return candidates, rows.Err()
}

// Add registers a candidate. The (position_id, name) unique constraint
// rejects duplicates.
func (s *CandidateStore) Add(ctx context.Context, c models.Candidate) (models.Candidate, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	c.ID = uuid.NewString()
	c.CreatedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO candidate (id, name, position_id, gender, photo_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, c.ID, c.Name, c.PositionID, c.Gender, c.PhotoURL, c.CreatedAt)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return models.Candidate{}, election.ErrCandidateExists
		}
		return models.Candidate{}, fmt.Errorf("failed to insert candidate: %w", err)
	}
	return c, nil
}

// Delete removes one candidate by (name, position_id).
func (s *CandidateStore) Delete(ctx context.Context, name, positionID string) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	res, err := s.db.ExecContext(ctx, `
		DELETE FROM candidate WHERE name = $1 AND position_id = $2
	`, name, positionID)
	if err != nil {
		return fmt.Errorf("failed to delete candidate: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return election.ErrCandidateNotFound
	}
	return nil
}

// SetPhoto records an uploaded photo reference for a candidate.
func (s *CandidateStore) SetPhoto(ctx context.Context, name, positionID, photoURL string) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	res, err := s.db.ExecContext(ctx, `
		UPDATE candidate SET photo_url = $1 WHERE name = $2 AND position_id = $3
	`, photoURL, name, positionID)
	if err != nil {
		return fmt.Errorf("failed to update candidate photo: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return election.ErrCandidateNotFound
	}
	return nil
}

// Clear removes every candidate and returns how many rows were deleted.
func (s *CandidateStore) Clear(ctx context.Context) (int, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	res, err := s.db.ExecContext(ctx, `DELETE FROM candidate`)
	if err != nil {
		return 0, fmt.Errorf("failed to clear candidates: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return int(n), nil
}
