// Copyright (c) 2025 The Ballotbox Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/campusvote/ballotbox/election"
	"github.com/campusvote/ballotbox/models"
)

// RosterStore holds the student roster. Rows are immutable except for
// bulk administrative replace and clear.
type RosterStore struct {
	db *sql.DB
}

func NewRosterStore(db *sql.DB) *RosterStore {
	return &RosterStore{db: db}
}

// Find matches a student on (roll, stream, division), and on name too
// when one is given. Name matching is case-insensitive so capitalization
// differences do not lock a student out.
func (s *RosterStore) Find(ctx context.Context, roll int, stream, division, name string) (models.Student, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query := `
		SELECT name, roll_number, stream, division
		FROM student
		WHERE roll_number = $1 AND stream = $2 AND division = $3
	`
	args := []any{roll, stream, division}
	if name != "" {
		query += ` AND LOWER(name) = LOWER($4)`
		args = append(args, strings.TrimSpace(name))
	}

	var student models.Student
	err := s.db.QueryRowContext(ctx, query, args...).Scan(
		&student.Name, &student.RollNumber, &student.Stream, &student.Division,
	)
	if err == sql.ErrNoRows {
		return models.Student{}, election.ErrStudentNotFound
	}
	if err != nil {
		return models.Student{}, fmt.Errorf("failed to query student: %w", err)
	}
	return student, nil
}

func (s *RosterStore) Count(ctx context.Context) (int, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM student`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count students: %w", err)
	}
	return count, nil
}

// List returns the roster ordered for display.
func (s *RosterStore) List(ctx context.Context) ([]models.Student, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, `
		SELECT name, roll_number, stream, division
		FROM student
		ORDER BY stream, division, roll_number
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query roster: %w", err)
	}
	defer rows.Close()

	students := []models.Student{}
	for rows.Next() {
		var st models.Student
		if err := rows.Scan(&st.Name, &st.RollNumber, &st.Stream, &st.Division); err != nil {
			return nil, fmt.Errorf("failed to scan student: %w", err)
		}
		students = append(students, st)
	}
	return students, rows.Err()
}

// InsertBatch adds students, skipping rows whose (stream, division,
// roll_number) already exists. Returns added and duplicate counts.
func (s *RosterStore) InsertBatch(ctx context.Context, students []models.Student) (added, duplicates int, err error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO student (name, roll_number, stream, division)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (stream, division, roll_number) DO NOTHING
	`)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to prepare roster insert: %w", err)
	}
	defer stmt.Close()

	for _, st := range students {
		res, err := stmt.ExecContext(ctx, st.Name, st.RollNumber, st.Stream, st.Division)
		if err != nil {
			return 0, 0, fmt.Errorf("failed to insert student %d/%s: %w", st.RollNumber, st.Stream, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, 0, fmt.Errorf("failed to read rows affected: %w", err)
		}
		if n == 0 {
			duplicates++
		} else {
			added++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, 0, fmt.Errorf("failed to commit roster batch: %w", err)
	}
	return added, duplicates, nil
}

// Clear removes the entire roster and returns how many rows were deleted.
func (s *RosterStore) Clear(ctx context.Context) (int, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	res, err := s.db.ExecContext(ctx, `DELETE FROM student`)
	if err != nil {
		return 0, fmt.Errorf("failed to clear roster: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return int(n), nil
}
