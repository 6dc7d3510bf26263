// Copyright (c) 2025 The Ballotbox Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/campusvote/ballotbox/cliparse"
)

// Open connects to the configured database and verifies the connection.
func Open(cfg cliparse.Config) (*sql.DB, error) {
	var conn *sql.DB
	var err error

	switch cfg.DatabaseType {
	case "postgres":
		conn, err = sql.Open("postgres", cfg.DatabaseURL)
	case "sqlite":
		conn, err = sql.Open("sqlite", cfg.DatabaseURL)
	default:
		return nil, fmt.Errorf("unsupported database type %q", cfg.DatabaseType)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if cfg.DatabaseType == "sqlite" {
		// SQLite allows a single writer; one pooled connection avoids
		// SQLITE_BUSY under concurrent commits.
		conn.SetMaxOpenConns(1)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return conn, nil
}

// IsUniqueViolation reports whether err is a unique-constraint failure
// from either supported driver.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}

	// modernc.org/sqlite surfaces constraint failures as plain errors
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
