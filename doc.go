// Copyright (c) 2025 The Ballotbox Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Ballotbox API server.

Ballotbox is a small-scale election system for a shared voting kiosk:
students identify themselves against a preloaded roster, cast a ballot
exactly once, and an administrator manages candidates, settings, and the
live tally from the same server.

# Starting the Server

The server requires environment variables or CLI flags for
configuration. A .env file in the working directory is loaded if
present:

	ADMIN_PASSWORD=... SESSION_SECRET=... DATABASE_URL=ballotbox.db go run .

Or with flags:

	go run . -p 3318 -d ballotbox.db -t sqlite --admin-password ... --session-secret ...

# Configuration

Required settings:

  - DATABASE_URL (-d): SQLite file path or PostgreSQL connection string
  - ADMIN_PASSWORD (--admin-password): shared operator password
  - SESSION_SECRET (--session-secret): admin session token signing key

Optional settings:

  - PORT (-p): server port (default: 3318)
  - DATABASE_TYPE (-t): "sqlite" (default) or "postgres"
  - STATIC_DIR (-static): candidate photo directory (default: static)

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (kiosk flow, admin, results)
  - election: domain core (identity resolution, validation, ledger, tally)
  - store: SQL persistence for settings, roster, candidates, ballots, audit
  - router: route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: request/response and domain types
  - auth: admin password check and session tokens
  - db: driver selection and schema creation
  - cliparse: configuration parsing

See package documentation for each component.
*/
package main
