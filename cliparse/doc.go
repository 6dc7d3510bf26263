// Copyright (c) 2025 The Ballotbox Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

A .env file in the working directory is loaded before flags are parsed.

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: sqlite file path or PostgreSQL connection string (required)
  - DatabaseType: "sqlite" (default) or "postgres"
  - AdminPassword: shared admin secret (required)
  - SessionSecret: admin session signing secret (required)
  - StaticDir: directory for uploaded candidate photos (default: "static")

# CLI Flags

	-p                Server port
	-d                Database URL or sqlite file path
	-t                Database type
	-static           Candidate photo directory
	--admin-password  Admin password
	--session-secret  Session signing secret

# Environment Variables

Flags fall back to environment variables:

	PORT           → -p
	DATABASE_URL   → -d
	DATABASE_TYPE  → -t
	STATIC_DIR     → -static
	ADMIN_PASSWORD → --admin-password
	SESSION_SECRET → --session-secret

CLI flags take precedence over environment variables.

# Validation

ParseFlags returns an error if required values are missing:

  - DATABASE_URL must be provided
  - ADMIN_PASSWORD must be provided
  - SESSION_SECRET must be provided

# Example

	// In main.go
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	conn, err := db.Open(cfg)
	// ...
	mux := router.NewRouter(conn, cfg)
*/
package cliparse
