// Copyright (c) 2025 The Ballotbox Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides admin authentication utilities.

# Password Check

The administrator role is gated by a static shared secret, compared in
constant time:

	if err := auth.VerifyPassword(given, cfg.AdminPassword); err != nil {
		// reject
	}

# Session Tokens

A successful login exchanges the password for a short-lived HS256-signed
token (2 hours):

	token, expiresAt, err := auth.NewSessionToken(cfg.SessionSecret)

Every admin endpoint validates the token per request; nothing is stored
server-side and there is no ambient session:

	if err := auth.ValidateSessionToken(cfg.SessionSecret, token); err != nil {
		// 401
	}

Clients send the token in the X-Admin-Token header.
*/
package auth
