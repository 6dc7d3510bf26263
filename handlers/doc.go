// Copyright (c) 2025 The Ballotbox Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Ballotbox API.

# Handler Types

Each handler is a struct whose dependencies are injected via a
constructor:

  - StudentHandler: kiosk flow (settings, identify, candidates, vote)
  - AdminHandler: operator surface (login, settings, candidates, roster,
    reset, audit log)
  - ResultsHandler: live tally and CSV export

# Voting Flow

The kiosk walks students through identification and ballot submission:

	GET  /api/settings         → GetSettings (cached snapshot)
	POST /api/student/identify → Identify (returns voter_id)
	GET  /api/candidates       → GetCandidates
	POST /api/vote             → SubmitVote (exactly once per voter_id)

Identify resolves the student against the roster and synthesizes the
voter_id key. SubmitVote validates against fresh settings, so closing
the election takes effect for in-flight submissions, and commits the
ballot atomically with the voted marker.

# Admin Operations

Admin endpoints require the X-Admin-Token header, issued by:

	POST /api/admin/login → Login (returns a short-lived session token)

Settings updates invalidate the kiosk's settings snapshot. Candidate
and roster management, election reset, and the tally all live behind
the same token.

# Error Mapping

Domain errors from the election package map to HTTP statuses via
errors.Is: invalid form input is 400, an unknown student is 404, a
duplicate vote or closed election is 403, a duplicate candidate is 409.
Collaborator timeouts surface as 503.
*/
package handlers
