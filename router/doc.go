// Copyright (c) 2025 The Ballotbox Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Ballotbox API.

# Route Registration

NewRouter wires the storage layer, the election core, and the handlers,
and returns a configured http.ServeMux:

	mux := router.NewRouter(db, cfg)

# Endpoints

Health:

	GET /health

Kiosk flow (public):

	GET  /api/settings         - Current election settings
	POST /api/student/identify - Resolve a student to a voter_id
	GET  /api/candidates       - List candidates (optional position_id)
	POST /api/vote             - Submit a ballot

Admin session:

	POST /api/admin/login - Exchange the password for a session token

Admin operations (require X-Admin-Token):

	PUT    /api/admin/settings        - Replace election settings
	POST   /api/admin/candidates      - Register candidate
	DELETE /api/admin/candidates      - Remove one candidate
	DELETE /api/admin/candidates/all  - Remove every candidate
	POST   /api/admin/candidates/photo - Upload candidate photo
	POST   /api/admin/students/bulk   - Bulk-load roster from CSV
	GET    /api/admin/students        - List roster
	DELETE /api/admin/students        - Clear roster
	GET    /api/admin/results         - Live tally
	GET    /api/admin/results/export  - Tally as CSV download
	POST   /api/admin/reset           - Clear ballots and voted markers
	GET    /api/admin/audit-logs      - Recent activity log

Static:

	GET /static/ - Uploaded candidate photos

# Wiring

The router builds one instance of each store, the settings snapshot
provider, the resolver, validator, ledger, and tally, then injects them
into the handlers. Handlers share the snapshot provider so an admin
settings update invalidates the kiosk's cached view.
*/
package router
