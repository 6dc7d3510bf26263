// Copyright (c) 2025 The Ballotbox Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Settings Types

ElectionSettings is the admin-editable configuration document:

  - CollegeInfo: branding (name, logo reference)
  - Position: elected positions, optionally gender-restricted
  - StreamConfig: academic streams with optional division lists
  - IdentificationMode: "name_and_id" or "id_only"
  - VotingStatus: "OPEN" or "CLOSED"

DefaultSettings returns the document written on first read.

# Domain Types

Internal data structures:

  - Candidate: registered per position, unique by (position_id, name)
  - Student: one roster row, unique by (stream, division, roll_number)
  - Ballot: one voter's finalized selections, committed at most once
  - AuditEntry: append-only activity log row

# Request Types

Types for parsing incoming JSON:

  - IdentifyRequest: roll_number, stream, optional division and name
  - VoteRequest: voter_id plus position→candidate selections
  - AdminLoginRequest, AddCandidateRequest, DeleteCandidateRequest

# Response Types

Types for JSON responses:

  - IdentifyResponse: voter_id, student_name
  - VoteResponse: ballot_id, message
  - AdminLoginResponse: token, expires_at
  - BulkUploadResponse: students_added, duplicates_found, errors
  - Results / PositionResult / Turnout: tally output
  - ErrorResponse: error, message

# Constants

Voting status:

	StatusOpen   = "OPEN"
	StatusClosed = "CLOSED"

Identification modes:

	ModeNameAndID = "name_and_id"
	ModeIDOnly    = "id_only"

Genders:

	GenderBoy  = "boy"
	GenderGirl = "girl"
*/
package models
