// Copyright (c) 2025 The Ballotbox Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"net/http"

	"github.com/campusvote/ballotbox/election"
	"github.com/campusvote/ballotbox/middleware"
	"github.com/campusvote/ballotbox/models"
)

// StudentHandler serves the kiosk voting flow: settings, identification,
// candidate listing, and ballot submission.
type StudentHandler struct {
	snapshots  *election.SnapshotProvider
	resolver   *election.Resolver
	validator  *election.Validator
	ledger     *election.Ledger
	candidates election.CandidateRegistry
}

func NewStudentHandler(
	snapshots *election.SnapshotProvider,
	resolver *election.Resolver,
	validator *election.Validator,
	ledger *election.Ledger,
	candidates election.CandidateRegistry,
) *StudentHandler {
	return &StudentHandler{
		snapshots:  snapshots,
		resolver:   resolver,
		validator:  validator,
		ledger:     ledger,
		candidates: candidates,
	}
}

// GetSettings handles GET /api/settings
func (h *StudentHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.snapshots.Current(r.Context())
	if err != nil {
		backendError(w, err, "failed to load settings")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, settings)
}

// Identify handles POST /api/student/identify
func (h *StudentHandler) Identify(w http.ResponseWriter, r *http.Request) {
	var req models.IdentifyRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.RollNumber <= 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "roll_number must be a positive integer")
		return
	}
	if req.Stream == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "stream is required")
		return
	}

	identity, err := h.resolver.Resolve(r.Context(), election.IdentifyForm{
		Name:       req.Name,
		RollNumber: req.RollNumber,
		Stream:     req.Stream,
		Division:   req.Division,
	})
	if err != nil {
		switch {
		case errors.Is(err, election.ErrInvalidStream),
			errors.Is(err, election.ErrInvalidDivision),
			errors.Is(err, election.ErrNameRequired):
			middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, election.ErrStudentNotFound):
			middleware.ErrorResponse(w, http.StatusNotFound, "Student not found. Please check all details.")
		case errors.Is(err, election.ErrAlreadyVoted):
			middleware.ErrorResponse(w, http.StatusForbidden, "This student has already voted.")
		default:
			backendError(w, err, "failed to resolve voter identity")
		}
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.IdentifyResponse{
		VoterID:     identity.Key,
		StudentName: identity.DisplayName,
		Message:     "Student identified successfully.",
	})
}

// GetCandidates handles GET /api/candidates with an optional position_id
// query filter.
func (h *StudentHandler) GetCandidates(w http.ResponseWriter, r *http.Request) {
	candidates, err := h.candidates.List(r.Context(), r.URL.Query().Get("position_id"))
	if err != nil {
		backendError(w, err, "failed to list candidates")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, candidates)
}

// SubmitVote handles POST /api/vote. Settings are re-fetched fresh so a
// late close or candidate change takes effect for in-flight submissions.
func (h *StudentHandler) SubmitVote(w http.ResponseWriter, r *http.Request) {
	var req models.VoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.VoterID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "voter_id is required")
		return
	}
	if len(req.Selections) == 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "selections cannot be empty")
		return
	}

	settings, err := h.snapshots.Fresh(r.Context())
	if err != nil {
		backendError(w, err, "failed to load settings")
		return
	}

	if err := h.validator.Validate(r.Context(), req.Selections, settings); err != nil {
		switch {
		case errors.Is(err, election.ErrVotingClosed):
			middleware.ErrorResponse(w, http.StatusForbidden, "Voting is currently closed.")
		case errors.Is(err, election.ErrUnknownPosition),
			errors.Is(err, election.ErrUnknownCandidate):
			middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		default:
			backendError(w, err, "failed to validate ballot")
		}
		return
	}

	ballot, err := h.ledger.Commit(r.Context(), election.Identity{Key: req.VoterID}, req.Selections)
	if err != nil {
		if errors.Is(err, election.ErrAlreadyVoted) {
			middleware.ErrorResponse(w, http.StatusForbidden, "Your vote has already been submitted.")
			return
		}
		backendError(w, err, "failed to commit ballot")
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.VoteResponse{
		BallotID: ballot.ID,
		Message:  "Your vote has been successfully recorded.",
	})
}
