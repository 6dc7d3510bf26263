// Copyright (c) 2025 The Ballotbox Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"sort"
	"strconv"

	"github.com/campusvote/ballotbox/cliparse"
	"github.com/campusvote/ballotbox/election"
	"github.com/campusvote/ballotbox/middleware"
)

// ResultsHandler serves the live tally and its CSV export. Both are
// admin-gated; results never reach the kiosk surface.
type ResultsHandler struct {
	cfg       cliparse.Config
	snapshots *election.SnapshotProvider
	tally     *election.Tally
}

func NewResultsHandler(cfg cliparse.Config, snapshots *election.SnapshotProvider, tally *election.Tally) *ResultsHandler {
	return &ResultsHandler{cfg: cfg, snapshots: snapshots, tally: tally}
}

// GetResults handles GET /api/admin/results
func (h *ResultsHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r, h.cfg.SessionSecret) {
		return
	}

	settings, err := h.snapshots.Current(r.Context())
	if err != nil {
		backendError(w, err, "failed to load settings")
		return
	}

	results, err := h.tally.Compute(r.Context(), settings)
	if err != nil {
		backendError(w, err, "failed to compute results")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, results)
}

// ExportResultsCSV handles GET /api/admin/results/export
func (h *ResultsHandler) ExportResultsCSV(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r, h.cfg.SessionSecret) {
		return
	}

	settings, err := h.snapshots.Current(r.Context())
	if err != nil {
		backendError(w, err, "failed to load settings")
		return
	}

	results, err := h.tally.Compute(r.Context(), settings)
	if err != nil {
		backendError(w, err, "failed to compute results")
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="election_results.csv"`)

	writer := csv.NewWriter(w)
	defer writer.Flush()

	writer.Write([]string{"Election Results", settings.CollegeInfo.CollegeName})
	writer.Write([]string{})
	writer.Write([]string{"Voter Turnout"})
	writer.Write([]string{"Total Students", strconv.Itoa(results.Turnout.TotalStudents)})
	writer.Write([]string{"Total Votes Cast", strconv.Itoa(results.Turnout.TotalVotesCast)})
	writer.Write([]string{"Turnout Ratio", fmt.Sprintf("%.2f%%", results.Turnout.Ratio*100)})

	for _, pos := range results.Positions {
		writer.Write([]string{})
		writer.Write([]string{pos.PositionTitle})
		writer.Write([]string{"Candidate", "Votes"})

		// Counts are map-keyed; sort names for a stable export. The
		// winner row carries the authoritative registration-order result.
		names := make([]string, 0, len(pos.VoteCounts))
		for name := range pos.VoteCounts {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			writer.Write([]string{name, strconv.Itoa(pos.VoteCounts[name])})
		}

		writer.Write([]string{"Winner", pos.Winner})
	}
}
