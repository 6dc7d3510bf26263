// Copyright (c) 2025 The Ballotbox Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/campusvote/ballotbox/cliparse"
	"github.com/campusvote/ballotbox/election"
	"github.com/campusvote/ballotbox/handlers"
	"github.com/campusvote/ballotbox/middleware"
	"github.com/campusvote/ballotbox/store"
)

func NewRouter(dbConn *sql.DB, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Storage layer
	auditStore := store.NewAuditStore(dbConn)
	settingsStore := store.NewSettingsStore(dbConn, auditStore)
	rosterStore := store.NewRosterStore(dbConn)
	candidateStore := store.NewCandidateStore(dbConn)
	ledgerStore := store.NewLedgerStore(dbConn)

	// Election core
	snapshots := election.NewSnapshotProvider(settingsStore, election.DefaultSnapshotTTL)
	resolver := election.NewResolver(snapshots, rosterStore, ledgerStore)
	validator := election.NewValidator(candidateStore)
	ledger := election.NewLedger(ledgerStore, auditStore)
	tally := election.NewTally(candidateStore, ledgerStore, rosterStore)

	// Handlers
	studentHandler := handlers.NewStudentHandler(snapshots, resolver, validator, ledger, candidateStore)
	adminHandler := handlers.NewAdminHandler(cfg, snapshots, settingsStore, rosterStore, candidateStore, ledgerStore, auditStore)
	resultsHandler := handlers.NewResultsHandler(cfg, snapshots, tally)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Kiosk flow (public)
	mux.HandleFunc("GET /api/settings", middleware.WithLogging(studentHandler.GetSettings))
	mux.HandleFunc("POST /api/student/identify", middleware.WithLogging(studentHandler.Identify))
	mux.HandleFunc("GET /api/candidates", middleware.WithLogging(studentHandler.GetCandidates))
	mux.HandleFunc("POST /api/vote", middleware.WithLogging(studentHandler.SubmitVote))

	// Admin session
	mux.HandleFunc("POST /api/admin/login", middleware.WithLogging(adminHandler.Login))

	// Admin operations (require X-Admin-Token)
	mux.HandleFunc("PUT /api/admin/settings", middleware.WithLogging(adminHandler.UpdateSettings))
	mux.HandleFunc("POST /api/admin/candidates", middleware.WithLogging(adminHandler.AddCandidate))
	mux.HandleFunc("DELETE /api/admin/candidates", middleware.WithLogging(adminHandler.DeleteCandidate))
	mux.HandleFunc("DELETE /api/admin/candidates/all", middleware.WithLogging(adminHandler.ClearCandidates))
	mux.HandleFunc("POST /api/admin/candidates/photo", middleware.WithLogging(adminHandler.UploadCandidatePhoto))
	mux.HandleFunc("POST /api/admin/students/bulk", middleware.WithLogging(adminHandler.BulkUploadStudents))
	mux.HandleFunc("GET /api/admin/students", middleware.WithLogging(adminHandler.ListStudents))
	mux.HandleFunc("DELETE /api/admin/students", middleware.WithLogging(adminHandler.ClearStudents))
	mux.HandleFunc("GET /api/admin/results", middleware.WithLogging(resultsHandler.GetResults))
	mux.HandleFunc("GET /api/admin/results/export", middleware.WithLogging(resultsHandler.ExportResultsCSV))
	mux.HandleFunc("POST /api/admin/reset", middleware.WithLogging(adminHandler.ResetElection))
	mux.HandleFunc("GET /api/admin/audit-logs", middleware.WithLogging(adminHandler.AuditLogs))

	// Uploaded candidate photos
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticDir))))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ballotbox API v1"))
	})

	return mux
}
