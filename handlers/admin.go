// Copyright (c) 2025 The Ballotbox Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/campusvote/ballotbox/auth"
	"github.com/campusvote/ballotbox/cliparse"
	"github.com/campusvote/ballotbox/election"
	"github.com/campusvote/ballotbox/middleware"
	"github.com/campusvote/ballotbox/models"
	"github.com/campusvote/ballotbox/store"
)

const (
	auditListLimit    = 200
	maxPhotoUploadMiB = 5
)

// AdminHandler serves the operator surface: login, settings, candidate
// and roster management, reset, and the audit log.
type AdminHandler struct {
	cfg        cliparse.Config
	snapshots  *election.SnapshotProvider
	settings   *store.SettingsStore
	roster     *store.RosterStore
	candidates *store.CandidateStore
	ledger     *store.LedgerStore
	audit      *store.AuditStore
}

func NewAdminHandler(
	cfg cliparse.Config,
	snapshots *election.SnapshotProvider,
	settings *store.SettingsStore,
	roster *store.RosterStore,
	candidates *store.CandidateStore,
	ledger *store.LedgerStore,
	audit *store.AuditStore,
) *AdminHandler {
	return &AdminHandler{
		cfg:        cfg,
		snapshots:  snapshots,
		settings:   settings,
		roster:     roster,
		candidates: candidates,
		ledger:     ledger,
		audit:      audit,
	}
}

// Login handles POST /api/admin/login
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.AdminLoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := auth.VerifyPassword(req.Password, h.cfg.AdminPassword); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Incorrect password")
		return
	}

	token, expiresAt, err := auth.NewSessionToken(h.cfg.SessionSecret)
	if err != nil {
		backendError(w, err, "failed to issue session token")
		return
	}

	if err := h.audit.Append(r.Context(), "Admin", "Admin Login", ""); err != nil {
		slog.Warn("failed to audit admin login", "error", err)
	}

	middleware.JSONResponse(w, http.StatusOK, models.AdminLoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
	})
}

// UpdateSettings handles PUT /api/admin/settings
func (h *AdminHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r, h.cfg.SessionSecret) {
		return
	}

	var settings models.ElectionSettings
	if err := middleware.ParseJSONBody(r, &settings); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := validateSettings(settings); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.settings.Save(r.Context(), settings); err != nil {
		backendError(w, err, "failed to save settings")
		return
	}
	h.snapshots.Invalidate()

	if err := h.audit.Append(r.Context(), "Admin", "Updated Election Settings",
		fmt.Sprintf("Voting status: %s", settings.VotingStatus)); err != nil {
		slog.Warn("failed to audit settings update", "error", err)
	}

	middleware.JSONResponse(w, http.StatusOK, settings)
}

func validateSettings(settings models.ElectionSettings) error {
	switch settings.VotingStatus {
	case models.StatusOpen, models.StatusClosed:
	default:
		return fmt.Errorf("voting_status must be %q or %q", models.StatusOpen, models.StatusClosed)
	}

	switch settings.IdentificationMode {
	case models.ModeNameAndID, models.ModeIDOnly:
	default:
		return fmt.Errorf("identification_mode must be %q or %q", models.ModeNameAndID, models.ModeIDOnly)
	}

	seenPositions := make(map[string]bool)
	for _, pos := range settings.Positions {
		if pos.ID == "" || pos.Title == "" {
			return errors.New("every position needs an id and a title")
		}
		if seenPositions[pos.ID] {
			return fmt.Errorf("duplicate position id %q", pos.ID)
		}
		seenPositions[pos.ID] = true

		switch pos.GenderRequirement {
		case "", models.GenderBoy, models.GenderGirl:
		default:
			return fmt.Errorf("invalid gender_requirement %q for position %q", pos.GenderRequirement, pos.ID)
		}
	}

	seenStreams := make(map[string]bool)
	for _, stream := range settings.AcademicStructure {
		if stream.StreamName == "" {
			return errors.New("every stream needs a name")
		}
		if seenStreams[stream.StreamName] {
			return fmt.Errorf("duplicate stream %q", stream.StreamName)
		}
		seenStreams[stream.StreamName] = true
	}

	return nil
}

// AddCandidate handles POST /api/admin/candidates
func (h *AdminHandler) AddCandidate(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r, h.cfg.SessionSecret) {
		return
	}

	var req models.AddCandidateRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" || req.PositionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name and position_id are required")
		return
	}
	if req.Gender != models.GenderBoy && req.Gender != models.GenderGirl {
		middleware.ErrorResponse(w, http.StatusBadRequest,
			fmt.Sprintf("gender must be %q or %q", models.GenderBoy, models.GenderGirl))
		return
	}

	settings, err := h.snapshots.Fresh(r.Context())
	if err != nil {
		backendError(w, err, "failed to load settings")
		return
	}

	position, ok := findPosition(settings, req.PositionID)
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest,
			fmt.Sprintf("unknown position %q", req.PositionID))
		return
	}
	if position.GenderRequirement != "" && position.GenderRequirement != req.Gender {
		middleware.ErrorResponse(w, http.StatusBadRequest,
			fmt.Sprintf("position %q is restricted to %s candidates", position.Title, position.GenderRequirement))
		return
	}

	candidate, err := h.candidates.Add(r.Context(), models.Candidate{
		Name:       req.Name,
		PositionID: req.PositionID,
		Gender:     req.Gender,
	})
	if err != nil {
		if errors.Is(err, election.ErrCandidateExists) {
			middleware.ErrorResponse(w, http.StatusConflict,
				fmt.Sprintf("candidate %q already exists for position %q", req.Name, req.PositionID))
			return
		}
		backendError(w, err, "failed to add candidate")
		return
	}

	if err := h.audit.Append(r.Context(), "Admin", "Added Candidate",
		fmt.Sprintf("%s for %s", req.Name, position.Title)); err != nil {
		slog.Warn("failed to audit candidate add", "error", err)
	}

	middleware.JSONResponse(w, http.StatusCreated, candidate)
}

func findPosition(settings models.ElectionSettings, positionID string) (models.Position, bool) {
	for _, pos := range settings.Positions {
		if pos.ID == positionID {
			return pos, true
		}
	}
	return models.Position{}, false
}

// DeleteCandidate handles DELETE /api/admin/candidates
func (h *AdminHandler) DeleteCandidate(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r, h.cfg.SessionSecret) {
		return
	}

	var req models.DeleteCandidateRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Name == "" || req.PositionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name and position_id are required")
		return
	}

	if err := h.candidates.Delete(r.Context(), req.Name, req.PositionID); err != nil {
		if errors.Is(err, election.ErrCandidateNotFound) {
			middleware.ErrorResponse(w, http.StatusNotFound, "Candidate not found")
			return
		}
		backendError(w, err, "failed to delete candidate")
		return
	}

	if err := h.audit.Append(r.Context(), "Admin", "Deleted Candidate",
		fmt.Sprintf("%s from %s", req.Name, req.PositionID)); err != nil {
		slog.Warn("failed to audit candidate delete", "error", err)
	}

	middleware.JSONResponse(w, http.StatusOK, map[string]string{
		"message": "Candidate deleted successfully.",
	})
}

// ClearCandidates handles DELETE /api/admin/candidates/all
func (h *AdminHandler) ClearCandidates(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r, h.cfg.SessionSecret) {
		return
	}

	deleted, err := h.candidates.Clear(r.Context())
	if err != nil {
		backendError(w, err, "failed to clear candidates")
		return
	}

	if err := h.audit.Append(r.Context(), "Admin", "Cleared All Candidates",
		fmt.Sprintf("%d removed", deleted)); err != nil {
		slog.Warn("failed to audit candidate clear", "error", err)
	}

	middleware.JSONResponse(w, http.StatusOK, map[string]any{
		"message": "All candidates deleted.",
		"deleted": deleted,
	})
}

// UploadCandidatePhoto handles POST /api/admin/candidates/photo. The
// file lands under <static>/candidate_photos/ with a random name so an
// uploaded filename never influences the path.
func (h *AdminHandler) UploadCandidatePhoto(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r, h.cfg.SessionSecret) {
		return
	}

	if err := r.ParseMultipartForm(maxPhotoUploadMiB << 20); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	name := strings.TrimSpace(r.FormValue("name"))
	positionID := r.FormValue("position_id")
	if name == "" || positionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name and position_id are required")
		return
	}

	file, header, err := r.FormFile("photo")
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "photo file is required")
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png":
	default:
		middleware.ErrorResponse(w, http.StatusBadRequest, "photo must be a .jpg, .jpeg, or .png file")
		return
	}

	photoDir := filepath.Join(h.cfg.StaticDir, "candidate_photos")
	if err := os.MkdirAll(photoDir, 0o755); err != nil {
		backendError(w, err, "failed to create photo directory")
		return
	}

	filename := uuid.NewString() + ext
	path := filepath.Join(photoDir, filename)

	dst, err := os.Create(path)
	if err != nil {
		backendError(w, err, "failed to create photo file")
		return
	}
	if _, err := io.Copy(dst, file); err != nil {
		dst.Close()
		os.Remove(path)
		backendError(w, err, "failed to write photo file")
		return
	}
	if err := dst.Close(); err != nil {
		os.Remove(path)
		backendError(w, err, "failed to write photo file")
		return
	}

	photoURL := "/static/candidate_photos/" + filename
	if err := h.candidates.SetPhoto(r.Context(), name, positionID, photoURL); err != nil {
		os.Remove(path)
		if errors.Is(err, election.ErrCandidateNotFound) {
			middleware.ErrorResponse(w, http.StatusNotFound, "Candidate not found")
			return
		}
		backendError(w, err, "failed to record candidate photo")
		return
	}

	if err := h.audit.Append(r.Context(), "Admin", "Uploaded Photo",
		fmt.Sprintf("%s for %s", name, positionID)); err != nil {
		slog.Warn("failed to audit photo upload", "error", err)
	}

	middleware.JSONResponse(w, http.StatusOK, map[string]string{
		"message":   "Photo uploaded successfully.",
		"photo_url": photoURL,
	})
}

// BulkUploadStudents handles POST /api/admin/students/bulk. Expects a
// CSV with a name,roll_number,stream,division header. Rows failing
// validation are reported per-row and skipped; valid rows still load.
func (h *AdminHandler) BulkUploadStudents(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r, h.cfg.SessionSecret) {
		return
	}

	if err := r.ParseMultipartForm(maxPhotoUploadMiB << 20); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "CSV file is required")
		return
	}
	defer file.Close()

	settings, err := h.snapshots.Fresh(r.Context())
	if err != nil {
		backendError(w, err, "failed to load settings")
		return
	}

	students, rowErrors, err := parseRosterCSV(file, settings)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	added, duplicates := 0, 0
	if len(students) > 0 {
		added, duplicates, err = h.roster.InsertBatch(r.Context(), students)
		if err != nil {
			backendError(w, err, "failed to insert students")
			return
		}
	}

	if err := h.audit.Append(r.Context(), "Admin", "Bulk Upload",
		fmt.Sprintf("%d students added, %d duplicates, %d errors", added, duplicates, len(rowErrors))); err != nil {
		slog.Warn("failed to audit bulk upload", "error", err)
	}

	middleware.JSONResponse(w, http.StatusOK, models.BulkUploadResponse{
		StudentsAdded:   added,
		DuplicatesFound: duplicates,
		Errors:          rowErrors,
	})
}

// parseRosterCSV reads and validates roster rows against the configured
// academic structure.
func parseRosterCSV(file io.Reader, settings models.ElectionSettings) ([]models.Student, []string, error) {
	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, nil, errors.New("CSV file is empty or unreadable")
	}
	expected := []string{"name", "roll_number", "stream", "division"}
	if len(header) != len(expected) {
		return nil, nil, fmt.Errorf("CSV header must be %s", strings.Join(expected, ","))
	}
	for i, col := range header {
		if strings.ToLower(strings.TrimSpace(col)) != expected[i] {
			return nil, nil, fmt.Errorf("CSV header must be %s", strings.Join(expected, ","))
		}
	}

	streams := make(map[string][]string, len(settings.AcademicStructure))
	for _, s := range settings.AcademicStructure {
		streams[s.StreamName] = s.Divisions
	}

	var students []models.Student
	var rowErrors []string
	for row := 2; ; row++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			rowErrors = append(rowErrors, fmt.Sprintf("row %d: malformed CSV record", row))
			continue
		}

		name := strings.TrimSpace(record[0])
		stream := strings.TrimSpace(record[2])
		division := strings.TrimSpace(record[3])

		if name == "" {
			rowErrors = append(rowErrors, fmt.Sprintf("row %d: name is required", row))
			continue
		}

		roll, err := strconv.Atoi(strings.TrimSpace(record[1]))
		if err != nil || roll <= 0 {
			rowErrors = append(rowErrors, fmt.Sprintf("row %d: roll_number must be a positive integer", row))
			continue
		}

		divisions, ok := streams[stream]
		if !ok {
			rowErrors = append(rowErrors, fmt.Sprintf("row %d: unknown stream %q", row, stream))
			continue
		}
		if len(divisions) == 0 {
			if division != "" {
				rowErrors = append(rowErrors, fmt.Sprintf("row %d: stream %q has no divisions", row, stream))
				continue
			}
		} else {
			found := false
			for _, d := range divisions {
				if d == division {
					found = true
					break
				}
			}
			if !found {
				rowErrors = append(rowErrors, fmt.Sprintf("row %d: invalid division %q for stream %q", row, division, stream))
				continue
			}
		}

		students = append(students, models.Student{
			Name:       name,
			RollNumber: roll,
			Stream:     stream,
			Division:   division,
		})
	}

	return students, rowErrors, nil
}

// ListStudents handles GET /api/admin/students
func (h *AdminHandler) ListStudents(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r, h.cfg.SessionSecret) {
		return
	}

	students, err := h.roster.List(r.Context())
	if err != nil {
		backendError(w, err, "failed to list students")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, students)
}

// ClearStudents handles DELETE /api/admin/students
func (h *AdminHandler) ClearStudents(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r, h.cfg.SessionSecret) {
		return
	}

	deleted, err := h.roster.Clear(r.Context())
	if err != nil {
		backendError(w, err, "failed to clear roster")
		return
	}

	if err := h.audit.Append(r.Context(), "Admin", "Cleared Student Roster",
		fmt.Sprintf("%d removed", deleted)); err != nil {
		slog.Warn("failed to audit roster clear", "error", err)
	}

	middleware.JSONResponse(w, http.StatusOK, map[string]any{
		"message": "Student roster cleared.",
		"deleted": deleted,
	})
}

// ResetElection handles POST /api/admin/reset. Clears ballots and voted
// markers together; settings, candidates, and the roster survive.
func (h *AdminHandler) ResetElection(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r, h.cfg.SessionSecret) {
		return
	}

	if err := h.ledger.Reset(r.Context()); err != nil {
		backendError(w, err, "failed to reset election")
		return
	}

	if err := h.audit.Append(r.Context(), "Admin", "Election Reset",
		"All votes have been cleared."); err != nil {
		slog.Warn("failed to audit election reset", "error", err)
	}

	middleware.JSONResponse(w, http.StatusOK, map[string]string{
		"message": "Election has been reset. All votes cleared.",
	})
}

// AuditLogs handles GET /api/admin/audit-logs
func (h *AdminHandler) AuditLogs(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r, h.cfg.SessionSecret) {
		return
	}

	entries, err := h.audit.List(r.Context(), auditListLimit)
	if err != nil {
		backendError(w, err, "failed to list audit entries")
		return
	}

	out := make([]models.AuditLogEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, models.AuditLogEntry{
			Timestamp: e.Timestamp,
			Actor:     e.Actor,
			Action:    e.Action,
			Details:   e.Details,
			Age:       humanize.Time(e.Timestamp),
		})
	}
	middleware.JSONResponse(w, http.StatusOK, out)
}
