// Copyright (c) 2025 The Ballotbox Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/campusvote/ballotbox/models"
)

const settingsRowID = "global"

// SettingsStore persists the single election configuration document as
// JSON. The first Load writes defaults, mirroring a fresh installation.
type SettingsStore struct {
	db    *sql.DB
	audit *AuditStore
}

func NewSettingsStore(db *sql.DB, audit *AuditStore) *SettingsStore {
	return &SettingsStore{db: db, audit: audit}
}

// Load returns the current settings, creating defaults if none exist.
func (s *SettingsStore) Load(ctx context.Context) (models.ElectionSettings, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var payload []byte
	err := s.db.QueryRowContext(ctx, `
		SELECT payload FROM settings WHERE id = $1
	`, settingsRowID).Scan(&payload)

	if err == sql.ErrNoRows {
		return s.initDefaults(ctx)
	}
	if err != nil {
		return models.ElectionSettings{}, fmt.Errorf("failed to query settings: %w", err)
	}

	var settings models.ElectionSettings
	if err := json.Unmarshal(payload, &settings); err != nil {
		return models.ElectionSettings{}, fmt.Errorf("failed to parse settings payload: %w", err)
	}
	return settings, nil
}

// Save replaces the settings document wholesale.
func (s *SettingsStore) Save(ctx context.Context, settings models.ElectionSettings) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	payload, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO settings (id, payload, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at
	`, settingsRowID, payload, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

func (s *SettingsStore) initDefaults(ctx context.Context) (models.ElectionSettings, error) {
	settings := models.DefaultSettings()

	payload, err := json.Marshal(settings)
	if err != nil {
		return models.ElectionSettings{}, fmt.Errorf("failed to encode default settings: %w", err)
	}

	// A concurrent first read may have inserted already; that copy is
	// identical, so the conflict is ignored.
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO settings (id, payload, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO NOTHING
	`, settingsRowID, payload, time.Now().UTC())
	if err != nil {
		return models.ElectionSettings{}, fmt.Errorf("failed to insert default settings: %w", err)
	}

	slog.Info("initialized default election settings")
	if err := s.audit.Append(ctx, "System", "Initialized Default Settings", "First run detected."); err != nil {
		slog.Warn("failed to audit settings initialization", "error", err)
	}

	return settings, nil
}
