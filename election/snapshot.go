// Copyright (c) 2025 The Ballotbox Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"context"
	"sync"
	"time"

	"github.com/campusvote/ballotbox/models"
)

// DefaultSnapshotTTL bounds how stale a cached settings snapshot may be.
const DefaultSnapshotTTL = 3 * time.Second

// SnapshotProvider hands out immutable per-request views of the election
// settings. Reads within the TTL share one cached value; Fresh bypasses
// the cache for paths that must observe the latest configuration.
type SnapshotProvider struct {
	src SettingsSource
	ttl time.Duration

	mu       sync.Mutex
	cached   models.ElectionSettings
	loadedAt time.Time
	valid    bool
}

func NewSnapshotProvider(src SettingsSource, ttl time.Duration) *SnapshotProvider {
	if ttl <= 0 {
		ttl = DefaultSnapshotTTL
	}
	return &SnapshotProvider{src: src, ttl: ttl}
}

// Current returns the cached settings value, reloading when the TTL has
// expired.
func (p *SnapshotProvider) Current(ctx context.Context) (models.ElectionSettings, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.valid && time.Since(p.loadedAt) < p.ttl {
		return p.cached, nil
	}
	return p.reload(ctx)
}

// Fresh always reloads from the source. Validation and commit paths use
// this so a late settings change takes effect for in-flight submissions.
func (p *SnapshotProvider) Fresh(ctx context.Context) (models.ElectionSettings, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.reload(ctx)
}

// Invalidate drops the cached value. Called after an administrative
// settings update.
func (p *SnapshotProvider) Invalidate() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.valid = false
}

func (p *SnapshotProvider) reload(ctx context.Context) (models.ElectionSettings, error) {
	settings, err := p.src.Load(ctx)
	if err != nil {
		return models.ElectionSettings{}, err
	}

	p.cached = settings
	p.loadedAt = time.Now()
	p.valid = true
	return settings, nil
}
