// Copyright (c) 2025 The Ballotbox Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/campusvote/ballotbox/auth"
	"github.com/campusvote/ballotbox/middleware"
)

// backendError reports a collaborator failure for the current request
// only. Deadline expiry maps to 503 so callers can distinguish a stalled
// backend from a bug.
func backendError(w http.ResponseWriter, err error, msg string) {
	slog.Error(msg, "error", err)
	status := http.StatusInternalServerError
	if errors.Is(err, context.DeadlineExceeded) {
		status = http.StatusServiceUnavailable
	}
	middleware.ErrorResponse(w, status, "Backend unavailable")
}

// requireAdmin validates the X-Admin-Token session header. Writes the
// 401 itself and returns false when the token is missing or invalid.
func requireAdmin(w http.ResponseWriter, r *http.Request, sessionSecret string) bool {
	token := r.Header.Get("X-Admin-Token")
	if token == "" {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "X-Admin-Token header required")
		return false
	}
	if err := auth.ValidateSessionToken(sessionSecret, token); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid session token")
		return false
	}
	return true
}
