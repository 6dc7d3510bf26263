// Copyright (c) 2025 The Ballotbox Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidPassword = errors.New("incorrect admin password")
	ErrInvalidSession  = errors.New("invalid or expired session token")
)

// SessionTTL is how long an admin session token stays valid.
const SessionTTL = 2 * time.Hour

// VerifyPassword checks the shared admin secret in constant time.
// This is an operational gate for a kiosk in a staff room, not a
// security boundary.
func VerifyPassword(given, configured string) error {
	if !hmac.Equal([]byte(given), []byte(configured)) {
		return ErrInvalidPassword
	}
	return nil
}

// NewSessionToken issues a short-lived signed token after a successful
// password check. The token is the only credential admin endpoints
// accept; there is no ambient session state.
func NewSessionToken(secret string) (string, time.Time, error) {
	expiresAt := time.Now().Add(SessionTTL)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "admin",
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	})

	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, expiresAt, nil
}

// ValidateSessionToken checks the signature, expiry, and subject of an
// admin session token.
func ValidateSessionToken(secret, tokenString string) error {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return ErrInvalidSession
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject != "admin" {
		return ErrInvalidSession
	}
	return nil
}
