// Package session keeps track of logged-in users between requests.
//
// A session is an opaque random token, handed to the browser in an HTTP-only cookie and
// mapped to a username by a [Store]. Only [MemoryStore] exists: sessions live in this
// process and vanish on restart.
package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"time"
)

// Session represents an authenticated user session.
type Session struct {
	ID        string
	Username  string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Expired reports whether the session is past its expiry at now.
func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// Store defines how sessions are stored and retrieved.
type Store interface {
	// Create starts a session for username.
	Create(ctx context.Context, username string) (Session, error)
	// Get returns a live session or [shared.ErrSessionNotFound].
	Get(ctx context.Context, id string) (Session, error)
	// Delete removes the session. Deleting an unknown id is not an error.
	Delete(ctx context.Context, id string) error
}

// NewID generates a session token with 256 bits of entropy.
func NewID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("session: failed to generate id: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
