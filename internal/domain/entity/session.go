// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Session represents one issued login token on the server side.
// It ties a token to a user with an expiry that is tracked independently
// of the expiry embedded in the token itself, so a session can be revoked
// (logout, sweep) before the token expires on its own.
type Session struct {
	ID        uuid.UUID // The unique ID for this session record.
	UserID    uuid.UUID // Links the session to the User it belongs to.
	TokenHash string    // SHA-256 hash of the raw token; the raw token never touches the database.
	ExpiresAt time.Time // Absolute expiry; the row is invalid the moment this passes.
	CreatedAt time.Time // When the user signed up or logged in.
}

// Valid reports whether the session is still usable at the given instant.
func (s *Session) Valid(now time.Time) bool {
	return s.ExpiresAt.After(now)
}
