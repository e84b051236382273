// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"

	"faer/internal/domain/entity"

	"github.com/pkg/errors"
)

// ErrSessionNotFound is returned when no valid session exists for a token.
// It covers both a missing row and a row whose expiry has already passed:
// an expired-but-not-yet-swept session is treated as absent.
var ErrSessionNotFound = errors.New("session not found")

// SessionRepository defines the operations for server-side session tracking.
type SessionRepository interface {
	// Insert persists a new session record.
	Insert(ctx context.Context, session *entity.Session) error

	// FindValid retrieves the session for a token hash only while its
	// expiry is in the future; otherwise ErrSessionNotFound.
	FindValid(ctx context.Context, tokenHash string) (*entity.Session, error)

	// DeleteByToken removes the session for a token hash. Idempotent:
	// deleting an absent token is not an error.
	DeleteByToken(ctx context.Context, tokenHash string) error

	// DeleteExpired removes every session whose expiry has passed and
	// returns the number of rows removed. Safe to run concurrently with
	// inserts and deletes.
	DeleteExpired(ctx context.Context) (int64, error)
}
