// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"faer/internal/domain/entity"

	"github.com/google/uuid"
)

// Domain-specific errors for user persistence.
var (
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrDuplicateEmail is returned when a create collides with an existing email.
	ErrDuplicateEmail = errors.New("email already registered")
)

// UserRepository defines the standard operations for user persistence.
// The application layer depends on this interface, not the concrete implementation.
type UserRepository interface {
	// Create persists a new user. The caller is responsible for hashing
	// the password beforehand. Fails with ErrDuplicateEmail when the
	// email is already taken.
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail retrieves a single user by email, including the
	// password hash so the caller can verify credentials.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByID retrieves a single user by their unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// UpdateProfile modifies only the mutable profile fields (first name,
	// last name, phone). Email and password hash are never touched here.
	UpdateProfile(ctx context.Context, id uuid.UUID, firstName, lastName, phone string) (*entity.User, error)
}
