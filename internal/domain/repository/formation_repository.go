// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"

	"faer/internal/domain/entity"

	"github.com/google/uuid"
)

// Domain-specific errors for formation persistence.
var (
	// ErrFormationNotFound is returned when a formation is not found.
	ErrFormationNotFound = errors.New("formation not found")
	// ErrDuplicateEnrollment is returned when a user enrolls in the same formation twice.
	ErrDuplicateEnrollment = errors.New("enrollment already exists")
)

// FormationRepository defines the operations for the course catalog and enrollments.
type FormationRepository interface {
	// List returns the full catalog, newest first.
	List(ctx context.Context) ([]*entity.Formation, error)

	// FindByID retrieves a single formation.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Formation, error)

	// CreateEnrollment records a user's enrollment. Fails with
	// ErrDuplicateEnrollment for a repeated (user, formation) pair and
	// ErrFormationNotFound when the formation does not exist.
	CreateEnrollment(ctx context.Context, enrollment *entity.Enrollment) error

	// ListEnrollmentsByUser returns a user's enrollments with the
	// formation details populated, newest first.
	ListEnrollmentsByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Enrollment, error)
}
