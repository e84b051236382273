package entity

import (
	"time"

	"github.com/google/uuid"
)

// EnrollmentStatus tracks the lifecycle of a user's enrollment in a formation.
type EnrollmentStatus string

const (
	EnrollmentEnrolled  EnrollmentStatus = "enrolled"
	EnrollmentCompleted EnrollmentStatus = "completed"
	EnrollmentCancelled EnrollmentStatus = "cancelled"
)

// IsValid checks if the status is one of the known values.
func (s EnrollmentStatus) IsValid() bool {
	switch s {
	case EnrollmentEnrolled, EnrollmentCompleted, EnrollmentCancelled:
		return true
	default:
		return false
	}
}

// Formation is a training course offered on the site.
type Formation struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Duration    string    `json:"duration,omitempty"` // Free-form, e.g. "6 weeks".
	Price       float64   `json:"price"`
	Category    string    `json:"category,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Enrollment links a user to a formation they signed up for.
type Enrollment struct {
	ID          uuid.UUID        `json:"id"`
	UserID      uuid.UUID        `json:"userId"`
	FormationID uuid.UUID        `json:"formationId"`
	Status      EnrollmentStatus `json:"status"`
	EnrolledAt  time.Time        `json:"enrolledAt"`
	Formation   *Formation       `json:"formation,omitempty"` // Populated when listing a user's enrollments.
}
