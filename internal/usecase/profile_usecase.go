package usecase

import (
	"context"

	"faer/internal/domain/entity"

	"github.com/google/uuid"
)

// UpdateProfileInput defines the mutable profile fields. Email and
// password are deliberately absent; they are not editable here.
type UpdateProfileInput struct {
	FirstName string
	LastName  string
	Phone     string
}

// ProfileUsecase defines the interface for reading and updating the
// authenticated user's account data.
type ProfileUsecase interface {
	GetUser(ctx context.Context, userID uuid.UUID) (*entity.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, input *UpdateProfileInput) (*entity.User, error)
}
