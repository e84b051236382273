package usecase

import (
	"context"

	"faer/internal/domain/entity"

	"github.com/google/uuid"
)

// FormationUsecase defines the interface for browsing the training
// catalogue and managing a user's enrollments.
type FormationUsecase interface {
	List(ctx context.Context) ([]*entity.Formation, error)
	Enroll(ctx context.Context, userID, formationID uuid.UUID) (*entity.Enrollment, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]*entity.Enrollment, error)
}
