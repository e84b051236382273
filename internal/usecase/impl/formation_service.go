package impl

import (
	"context"
	"log/slog"

	deliverycontext "faer/internal/delivery/context"
	"faer/internal/domain/entity"
	domainerrors "faer/internal/domain/errors"
	"faer/internal/domain/repository"
	"faer/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// formationService implements the FormationUsecase interface.
type formationService struct {
	formationRepo repository.FormationRepository
	logger        *slog.Logger
}

// FormationServiceParams holds dependencies for formationService, injected by Fx.
type FormationServiceParams struct {
	fx.In

	FormationRepo repository.FormationRepository
	Logger        *slog.Logger
}

// NewFormationService is the constructor for formationService.
func NewFormationService(params FormationServiceParams) usecase.FormationUsecase {
	return &formationService{
		formationRepo: params.FormationRepo,
		logger:        params.Logger,
	}
}

func (srv *formationService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// List returns the full training catalogue.
func (srv *formationService) List(ctx context.Context) ([]*entity.Formation, error) {
	formations, err := srv.formationRepo.List(ctx)
	if err != nil {
		srv.log(ctx).Error("Failed to list formations", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to list formations")
	}

	return formations, nil
}

// Enroll registers the user in a formation. Each user can hold at most
// one enrollment per formation.
func (srv *formationService) Enroll(ctx context.Context, userID, formationID uuid.UUID) (*entity.Enrollment, error) {
	srv.log(ctx).Info("Enrolling user in formation", slog.Any("userID", userID), slog.Any("formationID", formationID))

	enrollment := &entity.Enrollment{
		UserID:      userID,
		FormationID: formationID,
		Status:      entity.EnrollmentEnrolled,
	}

	if err := srv.formationRepo.CreateEnrollment(ctx, enrollment); err != nil {
		srv.log(ctx).Warn("Failed to enroll user", slog.Any("userID", userID), slog.Any("formationID", formationID), slog.Any("error", err))

		switch {
		case errors.Is(err, repository.ErrDuplicateEnrollment):
			return nil, domainerrors.ErrAlreadyEnrolled.WrapMessage("enrollment rejected")
		case errors.Is(err, repository.ErrFormationNotFound):
			return nil, domainerrors.ErrNotFound.WrapMessage("formation not found")
		default:
			return nil, errors.Wrap(err, "failed to enroll user")
		}
	}

	return enrollment, nil
}

// ListForUser returns the user's enrollments, newest first, each with
// its formation attached.
func (srv *formationService) ListForUser(ctx context.Context, userID uuid.UUID) ([]*entity.Enrollment, error) {
	enrollments, err := srv.formationRepo.ListEnrollmentsByUser(ctx, userID)
	if err != nil {
		srv.log(ctx).Error("Failed to list enrollments", slog.Any("userID", userID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to list enrollments")
	}

	return enrollments, nil
}
