package impl

import (
	"context"
	"testing"

	"faer/internal/domain/entity"
	domainerrors "faer/internal/domain/errors"
	"faer/internal/domain/repository"
	mockRepo "faer/internal/mocks/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newFormationService(t *testing.T) (*formationService, *mockRepo.MockFormationRepository) {
	formationRepo := mockRepo.NewMockFormationRepository(t)

	srv := NewFormationService(FormationServiceParams{
		FormationRepo: formationRepo,
		Logger:        newDiscardLogger(),
	}).(*formationService)

	return srv, formationRepo
}

func TestFormationService_List(t *testing.T) {
	srv, formationRepo := newFormationService(t)
	ctx := context.Background()

	catalogue := []*entity.Formation{{ID: uuid.New(), Title: "Go Basics"}}
	formationRepo.On("List", ctx).Return(catalogue, nil)

	got, err := srv.List(ctx)

	require.NoError(t, err)
	assert.Equal(t, catalogue, got)
}

func TestFormationService_Enroll_Success(t *testing.T) {
	srv, formationRepo := newFormationService(t)
	ctx := context.Background()

	userID := uuid.New()
	formationID := uuid.New()
	formationRepo.On("CreateEnrollment", ctx, mock.AnythingOfType("*entity.Enrollment")).Return(nil)

	enrollment, err := srv.Enroll(ctx, userID, formationID)

	require.NoError(t, err)
	assert.Equal(t, userID, enrollment.UserID)
	assert.Equal(t, formationID, enrollment.FormationID)
	assert.Equal(t, entity.EnrollmentEnrolled, enrollment.Status)
}

func TestFormationService_Enroll_Duplicate(t *testing.T) {
	srv, formationRepo := newFormationService(t)
	ctx := context.Background()

	formationRepo.On("CreateEnrollment", ctx, mock.AnythingOfType("*entity.Enrollment")).
		Return(repository.ErrDuplicateEnrollment)

	_, err := srv.Enroll(ctx, uuid.New(), uuid.New())

	assert.ErrorIs(t, err, domainerrors.ErrAlreadyEnrolled)
}

func TestFormationService_Enroll_UnknownFormation(t *testing.T) {
	srv, formationRepo := newFormationService(t)
	ctx := context.Background()

	formationRepo.On("CreateEnrollment", ctx, mock.AnythingOfType("*entity.Enrollment")).
		Return(repository.ErrFormationNotFound)

	_, err := srv.Enroll(ctx, uuid.New(), uuid.New())

	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestFormationService_ListForUser(t *testing.T) {
	srv, formationRepo := newFormationService(t)
	ctx := context.Background()

	userID := uuid.New()
	enrollments := []*entity.Enrollment{{ID: uuid.New(), UserID: userID, Status: entity.EnrollmentEnrolled}}
	formationRepo.On("ListEnrollmentsByUser", ctx, userID).Return(enrollments, nil)

	got, err := srv.ListForUser(ctx, userID)

	require.NoError(t, err)
	assert.Equal(t, enrollments, got)
}
