// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"

	"faer/internal/domain/entity"
	domainerrors "faer/internal/domain/errors"
	"faer/internal/domain/repository"
	"faer/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// formationRepository implements the repository.FormationRepository interface.
type formationRepository struct {
	db *gorm.DB
}

// NewFormationRepository is the constructor for formationRepository.
func NewFormationRepository(db *gorm.DB) repository.FormationRepository {
	return &formationRepository{db: db}
}

// List returns the full catalog, newest first.
func (repo *formationRepository) List(ctx context.Context) ([]*entity.Formation, error) {
	var formationModels []*model.FormationModel

	err := repo.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&formationModels).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list formations")
	}

	formations := make([]*entity.Formation, 0, len(formationModels))
	for _, formationM := range formationModels {
		formations = append(formations, toFormationDomain(formationM))
	}

	return formations, nil
}

// FindByID retrieves a single formation.
func (repo *formationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Formation, error) {
	var formationM model.FormationModel

	err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&formationM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrFormationNotFound
		}

		return nil, errors.Wrap(err, "failed to find formation")
	}

	return toFormationDomain(&formationM), nil
}

// CreateEnrollment records a user's enrollment. The unique (user,
// formation) index is the authority for duplicate detection.
func (repo *formationRepository) CreateEnrollment(ctx context.Context, enrollment *entity.Enrollment) error {
	enrollmentM := fromEnrollmentDomain(enrollment)

	if err := repo.db.WithContext(ctx).Create(enrollmentM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateEnrollment
		}
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrFormationNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create enrollment")
	}

	enrollment.ID = enrollmentM.ID
	enrollment.EnrolledAt = enrollmentM.EnrolledAt

	return nil
}

// ListEnrollmentsByUser returns a user's enrollments with formation details, newest first.
func (repo *formationRepository) ListEnrollmentsByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Enrollment, error) {
	var enrollmentModels []*model.UserFormationModel

	err := repo.db.WithContext(ctx).
		Preload("Formation").
		Where("user_id = ?", userID).
		Order("enrolled_at DESC").
		Find(&enrollmentModels).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list enrollments")
	}

	enrollments := make([]*entity.Enrollment, 0, len(enrollmentModels))
	for _, enrollmentM := range enrollmentModels {
		enrollments = append(enrollments, toEnrollmentDomain(enrollmentM))
	}

	return enrollments, nil
}

// --- Mapper Functions ---

func toFormationDomain(data *model.FormationModel) *entity.Formation {
	if data == nil {
		return nil
	}

	return &entity.Formation{
		ID:          data.ID,
		Title:       data.Title,
		Description: data.Description,
		Duration:    data.Duration,
		Price:       data.Price,
		Category:    data.Category,
		CreatedAt:   data.CreatedAt,
	}
}

func toEnrollmentDomain(data *model.UserFormationModel) *entity.Enrollment {
	if data == nil {
		return nil
	}

	return &entity.Enrollment{
		ID:          data.ID,
		UserID:      data.UserID,
		FormationID: data.FormationID,
		Status:      entity.EnrollmentStatus(data.Status),
		EnrolledAt:  data.EnrolledAt,
		Formation:   toFormationDomain(data.Formation),
	}
}

func fromEnrollmentDomain(data *entity.Enrollment) *model.UserFormationModel {
	if data == nil {
		return nil
	}

	status := data.Status
	if !status.IsValid() {
		status = entity.EnrollmentEnrolled
	}

	return &model.UserFormationModel{
		ID:          data.ID,
		UserID:      data.UserID,
		FormationID: data.FormationID,
		Status:      string(status),
	}
}
