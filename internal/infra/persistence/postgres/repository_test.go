package postgres

import (
	"context"
	"net/http"
	"testing"
	"time"

	"faer/internal/domain/entity"
	domainerrors "faer/internal/domain/errors"
	"faer/internal/domain/repository"
	"faer/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an in-memory SQLite database with the production
// schema. TranslateError maps driver errors onto gorm's sentinel errors
// so constraint translation behaves as it does on Postgres.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared&_fk=1"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	t.Cleanup(func() {
		sqlDB, dbErr := db.DB()
		require.NoError(t, dbErr)
		require.NoError(t, sqlDB.Close())
	})

	return db
}

func createUser(t *testing.T, repo repository.UserRepository, email string) *entity.User {
	t.Helper()

	user := &entity.User{
		FirstName:    "Ada",
		LastName:     "Lovelace",
		Email:        email,
		Phone:        "0123456789",
		PasswordHash: "$2a$10$fakefakefakefakefakefake",
	}
	require.NoError(t, repo.Create(context.Background(), user))
	require.NotEqual(t, uuid.Nil, user.ID)

	return user
}

func TestUserRepository_CreateAndFind(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := createUser(t, repo, "ada@example.com")

	byEmail, err := repo.FindByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)
	assert.Equal(t, user.PasswordHash, byEmail.PasswordHash)

	byID, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", byID.Email)
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	createUser(t, repo, "dup@example.com")

	err := repo.Create(ctx, &entity.User{
		FirstName:    "Eve",
		LastName:     "Impostor",
		Email:        "dup@example.com",
		PasswordHash: "x",
	})
	assert.ErrorIs(t, err, repository.ErrDuplicateEmail)

	// Exactly one identity remains for that email.
	var count int64
	require.NoError(t, db.Model(&model.UserModel{}).Where("email = ?", "dup@example.com").Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestUserRepository_NotFound(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	_, err := repo.FindByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, repository.ErrUserNotFound)

	_, err = repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, repository.ErrUserNotFound)

	_, err = repo.UpdateProfile(ctx, uuid.New(), "A", "B", "")
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}

func TestUserRepository_UpdateProfileIsPartial(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := createUser(t, repo, "ada@example.com")

	updated, err := repo.UpdateProfile(ctx, user.ID, "Augusta", "King", "0987654321")
	require.NoError(t, err)

	assert.Equal(t, "Augusta", updated.FirstName)
	assert.Equal(t, "King", updated.LastName)
	assert.Equal(t, "0987654321", updated.Phone)
	// Email and password hash must survive a profile update untouched.
	assert.Equal(t, user.Email, updated.Email)
	assert.Equal(t, user.PasswordHash, updated.PasswordHash)
}

func insertSession(t *testing.T, repo repository.SessionRepository, userID uuid.UUID, hash string, expiresAt time.Time) *entity.Session {
	t.Helper()

	session := &entity.Session{
		UserID:    userID,
		TokenHash: hash,
		ExpiresAt: expiresAt,
	}
	require.NoError(t, repo.Insert(context.Background(), session))

	return session
}

func TestSessionRepository_FindValid(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	sessions := NewSessionRepository(db)
	ctx := context.Background()

	user := createUser(t, users, "ada@example.com")
	insertSession(t, sessions, user.ID, "live-hash", time.Now().Add(time.Hour))

	found, err := sessions.FindValid(ctx, "live-hash")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.UserID)
	assert.True(t, found.Valid(time.Now()))
}

func TestSessionRepository_ExpiredRowIsAbsent(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	sessions := NewSessionRepository(db)
	ctx := context.Background()

	user := createUser(t, users, "ada@example.com")
	// Expired but never swept: must behave exactly like a missing row.
	insertSession(t, sessions, user.ID, "stale-hash", time.Now().Add(-time.Minute))

	_, err := sessions.FindValid(ctx, "stale-hash")
	assert.ErrorIs(t, err, repository.ErrSessionNotFound)
}

func TestSessionRepository_DeleteByTokenIdempotent(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	sessions := NewSessionRepository(db)
	ctx := context.Background()

	user := createUser(t, users, "ada@example.com")
	insertSession(t, sessions, user.ID, "h1", time.Now().Add(time.Hour))

	require.NoError(t, sessions.DeleteByToken(ctx, "h1"))
	// Second delete of the same token is a no-op, not an error.
	require.NoError(t, sessions.DeleteByToken(ctx, "h1"))
	// Deleting a token that never existed is also fine.
	require.NoError(t, sessions.DeleteByToken(ctx, "never-existed"))

	_, err := sessions.FindValid(ctx, "h1")
	assert.ErrorIs(t, err, repository.ErrSessionNotFound)
}

func TestSessionRepository_SweepExpired(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	sessions := NewSessionRepository(db)
	ctx := context.Background()

	user := createUser(t, users, "ada@example.com")
	insertSession(t, sessions, user.ID, "expired-1", time.Now().Add(-time.Hour))
	insertSession(t, sessions, user.ID, "expired-2", time.Now().Add(-time.Minute))
	insertSession(t, sessions, user.ID, "live", time.Now().Add(time.Hour))

	removed, err := sessions.DeleteExpired(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, removed)

	// Second sweep removes nothing.
	removed, err = sessions.DeleteExpired(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 0, removed)

	// The live session survives both sweeps.
	_, err = sessions.FindValid(ctx, "live")
	assert.NoError(t, err)
}

func TestFormationRepository_ListAndEnroll(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	formations := NewFormationRepository(db)
	ctx := context.Background()

	user := createUser(t, users, "ada@example.com")

	formationM := &model.FormationModel{
		Title:    "Go for Backend Engineers",
		Duration: "6 weeks",
		Price:    499.99,
		Category: "programming",
	}
	require.NoError(t, db.Create(formationM).Error)

	list, err := formations.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Go for Backend Engineers", list[0].Title)

	enrollment := &entity.Enrollment{UserID: user.ID, FormationID: formationM.ID}
	require.NoError(t, formations.CreateEnrollment(ctx, enrollment))
	assert.NotEqual(t, uuid.Nil, enrollment.ID)

	// Enrolling twice in the same formation is rejected.
	err = formations.CreateEnrollment(ctx, &entity.Enrollment{UserID: user.ID, FormationID: formationM.ID})
	assert.ErrorIs(t, err, repository.ErrDuplicateEnrollment)

	mine, err := formations.ListEnrollmentsByUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, entity.EnrollmentEnrolled, mine[0].Status)
	require.NotNil(t, mine[0].Formation)
	assert.Equal(t, formationM.ID, mine[0].Formation.ID)
}

func TestFormationRepository_FindByIDNotFound(t *testing.T) {
	db := newTestDB(t)
	formations := NewFormationRepository(db)

	_, err := formations.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, repository.ErrFormationNotFound)
}

func TestTransactionManager_RollbackOnError(t *testing.T) {
	db := newTestDB(t)
	tm := NewTransactionManager(db)
	ctx := context.Background()

	sentinel := repository.ErrDuplicateEmail

	err := tm.Execute(ctx, func(f repository.RepositoryFactory) error {
		if createErr := f.UserRepo().Create(ctx, &entity.User{
			FirstName:    "Tx",
			LastName:     "User",
			Email:        "tx@example.com",
			PasswordHash: "x",
		}); createErr != nil {
			return createErr
		}

		return sentinel
	})
	assert.ErrorIs(t, err, sentinel)

	// The insert inside the failed transaction must not be visible.
	_, err = NewUserRepository(db).FindByEmail(ctx, "tx@example.com")
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}

func TestTransactionManager_Commit(t *testing.T) {
	db := newTestDB(t)
	tm := NewTransactionManager(db)
	ctx := context.Background()

	err := tm.Execute(ctx, func(f repository.RepositoryFactory) error {
		return f.UserRepo().Create(ctx, &entity.User{
			FirstName:    "Tx",
			LastName:     "User",
			Email:        "tx@example.com",
			PasswordHash: "x",
		})
	})
	require.NoError(t, err)

	user, err := NewUserRepository(db).FindByEmail(ctx, "tx@example.com")
	require.NoError(t, err)
	assert.Equal(t, "tx@example.com", user.Email)
}

func TestRepositories_DatabaseFailureIsAppError(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	userRepo := NewUserRepository(db)
	sessionRepo := NewSessionRepository(db)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	err = userRepo.Create(ctx, &entity.User{
		FirstName:    "Ada",
		LastName:     "Lovelace",
		Email:        "ada@example.com",
		PasswordHash: "x",
	})
	require.Error(t, err)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "DATABASE_EXECUTE_FAILED", appErr.ErrorCode())
	assert.Equal(t, http.StatusInternalServerError, appErr.HTTPCode())

	err = sessionRepo.DeleteByToken(ctx, "some-hash")
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "DATABASE_EXECUTE_FAILED", appErr.ErrorCode())

	_, err = sessionRepo.DeleteExpired(ctx)
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "DATABASE_EXECUTE_FAILED", appErr.ErrorCode())
}
