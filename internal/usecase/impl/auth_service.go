// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "faer/internal/delivery/context"
	"faer/internal/domain/entity"
	domainerrors "faer/internal/domain/errors"
	"faer/internal/domain/repository"
	"faer/internal/domain/service"
	"faer/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// authService implements the AuthUsecase interface.
type authService struct {
	txManager    repository.TransactionManager
	userRepo     repository.UserRepository
	sessionRepo  repository.SessionRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	logger       *slog.Logger
}

// AuthServiceParams holds dependencies for authService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	UserRepo     repository.UserRepository
	SessionRepo  repository.SessionRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Logger       *slog.Logger
}

// NewAuthService is the constructor for authService. It receives all dependencies as interfaces.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return &authService{
		txManager:    params.TxManager,
		userRepo:     params.UserRepo,
		sessionRepo:  params.SessionRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Signup registers a new account and opens its first session. The user
// insert and the session insert share one transaction so a half-created
// account can never be observed.
func (srv *authService) Signup(ctx context.Context, input *usecase.SignupInput) (*usecase.AuthOutput, error) {
	srv.log(ctx).Info("Starting signup", slog.String("email", input.Email))

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during signup", slog.Any("error", err))

		return nil, domainerrors.ErrPasswordHashFailed.WrapMessage("failed to hash password during signup")
	}

	newUser := &entity.User{
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
		Phone:        input.Phone,
		PasswordHash: hashedPassword,
	}

	var token string
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if createErr := repoFactory.UserRepo().Create(ctx, newUser); createErr != nil {
			if errors.Is(createErr, repository.ErrDuplicateEmail) {
				return domainerrors.ErrDuplicateIdentity.WrapMessage("signup rejected")
			}

			return errors.Wrap(createErr, "failed to create user during signup")
		}

		var issueErr error
		token, issueErr = srv.openSession(ctx, repoFactory.SessionRepo(), newUser)

		return issueErr
	})
	if err != nil {
		srv.log(ctx).Warn("Failed to execute signup transaction", slog.String("email", input.Email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute signup transaction")
	}

	srv.log(ctx).Debug("Signup completed", slog.Any("userID", newUser.ID))

	return &usecase.AuthOutput{Token: token, User: newUser}, nil
}

// Login verifies the credentials and opens a new session. Unknown email
// and wrong password produce the same error so the response never leaks
// which one failed.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.AuthOutput, error) {
	srv.log(ctx).Debug("Starting login", slog.String("email", input.Email))

	user, err := srv.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		srv.log(ctx).Warn("Login failed", slog.String("email", input.Email), slog.Any("error", err))

		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrInvalidCredentials.WrapMessage("login failed")
		}

		return nil, errors.Wrap(err, "failed to find user by email")
	}

	// Check password outside any transaction (bcrypt is CPU-bound).
	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		srv.log(ctx).Warn("Login failed", slog.String("email", input.Email), slog.Any("error", domainerrors.ErrInvalidCredentials))

		return nil, domainerrors.ErrInvalidCredentials.WrapMessage("login failed")
	}

	token, err := srv.openSession(ctx, srv.sessionRepo, user)
	if err != nil {
		srv.log(ctx).Error("Failed to open session during login", slog.Any("userID", user.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to open session during login")
	}

	srv.log(ctx).Debug("User logged in successfully", slog.Any("userID", user.ID))

	return &usecase.AuthOutput{Token: token, User: user}, nil
}

// openSession issues a signed token and records its hashed form with a
// matching expiry. Only the hash touches the database.
func (srv *authService) openSession(ctx context.Context, sessionRepo repository.SessionRepository, user *entity.User) (string, error) {
	token, err := srv.tokenService.Issue(user)
	if err != nil {
		return "", errors.Wrap(err, "failed to issue session token")
	}

	newSession := &entity.Session{
		UserID:    user.ID,
		TokenHash: srv.tokenService.HashToken(token),
		ExpiresAt: time.Now().Add(srv.tokenService.TokenTTL()),
	}

	if err := sessionRepo.Insert(ctx, newSession); err != nil {
		return "", errors.Wrap(err, "failed to store session")
	}

	return token, nil
}

// Logout deletes the session backing the presented token. Logout always
// succeeds from the caller's point of view; a token that never had a
// session or whose session is already gone deletes nothing.
func (srv *authService) Logout(ctx context.Context, token string) error {
	srv.log(ctx).Info("Attempting to log out")

	if _, err := srv.tokenService.Verify(token); err != nil {
		// Even an unverifiable token may have a session row; delete by hash regardless.
		srv.log(ctx).Warn("Logout with invalid token", slog.Any("error", err))
	}

	tokenHash := srv.tokenService.HashToken(token)

	// Single operation - use direct repository instance
	if err := srv.sessionRepo.DeleteByToken(ctx, tokenHash); err != nil {
		srv.log(ctx).Error("Failed to delete session", slog.Any("error", err))

		return errors.Wrap(err, "failed to delete session")
	}
	srv.log(ctx).Info("Successfully logged out")

	return nil
}
