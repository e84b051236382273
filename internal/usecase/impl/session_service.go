package impl

import (
	"context"
	"log/slog"

	deliverycontext "faer/internal/delivery/context"
	"faer/internal/domain/entity"
	domainerrors "faer/internal/domain/errors"
	"faer/internal/domain/repository"
	"faer/internal/domain/service"
	"faer/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// sessionService implements the SessionUsecase interface.
type sessionService struct {
	sessionRepo  repository.SessionRepository
	tokenService service.TokenService
	logger       *slog.Logger
}

// SessionServiceParams holds dependencies for sessionService, injected by Fx.
type SessionServiceParams struct {
	fx.In

	SessionRepo  repository.SessionRepository
	TokenService service.TokenService
	Logger       *slog.Logger
}

// NewSessionService is the constructor for sessionService.
func NewSessionService(params SessionServiceParams) usecase.SessionUsecase {
	return &sessionService{
		sessionRepo:  params.SessionRepo,
		tokenService: params.TokenService,
		logger:       params.Logger,
	}
}

func (srv *sessionService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Validate authenticates a token. The signature check runs first and is
// cheap; only a well-signed, unexpired token triggers the session lookup.
// A token whose session row is gone (logged out or swept) is rejected
// even though its signature still verifies.
func (srv *sessionService) Validate(ctx context.Context, token string) (*service.Claims, *entity.Session, error) {
	claims, err := srv.tokenService.Verify(token)
	if err != nil {
		srv.log(ctx).Debug("Token verification failed", slog.Any("error", err))

		return nil, nil, domainerrors.ErrUnauthenticated.WrapMessage("token verification failed")
	}

	session, err := srv.sessionRepo.FindValid(ctx, srv.tokenService.HashToken(token))
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			srv.log(ctx).Debug("No live session for token", slog.Any("userID", claims.UserID))

			return nil, nil, domainerrors.ErrUnauthenticated.WrapMessage("session not found or expired")
		}

		srv.log(ctx).Error("Failed to look up session", slog.Any("error", err))

		return nil, nil, errors.Wrap(err, "failed to look up session")
	}

	return claims, session, nil
}

// CleanupExpired removes every session past its expiry.
func (srv *sessionService) CleanupExpired(ctx context.Context) (int64, error) {
	removed, err := srv.sessionRepo.DeleteExpired(ctx)
	if err != nil {
		srv.log(ctx).Error("Failed to clean up expired sessions", slog.Any("error", err))

		return 0, errors.Wrap(err, "failed to clean up expired sessions")
	}

	if removed > 0 {
		srv.log(ctx).Info("Cleaned up expired sessions", slog.Int64("removed", removed))
	}

	return removed, nil
}
