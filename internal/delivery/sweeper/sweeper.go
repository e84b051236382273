// Package sweeper runs the periodic expired-session cleanup.
package sweeper

import (
	"context"
	"log/slog"
	"time"

	"faer/config"
	"faer/internal/delivery"
	"faer/internal/usecase"

	"go.uber.org/fx"
)

// sessionSweeper deletes expired sessions on a fixed interval. Rows are
// only ever removed here or by logout; an expired row that has not been
// swept yet is already invisible to authentication.
type sessionSweeper struct {
	sessionUC usecase.SessionUsecase
	interval  time.Duration
	logger    *slog.Logger
	done      chan struct{}
}

// Params holds dependencies for the sweeper, injected by Fx.
type Params struct {
	fx.In
	fx.Lifecycle

	Config    *config.Config
	SessionUC usecase.SessionUsecase
	Logger    *slog.Logger
}

// New creates the sweeper delivery.
func New(params Params) delivery.Delivery {
	s := &sessionSweeper{
		sessionUC: params.SessionUC,
		interval:  params.Config.Auth.SweepInterval,
		logger:    params.Logger,
		done:      make(chan struct{}),
	}

	params.Append(fx.Hook{
		OnStop: s.stop,
	})

	return s
}

// Serve runs one sweep immediately, then keeps sweeping on the
// configured interval until the context is cancelled or stop is called.
// A failed sweep is logged and retried on the next tick; it never takes
// the process down.
func (s *sessionSweeper) Serve(ctx context.Context) error {
	s.logger.Info("Starting session sweeper", slog.Duration("interval", s.interval))

	s.sweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.done:
			return nil
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *sessionSweeper) sweep(ctx context.Context) {
	removed, err := s.sessionUC.CleanupExpired(ctx)
	if err != nil {
		s.logger.Error("Session sweep failed", slog.Any("error", err))

		return
	}

	s.logger.Debug("Session sweep finished", slog.Int64("removed", removed))
}

func (s *sessionSweeper) stop(ctx context.Context) error {
	s.logger.Info("Stopping session sweeper")
	close(s.done)

	return nil
}
