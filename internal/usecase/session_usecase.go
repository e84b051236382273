package usecase

import (
	"context"

	"faer/internal/domain/entity"
	"faer/internal/domain/service"
)

// SessionUsecase guards protected operations. A request is authenticated
// only when its token both carries a valid signature and maps to a live
// session row; either check failing rejects the request.
type SessionUsecase interface {
	// Validate checks the token signature and the backing session row.
	// It returns the token claims and the matching session on success.
	Validate(ctx context.Context, token string) (*service.Claims, *entity.Session, error)

	// CleanupExpired removes sessions whose expiry has passed and
	// reports how many rows were deleted.
	CleanupExpired(ctx context.Context) (int64, error)
}
