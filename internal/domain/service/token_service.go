package service

import (
	"errors"
	"time"

	"faer/internal/domain/entity"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Sentinel errors returned by Verify. Callers distinguish an expired
// token from a forged or malformed one with errors.Is.
var (
	// ErrTokenExpired is returned when the token's embedded expiry has passed.
	ErrTokenExpired = errors.New("token has expired")
	// ErrTokenInvalid is returned for any signature or structural failure.
	ErrTokenInvalid = errors.New("token is invalid")
)

// Claims is the set of identity assertions embedded in an issued token.
type Claims struct {
	UserID    uuid.UUID `json:"userId"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	jwt.RegisteredClaims
}

// TokenService defines the interface for issuing and verifying signed
// identity tokens. Verification is pure: no store access, only the
// signature and the expiry embedded in the token itself.
type TokenService interface {
	// Issue creates a signed, time-limited token asserting the user's identity.
	Issue(user *entity.User) (string, error)

	// Verify checks the token's signature and embedded expiry and
	// returns the decoded claims.
	Verify(token string) (*Claims, error)

	// HashToken returns the digest under which a token is stored
	// server-side, so the raw token never touches the database.
	HashToken(token string) string

	// TokenTTL returns the configured token lifetime.
	TokenTTL() time.Duration
}
