// Package middleware contains the HTTP delivery middlewares.
package middleware

import (
	"net/http"
	"strings"
	"time"

	"faer/config"
	"faer/internal/usecase"

	"github.com/labstack/echo/v4"
)

// Context keys set by Authenticate for downstream handlers.
const (
	KeyUserID = "userID"
	KeyClaims = "claims"
)

const loginPath = "/login"

// AuthMiddleware gates protected routes. A request passes only when its
// token carries a valid signature and is backed by a live session row.
type AuthMiddleware struct {
	sessionUC  usecase.SessionUsecase
	cookieName string
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(sessionUC usecase.SessionUsecase, cfg *config.Config) *AuthMiddleware {
	return &AuthMiddleware{
		sessionUC:  sessionUC,
		cookieName: cfg.Auth.CookieName,
	}
}

// token extracts the session token from the Authorization header or,
// failing that, from the session cookie set at login.
func (m *AuthMiddleware) token(c echo.Context) string {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader != "" {
		if tokenString := strings.TrimPrefix(authHeader, "Bearer "); tokenString != authHeader {
			return tokenString
		}
	}

	cookie, err := c.Cookie(m.cookieName)
	if err != nil {
		return ""
	}

	return cookie.Value
}

// Authenticate validates the request's token against both the signature
// and the session store. Any failure clears the session cookie and
// redirects to the login page; browser and API clients get the same
// treatment.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		tokenString := m.token(c)
		if tokenString == "" {
			return m.reject(c)
		}

		claims, session, err := m.sessionUC.Validate(c.Request().Context(), tokenString)
		if err != nil {
			return m.reject(c)
		}

		c.Set(KeyUserID, session.UserID)
		c.Set(KeyClaims, claims)

		return next(c)
	}
}

// RedirectIfAuthenticated sends already-authenticated users away from
// the login and signup pages. A bad or missing token just falls through
// to the page.
func (m *AuthMiddleware) RedirectIfAuthenticated(target string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenString := m.token(c)
			if tokenString == "" {
				return next(c)
			}

			if _, _, err := m.sessionUC.Validate(c.Request().Context(), tokenString); err != nil {
				return next(c)
			}

			return c.Redirect(http.StatusFound, target)
		}
	}
}

// ClearSessionCookie expires the session cookie on the client.
func (m *AuthMiddleware) ClearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     m.cookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
	})
}

func (m *AuthMiddleware) reject(c echo.Context) error {
	m.ClearSessionCookie(c)

	return c.Redirect(http.StatusFound, loginPath)
}
