package handler

import (
	"strings"

	"faer/internal/delivery/http/middleware"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// bearerOrCookieToken pulls the session token from the Authorization
// header, falling back to the session cookie.
func bearerOrCookieToken(c echo.Context, cookieName string) string {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader != "" {
		if tokenString := strings.TrimPrefix(authHeader, "Bearer "); tokenString != authHeader {
			return tokenString
		}
	}

	cookie, err := c.Cookie(cookieName)
	if err != nil {
		return ""
	}

	return cookie.Value
}

// authenticatedUserID reads the user ID placed on the context by the
// auth middleware.
func authenticatedUserID(c echo.Context) (uuid.UUID, error) {
	userID, ok := c.Get(middleware.KeyUserID).(uuid.UUID)
	if !ok {
		return uuid.Nil, errors.New("user ID missing from context")
	}

	return userID, nil
}
