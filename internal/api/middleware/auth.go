package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// userIDKey is the echo context key the authenticated user id is stored
// under. The handler package reads it back with the same key.
const userIDKey = "user_id"

// TokenResolver resolves a bearer token to a user id.
type TokenResolver interface {
	Identify(token string) (int64, error)
}

// Auth resolves the request's bearer token and injects the user id into the
// echo context. The "Bearer " prefix is optional: a raw token in the
// Authorization header is also accepted.
func Auth(resolver TokenResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := ExtractToken(c.Request().Header.Get("Authorization"))
			userID, err := resolver.Identify(token)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
			}

			c.Set(userIDKey, userID)
			return next(c)
		}
	}
}

// ExtractToken strips an optional "Bearer " prefix (case-insensitive) from
// the Authorization header value. Whitespace around the token is removed.
// A bare "Bearer" with no token yields the empty string, which never
// resolves.
func ExtractToken(header string) string {
	const prefix = "bearer"

	header = strings.TrimSpace(header)
	if len(header) >= len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		rest := header[len(prefix):]
		if rest == "" || rest[0] == ' ' {
			return strings.TrimSpace(rest)
		}
	}
	return header
}
