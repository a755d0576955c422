package session

import (
	"net/http"
	"strings"

	"github.com/Gakenye8741/ticket-gateway/internal/backend"
	"github.com/labstack/echo/v4"
)

const identityContextKey = "identity"

// IdentityFrom returns the authenticated Identity set by Middleware.
func IdentityFrom(c echo.Context) (Identity, bool) {
	ident, ok := c.Get(identityContextKey).(Identity)
	return ident, ok
}

// Middleware validates the bearer token, loads the session and injects the
// Identity into the echo context. It also attaches the customer's backend
// token to the request context so the data access layer forwards it.
func Middleware(store Store, tokens *TokenManager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get(echo.HeaderAuthorization)
			if auth == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}
			tokenStr := strings.TrimPrefix(auth, "Bearer ")

			sid, err := tokens.Parse(tokenStr)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			sess, err := store.Get(c.Request().Context(), sid)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "session expired")
			}

			c.Set(identityContextKey, sess.Identity)
			ctx := backend.WithToken(c.Request().Context(), sess.BackendToken)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

// RequireAdmin gates a route group to admin sessions. Must run after
// Middleware.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ident, ok := IdentityFrom(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
			}
			if !ident.IsAdmin() {
				return echo.NewHTTPError(http.StatusForbidden, "admin role required")
			}
			return next(c)
		}
	}
}
