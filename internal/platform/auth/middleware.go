package auth

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Elijah-Pyers/Final-Project-MVP/internal/platform/apperror"
)

type contextKey string

const identityKey contextKey = "identity"

// Middleware returns echo middleware that verifies the bearer token on every
// request and stores the resulting Identity in the request context. Paths for
// which skipper returns true (health check, register, login) pass through
// without credentials.
func Middleware(tm *TokenManager, skipper func(echo.Context) bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if skipper != nil && skipper(c) {
				return next(c)
			}

			header := c.Request().Header.Get("Authorization")
			if header == "" {
				return apperror.ToHTTP(apperror.Unauthenticated("missing authorization header"))
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return apperror.ToHTTP(apperror.Unauthenticated("invalid authorization format"))
			}

			ident, err := tm.Verify(parts[1])
			if err != nil {
				return apperror.ToHTTP(err)
			}

			ctx := context.WithValue(c.Request().Context(), identityKey, ident)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

// IdentityFromContext returns the authenticated Identity, or nil when the
// request carried no verified token.
func IdentityFromContext(ctx context.Context) *Identity {
	ident, _ := ctx.Value(identityKey).(*Identity)
	return ident
}

// WithIdentity returns a context carrying the given identity. Used by tests
// and by any non-HTTP entry points that already authenticated the actor.
func WithIdentity(ctx context.Context, ident *Identity) context.Context {
	return context.WithValue(ctx, identityKey, ident)
}
