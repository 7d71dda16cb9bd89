package auth

import (
	"github.com/labstack/echo/v4"
)

// publicPaths lists URL paths that bypass authentication: the health check
// and the endpoints that establish credentials in the first place.
var publicPaths = map[string]bool{
	"/api/health":        true,
	"/api/auth/register": true,
	"/api/auth/login":    true,
}

// Skipper returns true for requests whose path requires no prior identity.
// Pass it to Middleware so those endpoints stay reachable without a token.
func Skipper(c echo.Context) bool {
	return publicPaths[c.Path()]
}
