package middleware

import (
	"crypto/subtle"
	"time"

	"github.com/deppfellow/blog-api/internal/errs"
	"github.com/deppfellow/blog-api/internal/server"
	"github.com/labstack/echo/v4"
)

// APIKeyHeader carries the shared secret on write requests.
const APIKeyHeader = "Auth-API-KEY"

// AuthMiddleware holds the app Server so middleware can access the
// configured API key and the logger.
type AuthMiddleware struct {
	server *server.Server
}

func NewAuthMiddleware(s *server.Server) *AuthMiddleware {
	return &AuthMiddleware{
		server: s,
	}
}

// RequireAPIKey rejects the request with 401 unless the Auth-API-KEY header
// equals the configured key. It runs before the body is read.
func (auth *AuthMiddleware) RequireAPIKey(next echo.HandlerFunc) echo.HandlerFunc {
	expected := []byte(auth.server.Config.Auth.APIKey)

	return func(c echo.Context) error {
		start := time.Now()

		provided := c.Request().Header.Get(APIKeyHeader)
		if provided == "" || subtle.ConstantTimeCompare([]byte(provided), expected) != 1 {
			GetLogger(c).Warn().
				Str("function", "RequireAPIKey").
				Bool("header_present", provided != "").
				Dur("duration", time.Since(start)).
				Msg("rejected request with missing or invalid API key")

			return errs.NewUnauthorizedError("Unauthorized", false)
		}

		c.Set(AuthenticatedKey, true)

		return next(c)
	}
}
