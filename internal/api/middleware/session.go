package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/copebusiness/portal/internal/core/domain"
	"github.com/copebusiness/portal/internal/core/ports"
)

const (
	sessionKey = "session"
	tokenKey   = "access_token"
)

// Session resolves the caller's session from the bearer token and stores it
// in the echo context. It never rejects a request: a missing or invalid token
// yields an unauthenticated session and the route guards decide.
func Session(sessions ports.SessionService, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			sess := domain.Session{}
			if token != "" {
				resolved, err := sessions.GetSession(c.Request().Context(), token)
				if err != nil {
					log.Debug().Err(err).Str("path", c.Path()).Msg("session not resolved")
				} else {
					sess = resolved
				}
			}
			c.Set(sessionKey, sess)
			c.Set(tokenKey, token)
			return next(c)
		}
	}
}

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header. Anything else yields "".
func bearerToken(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// SessionFrom returns the session stored by Session. Requests that skipped
// the middleware get an unauthenticated session.
func SessionFrom(c echo.Context) domain.Session {
	sess, _ := c.Get(sessionKey).(domain.Session)
	return sess
}

// TokenFrom returns the raw bearer token of the request.
func TokenFrom(c echo.Context) string {
	token, _ := c.Get(tokenKey).(string)
	return token
}

// WithSession stores sess on c. Used by tests and handlers that establish a
// session mid-request.
func WithSession(c echo.Context, sess domain.Session, token string) {
	c.Set(sessionKey, sess)
	c.Set(tokenKey, token)
}
