package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/copebusiness/portal/internal/core/domain"
)

// guardResponse tells the caller where the route gate would send them.
type guardResponse struct {
	Error    string `json:"error"`
	Redirect string `json:"redirect,omitempty"`
}

// RequireRole applies the route gate to an API group. An empty role only
// requires an authenticated session.
//
//	unauthenticated → 401 {"redirect": "/login"}
//	wrong role      → 403 {"redirect": "<caller's dashboard root>"}
func RequireRole(role domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			decision := domain.Authorize(SessionFrom(c), role)
			switch {
			case decision.Action == domain.GateRender:
				return next(c)
			case decision.Action == domain.GateLoading:
				return c.JSON(http.StatusServiceUnavailable, guardResponse{Error: "session is loading"})
			case decision.Target == domain.LoginPath:
				return c.JSON(http.StatusUnauthorized, guardResponse{Error: "authentication required", Redirect: decision.Target})
			default:
				return c.JSON(http.StatusForbidden, guardResponse{Error: "forbidden", Redirect: decision.Target})
			}
		}
	}
}

// RequireAuthenticated admits any signed-in user.
func RequireAuthenticated() echo.MiddlewareFunc {
	return RequireRole("")
}
