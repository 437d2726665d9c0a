package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/copebusiness/portal/internal/api/middleware"
	"github.com/copebusiness/portal/internal/core/domain"
)

const maxLimit = 100

// actor returns the caller resolved by the Session middleware. It is a
// fast-fail check: the route guards should already have rejected anonymous
// callers.
func actor(c echo.Context) (domain.Actor, error) {
	sess := middleware.SessionFrom(c)
	if !sess.IsAuthenticated || sess.User == nil {
		return domain.Actor{}, domain.ErrUnauthenticated
	}
	return sess.Actor(), nil
}

// bind decodes and validates the request body.
func bind(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(req); err != nil {
		return fmt.Errorf("%w: %s", domain.ErrValidation, err.Error())
	}
	return nil
}

// queryLimit parses ?limit=, defaulting to 0 (no limit) and capping at maxLimit.
func queryLimit(c echo.Context) (int, error) {
	raw := c.QueryParam("limit")
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: limit must be a non-negative integer", domain.ErrValidation)
	}
	if n > maxLimit {
		n = maxLimit
	}
	return n, nil
}
