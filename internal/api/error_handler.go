package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/copebusiness/portal/internal/core/domain"
)

type errorResponse struct {
	Error string `json:"error"`
}

// errorStatus maps domain errors to HTTP codes. The caller sees the sentinel's
// message; validation errors keep their detail.
var errorStatus = []struct {
	err  error
	code int
}{
	{domain.ErrProfileNotFound, http.StatusNotFound},
	{domain.ErrOrderNotFound, http.StatusNotFound},
	{domain.ErrInvoiceNotFound, http.StatusNotFound},
	{domain.ErrReportNotFound, http.StatusNotFound},
	{domain.ErrTicketNotFound, http.StatusNotFound},
	{domain.ErrUnknownService, http.StatusNotFound},
	{domain.ErrUnknownPlan, http.StatusNotFound},

	{domain.ErrInvalidCredentials, http.StatusUnauthorized},
	{domain.ErrUnauthenticated, http.StatusUnauthorized},
	{domain.ErrInvalidToken, http.StatusUnauthorized},

	{domain.ErrForbidden, http.StatusForbidden},
	{domain.ErrEmailNotConfirmed, http.StatusForbidden},

	{domain.ErrInsufficientFunds, http.StatusPaymentRequired},

	{domain.ErrEmailTaken, http.StatusConflict},
	{domain.ErrProfileExists, http.StatusConflict},
	{domain.ErrPurchaseInProgress, http.StatusConflict},
	{domain.ErrTicketResolved, http.StatusConflict},
	{domain.ErrInvalidTransition, http.StatusConflict},

	{domain.ErrValidation, http.StatusUnprocessableEntity},
	{domain.ErrInvalidProgress, http.StatusUnprocessableEntity},
	{domain.ErrInvalidAmount, http.StatusUnprocessableEntity},
	{domain.ErrAmountTooLarge, http.StatusUnprocessableEntity},
	{domain.ErrInvalidPaymentMethod, http.StatusUnprocessableEntity},
	{domain.ErrPasswordMismatch, http.StatusUnprocessableEntity},
	{domain.ErrPasswordTooShort, http.StatusUnprocessableEntity},
	{domain.ErrEmptyInvoice, http.StatusUnprocessableEntity},
	{domain.ErrInvalidLineItem, http.StatusUnprocessableEntity},
	{domain.ErrEmptyMessage, http.StatusUnprocessableEntity},
}

// NewHTTPErrorHandler renders every error as {"error": "<message>"}.
// Unmapped errors are logged and reported as a generic 500.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	for _, m := range errorStatus {
		if !errors.Is(err, m.err) {
			continue
		}
		if m.err == domain.ErrValidation {
			return m.code, err.Error()
		}
		return m.code, m.err.Error()
	}

	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
