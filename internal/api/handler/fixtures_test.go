package handler

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/copebusiness/portal/internal/api/middleware"
	"github.com/copebusiness/portal/internal/core/domain"
)

var (
	adminProfile = &domain.Profile{ID: "admin-1", Name: "Admin User", Role: domain.RoleAdmin}
	johnProfile  = &domain.Profile{ID: "client-john", Name: "John Davidson", Role: domain.RoleClient}
)

// newContext builds an echo context with the handler validator installed.
// A nil profile leaves the request anonymous.
func newContext(method, target, body string, who *domain.Profile) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if who != nil {
		middleware.WithSession(c, domain.AuthenticatedSession(who), "token-"+who.ID)
	}
	return c, rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("invalid json %q: %v", rec.Body.String(), err)
	}
	return v
}
