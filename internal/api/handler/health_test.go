package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"
)

func TestHealthHandler_Liveness(t *testing.T) {
	c, rec := newContext(http.MethodGet, "/health", "", nil)

	if err := NewHealthHandler().Liveness(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestReadinessHandler_AllHealthy(t *testing.T) {
	h := NewReadinessHandler(map[string]Check{
		"postgres": func(context.Context) error { return nil },
		"redis":    func(context.Context) error { return nil },
	})
	c, rec := newContext(http.MethodGet, "/health/ready", "", nil)

	if err := h.Readiness(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	resp := decode[readinessResponse](t, rec)
	if resp.Status != "ok" || len(resp.Dependencies) != 2 {
		t.Errorf("unexpected response %+v", resp)
	}
}

func TestReadinessHandler_Degraded(t *testing.T) {
	h := NewReadinessHandler(map[string]Check{
		"mongodb": func(context.Context) error { return nil },
		"redis":   func(context.Context) error { return errors.New("connection refused") },
	})
	c, rec := newContext(http.MethodGet, "/health/ready", "", nil)

	if err := h.Readiness(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
	resp := decode[readinessResponse](t, rec)
	if resp.Status != "degraded" {
		t.Errorf("expected degraded, got %q", resp.Status)
	}
	if dep := resp.Dependencies["redis"]; dep.Status != "unhealthy" || dep.Error != "connection refused" {
		t.Errorf("unexpected redis status %+v", dep)
	}
	if resp.Dependencies["mongodb"].Status != "ok" {
		t.Errorf("mongodb should be ok, got %+v", resp.Dependencies["mongodb"])
	}
}

func TestReadinessHandler_NoDependencies(t *testing.T) {
	c, rec := newContext(http.MethodGet, "/health/ready", "", nil)

	if err := NewReadinessHandler(nil).Readiness(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("a process without external stores is ready, got %d", rec.Code)
	}
}
