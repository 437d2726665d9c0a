package config

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

const testSecret = "0123456789abcdef"

func load(t *testing.T, env map[string]string) (*Config, error) {
	t.Helper()
	return LoadWith(context.Background(), envconfig.MapLookuper(env))
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(t, map[string]string{"JWT_SECRET": testSecret})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != "8080" || cfg.StoreDriver != DriverMongo || cfg.Env != "development" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.Auth.TokenTTL != 24*time.Hour || cfg.Auth.ResetTTL != time.Hour {
		t.Errorf("unexpected auth ttls: %+v", cfg.Auth)
	}
	if cfg.Session.Workers != 8 || cfg.Session.ProfileTTL != 5*time.Minute {
		t.Errorf("unexpected session config: %+v", cfg.Session)
	}
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "http://localhost:5173" {
		t.Errorf("unexpected origins %v", cfg.CORSAllowedOrigins)
	}
	if cfg.Redis.Addr != "" {
		t.Errorf("redis should be off by default, got %q", cfg.Redis.Addr)
	}
	if cfg.IsProduction() {
		t.Error("development must not report production")
	}
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := load(t, map[string]string{
		"JWT_SECRET":                      testSecret,
		"ENV":                             "production",
		"STORE_DRIVER":                    "postgres",
		"DATABASE_URL":                    "postgres://portal@localhost/portal",
		"CORS_ALLOWED_ORIGINS":            "https://portal.example.com,https://admin.example.com",
		"AUTH_REQUIRE_EMAIL_CONFIRMATION": "true",
		"REDIS_ADDR":                      "localhost:6379",
		"SESSION_WORKERS":                 "4",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !cfg.IsProduction() || cfg.StoreDriver != DriverPostgres {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if len(cfg.CORSAllowedOrigins) != 2 {
		t.Errorf("expected two origins, got %v", cfg.CORSAllowedOrigins)
	}
	if !cfg.Auth.RequireEmailConfirmation || cfg.Redis.Addr != "localhost:6379" || cfg.Session.Workers != 4 {
		t.Errorf("overrides not applied: %+v", cfg)
	}
}

func TestLoad_Rejections(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"missing secret", map[string]string{}, "JWT_SECRET"},
		{"short secret", map[string]string{"JWT_SECRET": "short"}, "JWT_SECRET"},
		{"unknown driver", map[string]string{"JWT_SECRET": testSecret, "STORE_DRIVER": "sqlite"}, "STORE_DRIVER"},
		{"postgres without url", map[string]string{"JWT_SECRET": testSecret, "STORE_DRIVER": "postgres"}, "DATABASE_URL"},
		{"bad ttl", map[string]string{"JWT_SECRET": testSecret, "TOKEN_TTL": "0s"}, "TOKEN_TTL"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := load(t, tt.env)
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %s", err, tt.want)
			}
		})
	}
}
