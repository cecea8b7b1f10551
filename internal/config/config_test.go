package config

import (
	"reflect"
	"testing"
	"time"
)

func TestLoad_RequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	if _, err := Load(); err == nil {
		t.Fatal("Load() error = nil, want error when DATABASE_URL is unset")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/cricket")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.APIPort != 8000 {
		t.Errorf("APIPort = %d, want 8000", cfg.APIPort)
	}
	if cfg.EventsStream != "cricket.match.events" {
		t.Errorf("EventsStream = %q, want cricket.match.events", cfg.EventsStream)
	}
	if cfg.ReportTopN != 3 {
		t.Errorf("ReportTopN = %d, want 3", cfg.ReportTopN)
	}
	if cfg.CleanupInterval != 30*time.Minute {
		t.Errorf("CleanupInterval = %v, want 30m", cfg.CleanupInterval)
	}
	if !cfg.LiveFeedEnabled {
		t.Error("LiveFeedEnabled = false, want true")
	}
	if cfg.IsProduction() {
		t.Error("IsProduction() = true for default environment")
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/cricket")
	t.Setenv("API_PORT", "9090")
	t.Setenv("CORS_ALLOW_ORIGINS", " https://club.example , ,https://admin.example")
	t.Setenv("RATE_LIMIT_ENABLED", "false")
	t.Setenv("VIEW_REFRESH_INTERVAL_MINUTES", "0")
	t.Setenv("ENVIRONMENT", "production")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.APIPort != 9090 {
		t.Errorf("APIPort = %d, want 9090", cfg.APIPort)
	}
	want := []string{"https://club.example", "https://admin.example"}
	if !reflect.DeepEqual(cfg.CORSAllowOrigins, want) {
		t.Errorf("CORSAllowOrigins = %v, want %v", cfg.CORSAllowOrigins, want)
	}
	if cfg.RateLimitEnabled {
		t.Error("RateLimitEnabled = true, want false")
	}
	if cfg.ViewRefreshInterval != 0 {
		t.Errorf("ViewRefreshInterval = %v, want 0", cfg.ViewRefreshInterval)
	}
	if !cfg.IsProduction() {
		t.Error("IsProduction() = false, want true")
	}
}

func TestEnvInt_IgnoresGarbage(t *testing.T) {
	t.Setenv("SOME_INT", "twelve")
	if got := envInt("SOME_INT", 7); got != 7 {
		t.Errorf("envInt = %d, want fallback 7", got)
	}
}
