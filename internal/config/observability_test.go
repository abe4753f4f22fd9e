package config

import (
	"testing"
	"time"
)

func TestObservabilityValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *ObservabilityConfig)
		wantErr bool
	}{
		{name: "defaults", mutate: func(c *ObservabilityConfig) {}},
		{name: "empty service name", mutate: func(c *ObservabilityConfig) { c.ServiceName = "" }, wantErr: true},
		{name: "unknown level", mutate: func(c *ObservabilityConfig) { c.Logging.Level = "verbose" }, wantErr: true},
		{name: "negative slow query threshold", mutate: func(c *ObservabilityConfig) { c.Logging.SlowQueryThreshold = -time.Second }, wantErr: true},
		{name: "zero timeout with checks enabled", mutate: func(c *ObservabilityConfig) { c.HealthChecks.Timeout = 0 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultObservabilityConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr && err == nil {
				t.Fatalf("expected error")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestGetLogLevelDefaultsByEnvironment(t *testing.T) {
	cfg := DefaultObservabilityConfig()
	cfg.Logging.Level = ""

	cfg.Environment = "production"
	if got := cfg.GetLogLevel(); got != "info" {
		t.Fatalf("production level = %q, want info", got)
	}

	cfg.Environment = "development"
	if got := cfg.GetLogLevel(); got != "debug" {
		t.Fatalf("development level = %q, want debug", got)
	}

	cfg.Logging.Level = "warn"
	if got := cfg.GetLogLevel(); got != "warn" {
		t.Fatalf("explicit level = %q, want warn", got)
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{Primary: Primary{Env: "staging"}}
	cfg.applyDefaults()

	if cfg.Observability == nil {
		t.Fatalf("observability defaults not applied")
	}
	if cfg.Observability.ServiceName != ServiceName {
		t.Fatalf("service name = %q", cfg.Observability.ServiceName)
	}
	if cfg.Observability.Environment != "staging" {
		t.Fatalf("environment = %q", cfg.Observability.Environment)
	}
	if cfg.Integration.NotificationsEnabled() {
		t.Fatalf("notifications should be disabled without recipient")
	}
	if !cfg.Observability.HasCheck("database") || cfg.Observability.HasCheck("s3") {
		t.Fatalf("unexpected health check set: %v", cfg.Observability.HealthChecks.Checks)
	}
}
