package logger

import (
	"testing"

	"github.com/deppfellow/blog-api/internal/config"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"debug":   zerolog.DebugLevel,
		"info":    zerolog.InfoLevel,
		"warn":    zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"unknown": zerolog.InfoLevel,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestGetPgxTraceLogLevel(t *testing.T) {
	if got := GetPgxTraceLogLevel(zerolog.DebugLevel); tracelog.LogLevel(got) != tracelog.LogLevelDebug {
		t.Fatalf("debug mapped to %d", got)
	}
	if got := GetPgxTraceLogLevel(zerolog.Disabled); tracelog.LogLevel(got) != tracelog.LogLevelNone {
		t.Fatalf("disabled mapped to %d", got)
	}
}

func TestLoggerServiceWithoutLicense(t *testing.T) {
	cfg := config.DefaultObservabilityConfig()
	svc := NewLoggerService(cfg)
	if svc.GetApplication() != nil {
		t.Fatalf("expected New Relic to stay disabled without a license key")
	}
	svc.Shutdown()

	logger := NewLoggerWithService(cfg, svc)
	if logger.GetLevel() != zerolog.InfoLevel {
		t.Fatalf("unexpected level %v", logger.GetLevel())
	}
}
