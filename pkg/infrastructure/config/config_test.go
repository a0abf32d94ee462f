package config

import (
	"log/slog"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	if cfg.DefaultPeriod != "30d" {
		t.Errorf("DefaultPeriod = %q, want 30d", cfg.DefaultPeriod)
	}
	if cfg.MaintenanceHorizonDays != 7 {
		t.Errorf("MaintenanceHorizonDays = %d, want 7", cfg.MaintenanceHorizonDays)
	}
	if cfg.TopN != 5 {
		t.Errorf("TopN = %d, want 5", cfg.TopN)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("STOCKSIGHT_PERIOD", "7d")
	t.Setenv("STOCKSIGHT_MAINTENANCE_HORIZON_DAYS", "14")
	t.Setenv("STOCKSIGHT_TOP_N", "not-a-number")

	cfg := Load()

	if cfg.DefaultPeriod != "7d" {
		t.Errorf("DefaultPeriod = %q, want 7d", cfg.DefaultPeriod)
	}
	if cfg.MaintenanceHorizonDays != 14 {
		t.Errorf("MaintenanceHorizonDays = %d, want 14", cfg.MaintenanceHorizonDays)
	}
	if cfg.TopN != 5 {
		t.Errorf("invalid int must fall back to default, got %d", cfg.TopN)
	}
}

func TestLogLevel(t *testing.T) {
	tests := []struct {
		name string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"WARN", slog.LevelWarn},
		{"error", slog.LevelError},
		{"verbose", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		cfg := Config{LogLevelName: tt.name}
		if got := cfg.LogLevel(); got != tt.want {
			t.Errorf("LogLevel(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}
