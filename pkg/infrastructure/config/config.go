// Package config provides runtime configuration values for the dashboard.
package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// Config holds configuration knobs for snapshot sources and the engine.
type Config struct {
	// MySQLDSN is the snapshot database DSN; empty means no database source.
	MySQLDSN string
	// CSVDir is the directory holding snapshot CSV files; empty means no
	// CSV source.
	CSVDir string
	// StateDir is where client-local state (acknowledged alert ids) lives.
	StateDir string
	// DefaultPeriod is the period token used when the caller picks none.
	DefaultPeriod string
	// MaintenanceHorizonDays is how far ahead upcoming maintenance alerts
	// look.
	MaintenanceHorizonDays int
	// TopN is the ranking truncation length.
	TopN int
	// LogLevelName is the textual log level: debug, info, warn or error.
	LogLevelName string
}

// LogLevel maps the configured level name onto a slog level. Unknown
// names fall back to info.
func (c Config) LogLevel() slog.Level {
	switch strings.ToLower(c.LogLevelName) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoienv(key string, def int) int {
	v := getenv(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// Load collects configuration from environment with defaults.
func Load() Config {
	return Config{
		MySQLDSN:               getenv("STOCKSIGHT_DB_DSN", ""),
		CSVDir:                 getenv("STOCKSIGHT_CSV_DIR", ""),
		StateDir:               getenv("STOCKSIGHT_STATE_DIR", "."),
		DefaultPeriod:          getenv("STOCKSIGHT_PERIOD", "30d"),
		MaintenanceHorizonDays: atoienv("STOCKSIGHT_MAINTENANCE_HORIZON_DAYS", 7),
		TopN:                   atoienv("STOCKSIGHT_TOP_N", 5),
		LogLevelName:           getenv("STOCKSIGHT_LOG_LEVEL", "info"),
	}
}
