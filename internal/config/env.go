package config

import (
	"fmt"
	"os"
	"strings"
)

// envPrefix prefixes every environment variable read by Load.
const envPrefix = "TODO_"

func lookupEnv(name string) string {
	return os.Getenv(envPrefix + name)
}

// loadFromEnv overrides config from environment variables.
func loadFromEnv(cfg *Config) error {
	if v := lookupEnv("FILE"); v != "" {
		cfg.TasksFile = v
		cfg.setSource("tasks_file", SourceEnv)
	}
	if v := lookupEnv("SCHEMA"); v != "" {
		cfg.SchemaFile = v
		cfg.setSource("schema_file", SourceEnv)
	}
	if v := lookupEnv("UI"); v != "" {
		cfg.UI = v
		cfg.setSource("ui", SourceEnv)
	}

	// Logging configuration
	if v := lookupEnv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
		cfg.setSource("log_level", SourceEnv)
	}
	if v := lookupEnv("LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
		cfg.setSource("log_format", SourceEnv)
	}
	if v := lookupEnv("LOG_TIMESTAMPS"); v != "" {
		b, err := boolFromString(v)
		if err != nil {
			return fmt.Errorf("%sLOG_TIMESTAMPS: %w", envPrefix, err)
		}
		cfg.LogTimestamps = b
		cfg.setSource("log_timestamps", SourceEnv)
	}
	if v := lookupEnv("LOG_CALLER"); v != "" {
		b, err := boolFromString(v)
		if err != nil {
			return fmt.Errorf("%sLOG_CALLER: %w", envPrefix, err)
		}
		cfg.LogCaller = b
		cfg.setSource("log_caller", SourceEnv)
	}
	return nil
}

// boolFromString parses a boolean from a string.
func boolFromString(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on":
		return true, nil
	case "0", "false", "no", "off":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean %q", s)
	}
}
