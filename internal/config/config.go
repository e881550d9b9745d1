// Package config handles configuration loading and defaults.
package config

import (
	"fmt"
	"sort"
	"strings"
)

// ConfigSource represents where a configuration value came from.
type ConfigSource string

const (
	SourceDefault  ConfigSource = "default"
	SourceUserFile ConfigSource = "user file"
	SourceProjFile ConfigSource = "project file"
	SourceExplicit ConfigSource = "config file"
	SourceEnv      ConfigSource = "environment"
	SourceFlag     ConfigSource = "flag"
)

// Default values.
const (
	DefaultTasksFile = "tasks.json"
	DefaultLogLevel  = "warn"
	DefaultLogFormat = "text"
	DefaultUI        = UIMenu
)

// UI modes.
const (
	UIMenu = "menu"
	UITUI  = "tui"
)

// AppName names the user config directory and the config file.
const AppName = "todo"

// Config holds the full configuration for a session.
type Config struct {
	// Paths
	TasksFile  string `toml:"tasks_file"`
	SchemaFile string `toml:"schema_file"`

	// Interaction mode: "menu" or "tui"
	UI string `toml:"ui"`

	// Logging configuration
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller"`

	// ConfigFile is an explicit config file that replaces the user and
	// project files. Set by -config or TODO_CONFIG.
	ConfigFile string `toml:"-"`

	// Files lists the config files that were read, in load order.
	Files []string `toml:"-"`

	// Sources maps each field name to the layer that last set it.
	Sources map[string]ConfigSource `toml:"-"`

	// Warnings collects non-fatal problems found while loading
	// (for example unknown keys in a config file).
	Warnings []string `toml:"-"`
}

// configFields returns the configurable field names used in Sources.
func configFields() []string {
	return []string{
		"tasks_file",
		"schema_file",
		"ui",
		"log_level",
		"log_format",
		"log_timestamps",
		"log_caller",
	}
}

// Value returns the effective value of a field by its TOML name.
func (c *Config) Value(field string) string {
	switch field {
	case "tasks_file":
		return c.TasksFile
	case "schema_file":
		return c.SchemaFile
	case "ui":
		return c.UI
	case "log_level":
		return c.LogLevel
	case "log_format":
		return c.LogFormat
	case "log_timestamps":
		return fmt.Sprintf("%t", c.LogTimestamps)
	case "log_caller":
		return fmt.Sprintf("%t", c.LogCaller)
	default:
		return ""
	}
}

// Describe renders the effective configuration, one "key = value (source)" per line.
func (c *Config) Describe() string {
	fields := configFields()
	sort.Strings(fields)

	var b strings.Builder
	for _, f := range fields {
		src := c.Sources[f]
		if src == "" {
			src = SourceDefault
		}
		fmt.Fprintf(&b, "%s = %q (%s)\n", f, c.Value(f), src)
	}
	for _, f := range c.Files {
		fmt.Fprintf(&b, "# read %s\n", f)
	}
	return b.String()
}

func (c *Config) setSource(field string, source ConfigSource) {
	if c.Sources == nil {
		c.Sources = make(map[string]ConfigSource)
	}
	c.Sources[field] = source
}

func normalizeUI(ui string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(ui)) {
	case "", UIMenu:
		return UIMenu, nil
	case UITUI:
		return UITUI, nil
	default:
		return "", fmt.Errorf("invalid ui mode %q (want %s or %s)", ui, UIMenu, UITUI)
	}
}
