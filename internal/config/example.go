package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# todo configuration file
# Values can be overridden by TODO_* environment variables or CLI flags.

# Task file. The extension picks the encoding: .json (default), .yaml or .yml.
# Supports ~ expansion and $VAR / %VAR% references.
tasks_file = "tasks.json"

# Optional JSON Schema used to check the task file on load.
# The built-in schema is used when empty.
# schema_file = "~/todo/tasks.schema.json"

# Interface: "menu" (numbered prompts) or "tui" (full screen, needs a terminal)
ui = "menu"

# Logging goes to stderr.
log_level = "warn"       # debug, info, warn, error
log_format = "text"      # text, json, logfmt
log_timestamps = false
log_caller = false
`
}
