// Package cmd implements the CLI command structure for todo.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nibzard/todo-go/internal/config"
	"github.com/nibzard/todo-go/internal/logging"
	"github.com/nibzard/todo-go/internal/menu"
	"github.com/nibzard/todo-go/internal/todo"
	"github.com/nibzard/todo-go/internal/ui"
)

// Version is set via ldflags at build time.
var Version = "dev"

// env carries the process streams through the commands.
type env struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	logger *log.Logger
}

// Run executes the todo CLI.
func Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	// Create a flag set for global options
	fs := flag.NewFlagSet(config.AppName, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		printUsage(fs, stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	cfg, err := config.Load(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if *help {
		printUsage(fs, stdout)
		return nil
	}
	if *showVersion {
		return versionCommand(stdout)
	}

	e := &env{
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
		logger: logging.FromConfig(stderr, cfg),
	}
	for _, w := range cfg.Warnings {
		e.logger.Warn(w)
	}
	e.logger.Debug("config loaded", "tasks_file", cfg.TasksFile, "ui", cfg.UI, "files", cfg.Files)

	// If no args or first arg is a flag, use "run" as default
	subcommand := "run"
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 && !strings.HasPrefix(remainingArgs[0], "-") {
		subcommand = remainingArgs[0]
		remainingArgs = remainingArgs[1:]
	}

	switch subcommand {
	case "run":
		return runCommand(ctx, e, cfg, remainingArgs)
	case "tui":
		cfg.UI = config.UITUI
		return runCommand(ctx, e, cfg, remainingArgs)
	case "ls":
		return lsCommand(e, cfg, remainingArgs)
	case "doctor":
		return doctorCommand(e, cfg, remainingArgs)
	case "config":
		return configCommand(e, cfg, remainingArgs)
	case "version":
		return versionCommand(stdout)
	case "help":
		printUsage(fs, stdout)
		return nil
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", subcommand)
		printUsage(fs, stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// runCommand starts an interactive session in the configured UI.
func runCommand(ctx context.Context, e *env, cfg *config.Config, args []string) error {
	path, err := taskFileArg(cfg, args)
	if err != nil {
		return err
	}
	store, err := loadStore(e, cfg, path)
	if err != nil {
		return err
	}

	if cfg.UI == config.UITUI {
		saved, err := ui.Run(ctx, store, e.stdin, e.stdout)
		if err != nil {
			return err
		}
		if saved {
			saveAndReport(e, path, store)
		}
		return nil
	}

	return menu.New(store, path, e.stdin, e.stdout, e.logger).Run(ctx)
}

// lsCommand prints the task list without starting a session.
func lsCommand(e *env, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("todo ls", flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	pending := fs.Bool("pending", false, "Only show tasks that are not completed")
	done := fs.Bool("done", false, "Only show completed tasks")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *pending && *done {
		return fmt.Errorf("-pending and -done are mutually exclusive")
	}

	path, err := taskFileArg(cfg, fs.Args())
	if err != nil {
		return err
	}
	store, err := loadStore(e, cfg, path)
	if err != nil {
		return err
	}

	printed := 0
	for entry := range store.List() {
		completed := entry.Status == todo.StatusCompleted
		if (*pending && completed) || (*done && !completed) {
			continue
		}
		fmt.Fprintln(e.stdout, entry.String())
		printed++
	}
	if printed == 0 {
		fmt.Fprintln(e.stdout, menu.MsgNoTasks)
	}
	return nil
}

// doctorCommand checks the config and the task file without modifying it.
func doctorCommand(e *env, cfg *config.Config, args []string) error {
	path, err := taskFileArg(cfg, args)
	if err != nil {
		return err
	}
	w := e.stdout

	fmt.Fprintln(w, "Todo Doctor")
	fmt.Fprintln(w, "===========")
	fmt.Fprintln(w)

	allOK := true

	fmt.Fprintln(w, "Config:")
	if len(cfg.Files) == 0 {
		fmt.Fprintln(w, "  ✅ No config files (using defaults)")
	}
	for _, f := range cfg.Files {
		fmt.Fprintf(w, "  ✅ Read %s\n", f)
	}
	for _, warning := range cfg.Warnings {
		fmt.Fprintf(w, "  ⚠️  %s\n", warning)
	}
	fmt.Fprintf(w, "  ✅ UI: %s\n", cfg.UI)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Schema:")
	schema, err := resolveSchema(cfg)
	if err != nil {
		fmt.Fprintf(w, "  ❌ %v\n", err)
		allOK = false
	} else if cfg.SchemaFile != "" {
		fmt.Fprintf(w, "  ✅ %s\n", cfg.SchemaFile)
	} else {
		fmt.Fprintln(w, "  ✅ built-in")
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Task file: %s (%s)\n", path, todo.FormatForPath(path))
	if schema != nil {
		store, err := todo.LoadWithOptions(path, todo.Options{Schema: schema})
		var pe *todo.ParseError
		switch {
		case err == nil:
			completed := 0
			for entry := range store.List() {
				if entry.Status == todo.StatusCompleted {
					completed++
				}
			}
			fmt.Fprintf(w, "  ✅ %d tasks, %d completed\n", store.Len(), completed)
		case errors.Is(err, todo.ErrNotFound):
			fmt.Fprintln(w, "  ✅ Not created yet (starts empty)")
		case errors.As(err, &pe):
			fmt.Fprintf(w, "  ❌ Invalid: %v\n", pe.Err)
			allOK = false
		default:
			fmt.Fprintf(w, "  ❌ %v\n", err)
			allOK = false
		}
	}
	fmt.Fprintln(w)

	if !allOK {
		return fmt.Errorf("doctor found problems")
	}
	fmt.Fprintln(w, "All checks passed.")
	return nil
}

// configCommand prints configuration information.
func configCommand(e *env, cfg *config.Config, args []string) error {
	sub := "show"
	if len(args) > 0 {
		sub = args[0]
	}
	if len(args) > 1 {
		return fmt.Errorf("unexpected arguments: %v", args[1:])
	}

	switch sub {
	case "show":
		fmt.Fprint(e.stdout, cfg.Describe())
		return nil
	case "example":
		fmt.Fprint(e.stdout, config.ExampleConfig())
		return nil
	default:
		return fmt.Errorf("unknown config command: %s (want show or example)", sub)
	}
}

// versionCommand prints version information.
func versionCommand(w io.Writer) error {
	fmt.Fprintf(w, "todo version %s\n", Version)
	return nil
}

// taskFileArg returns the task file from an optional positional argument,
// falling back to the configured path.
func taskFileArg(cfg *config.Config, args []string) (string, error) {
	if len(args) > 1 {
		return "", fmt.Errorf("unexpected arguments: %v", args[1:])
	}
	if len(args) == 1 {
		return args[0], nil
	}
	return cfg.TasksFile, nil
}

func resolveSchema(cfg *config.Config) (*todo.Schema, error) {
	if cfg.SchemaFile == "" {
		return todo.DefaultSchema()
	}
	return todo.LoadSchema(cfg.SchemaFile)
}

// loadStore reads the task file. A missing file starts an empty list
// silently; an unreadable one starts empty with a warning. A bad schema
// file is reported and the built-in schema is used instead.
func loadStore(e *env, cfg *config.Config, path string) (*todo.Store, error) {
	schema, err := resolveSchema(cfg)
	if err != nil {
		e.logger.Warn("using built-in schema", "schema_file", cfg.SchemaFile, "err", err)
		schema, err = todo.DefaultSchema()
		if err != nil {
			return nil, err
		}
	}

	store, err := todo.LoadWithOptions(path, todo.Options{Schema: schema})
	switch {
	case err == nil:
		e.logger.Debug("tasks loaded", "path", path, "count", store.Len())
		return store, nil
	case errors.Is(err, todo.ErrNotFound):
		e.logger.Debug("no task file, starting empty", "path", path)
	default:
		e.logger.Debug("load failed", "path", path, "err", err)
		fmt.Fprintf(e.stderr, "warning: ignoring unreadable task file %s: %v\n", path, err)
	}
	return todo.NewStore(), nil
}

func saveAndReport(e *env, path string, store *todo.Store) {
	if err := todo.Save(path, store); err != nil {
		fmt.Fprintf(e.stdout, menu.MsgSaveFailed+"\n", err)
		return
	}
	e.logger.Debug("tasks saved", "path", path, "count", store.Len())
	fmt.Fprintln(e.stdout, menu.MsgSaved)
}

// printUsage prints the usage message.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "todo - a small interactive task list")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  todo [options] [command]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  run [file]       Start an interactive session (default command)")
	fmt.Fprintln(w, "  tui [file]       Start the full-screen editor")
	fmt.Fprintln(w, "  ls [file]        Print tasks (-pending, -done)")
	fmt.Fprintln(w, "  doctor [file]    Check config, schema and task file")
	fmt.Fprintln(w, "  config show      Print the effective configuration and its sources")
	fmt.Fprintln(w, "  config example   Print an example config file")
	fmt.Fprintln(w, "  version          Show version information")
	fmt.Fprintln(w, "  help             Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Config files:")
	fmt.Fprintln(w, "  User:    $XDG_CONFIG_HOME/todo/todo.toml (or ~/.config/todo/todo.toml)")
	fmt.Fprintln(w, "  Project: ./todo.toml or ./.todo.toml")
	fmt.Fprintln(w, "  Environment variables use the TODO_ prefix (TODO_FILE, TODO_UI, ...).")
}
