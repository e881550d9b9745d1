package main

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunExitCodes(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("TODO_CONFIG", "")
	t.Chdir(t.TempDir())

	t.Run("success", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		if code := run(context.Background(), []string{"version"}, strings.NewReader(""), &stdout, &stderr); code != 0 {
			t.Errorf("exit code: got %d, want 0 (stderr %q)", code, stderr.String())
		}
	})

	t.Run("startup error", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		code := run(context.Background(), []string{"-ui", "gui"}, strings.NewReader(""), &stdout, &stderr)
		if code != 1 {
			t.Errorf("exit code: got %d, want 1", code)
		}
		if !strings.HasPrefix(stderr.String(), "Error: ") {
			t.Errorf("stderr: got %q", stderr.String())
		}
	})

	t.Run("save failure still exits 0", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		path := filepath.Join(t.TempDir(), "missing", "tasks.json")
		if code := run(context.Background(), []string{"-file", path}, strings.NewReader("6\n"), &stdout, &stderr); code != 0 {
			t.Errorf("exit code: got %d, want 0", code)
		}
	})

	t.Run("interrupt", func(t *testing.T) {
		pr, pw := io.Pipe()
		defer pw.Close()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		var stdout, stderr bytes.Buffer
		if code := run(ctx, nil, pr, &stdout, &stderr); code != exitInterrupted {
			t.Errorf("exit code: got %d, want %d", code, exitInterrupted)
		}
		if !strings.Contains(stderr.String(), "Interrupted") {
			t.Errorf("stderr: got %q", stderr.String())
		}
	})
}
