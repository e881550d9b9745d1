package ui

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"

	"github.com/nibzard/todo-go/internal/todo"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// press feeds keys to m and returns the last command.
func press(m *Model, keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = m.Update(key(k))
	}
	return cmd
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestAddTask(t *testing.T) {
	store := todo.NewStore()
	m := NewModel(store)

	press(m, "a", "Buy milk", "enter", "a", "Write report", "enter")

	want := []todo.Task{{Description: "Buy milk"}, {Description: "Write report"}}
	if diff := cmp.Diff(want, store.Tasks()); diff != "" {
		t.Errorf("tasks mismatch (-want +got):\n%s", diff)
	}
	if m.Cursor() != 1 {
		t.Errorf("cursor: got %d, want 1", m.Cursor())
	}
}

func TestEscCancelsInput(t *testing.T) {
	store := todo.NewStore()
	m := NewModel(store)

	press(m, "a", "draft", "esc")
	if store.Len() != 0 {
		t.Errorf("esc should discard input, got %d tasks", store.Len())
	}
	// Keys go back to the list after esc.
	if cmd := press(m, "s"); !isQuit(cmd) {
		t.Error("expected s to quit after esc")
	}
}

func TestEditTask(t *testing.T) {
	store := todo.NewStore(todo.NewTask("a"), todo.NewTask("b"))
	m := NewModel(store)

	press(m, "j", "e", "!", "enter")

	got, _ := store.Get(1)
	if got.Description != "b!" {
		t.Errorf("edited description: got %q, want %q", got.Description, "b!")
	}
}

func TestCompleteAndRemove(t *testing.T) {
	store := todo.NewStore(todo.NewTask("a"), todo.NewTask("b"), todo.NewTask("c"))
	m := NewModel(store)

	press(m, "down", "space", "down", "c", "up", "up", "x")

	want := []todo.Task{
		{Description: "b", Completed: true},
		{Description: "c", Completed: true},
	}
	if diff := cmp.Diff(want, store.Tasks()); diff != "" {
		t.Errorf("tasks mismatch (-want +got):\n%s", diff)
	}
	if m.Cursor() != 0 {
		t.Errorf("cursor: got %d, want 0", m.Cursor())
	}
}

func TestRemoveLastClampsCursor(t *testing.T) {
	store := todo.NewStore(todo.NewTask("a"), todo.NewTask("b"))
	m := NewModel(store)

	press(m, "j", "d")
	if m.Cursor() != 0 {
		t.Errorf("cursor: got %d, want 0", m.Cursor())
	}
	press(m, "d", "d")
	if store.Len() != 0 || m.Cursor() != 0 {
		t.Errorf("got len %d cursor %d", store.Len(), m.Cursor())
	}
}

func TestCursorBounds(t *testing.T) {
	m := NewModel(todo.NewStore(todo.NewTask("a"), todo.NewTask("b")))
	press(m, "k", "k")
	if m.Cursor() != 0 {
		t.Errorf("cursor: got %d, want 0", m.Cursor())
	}
	press(m, "j", "j", "j")
	if m.Cursor() != 1 {
		t.Errorf("cursor: got %d, want 1", m.Cursor())
	}
}

func TestEmptyStoreActions(t *testing.T) {
	m := NewModel(nil)
	press(m, "e")
	if !strings.Contains(m.View(), "No task selected.") {
		t.Errorf("expected status in view:\n%s", m.View())
	}
	press(m, "space", "d")
	if !strings.Contains(m.View(), "No tasks available.") {
		t.Errorf("expected empty message:\n%s", m.View())
	}
}

func TestSaveAndAbort(t *testing.T) {
	for _, k := range []string{"s", "q"} {
		m := NewModel(nil)
		if cmd := press(m, k); !isQuit(cmd) {
			t.Errorf("%s: expected quit", k)
		}
		if !m.Saved() {
			t.Errorf("%s: expected save", k)
		}
	}

	m := NewModel(nil)
	if cmd := press(m, "ctrl+c"); !isQuit(cmd) {
		t.Error("ctrl+c: expected quit")
	}
	if m.Saved() {
		t.Error("ctrl+c must not save")
	}
}

func TestQuitKeysTypedIntoInput(t *testing.T) {
	store := todo.NewStore()
	m := NewModel(store)

	press(m, "a", "q", "s")
	if m.Saved() {
		t.Fatal("letters typed into input must not save")
	}
	press(m, "enter")
	got, _ := store.Get(0)
	if got.Description != "qs" {
		t.Errorf("description: got %q, want %q", got.Description, "qs")
	}
}

func TestView(t *testing.T) {
	store := todo.NewStore(todo.NewTask("Buy milk"), todo.Task{Description: "Write report", Completed: true})
	m := NewModel(store)
	view := m.View()

	for _, want := range []string{"Todo List", "1. [ ] Buy milk", "2. [x]", "Write report", "s save and exit"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestRunRequiresTTY(t *testing.T) {
	var out bytes.Buffer
	_, err := Run(context.Background(), todo.NewStore(), strings.NewReader(""), &out)
	if !errors.Is(err, ErrNoTTY) {
		t.Fatalf("got %v, want ErrNoTTY", err)
	}
	if err.Error() != "tui requires a TTY" {
		t.Errorf("message: got %q", err.Error())
	}
}

func TestIsTTY(t *testing.T) {
	if IsTTY(&bytes.Buffer{}) {
		t.Error("buffer is not a TTY")
	}
}
