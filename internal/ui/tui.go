// Package ui provides the optional full-screen terminal interface.
package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/nibzard/todo-go/internal/todo"
)

// ErrNoTTY is returned by Run when output is not a terminal.
var ErrNoTTY = errors.New("tui requires a TTY")

// Run shows the task editor until the user saves, aborts or ctx ends.
// It reports whether the user asked to save; saving is left to the caller.
func Run(ctx context.Context, store *todo.Store, in io.Reader, out io.Writer) (bool, error) {
	if !IsTTY(out) {
		return false, ErrNoTTY
	}

	model := NewModel(store)
	program := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
	)
	finalModel, err := program.Run()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return false, ctxErr
	}
	if err != nil {
		return false, err
	}
	if m, ok := finalModel.(*Model); ok {
		return m.Saved(), nil
	}
	return false, nil
}

type mode int

const (
	modeList mode = iota
	modeAdd
	modeEdit
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	cursorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	doneStyle     = lipgloss.NewStyle().Strikethrough(true).Foreground(lipgloss.Color("243"))
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	helpStyle     = lipgloss.NewStyle().Faint(true)
	emptyStyle    = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("243"))
	promptPadding = lipgloss.NewStyle().PaddingTop(1)
)

// Model is the bubbletea model of the task editor.
type Model struct {
	store  *todo.Store
	cursor int
	mode   mode
	input  textinput.Model
	status string
	saved  bool
	done   bool
}

// NewModel creates an editor over store.
func NewModel(store *todo.Store) *Model {
	if store == nil {
		store = todo.NewStore()
	}
	ti := textinput.New()
	ti.CharLimit = 512
	ti.Width = 60
	return &Model{store: store, input: ti}
}

// Saved reports whether the user left with save.
func (m *Model) Saved() bool {
	return m.saved
}

// Cursor returns the 0-based selected task.
func (m *Model) Cursor() int {
	return m.cursor
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if msg.Width > 10 {
			m.input.Width = msg.Width - 10
		}
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.done = true
			return m, tea.Quit
		}
		if m.mode != modeList {
			return m.updateInput(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m *Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < m.store.Len()-1 {
			m.cursor++
		}
	case "a":
		return m, m.startInput(modeAdd, "")
	case "e":
		task, err := m.store.Get(m.cursor)
		if err != nil {
			m.status = "No task selected."
			return m, nil
		}
		return m, m.startInput(modeEdit, task.Description)
	case "d", "x":
		if err := m.store.Remove(m.cursor); err != nil {
			m.status = "No task selected."
			return m, nil
		}
		m.clampCursor()
	case " ", "space", "c":
		if err := m.store.MarkCompleted(m.cursor); err != nil {
			m.status = "No task selected."
		}
	case "s", "q":
		m.saved = true
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.stopInput()
		return m, nil
	case tea.KeyEnter:
		desc := strings.TrimSpace(m.input.Value())
		switch m.mode {
		case modeAdd:
			m.store.Add(desc)
			m.cursor = m.store.Len() - 1
		case modeEdit:
			if err := m.store.Edit(m.cursor, desc); err != nil {
				m.status = err.Error()
			}
		}
		m.stopInput()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) startInput(md mode, value string) tea.Cmd {
	m.mode = md
	if md == modeAdd {
		m.input.Prompt = "New task: "
	} else {
		m.input.Prompt = "Edit task: "
	}
	m.input.SetValue(value)
	m.input.CursorEnd()
	return m.input.Focus()
}

func (m *Model) stopInput() {
	m.mode = modeList
	m.input.Blur()
	m.input.Reset()
}

func (m *Model) clampCursor() {
	if m.cursor >= m.store.Len() {
		m.cursor = m.store.Len() - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) View() string {
	if m.done {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Todo List"))
	b.WriteString("\n\n")

	if m.store.Len() == 0 {
		b.WriteString(emptyStyle.Render("  No tasks available."))
		b.WriteString("\n")
	}
	for e := range m.store.List() {
		b.WriteString(m.renderEntry(e))
		b.WriteString("\n")
	}

	if m.mode != modeList {
		b.WriteString(promptPadding.Render(m.input.View()))
		b.WriteString("\n")
	}
	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.helpText()))
	b.WriteString("\n")
	return b.String()
}

func (m *Model) renderEntry(e todo.Entry) string {
	check := "[ ]"
	if e.Status == todo.StatusCompleted {
		check = "[x]"
	}
	desc := e.Description
	if e.Status == todo.StatusCompleted {
		desc = doneStyle.Render(desc)
	}
	line := fmt.Sprintf("%d. %s %s", e.Position, check, desc)
	if e.Position-1 == m.cursor {
		return cursorStyle.Render("> ") + line
	}
	return "  " + line
}

func (m *Model) helpText() string {
	if m.mode != modeList {
		return "enter confirm | esc cancel"
	}
	return "j/k move | a add | e edit | d remove | space complete | s save and exit | ctrl+c quit without saving"
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
