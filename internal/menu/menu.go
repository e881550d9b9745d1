// Package menu implements the numbered-menu interactive session.
//
// The session prints the menu, reads one choice per line and dispatches to
// the task store. Users see 1-based task numbers; the store is 0-based, and
// the translation happens here after the raw number has been validated.
package menu

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nibzard/todo-go/internal/logging"
	"github.com/nibzard/todo-go/internal/todo"
)

// Menu choices.
const (
	ChoiceShow     = 1
	ChoiceAdd      = 2
	ChoiceEdit     = 3
	ChoiceRemove   = 4
	ChoiceComplete = 5
	ChoiceSave     = 6
)

// Messages printed to the session output.
const (
	MsgNoTasks       = "No tasks available."
	MsgInvalidOption = "Invalid option. Please try again."
	MsgOutOfRange    = "Error: Task index out of range."
	MsgSaved         = "Tasks saved successfully."
	MsgSaveFailed    = "Error saving tasks: %v"
)

const menuText = `
Todo List Menu:
1. Show tasks
2. Add task
3. Edit task
4. Remove task
5. Mark task as completed
6. Save and exit
`

// Session is one interactive run over a store.
type Session struct {
	store  *todo.Store
	path   string
	in     io.Reader
	out    io.Writer
	logger *log.Logger

	lines      <-chan string
	rerr       *readResult
	readerDone chan struct{}
}

type readResult struct {
	err error
}

// New creates a session that edits store and saves it to path on exit.
// A nil logger discards diagnostics.
func New(store *todo.Store, path string, in io.Reader, out io.Writer, logger *log.Logger) *Session {
	if store == nil {
		store = todo.NewStore()
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &Session{
		store:  store,
		path:   path,
		in:     in,
		out:    out,
		logger: logger,
	}
}

// Store returns the store the session edits.
func (s *Session) Store() *todo.Store {
	return s.store
}

// Run loops until the user saves, input ends or ctx is cancelled.
// End of input saves like choice 6, and so does a failed read before its
// error is returned. Cancellation returns ctx.Err() and does not save.
func (s *Session) Run(ctx context.Context) error {
	stop := make(chan struct{})
	defer close(stop)
	s.startReader(stop)

	for {
		fmt.Fprint(s.out, menuText)

		line, err := s.readLine(ctx)
		if err == nil {
			err = s.dispatch(ctx, line)
		}

		switch {
		case err == nil:
			continue
		case errors.Is(err, errDone):
			return nil
		case errors.Is(err, io.EOF):
			s.logger.Debug("end of input, saving")
			s.save()
			return nil
		case ctx.Err() != nil:
			return err
		default:
			s.logger.Warn("input failed, saving", "err", err)
			s.save()
			return err
		}
	}
}

var errDone = errors.New("session finished")

func (s *Session) dispatch(ctx context.Context, line string) error {
	switch parseChoice(line) {
	case ChoiceShow:
		s.show()
	case ChoiceAdd:
		desc, err := s.prompt(ctx, "Enter task description:")
		if err != nil {
			return err
		}
		s.store.Add(desc)
		s.logger.Debug("task added", "count", s.store.Len())
	case ChoiceEdit:
		raw, err := s.prompt(ctx, "Enter task index to edit:")
		if err != nil {
			return err
		}
		desc, err := s.prompt(ctx, "Enter new task description:")
		if err != nil {
			return err
		}
		s.apply("task edited", raw, func(i int) error { return s.store.Edit(i, desc) })
	case ChoiceRemove:
		raw, err := s.prompt(ctx, "Enter task index to remove:")
		if err != nil {
			return err
		}
		s.apply("task removed", raw, s.store.Remove)
	case ChoiceComplete:
		raw, err := s.prompt(ctx, "Enter task index to mark as completed:")
		if err != nil {
			return err
		}
		s.apply("task completed", raw, s.store.MarkCompleted)
	case ChoiceSave:
		s.save()
		return errDone
	default:
		fmt.Fprintln(s.out, MsgInvalidOption)
	}
	return nil
}

func (s *Session) show() {
	if s.store.Len() == 0 {
		fmt.Fprintln(s.out, MsgNoTasks)
		return
	}
	for e := range s.store.List() {
		fmt.Fprintln(s.out, e.String())
	}
}

// apply runs op with the 0-based index for the 1-based input raw.
func (s *Session) apply(msg, raw string, op func(int) error) {
	idx, ok := toIndex(raw)
	if !ok {
		fmt.Fprintln(s.out, MsgOutOfRange)
		return
	}
	if err := op(idx); err != nil {
		if errors.Is(err, todo.ErrIndexOutOfRange) {
			fmt.Fprintln(s.out, MsgOutOfRange)
			return
		}
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return
	}
	s.logger.Debug(msg, "index", idx+1)
}

func (s *Session) save() {
	if err := todo.Save(s.path, s.store); err != nil {
		s.logger.Debug("save failed", "path", s.path, "err", err)
		fmt.Fprintf(s.out, MsgSaveFailed+"\n", err)
		return
	}
	s.logger.Debug("tasks saved", "path", s.path, "count", s.store.Len())
	fmt.Fprintln(s.out, MsgSaved)
}

func (s *Session) prompt(ctx context.Context, msg string) (string, error) {
	fmt.Fprintln(s.out, msg)
	return s.readLine(ctx)
}

// startReader reads input lines on a single goroutine so that a blocked
// read does not hide cancellation. Lines have no length limit. The goroutine
// exits once input ends or stop is closed.
func (s *Session) startReader(stop <-chan struct{}) {
	lines := make(chan string)
	res := &readResult{}
	s.lines = lines
	s.rerr = res
	done := make(chan struct{})
	s.readerDone = done

	go func() {
		defer close(done)
		defer close(lines)
		r := bufio.NewReader(s.in)
		for {
			line, err := r.ReadString('\n')
			if line != "" {
				select {
				case lines <- line:
				case <-stop:
					return
				}
			}
			if err != nil {
				if !errors.Is(err, io.EOF) {
					res.err = err
				}
				return
			}
		}
	}()
}

func (s *Session) readLine(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-s.lines:
		if !ok {
			if s.rerr.err != nil {
				return "", fmt.Errorf("read input: %w", s.rerr.err)
			}
			return "", io.EOF
		}
		return strings.TrimSpace(line), nil
	}
}

// parseChoice returns the menu choice in line, or 0 when it is not a number.
func parseChoice(line string) int {
	n, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return 0
	}
	return n
}

// toIndex converts a 1-based task number to a store index.
func toIndex(raw string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return 0, false
	}
	return n - 1, true
}
