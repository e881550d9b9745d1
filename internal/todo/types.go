// Package todo holds the task list and reads and writes task files.
package todo

import (
	"errors"
	"fmt"
	"iter"
)

// Status labels shown next to each task.
const (
	StatusCompleted    = "Completed"
	StatusNotCompleted = "Not completed"
)

// ErrIndexOutOfRange is returned by Store methods given an index outside [0, Len).
var ErrIndexOutOfRange = errors.New("task index out of range")

// Task represents a single to-do item.
type Task struct {
	Description string `json:"description" yaml:"description"`
	Completed   bool   `json:"is_completed" yaml:"is_completed"`
}

// NewTask returns an open task with the given description.
func NewTask(description string) Task {
	return Task{Description: description}
}

// MarkCompleted sets the completion flag. Calling it again has no effect.
func (t *Task) MarkCompleted() {
	t.Completed = true
}

// StatusLabel returns the display label for the completion flag.
func (t Task) StatusLabel() string {
	if t.Completed {
		return StatusCompleted
	}
	return StatusNotCompleted
}

// Entry is one row of a task listing.
type Entry struct {
	Position    int // 1-based
	Description string
	Status      string
}

// String formats the entry as "N. description [status]".
func (e Entry) String() string {
	return fmt.Sprintf("%d. %s [%s]", e.Position, e.Description, e.Status)
}

// Store is the ordered list of tasks for a session.
// Insertion order is display order and file order.
type Store struct {
	tasks []Task
}

// NewStore returns a store holding a copy of tasks.
func NewStore(tasks ...Task) *Store {
	s := &Store{tasks: make([]Task, 0, len(tasks))}
	s.tasks = append(s.tasks, tasks...)
	return s
}

// Len returns the number of tasks.
func (s *Store) Len() int {
	return len(s.tasks)
}

// Tasks returns a copy of the tasks in order. The result is never nil.
func (s *Store) Tasks() []Task {
	out := make([]Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Get returns the task at index i.
func (s *Store) Get(i int) (Task, error) {
	if err := s.checkIndex(i); err != nil {
		return Task{}, err
	}
	return s.tasks[i], nil
}

// Add appends a new open task.
func (s *Store) Add(description string) {
	s.tasks = append(s.tasks, NewTask(description))
}

// Remove deletes the task at index i.
func (s *Store) Remove(i int) error {
	if err := s.checkIndex(i); err != nil {
		return err
	}
	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	return nil
}

// Edit replaces the description of the task at index i.
func (s *Store) Edit(i int, description string) error {
	if err := s.checkIndex(i); err != nil {
		return err
	}
	s.tasks[i].Description = description
	return nil
}

// MarkCompleted marks the task at index i as completed.
func (s *Store) MarkCompleted(i int) error {
	if err := s.checkIndex(i); err != nil {
		return err
	}
	s.tasks[i].MarkCompleted()
	return nil
}

// List yields one Entry per task, in order. Entries are built as the
// sequence is consumed.
func (s *Store) List() iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		for i, t := range s.tasks {
			e := Entry{
				Position:    i + 1,
				Description: t.Description,
				Status:      t.StatusLabel(),
			}
			if !yield(e) {
				return
			}
		}
	}
}

func (s *Store) checkIndex(i int) error {
	if i < 0 || i >= len(s.tasks) {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, i)
	}
	return nil
}
