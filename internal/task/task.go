// Package task defines the task value object and its validation rules.
package task

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Validation rule errors. Callers branch on these with errors.Is.
var (
	ErrEmptyTitle    = errors.New("title must not be empty or whitespace")
	ErrPastDue       = errors.New("due date must not be in the past")
	ErrPriorityRange = errors.New("priority must be between 1 and 5")
)

// Priority bounds.
const (
	MinPriority = 1
	MaxPriority = 5
)

// Task represents a single tracked task. A Task is never mutated in place;
// edits go through the store, which replaces the stored value wholesale.
type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	DueDate     time.Time `json:"due_date"`
	Priority    int       `json:"priority"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// IsZero returns true if the task is empty (has no ID).
func (t *Task) IsZero() bool {
	return t.ID == ""
}

// Overdue reports whether the task's due date is before today. A stored task
// may become overdue as time passes; that is allowed and only affects display.
func (t *Task) Overdue() bool {
	return t.DueDate.Before(Today())
}

// Input holds the raw field values for constructing a task.
type Input struct {
	Title       string
	Description string
	DueDate     time.Time
	Priority    int
	Completed   bool
}

// ValidationError reports the first violated rule during task construction.
type ValidationError struct {
	Field string // field the rule applies to
	Err   error  // one of the rule errors above
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying rule error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Today returns the current calendar date in UTC, truncated to midnight.
func Today() time.Time {
	return DateOnly(time.Now().UTC())
}

// DateOnly truncates t to its calendar date, dropping the time of day.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// New validates the input and constructs a task with a freshly generated ID.
// Rules are checked in order: title non-empty after trimming, due date not
// before today, priority within bounds. The first violation is returned as a
// *ValidationError and no task is produced.
func New(in Input) (Task, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return Task{}, &ValidationError{Field: "title", Err: ErrEmptyTitle}
	}

	due := DateOnly(in.DueDate)
	if due.Before(Today()) {
		return Task{}, &ValidationError{Field: "due_date", Err: ErrPastDue}
	}

	if in.Priority < MinPriority || in.Priority > MaxPriority {
		return Task{}, &ValidationError{Field: "priority", Err: ErrPriorityRange}
	}

	now := time.Now().UTC()
	return Task{
		ID:          uuid.NewString(),
		Title:       title,
		Description: strings.TrimSpace(in.Description),
		DueDate:     due,
		Priority:    in.Priority,
		Completed:   in.Completed,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}
