package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nibzard/taskdeck/internal/config"
	"github.com/nibzard/taskdeck/internal/task"
)

// formField identifies the focused form field.
type formField int

const (
	fieldTitle formField = iota
	fieldDescription
	fieldDueDate
	fieldPriority

	fieldCount
)

var fieldLabels = map[formField]string{
	fieldTitle:       "Title",
	fieldDescription: "Description (optional)",
	fieldDueDate:     "Due Date",
	fieldPriority:    "Priority",
}

// taskForm holds in-progress field values for the add/edit form.
type taskForm struct {
	title       string
	description string
	due         string
	priority    int
	completed   bool // carried across edits, not shown as a field
	focus       formField
	errMsg      string
}

// newTaskForm returns an empty form with the configured defaults, due today.
func newTaskForm(cfg *config.Config) taskForm {
	return taskForm{
		due:      task.Today().Format(cfg.DateFormat),
		priority: cfg.DefaultPriority,
	}
}

// editTaskForm returns a form pre-filled from an existing task. The
// completion flag is preserved so saving an edit does not reopen a
// completed task.
func editTaskForm(cfg *config.Config, t task.Task) taskForm {
	return taskForm{
		title:       t.Title,
		description: t.Description,
		due:         t.DueDate.Format(cfg.DateFormat),
		priority:    t.Priority,
		completed:   t.Completed,
	}
}

// handleKey applies a key press to the focused field.
func (f *taskForm) handleKey(msg tea.KeyMsg) {
	switch msg.String() {
	case "tab", "down":
		f.focus = (f.focus + 1) % fieldCount
		return
	case "shift+tab", "up":
		f.focus = (f.focus + fieldCount - 1) % fieldCount
		return
	case "backspace":
		f.setText(trimLastRune(f.text()))
		return
	}

	if f.focus == fieldPriority {
		switch msg.String() {
		case "left", "-":
			if f.priority > task.MinPriority {
				f.priority--
			}
		case "right", "+":
			if f.priority < task.MaxPriority {
				f.priority++
			}
		case "1", "2", "3", "4", "5":
			f.priority = int(msg.String()[0] - '0')
		}
		return
	}

	switch msg.Type {
	case tea.KeyRunes:
		f.setText(f.text() + string(msg.Runes))
	case tea.KeySpace:
		f.setText(f.text() + " ")
	}
}

// text returns the focused field's text buffer.
func (f *taskForm) text() string {
	switch f.focus {
	case fieldTitle:
		return f.title
	case fieldDescription:
		return f.description
	case fieldDueDate:
		return f.due
	}
	return ""
}

// setText replaces the focused field's text buffer.
func (f *taskForm) setText(s string) {
	switch f.focus {
	case fieldTitle:
		f.title = s
	case fieldDescription:
		f.description = s
	case fieldDueDate:
		f.due = s
	}
}

func trimLastRune(s string) string {
	if s == "" {
		return ""
	}
	runes := []rune(s)
	return string(runes[:len(runes)-1])
}

// input converts the form into raw constructor input. The due date is parsed
// with the configured layout; a malformed date is reported before the domain
// rules run.
func (f *taskForm) input(dateFormat string) (task.Input, error) {
	due, err := time.Parse(dateFormat, strings.TrimSpace(f.due))
	if err != nil {
		return task.Input{}, fmt.Errorf("due date must match %s", dateFormat)
	}
	return task.Input{
		Title:       f.title,
		Description: f.description,
		DueDate:     due,
		Priority:    f.priority,
		Completed:   f.completed,
	}, nil
}

// write renders the form fields, marking the focused one.
func (f *taskForm) write(b *strings.Builder) {
	for field := fieldTitle; field < fieldCount; field++ {
		label := fieldLabels[field]
		var value string
		switch field {
		case fieldTitle:
			value = f.title
		case fieldDescription:
			value = f.description
		case fieldDueDate:
			value = f.due
		case fieldPriority:
			value = priorityGauge(f.priority)
		}

		line := fmt.Sprintf("%-24s %s", label+":", value)
		if field == f.focus {
			b.WriteString(focusStyle.Render("> "+line) + "\n")
		} else {
			b.WriteString("  " + line + "\n")
		}
	}
	b.WriteString("\n")
}

// priorityGauge renders the priority as a 1-5 selector, e.g. "1 2 [3] 4 5".
func priorityGauge(p int) string {
	parts := make([]string, 0, task.MaxPriority)
	for i := task.MinPriority; i <= task.MaxPriority; i++ {
		if i == p {
			parts = append(parts, fmt.Sprintf("[%d]", i))
		} else {
			parts = append(parts, fmt.Sprintf("%d", i))
		}
	}
	return strings.Join(parts, " ")
}
