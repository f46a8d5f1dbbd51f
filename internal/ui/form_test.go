package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nibzard/taskdeck/internal/task"
)

func TestFormFieldNavigation(t *testing.T) {
	f := newTaskForm(testConfig())
	if f.focus != fieldTitle {
		t.Fatalf("initial focus: got %v, want title", f.focus)
	}

	f.handleKey(key(tea.KeyTab))
	if f.focus != fieldDescription {
		t.Errorf("focus after tab: got %v, want description", f.focus)
	}

	f.handleKey(key(tea.KeyShiftTab))
	if f.focus != fieldTitle {
		t.Errorf("focus after shift+tab: got %v, want title", f.focus)
	}

	// Wraps around in both directions.
	f.handleKey(key(tea.KeyShiftTab))
	if f.focus != fieldPriority {
		t.Errorf("focus after wrap: got %v, want priority", f.focus)
	}
	f.handleKey(key(tea.KeyTab))
	if f.focus != fieldTitle {
		t.Errorf("focus after wrap forward: got %v, want title", f.focus)
	}
}

func TestFormTextEditing(t *testing.T) {
	f := newTaskForm(testConfig())
	f.handleKey(runeKey('h'))
	f.handleKey(runeKey('i'))
	f.handleKey(key(tea.KeySpace))
	f.handleKey(runeKey('x'))
	f.handleKey(key(tea.KeyBackspace))

	if f.title != "hi " {
		t.Errorf("title: got %q, want %q", f.title, "hi ")
	}
}

func TestFormPriorityKeys(t *testing.T) {
	f := newTaskForm(testConfig())
	f.focus = fieldPriority

	if f.priority != 3 {
		t.Fatalf("default priority: got %d, want 3", f.priority)
	}

	f.handleKey(key(tea.KeyRight))
	if f.priority != 4 {
		t.Errorf("priority after right: got %d, want 4", f.priority)
	}

	f.handleKey(runeKey('5'))
	if f.priority != 5 {
		t.Errorf("priority after 5: got %d, want 5", f.priority)
	}

	// Clamped at the bounds.
	f.handleKey(key(tea.KeyRight))
	if f.priority != 5 {
		t.Errorf("priority above max: got %d, want 5", f.priority)
	}
	f.handleKey(runeKey('1'))
	f.handleKey(key(tea.KeyLeft))
	if f.priority != 1 {
		t.Errorf("priority below min: got %d, want 1", f.priority)
	}
}

func TestFormInput(t *testing.T) {
	f := newTaskForm(testConfig())
	f.title = "walk dog"
	f.description = "around the block"
	f.due = task.Today().AddDate(0, 0, 2).Format("2006-01-02")
	f.priority = 2

	in, err := f.input("2006-01-02")
	if err != nil {
		t.Fatalf("input failed: %v", err)
	}
	if in.Title != "walk dog" {
		t.Errorf("Title: got %q, want %q", in.Title, "walk dog")
	}
	if in.Priority != 2 {
		t.Errorf("Priority: got %d, want 2", in.Priority)
	}

	f.due = "02/03/2024"
	if _, err := f.input("2006-01-02"); err == nil {
		t.Error("input succeeded with malformed date, want error")
	}
}

func TestEditFormPrefill(t *testing.T) {
	tk, err := task.New(task.Input{
		Title:     "existing",
		DueDate:   task.Today().AddDate(0, 0, 1),
		Priority:  4,
		Completed: true,
	})
	if err != nil {
		t.Fatalf("task.New failed: %v", err)
	}

	f := editTaskForm(testConfig(), tk)
	if f.title != "existing" {
		t.Errorf("title: got %q, want %q", f.title, "existing")
	}
	if f.priority != 4 {
		t.Errorf("priority: got %d, want 4", f.priority)
	}
	if !f.completed {
		t.Error("completed: got false, want true")
	}
}

func TestPriorityGauge(t *testing.T) {
	if got := priorityGauge(3); got != "1 2 [3] 4 5" {
		t.Errorf("priorityGauge(3): got %q, want %q", got, "1 2 [3] 4 5")
	}
}

func TestFormWriteMarksFocus(t *testing.T) {
	f := newTaskForm(testConfig())
	f.title = "abc"

	var b strings.Builder
	f.write(&b)
	out := b.String()

	if !strings.Contains(out, "Title:") || !strings.Contains(out, "abc") {
		t.Errorf("form render missing title field:\n%s", out)
	}
	if !strings.Contains(out, "Priority:") {
		t.Errorf("form render missing priority field:\n%s", out)
	}
}
