// Package ui provides the form-based terminal interface.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nibzard/taskdeck/internal/config"
	"github.com/nibzard/taskdeck/internal/store"
	"github.com/nibzard/taskdeck/internal/task"
)

var (
	titleStyle     = lipgloss.NewStyle().Bold(true)
	selectedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	completedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Strikethrough(true)
	overdueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	mutedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	focusStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
)

// RunTUI starts the interactive session over the given store.
func RunTUI(ctx context.Context, cfg *config.Config, st *store.Store) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}
	model := NewModel(cfg, st)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

// mode is the screen the model is currently showing.
type mode int

const (
	modeList mode = iota
	modeForm
)

// Model is the bubbletea model for the tracker. It owns one store instance
// for the lifetime of the session.
type Model struct {
	cfg    *config.Config
	store  *store.Store
	mode   mode
	cursor int
	tasks  []task.Task

	form   taskForm
	editID string // non-empty while editing an existing task

	status   string // transient one-line feedback
	showHelp bool
}

// NewModel builds the initial model over an already seeded store.
func NewModel(cfg *config.Config, st *store.Store) *Model {
	m := &Model{cfg: cfg, store: st}
	m.refresh()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// refresh recomputes the sorted snapshot and clamps the cursor.
func (m *Model) refresh() {
	m.tasks = m.store.ListSorted()
	if m.cursor >= len(m.tasks) {
		m.cursor = len(m.tasks) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// selected returns the task under the cursor, or a zero task.
func (m *Model) selected() task.Task {
	if m.cursor < 0 || m.cursor >= len(m.tasks) {
		return task.Task{}
	}
	return m.tasks[m.cursor]
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.mode == modeForm {
		return m.updateForm(keyMsg)
	}
	return m.updateList(keyMsg)
}

func (m *Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "h", "?":
		m.showHelp = !m.showHelp
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.tasks)-1 {
			m.cursor++
		}
	case "r", "f5":
		m.refresh()
	case "a":
		m.editID = ""
		m.form = newTaskForm(m.cfg)
		m.mode = modeForm
	case "e":
		if sel := m.selected(); !sel.IsZero() {
			m.editID = sel.ID
			m.form = editTaskForm(m.cfg, sel)
			m.mode = modeForm
		}
	case "c":
		if sel := m.selected(); !sel.IsZero() {
			if m.store.MarkComplete(sel.ID) {
				m.status = fmt.Sprintf("Completed %q", sel.Title)
			}
			m.refresh()
		}
	case "d":
		if sel := m.selected(); !sel.IsZero() {
			if m.store.Delete(sel.ID) {
				m.status = fmt.Sprintf("Deleted %q", sel.Title)
			}
			m.refresh()
		}
	}
	return m, nil
}

func (m *Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.mode = modeList
		m.status = "Cancelled"
		return m, nil
	case "enter":
		m.submitForm()
		return m, nil
	}

	m.form.handleKey(msg)
	return m, nil
}

// submitForm validates the form and applies it to the store. On a validation
// failure the form stays open with the error shown and the store untouched.
func (m *Model) submitForm() {
	in, err := m.form.input(m.cfg.DateFormat)
	if err != nil {
		m.form.errMsg = err.Error()
		return
	}

	t, err := task.New(in)
	if err != nil {
		m.form.errMsg = err.Error()
		return
	}

	if m.editID != "" {
		if !m.store.Update(m.editID, t) {
			m.form.errMsg = "task no longer exists"
			return
		}
		m.status = fmt.Sprintf("Updated %q", t.Title)
	} else {
		m.store.Add(t)
		m.status = fmt.Sprintf("Added %q", t.Title)
	}

	m.mode = modeList
	m.refresh()
}

// View implements tea.Model.
func (m *Model) View() string {
	var b strings.Builder
	writeTitle(&b)

	if m.mode == modeForm {
		m.writeForm(&b)
		return b.String()
	}

	if m.showHelp {
		writeHelp(&b)
		writeFooter(&b)
		return b.String()
	}

	m.writeCounts(&b)
	m.writeList(&b)

	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status) + "\n\n")
	}
	writeFooter(&b)
	return b.String()
}

func writeTitle(b *strings.Builder) {
	b.WriteString(titleStyle.Render("Taskdeck") + "\n\n")
}

func (m *Model) writeCounts(b *strings.Builder) {
	open, done := 0, 0
	for _, t := range m.tasks {
		if t.Completed {
			done++
		} else {
			open++
		}
	}
	b.WriteString(fmt.Sprintf("  Open: %d  Completed: %d\n\n", open, done))
}

func (m *Model) writeList(b *strings.Builder) {
	if len(m.tasks) == 0 {
		b.WriteString(mutedStyle.Render("  No tasks yet. Press a to add one.") + "\n\n")
		return
	}

	for i, t := range m.tasks {
		line := m.formatTask(t)
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("> "+line) + "\n")
		} else {
			b.WriteString("  " + line + "\n")
		}
		if i == m.cursor && t.Description != "" {
			desc := t.Description
			if len(desc) > 60 {
				desc = desc[:57] + "..."
			}
			b.WriteString(mutedStyle.Render("      "+desc) + "\n")
		}
	}
	b.WriteString("\n")
}

func (m *Model) formatTask(t task.Task) string {
	mark := " "
	if t.Completed {
		mark = "x"
	}
	due := t.DueDate.Format(m.cfg.DateFormat)
	line := fmt.Sprintf("[%s] %s  (P%d) %s", mark, due, t.Priority, t.Title)
	switch {
	case t.Completed:
		return completedStyle.Render(line)
	case t.Overdue():
		return overdueStyle.Render(line + "  overdue")
	default:
		return line
	}
}

func (m *Model) writeForm(b *strings.Builder) {
	if m.editID != "" {
		b.WriteString("Edit Task\n\n")
	} else {
		b.WriteString("Add New Task\n\n")
	}
	m.form.write(b)
	if m.form.errMsg != "" {
		b.WriteString(errorStyle.Render("  Error: "+m.form.errMsg) + "\n\n")
	}
	b.WriteString(mutedStyle.Render("  tab/shift+tab move | enter save | esc cancel") + "\n")
}

func writeHelp(b *strings.Builder) {
	b.WriteString("Keyboard Shortcuts\n\n")
	b.WriteString("  q, ctrl+c    Quit\n")
	b.WriteString("  up/k down/j  Move cursor\n")
	b.WriteString("  a            Add a task\n")
	b.WriteString("  e            Edit the selected task\n")
	b.WriteString("  c            Mark the selected task complete\n")
	b.WriteString("  d            Delete the selected task\n")
	b.WriteString("  r, F5        Re-sort the list\n")
	b.WriteString("  h, ?         Toggle this help screen\n\n")
}

func writeFooter(b *strings.Builder) {
	b.WriteString(mutedStyle.Render("Press h for help | q to quit") + "\n")
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, _ := f.Stat()
	return (info.Mode() & os.ModeCharDevice) != 0
}
