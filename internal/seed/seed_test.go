package seed

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/nibzard/taskdeck/internal/task"
)

func futureDate(days int) string {
	return task.Today().AddDate(0, 0, days).Format("2006-01-02")
}

func TestParseValid(t *testing.T) {
	data := fmt.Sprintf(`{
  "schema_version": 1,
  "tasks": [
    {"title": "Pay rent", "due_date": %q, "priority": 1},
    {"title": "Read book", "description": "chapter 3", "due_date": %q, "priority": 4, "completed": true}
  ]
}`, futureDate(1), futureDate(14))

	tasks, err := Parse([]byte(data))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("count: got %d, want 2", len(tasks))
	}
	if tasks[0].Title != "Pay rent" {
		t.Errorf("Title: got %q, want %q", tasks[0].Title, "Pay rent")
	}
	if tasks[0].ID == "" {
		t.Error("ID: got empty, want generated")
	}
	if !tasks[1].Completed {
		t.Error("Completed: got false, want true")
	}
	if tasks[1].Description != "chapter 3" {
		t.Errorf("Description: got %q, want %q", tasks[1].Description, "chapter 3")
	}
	wantDue, _ := time.Parse("2006-01-02", futureDate(14))
	if !tasks[1].DueDate.Equal(wantDue) {
		t.Errorf("DueDate: got %v, want %v", tasks[1].DueDate, wantDue)
	}
}

func TestParseSchemaViolations(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{
			name: "not json",
			data: "{",
		},
		{
			name: "wrong schema_version",
			data: `{"schema_version": 2, "tasks": []}`,
		},
		{
			name: "missing tasks",
			data: `{"schema_version": 1}`,
		},
		{
			name: "missing title",
			data: fmt.Sprintf(`{"schema_version": 1, "tasks": [{"due_date": %q, "priority": 1}]}`, futureDate(1)),
		},
		{
			name: "priority out of range",
			data: fmt.Sprintf(`{"schema_version": 1, "tasks": [{"title": "x", "due_date": %q, "priority": 6}]}`, futureDate(1)),
		},
		{
			name: "priority not an integer",
			data: fmt.Sprintf(`{"schema_version": 1, "tasks": [{"title": "x", "due_date": %q, "priority": "high"}]}`, futureDate(1)),
		},
		{
			name: "malformed date",
			data: `{"schema_version": 1, "tasks": [{"title": "x", "due_date": "not-a-date", "priority": 1}]}`,
		},
		{
			name: "unknown field",
			data: fmt.Sprintf(`{"schema_version": 1, "tasks": [{"title": "x", "due_date": %q, "priority": 1, "owner": "me"}]}`, futureDate(1)),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.data)); err == nil {
				t.Error("Parse succeeded, want error")
			}
		})
	}
}

func TestParseDomainValidation(t *testing.T) {
	// Passes the schema but violates the past-due rule.
	data := `{"schema_version": 1, "tasks": [{"title": "x", "due_date": "2020-01-01", "priority": 1}]}`
	_, err := Parse([]byte(data))
	if err == nil {
		t.Fatal("Parse succeeded, want error")
	}
	if !errors.Is(err, task.ErrPastDue) {
		t.Errorf("error: got %v, want %v", err, task.ErrPastDue)
	}
	if !strings.Contains(err.Error(), "tasks[0]") {
		t.Errorf("error %q does not name the offending entry", err)
	}
}

func TestLoad(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "seed.json")
	data := fmt.Sprintf(`{"schema_version": 1, "tasks": [{"title": "x", "due_date": %q, "priority": 2}]}`, futureDate(3))
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	tasks, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("count: got %d, want 1", len(tasks))
	}

	if _, err := Load(filepath.Join(tmpDir, "missing.json")); err == nil {
		t.Error("Load succeeded for missing file, want error")
	}
}
