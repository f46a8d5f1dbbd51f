// Package seed loads an initial set of tasks from a JSON file at startup.
//
// Seeding is a one-way import: the file is read once, validated, and the
// resulting tasks are handed to the caller. Nothing is ever written back,
// so this is not a persistence layer.
package seed

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/nibzard/taskdeck/internal/task"
)

//go:embed schema.json
var schemaSource string

// SchemaVersion is the only supported seed file version.
const SchemaVersion = 1

// dateLayout is the due_date format in seed files.
const dateLayout = "2006-01-02"

var schema = mustCompileSchema()

func mustCompileSchema() *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true
	if err := compiler.AddResource("schema.json", strings.NewReader(schemaSource)); err != nil {
		panic(fmt.Sprintf("seed: add schema resource: %v", err))
	}
	s, err := compiler.Compile("schema.json")
	if err != nil {
		panic(fmt.Sprintf("seed: compile schema: %v", err))
	}
	return s
}

// File is the seed file structure.
type File struct {
	SchemaVersion int     `json:"schema_version"`
	Tasks         []Entry `json:"tasks"`
}

// Entry is one raw task in a seed file.
type Entry struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	DueDate     string `json:"due_date"`
	Priority    int    `json:"priority"`
	Completed   bool   `json:"completed,omitempty"`
}

// Load reads a seed file and constructs tasks from it. The document is
// checked against the embedded JSON Schema first, then each entry goes
// through task.New so the domain rules hold for seeded tasks too. Errors
// name the offending entry.
func Load(path string) ([]task.Task, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return Parse(data)
}

// Parse validates and converts raw seed file contents.
func Parse(data []byte) ([]task.Task, error) {
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("seed file does not match schema: %w", err)
	}

	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}

	tasks := make([]task.Task, 0, len(f.Tasks))
	for i, e := range f.Tasks {
		due, err := time.Parse(dateLayout, e.DueDate)
		if err != nil {
			return nil, fmt.Errorf("tasks[%d].due_date: %w", i, err)
		}
		t, err := task.New(task.Input{
			Title:       e.Title,
			Description: e.Description,
			DueDate:     due,
			Priority:    e.Priority,
			Completed:   e.Completed,
		})
		if err != nil {
			return nil, fmt.Errorf("tasks[%d]: %w", i, err)
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}
