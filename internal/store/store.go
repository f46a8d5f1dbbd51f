// Package store holds tasks in memory, keyed by task ID.
//
// A Store is owned by exactly one interactive session and is manipulated by
// one actor at a time, so no locking is done here. Nothing is persisted;
// all tasks are gone when the process exits.
package store

import (
	"sort"
	"time"

	"github.com/nibzard/taskdeck/internal/task"
)

// Store maps task IDs to tasks. Construct instances with New and pass them
// explicitly to whatever owns the session; a Store is never a global.
type Store struct {
	tasks map[string]task.Task
}

// New returns an empty store.
func New() *Store {
	return &Store{tasks: make(map[string]task.Task)}
}

// Add inserts the task under its ID. An existing entry with the same ID is
// silently overwritten; IDs are freshly generated at construction, so this
// does not occur in normal use.
func (s *Store) Add(t task.Task) {
	s.tasks[t.ID] = t
}

// Update replaces the stored task under id with t, preserving the stored
// entry's ID and CreatedAt regardless of what t carries, and stamps
// UpdatedAt. Returns false and leaves the store unchanged if id is absent.
func (s *Store) Update(id string, t task.Task) bool {
	prev, ok := s.tasks[id]
	if !ok {
		return false
	}
	t.ID = prev.ID
	t.CreatedAt = prev.CreatedAt
	t.UpdatedAt = time.Now().UTC()
	s.tasks[id] = t
	return true
}

// Delete removes the entry if present and reports whether it existed.
func (s *Store) Delete(id string) bool {
	if _, ok := s.tasks[id]; !ok {
		return false
	}
	delete(s.tasks, id)
	return true
}

// MarkComplete sets the task's completed flag and reports whether the entry
// existed. Calling it on an already completed task is a no-op that still
// returns true.
func (s *Store) MarkComplete(id string) bool {
	t, ok := s.tasks[id]
	if !ok {
		return false
	}
	if !t.Completed {
		t.Completed = true
		t.UpdatedAt = time.Now().UTC()
		s.tasks[id] = t
	}
	return true
}

// Get returns the task under id, or a zero task and false if absent.
func (s *Store) Get(id string) (task.Task, bool) {
	t, ok := s.tasks[id]
	return t, ok
}

// Len returns the number of stored tasks.
func (s *Store) Len() int {
	return len(s.tasks)
}

// ListSorted returns a fresh slice of all tasks in ascending due date order.
// Ties on due date are broken by creation time, then ID, so the order is
// stable across calls as long as the store is not mutated in between.
func (s *Store) ListSorted() []task.Task {
	out := make([]task.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].DueDate.Equal(out[j].DueDate) {
			return out[i].DueDate.Before(out[j].DueDate)
		}
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}
