package task

import (
	"slices"
	"sync"
)

// Stats summarises the store contents per status.
type Stats struct {
	Total                int
	Active               int
	Paused               int
	AwaitingVerification int
	Completed            int
	Unread               int
}

// Store is the authoritative in-memory task collection. Every mutation
// builds a new snapshot and swaps it in under the lock, so readers never
// observe a partially applied change and concurrent writers cannot lose
// each other's updates.
type Store struct {
	mu    sync.RWMutex
	tasks []Task
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{}
}

// Snapshot returns a copy of all tasks in insertion order.
func (s *Store) Snapshot() []Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.tasks)
}

// Get returns the task with the given id.
func (s *Store) Get(id string) (Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.index(id); i >= 0 {
		return s.tasks[i], true
	}
	return Task{}, false
}

// Len returns the number of tasks.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tasks)
}

// Add appends a task. A task whose id already exists replaces nothing and
// reports false.
func (s *Store) Add(t Task) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.index(t.ID) >= 0 {
		return false
	}
	next := make([]Task, len(s.tasks), len(s.tasks)+1)
	copy(next, s.tasks)
	s.tasks = append(next, t)
	return true
}

// Update applies fn to the task with the given id. Unknown ids are a no-op.
// The returned task is the stored value after fn ran.
func (s *Store) Update(id string, fn func(Task) (Task, bool)) (Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		return Task{}, false
	}

	updated, changed := fn(s.tasks[i])
	if !changed {
		return s.tasks[i], false
	}

	next := slices.Clone(s.tasks)
	next[i] = updated
	s.tasks = next
	return updated, true
}

// Remove deletes the task with the given id when keep returns false for it.
// A nil keep deletes unconditionally. Unknown ids are a no-op.
func (s *Store) Remove(id string, keep func(Task) bool) (Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		return Task{}, false
	}
	removed := s.tasks[i]
	if keep != nil && keep(removed) {
		return removed, false
	}

	next := make([]Task, 0, len(s.tasks)-1)
	next = append(next, s.tasks[:i]...)
	next = append(next, s.tasks[i+1:]...)
	s.tasks = next
	return removed, true
}

// Apply runs fn over the whole collection and installs its result as the
// new snapshot. fn receives a private copy and may modify it freely.
func (s *Store) Apply(fn func(tasks []Task) []Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = fn(slices.Clone(s.tasks))
}

// Stats counts tasks per status.
func (s *Store) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := Stats{Total: len(s.tasks)}
	for _, t := range s.tasks {
		switch t.Status {
		case StatusActive:
			st.Active++
		case StatusPaused:
			st.Paused++
		case StatusAwaitingVerification:
			st.AwaitingVerification++
		case StatusCompleted:
			st.Completed++
			if !t.Read {
				st.Unread++
			}
		}
	}
	return st
}

func (s *Store) index(id string) int {
	return slices.IndexFunc(s.tasks, func(t Task) bool { return t.ID == id })
}
