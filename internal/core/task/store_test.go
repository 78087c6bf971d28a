package task

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seeded(t *testing.T, tasks ...Task) *Store {
	t.Helper()
	s := NewStore()
	for _, tk := range tasks {
		require.True(t, s.Add(tk))
	}
	return s
}

func TestStore_AddRejectsDuplicateID(t *testing.T) {
	s := seeded(t, Task{ID: "a"})

	assert.False(t, s.Add(Task{ID: "a", Name: "dup"}))
	assert.Equal(t, 1, s.Len())
}

func TestStore_SnapshotIsIsolated(t *testing.T) {
	s := seeded(t, Task{ID: "a", Progress: 10})

	snap := s.Snapshot()
	snap[0].Progress = 90

	got, ok := s.Get("a")
	require.True(t, ok)
	assert.Equal(t, 10, got.Progress)
}

func TestStore_Update(t *testing.T) {
	s := seeded(t, Task{ID: "a", Status: StatusActive, LastUpdated: t0})
	before := s.Snapshot()

	got, changed := s.Update("a", func(tk Task) (Task, bool) { return Toggle(tk, t0.Add(time.Second)) })
	require.True(t, changed)
	assert.Equal(t, StatusPaused, got.Status)

	assert.Equal(t, StatusActive, before[0].Status, "earlier snapshots are never mutated")
}

func TestStore_UpdateUnknownIDIsNoop(t *testing.T) {
	s := seeded(t, Task{ID: "a"})

	_, changed := s.Update("missing", func(tk Task) (Task, bool) {
		t.Fatal("fn must not run for unknown ids")
		return tk, true
	})

	assert.False(t, changed)
}

func TestStore_Remove(t *testing.T) {
	s := seeded(t, Task{ID: "a"}, Task{ID: "b"}, Task{ID: "c"})

	_, removed := s.Remove("b", nil)
	require.True(t, removed)

	ids := []string{}
	for _, tk := range s.Snapshot() {
		ids = append(ids, tk.ID)
	}
	assert.Equal(t, []string{"a", "c"}, ids)

	_, removed = s.Remove("b", nil)
	assert.False(t, removed, "second removal is a no-op")
}

func TestStore_RemoveHonoursKeep(t *testing.T) {
	s := seeded(t, Task{ID: "a", Status: StatusCompleted})

	_, removed := s.Remove("a", func(tk Task) bool { return !tk.Removable() })
	assert.False(t, removed)
	assert.Equal(t, 1, s.Len())
}

func TestStore_Apply(t *testing.T) {
	s := seeded(t,
		Task{ID: "a", Status: StatusActive, LastUpdated: t0},
		Task{ID: "b", Status: StatusPaused, LastUpdated: t0},
	)

	s.Apply(func(tasks []Task) []Task {
		for i := range tasks {
			tasks[i], _ = Accrue(tasks[i], t0.Add(2*time.Second))
		}
		return tasks
	})

	a, _ := s.Get("a")
	b, _ := s.Get("b")
	assert.Equal(t, 2*time.Second, a.TotalTime)
	assert.Zero(t, b.TotalTime)
}

func TestStore_ConcurrentUpdatesAreNotLost(t *testing.T) {
	s := seeded(t, Task{ID: "a", Status: StatusActive})

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Update("a", func(tk Task) (Task, bool) {
				tk.Progress++
				return tk, true
			})
		}()
	}
	wg.Wait()

	got, _ := s.Get("a")
	assert.Equal(t, 50, got.Progress)
}

func TestStore_Stats(t *testing.T) {
	s := seeded(t,
		Task{ID: "1", Status: StatusActive},
		Task{ID: "2", Status: StatusActive},
		Task{ID: "3", Status: StatusPaused},
		Task{ID: "4", Status: StatusAwaitingVerification},
		Task{ID: "5", Status: StatusCompleted},
		Task{ID: "6", Status: StatusCompleted, Read: true},
	)

	assert.Equal(t, Stats{
		Total:                6,
		Active:               2,
		Paused:               1,
		AwaitingVerification: 1,
		Completed:            2,
		Unread:               1,
	}, s.Stats())
}

func TestSelect(t *testing.T) {
	tasks := []Task{
		{ID: "1", Status: StatusActive, Source: SourceSystem, Application: "Blender"},
		{ID: "2", Status: StatusPaused, Source: SourceManual},
		{ID: "3", Status: StatusAwaitingVerification, Source: SourceSystem, Application: "Figma"},
	}

	got := Select(tasks, WithStatus(StatusActive, StatusPaused))
	assert.Len(t, got, 2)

	got = Select(tasks, WithSource(SourceSystem), WithApplication("Figma"))
	require.Len(t, got, 1)
	assert.Equal(t, "3", got[0].ID)

	assert.Len(t, Select(tasks), 3)
}
