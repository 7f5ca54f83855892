package storage

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balkashynov/taskdash/internal/models"
)

// failingKV returns an error from every call
type failingKV struct{}

func (failingKV) Get(string) (string, bool, error) { return "", false, errors.New("disk on fire") }
func (failingKV) Set(string, string) error         { return errors.New("disk on fire") }
func (failingKV) Close() error                     { return nil }

func sampleTasks() []models.Task {
	created := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	return []models.Task{
		{
			ID:          created.UnixMilli(),
			Title:       "Buy milk",
			Description: "At the store",
			Status:      models.StatusNotStarted,
			CreatedAt:   created,
			UpdatedAt:   created,
		},
		{
			ID:          created.UnixMilli() + 1,
			Title:       "Write report",
			Description: "Quarterly numbers",
			Status:      models.StatusDone,
			DueDate:     "2025-03-31",
			CreatedAt:   created.Add(time.Millisecond),
			UpdatedAt:   created.Add(2*time.Hour + 123*time.Millisecond),
		},
	}
}

func TestAdapter_RoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		tasks []models.Task
	}{
		{"empty collection", []models.Task{}},
		{"nil collection", nil},
		{"two tasks", sampleTasks()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewAdapter(NewMemoryKV(), nil)

			require.NoError(t, a.WriteTasks(tt.tasks))
			got, err := a.ReadTasks()
			require.NoError(t, err)

			want := tt.tasks
			if want == nil {
				want = []models.Task{}
			}
			assert.Equal(t, want, got)
		})
	}
}

func TestAdapter_ReadTasksMissingKey(t *testing.T) {
	a := NewAdapter(NewMemoryKV(), nil)

	tasks, err := a.ReadTasks()
	require.NoError(t, err)
	assert.NotNil(t, tasks)
	assert.Empty(t, tasks)
}

func TestAdapter_ReadTasksCorrupt(t *testing.T) {
	for name, raw := range map[string]string{
		"not json":       "{{{",
		"wrong shape":    `{"id": 1}`,
		"unknown status": `[{"id":1,"title":"a","description":"b","status":"someday"}]`,
	} {
		t.Run(name, func(t *testing.T) {
			kv := NewMemoryKV()
			require.NoError(t, kv.Set(TasksKey, raw))
			a := NewAdapter(kv, nil)

			tasks, err := a.ReadTasks()
			assert.Empty(t, tasks)

			var readErr *models.PersistenceReadError
			require.ErrorAs(t, err, &readErr)
			assert.Equal(t, TasksKey, readErr.Key)
		})
	}
}

func TestAdapter_BackendFailure(t *testing.T) {
	a := NewAdapter(failingKV{}, nil)

	tasks, err := a.ReadTasks()
	assert.Empty(t, tasks)
	var readErr *models.PersistenceReadError
	assert.ErrorAs(t, err, &readErr)

	assert.Error(t, a.WriteTasks(sampleTasks()))
	assert.Equal(t, models.ThemeLight, a.ReadTheme())
}

func TestAdapter_ReadsLegacySnapshot(t *testing.T) {
	// Snapshot as written by the browser dashboard
	raw := `[{"title":"Học Go","description":"Đọc sách","status":"Đang làm","createdAt":"2024-11-02T08:15:30.120Z","dueDate":"","updatedAt":"2024-11-02T09:00:00.000Z","id":1730535330120}]`
	kv := NewMemoryKV()
	require.NoError(t, kv.Set(TasksKey, raw))

	tasks, err := NewAdapter(kv, nil).ReadTasks()
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, int64(1730535330120), tasks[0].ID)
	assert.Equal(t, models.StatusInProgress, tasks[0].Status)
	assert.False(t, tasks[0].HasDueDate())
	assert.Equal(t, 120*int(time.Millisecond), tasks[0].CreatedAt.Nanosecond())
}

func TestAdapter_Theme(t *testing.T) {
	kv := NewMemoryKV()
	a := NewAdapter(kv, nil)

	assert.Equal(t, models.ThemeLight, a.ReadTheme())

	require.NoError(t, a.WriteTheme(models.ThemeDark))
	assert.Equal(t, models.ThemeDark, a.ReadTheme())

	assert.Error(t, a.WriteTheme("sepia"))

	require.NoError(t, kv.Set(ThemeKey, "sepia"))
	assert.Equal(t, models.ThemeLight, a.ReadTheme())
}

func TestOpen(t *testing.T) {
	a, err := Open(Options{Backend: BackendMemory})
	require.NoError(t, err)
	require.NoError(t, a.Close())

	a, err = Open(Options{Backend: BackendSQLite, Path: filepath.Join(t.TempDir(), "nested", "tasks.db")})
	require.NoError(t, err)
	require.NoError(t, a.WriteTasks(sampleTasks()))
	require.NoError(t, a.Close())

	_, err = Open(Options{Backend: "etcd"})
	assert.Error(t, err)
}
