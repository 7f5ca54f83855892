// Package storage is the key-value persistence boundary of the task store.
package storage

import (
	"encoding/json"
	"fmt"

	"github.com/go-pkgz/lgr"

	"github.com/balkashynov/taskdash/internal/models"
)

const (
	// TasksKey holds the serialized task collection
	TasksKey = "tasks"
	// ThemeKey holds the dashboard theme
	ThemeKey = "theme"
)

// KV is a string key-value backend
type KV interface {
	// Get returns the value and whether the key exists
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Close() error
}

// Adapter reads and writes task snapshots through a KV backend
type Adapter struct {
	kv  KV
	log lgr.L
}

// NewAdapter creates an adapter over kv. A nil logger disables logging.
func NewAdapter(kv KV, log lgr.L) *Adapter {
	if log == nil {
		log = lgr.NoOp
	}
	return &Adapter{kv: kv, log: log}
}

// ReadTasks returns the stored collection. A missing key yields an empty
// collection; an unreadable or corrupt value yields an empty collection and
// a *models.PersistenceReadError.
func (a *Adapter) ReadTasks() ([]models.Task, error) {
	raw, ok, err := a.kv.Get(TasksKey)
	if err != nil {
		return []models.Task{}, &models.PersistenceReadError{Key: TasksKey, Err: err}
	}
	if !ok {
		a.log.Logf("[DEBUG] no stored tasks, starting empty")
		return []models.Task{}, nil
	}

	var tasks []models.Task
	if err := json.Unmarshal([]byte(raw), &tasks); err != nil {
		return []models.Task{}, &models.PersistenceReadError{Key: TasksKey, Err: err}
	}
	if tasks == nil {
		tasks = []models.Task{}
	}

	a.log.Logf("[DEBUG] read %d tasks", len(tasks))
	return tasks, nil
}

// WriteTasks stores the full collection, replacing the previous snapshot
func (a *Adapter) WriteTasks(tasks []models.Task) error {
	if tasks == nil {
		tasks = []models.Task{}
	}

	data, err := json.Marshal(tasks)
	if err != nil {
		return fmt.Errorf("could not encode tasks: %w", err)
	}

	if err := a.kv.Set(TasksKey, string(data)); err != nil {
		return fmt.Errorf("could not write tasks: %w", err)
	}

	a.log.Logf("[DEBUG] wrote %d tasks (%d bytes)", len(tasks), len(data))
	return nil
}

// ReadTheme returns the stored theme, light when absent or invalid
func (a *Adapter) ReadTheme() models.Theme {
	raw, ok, err := a.kv.Get(ThemeKey)
	if err != nil {
		a.log.Logf("[WARN] %v", &models.PersistenceReadError{Key: ThemeKey, Err: err})
		return models.ThemeLight
	}

	theme := models.Theme(raw)
	if !ok || !theme.Valid() {
		return models.ThemeLight
	}
	return theme
}

// WriteTheme stores the theme
func (a *Adapter) WriteTheme(theme models.Theme) error {
	if !theme.Valid() {
		return fmt.Errorf("unknown theme %q (use: light, dark)", theme)
	}
	if err := a.kv.Set(ThemeKey, string(theme)); err != nil {
		return fmt.Errorf("could not write theme: %w", err)
	}
	return nil
}

// Close releases the backend
func (a *Adapter) Close() error {
	return a.kv.Close()
}
