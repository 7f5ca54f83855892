// Package taskstore owns the task collection: mutations, derived views and
// their consistency with the persisted snapshot.
package taskstore

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/balkashynov/taskdash/internal/models"
	"github.com/balkashynov/taskdash/internal/parser"
)

// Persister reads and writes full task snapshots
type Persister interface {
	ReadTasks() ([]models.Task, error)
	WriteTasks(tasks []models.Task) error
}

// Store is the authoritative task collection of a session
type Store struct {
	mu      sync.RWMutex
	persist Persister
	policy  parser.DatePolicy
	now     func() time.Time
	log     lgr.L

	tasks []models.Task
}

// Option configures a Store
type Option func(*Store)

// WithDatePolicy sets the due date format accepted by Create and Update
func WithDatePolicy(p parser.DatePolicy) Option {
	return func(s *Store) { s.policy = p }
}

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithLogger sets the logger
func WithLogger(l lgr.L) Option {
	return func(s *Store) { s.log = l }
}

// New creates an empty store; call Load to read the persisted snapshot
func New(p Persister, opts ...Option) *Store {
	s := &Store{
		persist: p,
		policy:  parser.ISODate,
		now:     time.Now,
		log:     lgr.NoOp,
		tasks:   []models.Task{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Policy returns the active due date policy
func (s *Store) Policy() parser.DatePolicy {
	return s.policy
}

// Load replaces the collection with the persisted snapshot. It never fails:
// a missing or corrupt snapshot leaves the store empty.
func (s *Store) Load() {
	tasks, err := s.persist.ReadTasks()
	if err != nil {
		s.log.Logf("[WARN] starting with an empty task list: %v", err)
		tasks = nil
	}
	if tasks == nil {
		tasks = []models.Task{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = tasks
	s.log.Logf("[DEBUG] loaded %d tasks", len(tasks))
}

// Create validates the draft and appends a new task
func (s *Store) Create(d models.Draft) (models.Task, error) {
	d = d.Normalize()
	if err := s.validate(d); err != nil {
		return models.Task{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.timestamp()
	status := d.Status
	if status == "" {
		status = models.StatusNotStarted
	}

	task := models.Task{
		ID:          s.nextID(now),
		Title:       d.Title,
		Description: d.Description,
		Status:      status,
		DueDate:     d.DueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	next := make([]models.Task, len(s.tasks), len(s.tasks)+1)
	copy(next, s.tasks)
	next = append(next, task)

	if err := s.commit(next); err != nil {
		return models.Task{}, fmt.Errorf("create task: %w", err)
	}

	s.log.Logf("[DEBUG] created task #%d %q", task.ID, task.Title)
	return task, nil
}

// Update replaces the editable fields of task id. An empty draft status keeps
// the current status.
func (s *Store) Update(id int64, d models.Draft) (models.Task, error) {
	d = d.Normalize()
	if err := s.validate(d); err != nil {
		return models.Task{}, err
	}

	return s.mutate(id, "update", func(t *models.Task) {
		t.Title = d.Title
		t.Description = d.Description
		t.DueDate = d.DueDate
		if d.Status != "" {
			t.Status = d.Status
		}
	})
}

// Complete marks task id as done. Completing a done task refreshes UpdatedAt.
func (s *Store) Complete(id int64) (models.Task, error) {
	return s.mutate(id, "complete", func(t *models.Task) {
		t.Status = models.StatusDone
	})
}

// SetStatus moves task id to any status
func (s *Store) SetStatus(id int64, status models.Status) (models.Task, error) {
	if !status.Valid() {
		return models.Task{}, &models.ValidationError{Field: "status", Reason: fmt.Sprintf("unknown status %q", status)}
	}
	return s.mutate(id, "set status", func(t *models.Task) {
		t.Status = status
	})
}

// Delete removes task id
func (s *Store) Delete(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return &models.NotFoundError{ID: id}
	}

	next := make([]models.Task, 0, len(s.tasks)-1)
	next = append(next, s.tasks[:idx]...)
	next = append(next, s.tasks[idx+1:]...)

	if err := s.commit(next); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}

	s.log.Logf("[DEBUG] deleted task #%d", id)
	return nil
}

// FindByID returns a copy of task id
func (s *Store) FindByID(id int64) (models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return models.Task{}, &models.NotFoundError{ID: id}
	}
	return s.tasks[idx], nil
}

// Snapshot returns a copy of the whole collection in insertion order
func (s *Store) Snapshot() []models.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Len returns the number of tasks
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tasks)
}

// mutate applies fn to a copy of task id, refreshes UpdatedAt and commits
func (s *Store) mutate(id int64, op string, fn func(t *models.Task)) (models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return models.Task{}, &models.NotFoundError{ID: id}
	}

	task := s.tasks[idx]
	fn(&task)
	task.ID = s.tasks[idx].ID
	task.CreatedAt = s.tasks[idx].CreatedAt
	task.UpdatedAt = s.timestamp()
	if task.UpdatedAt.Before(s.tasks[idx].UpdatedAt) {
		// Wall clock went backwards
		task.UpdatedAt = s.tasks[idx].UpdatedAt
	}

	next := make([]models.Task, len(s.tasks))
	copy(next, s.tasks)
	next[idx] = task

	if err := s.commit(next); err != nil {
		return models.Task{}, fmt.Errorf("%s task: %w", op, err)
	}

	s.log.Logf("[DEBUG] %s task #%d", op, id)
	return task, nil
}

// commit persists next and, only on success, makes it the current collection.
// Callers hold the write lock.
func (s *Store) commit(next []models.Task) error {
	if err := s.persist.WriteTasks(next); err != nil {
		s.log.Logf("[WARN] persist failed, keeping previous state: %v", err)
		return err
	}
	s.tasks = next
	return nil
}

func (s *Store) indexOf(id int64) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// timestamp returns now in UTC at millisecond precision, matching the
// resolution of the persisted ISO-8601 timestamps
func (s *Store) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Millisecond)
}

// nextID derives the id from the creation time. Two creations within the same
// millisecond would collide, so the id is bumped past the largest existing one.
func (s *Store) nextID(now time.Time) int64 {
	id := now.UnixMilli()
	for i := range s.tasks {
		if s.tasks[i].ID >= id {
			id = s.tasks[i].ID + 1
		}
	}
	return id
}

func (s *Store) validate(d models.Draft) error {
	var errs []error
	if d.Title == "" {
		errs = append(errs, &models.ValidationError{Field: "title", Reason: "title is required"})
	}
	if d.Description == "" {
		errs = append(errs, &models.ValidationError{Field: "description", Reason: "description is required"})
	}
	if d.Status != "" && !d.Status.Valid() {
		errs = append(errs, &models.ValidationError{Field: "status", Reason: fmt.Sprintf("unknown status %q", d.Status)})
	}
	if err := s.policy.Validate(d.DueDate); err != nil {
		errs = append(errs, &models.ValidationError{Field: "due date", Reason: err.Error()})
	}
	return errors.Join(errs...)
}
