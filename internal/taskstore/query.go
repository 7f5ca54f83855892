package taskstore

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/balkashynov/taskdash/internal/models"
)

// Query returns the tasks whose status passes filter and whose title,
// description or status contains term, ignoring case. Results keep insertion
// order; the collection itself is not touched.
func (s *Store) Query(filter models.Filter, term string) []models.Task {
	fold := cases.Fold()
	needle := fold.String(strings.TrimSpace(term))

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Task{}
	for _, t := range s.tasks {
		if !filter.Matches(t.Status) {
			continue
		}
		if needle != "" && !matches(fold, t, needle) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func matches(fold cases.Caser, t models.Task, needle string) bool {
	for _, field := range []string{t.Title, t.Description, string(t.Status), t.Status.Label()} {
		if strings.Contains(fold.String(field), needle) {
			return true
		}
	}
	return false
}

// Stats counts tasks per status
func (s *Store) Stats() models.Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := models.Stats{Total: len(s.tasks)}
	for _, t := range s.tasks {
		switch t.Status {
		case models.StatusDone:
			stats.Completed++
		case models.StatusInProgress:
			stats.InProgress++
		case models.StatusNotStarted:
			stats.NotStarted++
		}
	}
	return stats
}
