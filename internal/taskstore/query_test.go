package taskstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balkashynov/taskdash/internal/models"
)

func seedStore(t *testing.T) (*Store, []models.Task) {
	t.Helper()
	s, _ := setupStore(t)

	drafts := []models.Draft{
		{Title: "Buy milk", Description: "At the store"},
		{Title: "Write REPORT", Description: "Quarterly numbers", Status: models.StatusInProgress},
		{Title: "Pay rent", Description: "Transfer before the 5th", Status: models.StatusDone},
		{Title: "Học tiếng Việt", Description: "ĐỌC sách mỗi ngày", Status: models.StatusInProgress},
		{Title: "Call plumber", Description: "Kitchen sink report", Status: models.StatusDone},
	}

	var tasks []models.Task
	for _, d := range drafts {
		task, err := s.Create(d)
		require.NoError(t, err)
		tasks = append(tasks, task)
	}
	return s, tasks
}

func TestStore_QueryAll(t *testing.T) {
	s, tasks := seedStore(t)
	assert.Equal(t, tasks, s.Query(models.FilterAll, ""))
}

func TestStore_QueryByStatus(t *testing.T) {
	s, tasks := seedStore(t)

	done := s.Query(models.FilterFor(models.StatusDone), "")
	assert.Equal(t, []models.Task{tasks[2], tasks[4]}, done)
	assert.Equal(t, len(done), s.Stats().Completed)

	inProgress := s.Query(models.FilterFor(models.StatusInProgress), "")
	assert.Equal(t, []models.Task{tasks[1], tasks[3]}, inProgress)
}

func TestStore_QuerySearch(t *testing.T) {
	s, tasks := seedStore(t)

	tests := []struct {
		name   string
		filter models.Filter
		term   string
		want   []models.Task
	}{
		{"title substring ignoring case", models.FilterAll, "report", []models.Task{tasks[1], tasks[4]}},
		{"description substring", models.FilterAll, "STORE", []models.Task{tasks[0]}},
		{"search within filter", models.FilterFor(models.StatusDone), "report", []models.Task{tasks[4]}},
		{"unicode case folding", models.FilterAll, "đọc", []models.Task{tasks[3]}},
		{"status name", models.FilterAll, "inprogress", []models.Task{tasks[1], tasks[3]}},
		{"status label", models.FilterAll, "not started", []models.Task{tasks[0]}},
		{"surrounding whitespace ignored", models.FilterAll, "  milk ", []models.Task{tasks[0]}},
		{"no match", models.FilterAll, "zebra", []models.Task{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.Query(tt.filter, tt.term))
		})
	}

	// Derived views leave the collection untouched
	assert.Equal(t, tasks, s.Snapshot())
}

func TestStore_Stats(t *testing.T) {
	s, _ := seedStore(t)
	assert.Equal(t, models.Stats{Total: 5, Completed: 2, InProgress: 2, NotStarted: 1}, s.Stats())
}

func TestStore_BuyMilkScenario(t *testing.T) {
	s, _ := setupStore(t)

	a, err := s.Create(buyMilk())
	require.NoError(t, err)
	assert.Equal(t, models.Stats{Total: 1, NotStarted: 1}, s.Stats())

	_, err = s.Complete(a.ID)
	require.NoError(t, err)
	assert.Equal(t, models.Stats{Total: 1, Completed: 1}, s.Stats())

	require.NoError(t, s.Delete(a.ID))
	assert.Equal(t, models.Stats{}, s.Stats())
}
