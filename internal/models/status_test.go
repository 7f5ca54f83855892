package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		input string
		want  Status
	}{
		{"NotStarted", StatusNotStarted},
		{"todo", StatusNotStarted},
		{"  Chưa làm ", StatusNotStarted},
		{"in-progress", StatusInProgress},
		{"DOING", StatusInProgress},
		{"Đang làm", StatusInProgress},
		{"done", StatusDone},
		{"Hoàn thành", StatusDone},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseStatus(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseStatus("later")
	assert.Error(t, err)
}

func TestStatusJSON(t *testing.T) {
	var task Task
	err := json.Unmarshal([]byte(`{"id":1,"title":"a","description":"b","status":"Hoàn thành","dueDate":""}`), &task)
	require.NoError(t, err)
	assert.Equal(t, StatusDone, task.Status)

	out, err := json.Marshal(task.Status)
	require.NoError(t, err)
	assert.Equal(t, `"Done"`, string(out))

	err = json.Unmarshal([]byte(`{"status":"whenever"}`), &task)
	assert.Error(t, err)
}

func TestFilter(t *testing.T) {
	f, err := ParseFilter("Tất cả")
	require.NoError(t, err)
	assert.Equal(t, FilterAll, f)
	assert.True(t, f.Matches(StatusDone))

	f, err = ParseFilter("done")
	require.NoError(t, err)
	assert.True(t, f.Matches(StatusDone))
	assert.False(t, f.Matches(StatusInProgress))

	seen := []Filter{FilterAll}
	for i := 0; i < 4; i++ {
		seen = append(seen, seen[len(seen)-1].Next())
	}
	assert.Equal(t, []Filter{
		FilterAll,
		FilterFor(StatusNotStarted),
		FilterFor(StatusInProgress),
		FilterFor(StatusDone),
		FilterAll,
	}, seen)
}

func TestErrors(t *testing.T) {
	err := fmt.Errorf("complete: %w", &NotFoundError{ID: 7})
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.EqualError(t, err, "complete: task #7 not found")

	joined := errors.Join(
		&ValidationError{Field: "title", Reason: "required"},
		&ValidationError{Field: "description", Reason: "required"},
	)
	assert.True(t, IsValidation(joined))
	assert.False(t, IsValidation(err))

	readErr := &PersistenceReadError{Key: "tasks", Err: errors.New("boom")}
	assert.ErrorContains(t, readErr, `"tasks"`)
	assert.Equal(t, "boom", errors.Unwrap(readErr).Error())
}

func TestThemeToggle(t *testing.T) {
	assert.Equal(t, ThemeDark, ThemeLight.Toggle())
	assert.Equal(t, ThemeLight, ThemeDark.Toggle())
	assert.False(t, Theme("blue").Valid())
}
