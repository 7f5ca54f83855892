package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Status is the lifecycle state of a task
type Status string

const (
	StatusNotStarted Status = "NotStarted"
	StatusInProgress Status = "InProgress"
	StatusDone       Status = "Done"
)

// Statuses lists every status in display order
var Statuses = []Status{StatusNotStarted, StatusInProgress, StatusDone}

// statusAliases maps lowercased input to a status. The Vietnamese labels are the
// values written by the original browser dashboard.
var statusAliases = map[string]Status{
	"notstarted":  StatusNotStarted,
	"not-started": StatusNotStarted,
	"not_started": StatusNotStarted,
	"not started": StatusNotStarted,
	"todo":        StatusNotStarted,
	"chưa làm":    StatusNotStarted,

	"inprogress":  StatusInProgress,
	"in-progress": StatusInProgress,
	"in_progress": StatusInProgress,
	"in progress": StatusInProgress,
	"doing":       StatusInProgress,
	"đang làm":    StatusInProgress,

	"done":       StatusDone,
	"completed":  StatusDone,
	"complete":   StatusDone,
	"hoàn thành": StatusDone,
}

// ParseStatus converts user or stored input to a Status
func ParseStatus(input string) (Status, error) {
	s, ok := statusAliases[strings.ToLower(strings.TrimSpace(input))]
	if !ok {
		return "", fmt.Errorf("unknown status %q (use: todo, doing, done)", input)
	}
	return s, nil
}

// Valid reports whether s is one of the known statuses
func (s Status) Valid() bool {
	switch s {
	case StatusNotStarted, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// Label returns a human readable form of the status
func (s Status) Label() string {
	switch s {
	case StatusNotStarted:
		return "Not started"
	case StatusInProgress:
		return "In progress"
	case StatusDone:
		return "Done"
	}
	return string(s)
}

// UnmarshalJSON accepts canonical names and every alias, including legacy labels
func (s *Status) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == "" {
		*s = StatusNotStarted
		return nil
	}
	parsed, err := ParseStatus(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Filter selects tasks by status; FilterAll selects every task
type Filter string

const FilterAll Filter = "all"

// FilterFor returns the filter matching a single status
func FilterFor(s Status) Filter {
	return Filter(s)
}

// ParseFilter converts input such as "all", "done" or "Tất cả" to a Filter
func ParseFilter(input string) (Filter, error) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "", "all", "tất cả":
		return FilterAll, nil
	}
	s, err := ParseStatus(input)
	if err != nil {
		return "", err
	}
	return FilterFor(s), nil
}

// Matches reports whether a status passes the filter
func (f Filter) Matches(s Status) bool {
	return f == FilterAll || Status(f) == s
}

// Next cycles all → NotStarted → InProgress → Done → all
func (f Filter) Next() Filter {
	switch Status(f) {
	case StatusNotStarted:
		return FilterFor(StatusInProgress)
	case StatusInProgress:
		return FilterFor(StatusDone)
	case StatusDone:
		return FilterAll
	}
	return FilterFor(StatusNotStarted)
}

// Label returns the filter name for display
func (f Filter) Label() string {
	if f == FilterAll {
		return "All"
	}
	return Status(f).Label()
}
