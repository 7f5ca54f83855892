package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"

	"github.com/balkashynov/taskdash/internal/models"
	"github.com/balkashynov/taskdash/internal/parser"
)

var (
	doneColor       = color.New(color.FgGreen)
	inProgressColor = color.New(color.FgYellow)
	notStartedColor = color.New(color.FgRed)
	errorColor      = color.New(color.FgRed, color.Bold)
	dimColor        = color.New(color.Faint)
)

// colorStatus renders a status padded to width, coloured like the dashboard
func colorStatus(s models.Status, width int) string {
	text := fmt.Sprintf("%-*s", width, s.Label())
	switch s {
	case models.StatusDone:
		return doneColor.Sprint(text)
	case models.StatusInProgress:
		return inProgressColor.Sprint(text)
	default:
		return notStartedColor.Sprint(text)
	}
}

// truncate shortens s to max runes
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}

// renderTaskTable prints tasks as a fixed-width table
func renderTaskTable(w io.Writer, tasks []models.Task, policy parser.DatePolicy) {
	// Format: ID(14) STATUS(12) TITLE(32) DUE(12) UPDATED
	fmt.Fprintf(w, "%-14s %-12s %-32s %-12s %s\n", "ID", "STATUS", "TITLE", "DUE", "UPDATED")
	fmt.Fprintln(w, strings.Repeat("-", 86))

	now := time.Now()
	for _, task := range tasks {
		due := task.DueDate
		if due != "" && task.Status != models.StatusDone && parser.IsOverdue(policy, due, now) {
			due = errorColor.Sprintf("%-12s", due)
		} else {
			due = fmt.Sprintf("%-12s", due)
		}

		fmt.Fprintf(w, "%-14d %s %-32s %s %s\n",
			task.ID,
			colorStatus(task.Status, 12),
			truncate(task.Title, 32),
			due,
			dimColor.Sprint(humanize.Time(task.UpdatedAt)))
	}
}

// renderTaskDetail prints every field of a task
func renderTaskDetail(w io.Writer, task models.Task, policy parser.DatePolicy) {
	fmt.Fprintf(w, "Task #%d: %s\n", task.ID, task.Title)
	fmt.Fprintf(w, "  Status:      %s\n", colorStatus(task.Status, 0))
	fmt.Fprintf(w, "  Description: %s\n", task.Description)
	if task.HasDueDate() {
		fmt.Fprintf(w, "  Due:         %s\n", parser.FormatDueDate(policy, task.DueDate, time.Now()))
	}
	fmt.Fprintf(w, "  Created:     %s (%s)\n", task.CreatedAt.Local().Format("2006-01-02 15:04"), humanize.Time(task.CreatedAt))
	fmt.Fprintf(w, "  Updated:     %s (%s)\n", task.UpdatedAt.Local().Format("2006-01-02 15:04"), humanize.Time(task.UpdatedAt))
}

// renderJSON writes v as indented JSON
func renderJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// taskList is the JSON shape of ls and search output
type taskList struct {
	Filter models.Filter `json:"filter"`
	Query  string        `json:"query,omitempty"`
	Count  int           `json:"count"`
	Tasks  []models.Task `json:"tasks"`
}
