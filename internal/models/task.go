package models

import (
	"strings"
	"time"
)

// Task represents a todo item
type Task struct {
	ID          int64     `json:"id"` // creation time, ms since epoch
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      Status    `json:"status"`
	DueDate     string    `json:"dueDate"` // empty when no due date is set
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Draft holds the user-editable fields of a task, used by create and update
type Draft struct {
	Title       string
	Description string
	Status      Status // empty means NotStarted on create, unchanged on update
	DueDate     string
}

// Normalize trims whitespace from all text fields
func (d Draft) Normalize() Draft {
	d.Title = strings.TrimSpace(d.Title)
	d.Description = strings.TrimSpace(d.Description)
	d.DueDate = strings.TrimSpace(d.DueDate)
	return d
}

// DraftOf returns the editable fields of an existing task
func DraftOf(t Task) Draft {
	return Draft{
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		DueDate:     t.DueDate,
	}
}

// HasDueDate reports whether a due date is set
func (t Task) HasDueDate() bool {
	return t.DueDate != ""
}

// Stats holds counts over the task collection
type Stats struct {
	Total      int `json:"total"`
	Completed  int `json:"completed"`
	InProgress int `json:"inProgress"`
	NotStarted int `json:"notStarted"`
}
