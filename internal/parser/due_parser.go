package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DatePolicy describes the accepted due date format
type DatePolicy struct {
	Name    string // iso or dmy
	Layout  string // time layout used for formatting
	Example string
	pattern *regexp.Regexp
	order   [3]int // submatch index of year, month, day
}

var (
	// ISODate accepts yyyy-mm-dd
	ISODate = DatePolicy{
		Name:    "iso",
		Layout:  "2006-01-02",
		Example: "2025-03-31",
		pattern: regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`),
		order:   [3]int{1, 2, 3},
	}

	// DayMonthYear accepts dd/mm/yyyy, with one or two digit day and month
	DayMonthYear = DatePolicy{
		Name:    "dmy",
		Layout:  "02/01/2006",
		Example: "31/03/2025",
		pattern: regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`),
		order:   [3]int{3, 2, 1},
	}
)

// PolicyByName returns the policy registered under name
func PolicyByName(name string) (DatePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "iso", "yyyy-mm-dd":
		return ISODate, nil
	case "dmy", "dd/mm/yyyy":
		return DayMonthYear, nil
	}
	return DatePolicy{}, fmt.Errorf("unknown date format %q (use: iso, dmy)", name)
}

// Parse parses a calendar date under the policy
func (p DatePolicy) Parse(input string) (time.Time, error) {
	matches := p.pattern.FindStringSubmatch(strings.TrimSpace(input))
	if len(matches) != 4 {
		return time.Time{}, fmt.Errorf("invalid date format, use %s (e.g. %s)", p.Layout, p.Example)
	}

	year, _ := strconv.Atoi(matches[p.order[0]])
	month, _ := strconv.Atoi(matches[p.order[1]])
	day, _ := strconv.Atoi(matches[p.order[2]])

	if month < 1 || month > 12 {
		return time.Time{}, fmt.Errorf("month must be between 1 and 12")
	}
	if day < 1 || day > 31 {
		return time.Time{}, fmt.Errorf("day must be between 1 and 31")
	}

	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)

	// Check if date is valid (handles leap years, etc.)
	if date.Day() != day || date.Month() != time.Month(month) || date.Year() != year {
		return time.Time{}, fmt.Errorf("invalid date")
	}

	return date, nil
}

// Validate checks input under the policy; empty input means no due date
func (p DatePolicy) Validate(input string) error {
	if strings.TrimSpace(input) == "" {
		return nil
	}
	_, err := p.Parse(input)
	return err
}

// Format renders a date in the policy's layout
func (p DatePolicy) Format(t time.Time) string {
	return t.Format(p.Layout)
}

// ResolveDueDate turns user input into a due date string in the policy's format.
// Supported input:
// - a date in the policy's format (kept as typed)
// - today, tomorrow
// - X days / X weeks (e.g. "3 days", "1 week")
func ResolveDueDate(p DatePolicy, input string, now time.Time) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", nil
	}

	// Try the policy format first
	if _, err := p.Parse(input); err == nil {
		return input, nil
	}

	// Try relative time formats
	if due, err := parseRelativeDate(input, now); err == nil {
		return p.Format(due), nil
	}

	return "", fmt.Errorf("invalid date format. Use: %s, today, tomorrow, X days or X weeks", p.Layout)
}

var relativeRegex = regexp.MustCompile(`^(\d+)\s*(day|days|d|week|weeks|w)$`)

// parseRelativeDate parses relative formats like "3 days" or "2 weeks"
func parseRelativeDate(input string, now time.Time) (time.Time, error) {
	input = strings.ToLower(input)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	switch input {
	case "today":
		return today, nil
	case "tomorrow":
		return today.AddDate(0, 0, 1), nil
	}

	matches := relativeRegex.FindStringSubmatch(input)
	if len(matches) != 3 {
		return time.Time{}, fmt.Errorf("invalid relative time format")
	}

	amount, err := strconv.Atoi(matches[1])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid number")
	}

	switch matches[2] {
	case "day", "days", "d":
		if amount < 1 || amount > 365 { // Max 1 year in days
			return time.Time{}, fmt.Errorf("days must be between 1 and 365")
		}
		return today.AddDate(0, 0, amount), nil

	case "week", "weeks", "w":
		if amount < 1 || amount > 52 { // Max 1 year in weeks
			return time.Time{}, fmt.Errorf("weeks must be between 1 and 52")
		}
		return today.AddDate(0, 0, amount*7), nil
	}

	return time.Time{}, fmt.Errorf("unsupported time unit")
}

// FormatDueDate formats a stored due date for display relative to now
func FormatDueDate(p DatePolicy, dueDate string, now time.Time) string {
	if dueDate == "" {
		return ""
	}

	due, err := p.Parse(dueDate)
	if err != nil {
		// Stored under another policy; show it as typed
		return dueDate
	}

	// Calculate calendar days difference
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	daysDiff := int(due.Sub(today).Hours() / 24)

	switch {
	case daysDiff < 0:
		return fmt.Sprintf("OVERDUE (%s)", dueDate)
	case daysDiff == 0:
		return fmt.Sprintf("Due today (%s)", dueDate)
	case daysDiff == 1:
		return fmt.Sprintf("Due tomorrow (%s)", dueDate)
	case daysDiff <= 7:
		return fmt.Sprintf("Due %s (in %d days)", dueDate, daysDiff)
	}
	return fmt.Sprintf("Due %s", dueDate)
}

// IsOverdue reports whether the due date lies before today
func IsOverdue(p DatePolicy, dueDate string, now time.Time) bool {
	due, err := p.Parse(dueDate)
	if err != nil {
		return false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return due.Before(today)
}
