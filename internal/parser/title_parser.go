package parser

import (
	"regexp"
	"strings"
	"time"

	"github.com/balkashynov/taskdash/internal/models"
)

// ParsedTask represents a task parsed from natural language
type ParsedTask struct {
	Title   string
	Status  models.Status
	DueDate string
	Errors  []string
}

var (
	statusRegex = regexp.MustCompile(`(?:^|\s)\+([\p{L}_-]+)`)
	dueRegex    = regexp.MustCompile(`due:("[^"]*"|[^\s]+)`)
)

// ParseTitle extracts metadata from a task title using natural syntax
// Syntax: "Task title +doing due:tomorrow"
func ParseTitle(input string, policy DatePolicy, now time.Time) ParsedTask {
	result := ParsedTask{
		Title:  input,
		Errors: []string{},
	}

	// Extract status (+todo, +doing, +done)
	statusMatches := statusRegex.FindStringSubmatch(input)
	if len(statusMatches) > 1 {
		status, err := models.ParseStatus(statusMatches[1])
		if err != nil {
			result.Errors = append(result.Errors, "Invalid status '"+statusMatches[1]+"'. Use: todo, doing, done")
		} else {
			result.Status = status
		}
		// Remove from title
		input = statusRegex.ReplaceAllString(input, " ")
	}

	// Extract due date (due:3days, due:2025-03-31, due:"2 weeks")
	dueMatches := dueRegex.FindStringSubmatch(input)
	if len(dueMatches) > 1 {
		raw := strings.Trim(dueMatches[1], `"`)
		dueDate, err := ResolveDueDate(policy, raw, now)
		if err != nil {
			result.Errors = append(result.Errors, "Invalid due date '"+raw+"': "+err.Error())
		} else {
			result.DueDate = dueDate
		}
		// Remove from title
		input = dueRegex.ReplaceAllString(input, "")
	}

	// Clean up the title (remove extra spaces)
	result.Title = strings.Join(strings.Fields(input), " ")

	return result
}
