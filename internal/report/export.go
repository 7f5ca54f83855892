// Package report renders the statistics view of the task list as JSON, CSV or PDF.
package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/balkashynov/taskdash/internal/models"
)

// Report is a point-in-time statistics view
type Report struct {
	GeneratedAt time.Time     `json:"generatedAt"`
	Stats       models.Stats  `json:"stats"`
	Tasks       []models.Task `json:"tasks"`
}

// New builds a report from a snapshot
func New(tasks []models.Task, stats models.Stats, now time.Time) Report {
	if tasks == nil {
		tasks = []models.Task{}
	}
	return Report{GeneratedAt: now.UTC(), Stats: stats, Tasks: tasks}
}

// Formats lists the supported export formats
var Formats = []string{"json", "csv", "pdf"}

// Export renders the report in the requested format
func Export(r Report, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case "json":
		return json.MarshalIndent(r, "", "  ")
	case "csv":
		return exportCSV(r)
	case "pdf":
		return exportPDF(r)
	default:
		return nil, fmt.Errorf("unknown format %s (use: %s)", format, strings.Join(Formats, ", "))
	}
}

func exportCSV(r Report) ([]byte, error) {
	var b bytes.Buffer
	w := csv.NewWriter(&b)
	_ = w.Write([]string{"id", "title", "description", "status", "due_date", "created_at", "updated_at"})
	for _, t := range r.Tasks {
		_ = w.Write([]string{
			strconv.FormatInt(t.ID, 10),
			t.Title,
			t.Description,
			string(t.Status),
			t.DueDate,
			t.CreatedAt.Format(time.RFC3339),
			t.UpdatedAt.Format(time.RFC3339),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

// statusColors mirrors the dashboard: green done, yellow in progress, red not started
var statusColors = map[models.Status][3]int{
	models.StatusDone:       {34, 197, 94},
	models.StatusInProgress: {245, 158, 11},
	models.StatusNotStarted: {239, 68, 68},
}

func exportPDF(r Report) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Task statistics", true)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, "Task statistics")
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 9)
	pdf.Cell(0, 6, "Generated "+r.GeneratedAt.Format("2006-01-02 15:04 MST"))
	pdf.Ln(10)

	// Summary table
	pdf.SetFont("Arial", "B", 11)
	summary := []struct {
		label string
		value int
	}{
		{"Total", r.Stats.Total},
		{"Completed", r.Stats.Completed},
		{"In progress", r.Stats.InProgress},
		{"Not started", r.Stats.NotStarted},
	}
	for _, s := range summary {
		pdf.CellFormat(45, 8, s.label, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 11)
	for _, s := range summary {
		pdf.CellFormat(45, 8, strconv.Itoa(s.value), "1", 0, "C", false, 0, "")
	}
	pdf.Ln(14)

	// Task table
	widths := []float64{60, 80, 25, 25}
	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(230, 230, 240)
	for i, h := range []string{"Title", "Description", "Status", "Due"} {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, t := range r.Tasks {
		pdf.SetTextColor(0, 0, 0)
		pdf.CellFormat(widths[0], 6, tr(truncate(t.Title, 38)), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 6, tr(truncate(t.Description, 52)), "1", 0, "L", false, 0, "")
		c := statusColors[t.Status]
		pdf.SetTextColor(c[0], c[1], c[2])
		pdf.CellFormat(widths[2], 6, t.Status.Label(), "1", 0, "L", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
		pdf.CellFormat(widths[3], 6, t.DueDate, "1", 0, "L", false, 0, "")
		pdf.Ln(-1)
	}
	if len(r.Tasks) == 0 {
		pdf.CellFormat(190, 6, "No tasks", "1", 0, "C", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
