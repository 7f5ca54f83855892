package commands

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/balkashynov/taskdash/internal/models"
	"github.com/balkashynov/taskdash/internal/parser"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show task counts per status",
	Long: `Show how many tasks exist in each status.

Example output:
  Status          Tasks  Share
  --------------  -----  -----
  Not started         2    40%
  In progress         1    20%
  Done                2    40%
  --------------  -----  -----
  Total               5   100%`,
	Args: cobra.NoArgs,
	RunE: withStore(func(cmd *cobra.Command, args []string, s *session) error {
		stats := s.store.Stats()

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return renderJSON(cmd.OutOrStdout(), stats)
		}

		if stats.Total == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No tasks yet.")
			return nil
		}

		tasks := s.store.Snapshot()
		displayStats(cmd.OutOrStdout(), stats, overdueCount(tasks, s.store.Policy(), time.Now()))

		fmt.Fprintln(cmd.OutOrStdout())
		renderTaskTable(cmd.OutOrStdout(), tasks, s.store.Policy())
		return nil
	}),
}

// overdueCount counts unfinished tasks whose due date has passed
func overdueCount(tasks []models.Task, policy parser.DatePolicy, now time.Time) int {
	n := 0
	for _, t := range tasks {
		if t.Status != models.StatusDone && t.HasDueDate() && parser.IsOverdue(policy, t.DueDate, now) {
			n++
		}
	}
	return n
}

// displayStats outputs the formatted statistics table
func displayStats(w io.Writer, stats models.Stats, overdue int) {
	labelWidth := 14
	countWidth := 5
	shareWidth := 5

	separator := strings.Repeat("-", labelWidth) + "  " + strings.Repeat("-", countWidth) + "  " + strings.Repeat("-", shareWidth)

	fmt.Fprintf(w, "%-*s  %*s  %*s\n", labelWidth, "Status", countWidth, "Tasks", shareWidth, "Share")
	fmt.Fprintln(w, separator)

	rows := []struct {
		status models.Status
		count  int
	}{
		{models.StatusNotStarted, stats.NotStarted},
		{models.StatusInProgress, stats.InProgress},
		{models.StatusDone, stats.Completed},
	}
	for _, row := range rows {
		fmt.Fprintf(w, "%s  %*d  %*s\n",
			colorStatus(row.status, labelWidth),
			countWidth, row.count,
			shareWidth, percent(row.count, stats.Total))
	}

	fmt.Fprintln(w, separator)
	fmt.Fprintf(w, "%-*s  %*d  %*s\n", labelWidth, "Total", countWidth, stats.Total, shareWidth, "100%")

	if overdue > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, errorColor.Sprintf("%s overdue", humanize.Comma(int64(overdue))))
	}
}

func percent(part, total int) string {
	if total == 0 {
		return "0%"
	}
	return fmt.Sprintf("%d%%", part*100/total)
}

func init() {
	statsCmd.Flags().Bool("json", false, "Output as JSON")
}
