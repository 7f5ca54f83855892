package commands

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/balkashynov/taskdash/internal/report"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Export statistics and tasks as JSON, CSV or PDF",
	Long: `Export a statistics report of the task list.

Formats:
  json  - stats and every task (default)
  csv   - one row per task
  pdf   - a summary table followed by the task table

Without --output the report is written to stdout.`,
	Args: cobra.NoArgs,
	RunE: withStore(func(cmd *cobra.Command, args []string, s *session) error {
		format, _ := cmd.Flags().GetString("format")
		output, _ := cmd.Flags().GetString("output")

		r := report.New(s.store.Snapshot(), s.store.Stats(), time.Now())
		data, err := report.Export(r, format)
		if err != nil {
			return err
		}

		if output == "" {
			if strings.EqualFold(format, "pdf") {
				return fmt.Errorf("pdf output needs --output")
			}
			_, err := cmd.OutOrStdout().Write(data)
			return err
		}

		if err := os.WriteFile(output, data, 0o644); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "📄 Wrote %s report to %s (%s, %d tasks)\n",
			strings.ToLower(format), output, humanize.Bytes(uint64(len(data))), r.Stats.Total)
		return nil
	}),
}

func init() {
	reportCmd.Flags().StringP("format", "f", "json", "Report format: "+strings.Join(report.Formats, ", "))
	reportCmd.Flags().StringP("output", "o", "", "Write the report to a file")
}
