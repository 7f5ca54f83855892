package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/balkashynov/taskdash/internal/models"
	"github.com/balkashynov/taskdash/internal/parser"
	"github.com/balkashynov/taskdash/internal/tui"
)

var addCmd = &cobra.Command{
	Use:   "add [task title]",
	Short: "Add a new task",
	Long: `Add a new task. Title and description are required.

Modes:
  Interactive: taskdash add -i (or just 'taskdash add' with no arguments)
  Quick: taskdash add "Task title" -d "What to do" (with optional flags)
  Smart parsing: taskdash add "Buy milk +doing due:tomorrow" -d "2 litres"

Smart parsing syntax:
  +status     - Status (todo, doing, done)
  due:3days   - Due date (date in the configured format, today, tomorrow, X days, X weeks)`,
	Args: cobra.ArbitraryArgs,
	RunE: withStore(func(cmd *cobra.Command, args []string, s *session) error {
		interactive, _ := cmd.Flags().GetBool("interactive")

		// If no args, go interactive
		if len(args) == 0 {
			interactive = true
		}

		now := time.Now()
		parsed := parser.ParseTitle(strings.Join(args, " "), s.store.Policy(), now)
		draft, err := addDraft(cmd, parsed, s.store.Policy(), now)
		if err != nil {
			return err
		}

		if len(parsed.Errors) > 0 {
			// Parsing errors, fall back to interactive with pre-filled data
			fmt.Fprintf(cmd.OutOrStdout(), "⚠️  Found issues with parsing: %s\n", strings.Join(parsed.Errors, ", "))
			fmt.Fprintln(cmd.OutOrStdout(), "Opening interactive mode for confirmation...")
			interactive = true
		}

		if interactive {
			task, err := tui.RunTaskForm(s.store, s.adapter.ReadTheme(), nil, draft)
			if err != nil {
				return err
			}
			if task == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "❌ Task creation cancelled.")
				return nil
			}
			printCreated(cmd, *task, s)
			return nil
		}

		task, err := s.store.Create(draft)
		if err != nil {
			return err
		}
		printCreated(cmd, task, s)
		return nil
	}),
}

// addDraft merges parsed title metadata with explicit flags; flags take precedence
func addDraft(cmd *cobra.Command, parsed parser.ParsedTask, policy parser.DatePolicy, now time.Time) (models.Draft, error) {
	draft := models.Draft{
		Title:   parsed.Title,
		Status:  parsed.Status,
		DueDate: parsed.DueDate,
	}

	draft.Description, _ = cmd.Flags().GetString("description")

	if flagStatus, _ := cmd.Flags().GetString("status"); flagStatus != "" {
		status, err := models.ParseStatus(flagStatus)
		if err != nil {
			return draft, err
		}
		draft.Status = status
	}

	if flagDue, _ := cmd.Flags().GetString("due"); flagDue != "" {
		due, err := parser.ResolveDueDate(policy, flagDue, now)
		if err != nil {
			return draft, fmt.Errorf("error parsing due date: %w", err)
		}
		draft.DueDate = due
	}

	return draft, nil
}

func printCreated(cmd *cobra.Command, task models.Task, s *session) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created task #%d: %s\n", task.ID, task.Title)
	fmt.Fprintf(out, "  Status: %s\n", colorStatus(task.Status, 0))
	if task.HasDueDate() {
		fmt.Fprintf(out, "  %s\n", parser.FormatDueDate(s.store.Policy(), task.DueDate, time.Now()))
	}
}

func init() {
	addCmd.Flags().BoolP("interactive", "i", false, "Interactive mode with TUI")
	addCmd.Flags().StringP("description", "d", "", "Task description")
	addCmd.Flags().StringP("status", "s", "", "Status: todo, doing, done")
	addCmd.Flags().String("due", "", "Due date: date in the configured format, today, tomorrow, X days, X weeks")
}
