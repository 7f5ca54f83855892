package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/balkashynov/taskdash/internal/models"
	"github.com/balkashynov/taskdash/internal/parser"
	"github.com/balkashynov/taskdash/internal/tui"
)

var editCmd = &cobra.Command{
	Use:   "edit <task_id>",
	Short: "Edit an existing task",
	Long: `Edit an existing task.

Without flags, opens the same interface as 'taskdash add' with all fields
pre-populated with the current task data. With flags, only the given fields
change.

Usage:
  taskdash edit 1730535330120                     - Edit interactively
  taskdash edit 1730535330120 --title "Buy bread" - Change the title
  taskdash edit 1730535330120 --clear-due         - Remove the due date`,
	Args: cobra.ExactArgs(1),
	RunE: withStore(func(cmd *cobra.Command, args []string, s *session) error {
		id, err := parseTaskID(args[0])
		if err != nil {
			return err
		}

		task, err := s.store.FindByID(id)
		if err != nil {
			return err
		}

		flags := cmd.Flags()
		if !flags.Changed("title") && !flags.Changed("description") && !flags.Changed("status") &&
			!flags.Changed("due") && !flags.Changed("clear-due") {
			updated, err := tui.RunTaskForm(s.store, s.adapter.ReadTheme(), &task, models.DraftOf(task))
			if err != nil {
				return err
			}
			if updated == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "❌ Edit cancelled.")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated task #%d: %s\n", updated.ID, updated.Title)
			return nil
		}

		draft := models.DraftOf(task)
		if flags.Changed("title") {
			draft.Title, _ = flags.GetString("title")
		}
		if flags.Changed("description") {
			draft.Description, _ = flags.GetString("description")
		}
		if flags.Changed("status") {
			raw, _ := flags.GetString("status")
			status, err := models.ParseStatus(raw)
			if err != nil {
				return err
			}
			draft.Status = status
		}
		if flags.Changed("due") {
			raw, _ := flags.GetString("due")
			due, err := parser.ResolveDueDate(s.store.Policy(), raw, time.Now())
			if err != nil {
				return fmt.Errorf("error parsing due date: %w", err)
			}
			draft.DueDate = due
		}
		if clearDue, _ := flags.GetBool("clear-due"); clearDue {
			draft.DueDate = ""
		}

		updated, err := s.store.Update(id, draft)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Updated task #%d: %s\n", updated.ID, updated.Title)
		return nil
	}),
}

func init() {
	editCmd.Flags().String("title", "", "New title")
	editCmd.Flags().StringP("description", "d", "", "New description")
	editCmd.Flags().StringP("status", "s", "", "New status: todo, doing, done")
	editCmd.Flags().String("due", "", "New due date")
	editCmd.Flags().Bool("clear-due", false, "Remove the due date")
	editCmd.MarkFlagsMutuallyExclusive("due", "clear-due")
}
