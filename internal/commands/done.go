package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/balkashynov/taskdash/internal/models"
)

var doneCmd = &cobra.Command{
	Use:   "done [task-id]",
	Short: "Mark a task as completed",
	Args:  cobra.ExactArgs(1),
	RunE: withStore(func(cmd *cobra.Command, args []string, s *session) error {
		id, err := parseTaskID(args[0])
		if err != nil {
			return err
		}

		task, err := s.store.Complete(id)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "✅ Marked task #%d as done: %s\n", task.ID, task.Title)
		return nil
	}),
}

var undoneCmd = &cobra.Command{
	Use:   "undone [task-id]",
	Short: "Mark a task back to not started",
	Args:  cobra.ExactArgs(1),
	RunE: withStore(func(cmd *cobra.Command, args []string, s *session) error {
		id, err := parseTaskID(args[0])
		if err != nil {
			return err
		}

		task, err := s.store.SetStatus(id, models.StatusNotStarted)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "↩️  Marked task #%d back to todo: %s\n", task.ID, task.Title)
		return nil
	}),
}

var markCmd = &cobra.Command{
	Use:   "mark [task-id] [status]",
	Short: "Set the status of a task (todo, doing, done)",
	Args:  cobra.ExactArgs(2),
	RunE: withStore(func(cmd *cobra.Command, args []string, s *session) error {
		id, err := parseTaskID(args[0])
		if err != nil {
			return err
		}
		status, err := models.ParseStatus(args[1])
		if err != nil {
			return err
		}

		task, err := s.store.SetStatus(id, status)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Task #%d is now %s: %s\n", task.ID, colorStatus(task.Status, 0), task.Title)
		return nil
	}),
}
