package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/balkashynov/taskdash/internal/models"
)

var listCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List tasks",
	Long:    "List tasks in creation order, optionally filtered by status and a search term",
	Args:    cobra.NoArgs,
	RunE: withStore(func(cmd *cobra.Command, args []string, s *session) error {
		filter, err := filterFlag(cmd)
		if err != nil {
			return err
		}
		term, _ := cmd.Flags().GetString("search")

		tasks := s.store.Query(filter, term)

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return renderJSON(cmd.OutOrStdout(), taskList{Filter: filter, Query: term, Count: len(tasks), Tasks: tasks})
		}

		if len(tasks) == 0 {
			if s.store.Len() == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No tasks found. Use 'taskdash add \"task title\" -d \"description\"' to create your first task.")
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "No tasks match the current filter.")
			}
			return nil
		}

		renderTaskTable(cmd.OutOrStdout(), tasks, s.store.Policy())
		return nil
	}),
}

// filterFlag reads --status as a filter; empty means all
func filterFlag(cmd *cobra.Command) (models.Filter, error) {
	raw, _ := cmd.Flags().GetString("status")
	if raw == "" {
		return models.FilterAll, nil
	}
	return models.ParseFilter(raw)
}

func init() {
	listCmd.Flags().StringP("status", "s", "", "Filter by status: all, todo, doing, done")
	listCmd.Flags().StringP("search", "q", "", "Only tasks whose title, description or status contains the term")
	listCmd.Flags().Bool("json", false, "Output as JSON")
}
