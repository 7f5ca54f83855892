package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search tasks by title, description or status",
	Long: `Search tasks with case insensitive substring matching.

The query is matched against the title, the description and the status
(both its stored name and its label). Combine with --status to narrow the
results further.`,
	Args: cobra.MinimumNArgs(1),
	RunE: withStore(func(cmd *cobra.Command, args []string, s *session) error {
		query := strings.Join(args, " ")

		filter, err := filterFlag(cmd)
		if err != nil {
			return err
		}

		tasks := s.store.Query(filter, query)

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return renderJSON(cmd.OutOrStdout(), taskList{Filter: filter, Query: query, Count: len(tasks), Tasks: tasks})
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Search results for '%s' (%d found):\n", query, len(tasks))
		if len(tasks) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No tasks found matching your search.")
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout())
		renderTaskTable(cmd.OutOrStdout(), tasks, s.store.Policy())
		return nil
	}),
}

func init() {
	searchCmd.Flags().StringP("status", "s", "", "Filter by status: all, todo, doing, done")
	searchCmd.Flags().Bool("json", false, "Output as JSON")
}
