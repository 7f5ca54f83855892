package commands

import (
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show [task-id]",
	Short: "Show all fields of a task",
	Args:  cobra.ExactArgs(1),
	RunE: withStore(func(cmd *cobra.Command, args []string, s *session) error {
		id, err := parseTaskID(args[0])
		if err != nil {
			return err
		}

		task, err := s.store.FindByID(id)
		if err != nil {
			return err
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return renderJSON(cmd.OutOrStdout(), task)
		}
		renderTaskDetail(cmd.OutOrStdout(), task, s.store.Policy())
		return nil
	}),
}

func init() {
	showCmd.Flags().Bool("json", false, "Output as JSON")
}
