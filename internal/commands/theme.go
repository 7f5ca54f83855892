package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/balkashynov/taskdash/internal/models"
)

var themeCmd = &cobra.Command{
	Use:       "theme [light|dark|toggle]",
	Short:     "Show or change the dashboard theme",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"light", "dark", "toggle"},
	RunE: withStore(func(cmd *cobra.Command, args []string, s *session) error {
		current := s.adapter.ReadTheme()
		if len(args) == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "Theme: %s\n", current)
			return nil
		}

		next := models.Theme(strings.ToLower(args[0]))
		if next == "toggle" {
			next = current.Toggle()
		}
		if err := s.adapter.WriteTheme(next); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Theme set to %s\n", next)
		return nil
	}),
}
