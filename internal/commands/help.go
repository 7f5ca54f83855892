package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

var helpCmd = &cobra.Command{
	Use:   "help [command]",
	Short: "Show comprehensive help for taskdash",
	Long:  `Display detailed help for all taskdash commands and flags.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) > 0 {
			target, _, err := rootCmd.Find(args)
			if err != nil || target == rootCmd {
				return fmt.Errorf("unknown help topic %q", args)
			}
			return target.Help()
		}
		showCustomHelp(cmd.OutOrStdout())
		return nil
	},
}

func showCustomHelp(w io.Writer) {
	fmt.Fprint(w, `
 _            _       _           _
| |_ __ _ ___| | ____| | __ _ ___| |__
| __/ _`+"`"+` / __| |/ / _`+"`"+` |/ _`+"`"+` / __| '_ \
| || (_| \__ \   < (_| | (_| \__ \ | | |
 \__\__,_|___/_|\_\__,_|\__,_|___/_| |_|

taskdash - terminal task dashboard

COMMANDS:

  (no command) / ui       Open the interactive dashboard

    Quick actions:
      ↑/↓ or k/j    Navigate tasks
      ←/→           Previous/next page
      tab           Cycle status filter (All, Not started, In progress, Done)
      /             Search title, description and status
      a             Add a task
      e             Edit selected task
      d             Mark selected task done
      x             Delete selected task (asks for confirmation)
      t             Toggle light/dark theme
      esc/q         Quit

  add <title>             Create a new task with smart parsing
    -d, --description     Task description (required)
    -s, --status          Status: todo|doing|done
    --due                 Due date (yyyy-mm-dd, today, tomorrow, 3 days, 2 weeks)
    -i, --interactive     Open the add form

    Smart syntax:
      +status       Set status (todo/doing/done)
      due:3days     Set due date (3 days from now)

    Example:
      taskdash add "Buy milk +doing due:tomorrow" -d "2 litres, semi-skimmed"

  ls                      List tasks
    -s, --status          Filter by status: all|todo|doing|done
    -q, --search          Filter by search term
    --json                JSON output

  search <query>          Search tasks by title, description or status
  show <id>               Show every field of a task
  edit <id>               Edit a task (form, or --title/--description/--status/--due/--clear-due)
  done <id>               Mark task as completed
  undone <id>             Mark task as not started
  mark <id> <status>      Set any status
  rm <id>                 Delete a task (-y skips the prompt)

  stats                   Task counts per status
  report                  Export stats and tasks
    -f, --format          json|csv|pdf
    -o, --output          Output file

  theme [light|dark|toggle]  Show or change the dashboard theme
  version                 Print version information
  help                    Show this help

GLOBAL FLAGS:
  --backend               sqlite|redis|memory (env TASKDASH_BACKEND)
  --data                  SQLite database file (env TASKDASH_DATA)
  --redis-addr            Redis address (env TASKDASH_REDIS_ADDR)
  --date-format           iso|dmy (env TASKDASH_DATE_FORMAT)
  --debug                 Debug logging (env TASKDASH_DEBUG)

`)
}
