package commands

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-pkgz/lgr"
	"github.com/spf13/cobra"

	"github.com/balkashynov/taskdash/internal/config"
	"github.com/balkashynov/taskdash/internal/storage"
	"github.com/balkashynov/taskdash/internal/taskstore"
	"github.com/balkashynov/taskdash/internal/tui"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var cfg = config.Load()

var rootCmd = &cobra.Command{
	Use:   "taskdash",
	Short: "A terminal task dashboard",
	Long: `taskdash keeps a personal task list: create, edit, complete, filter,
search and delete tasks from the command line or the interactive dashboard.
Run without a command to open the dashboard.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogger()
	},
	RunE: withStore(func(cmd *cobra.Command, args []string, s *session) error {
		return tui.RunDashboard(s.store, s.adapter)
	}),
}

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Open the interactive dashboard",
	Args:  cobra.NoArgs,
	RunE: withStore(func(cmd *cobra.Command, args []string, s *session) error {
		return tui.RunDashboard(s.store, s.adapter)
	}),
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "taskdash %s (commit %s, built %s)\n", version, commit, date)
	},
}

// session is the opened storage and the task store loaded from it
type session struct {
	adapter *storage.Adapter
	store   *taskstore.Store
}

// openSession opens the configured backend and loads the task store
func openSession() (*session, error) {
	policy, err := cfg.DatePolicy()
	if err != nil {
		return nil, err
	}

	adapter, err := storage.Open(cfg.StorageOptions(lgr.Default()))
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	store := taskstore.New(adapter,
		taskstore.WithDatePolicy(policy),
		taskstore.WithLogger(lgr.Default()),
	)
	store.Load()

	return &session{adapter: adapter, store: store}, nil
}

// withStore wraps a command function to open the store first and close it after
func withStore(fn func(*cobra.Command, []string, *session) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}
		defer func() {
			if err := s.adapter.Close(); err != nil {
				lgr.Printf("[WARN] failed to close storage: %v", err)
			}
		}()
		return fn(cmd, args, s)
	}
}

func setupLogger() {
	if cfg.Debug {
		lgr.Setup(lgr.Debug, lgr.Msec, lgr.LevelBraces, lgr.Out(os.Stderr))
		return
	}
	lgr.Setup(lgr.Out(os.Stderr))
}

// parseTaskID accepts "1730535330120" or "#1730535330120"
func parseTaskID(arg string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimPrefix(strings.TrimSpace(arg), "#"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid task ID '%s'", arg)
	}
	return id, nil
}

// SetVersion sets the version information
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfg.Backend, "backend", cfg.Backend, "Storage backend: sqlite, redis, memory")
	flags.StringVar(&cfg.DataPath, "data", cfg.DataPath, "SQLite database file (default ~/.taskdash/taskdash.db)")
	flags.StringVar(&cfg.RedisAddr, "redis-addr", cfg.RedisAddr, "Redis address")
	flags.StringVar(&cfg.RedisPrefix, "redis-prefix", cfg.RedisPrefix, "Redis key prefix")
	flags.StringVar(&cfg.DateFormat, "date-format", cfg.DateFormat, "Due date format: iso (yyyy-mm-dd) or dmy (dd/mm/yyyy)")
	flags.BoolVar(&cfg.Debug, "debug", cfg.Debug, "Debug logging")

	// Add subcommands here
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(doneCmd)
	rootCmd.AddCommand(undoneCmd)
	rootCmd.AddCommand(markCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(themeCmd)
	rootCmd.AddCommand(uiCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.SetHelpCommand(helpCmd)
}
