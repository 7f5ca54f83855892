package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balkashynov/taskdash/internal/models"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

// resetFlags restores every flag to its default; cobra keeps parsed values
// between Execute calls on the same command tree
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// run executes taskdash against the sqlite database at dbPath
func run(t *testing.T, dbPath, stdin string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(append([]string{"--backend", "sqlite", "--data", dbPath, "--date-format", "iso"}, args...))

	err := rootCmd.Execute()
	return out.String(), err
}

func newDB(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "taskdash.db")
}

// listTasks returns ls --json output
func listTasks(t *testing.T, dbPath string, args ...string) taskList {
	t.Helper()
	out, err := run(t, dbPath, "", append([]string{"ls", "--json"}, args...)...)
	require.NoError(t, err)

	var list taskList
	require.NoError(t, json.Unmarshal([]byte(out), &list))
	return list
}

func addTask(t *testing.T, dbPath, title, description string) models.Task {
	t.Helper()
	_, err := run(t, dbPath, "", "add", title, "-d", description)
	require.NoError(t, err)

	list := listTasks(t, dbPath)
	require.NotEmpty(t, list.Tasks)
	return list.Tasks[len(list.Tasks)-1]
}

func TestAddAndList(t *testing.T) {
	db := newDB(t)

	out, err := run(t, db, "", "ls")
	require.NoError(t, err)
	assert.Contains(t, out, "No tasks found")

	out, err = run(t, db, "", "add", "Buy milk +doing due:2030-01-15", "-d", "At the store")
	require.NoError(t, err)
	assert.Contains(t, out, "Created task #")
	assert.Contains(t, out, "In progress")

	list := listTasks(t, db)
	require.Equal(t, 1, list.Count)
	task := list.Tasks[0]
	assert.Equal(t, "Buy milk", task.Title)
	assert.Equal(t, "At the store", task.Description)
	assert.Equal(t, models.StatusInProgress, task.Status)
	assert.Equal(t, "2030-01-15", task.DueDate)
	assert.Equal(t, models.FilterAll, list.Filter)

	out, err = run(t, db, "", "ls")
	require.NoError(t, err)
	assert.Contains(t, out, "Buy milk")
	assert.Contains(t, out, "2030-01-15")
}

func TestAddFlagsOverrideParsedTitle(t *testing.T) {
	db := newDB(t)

	_, err := run(t, db, "", "add", "Write report +doing", "-d", "Quarterly", "-s", "done", "--due", "2031-02-03")
	require.NoError(t, err)

	task := listTasks(t, db).Tasks[0]
	assert.Equal(t, "Write report", task.Title)
	assert.Equal(t, models.StatusDone, task.Status)
	assert.Equal(t, "2031-02-03", task.DueDate)
}

func TestAddValidation(t *testing.T) {
	db := newDB(t)

	_, err := run(t, db, "", "add", "No description")
	require.Error(t, err)
	assert.True(t, models.IsValidation(err))

	_, err = run(t, db, "", "add", "Bad due", "-d", "x", "--due", "31/12/2030")
	assert.ErrorContains(t, err, "error parsing due date")

	_, err = run(t, db, "", "add", "Bad status", "-d", "x", "-s", "someday")
	assert.ErrorContains(t, err, "unknown status")

	assert.Zero(t, listTasks(t, db).Count)
}

func TestStatusCommands(t *testing.T) {
	db := newDB(t)
	task := addTask(t, db, "Buy milk", "At the store")
	id := fmtID(task.ID)

	out, err := run(t, db, "", "done", id)
	require.NoError(t, err)
	assert.Contains(t, out, "Marked task #"+id+" as done")
	assert.Equal(t, models.StatusDone, listTasks(t, db).Tasks[0].Status)

	_, err = run(t, db, "", "undone", "#"+id)
	require.NoError(t, err)
	assert.Equal(t, models.StatusNotStarted, listTasks(t, db).Tasks[0].Status)

	out, err = run(t, db, "", "mark", id, "doing")
	require.NoError(t, err)
	assert.Contains(t, out, "In progress")
	assert.Equal(t, models.StatusInProgress, listTasks(t, db).Tasks[0].Status)

	_, err = run(t, db, "", "done", "42")
	assert.ErrorIs(t, err, models.ErrNotFound)

	_, err = run(t, db, "", "done", "abc")
	assert.ErrorContains(t, err, "invalid task ID 'abc'")
}

func TestEditWithFlags(t *testing.T) {
	db := newDB(t)
	_, err := run(t, db, "", "add", "Buy milk due:2030-01-15", "-d", "At the store")
	require.NoError(t, err)
	task := listTasks(t, db).Tasks[0]

	out, err := run(t, db, "", "edit", fmtID(task.ID), "--title", "Buy bread", "--clear-due")
	require.NoError(t, err)
	assert.Contains(t, out, "Updated task #")

	out, err = run(t, db, "", "show", fmtID(task.ID), "--json")
	require.NoError(t, err)
	var updated models.Task
	require.NoError(t, json.Unmarshal([]byte(out), &updated))
	assert.Equal(t, "Buy bread", updated.Title)
	assert.Equal(t, "At the store", updated.Description)
	assert.Empty(t, updated.DueDate)
	assert.Equal(t, task.CreatedAt, updated.CreatedAt)

	_, err = run(t, db, "", "edit", fmtID(task.ID), "--title", "  ")
	assert.True(t, models.IsValidation(err))
}

func TestShow(t *testing.T) {
	db := newDB(t)
	task := addTask(t, db, "Buy milk", "At the store")

	out, err := run(t, db, "", "show", fmtID(task.ID))
	require.NoError(t, err)
	assert.Contains(t, out, "Task #"+fmtID(task.ID)+": Buy milk")
	assert.Contains(t, out, "Description: At the store")
	assert.Contains(t, out, "Not started")
}

func TestRemove(t *testing.T) {
	db := newDB(t)
	task := addTask(t, db, "Buy milk", "At the store")
	id := fmtID(task.ID)

	out, err := run(t, db, "n\n", "rm", id)
	require.NoError(t, err)
	assert.Contains(t, out, "Cancelled.")
	assert.Equal(t, 1, listTasks(t, db).Count)

	out, err = run(t, db, "y\n", "rm", id)
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted task #"+id)
	assert.Zero(t, listTasks(t, db).Count)

	_, err = run(t, db, "", "rm", id, "--yes")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestSearchAndFilter(t *testing.T) {
	db := newDB(t)
	addTask(t, db, "Buy milk", "At the store")
	addTask(t, db, "Học tiếng Việt", "Đọc sách mỗi ngày")
	_, err := run(t, db, "", "add", "Pay rent +done", "-d", "Bank transfer")
	require.NoError(t, err)

	out, err := run(t, db, "", "search", "MILK")
	require.NoError(t, err)
	assert.Contains(t, out, "(1 found)")
	assert.Contains(t, out, "Buy milk")

	out, err = run(t, db, "", "search", "ĐỌC", "--json")
	require.NoError(t, err)
	var list taskList
	require.NoError(t, json.Unmarshal([]byte(out), &list))
	require.Equal(t, 1, list.Count)
	assert.Equal(t, "Học tiếng Việt", list.Tasks[0].Title)

	done := listTasks(t, db, "--status", "done")
	require.Equal(t, 1, done.Count)
	assert.Equal(t, "Pay rent", done.Tasks[0].Title)

	assert.Equal(t, 2, listTasks(t, db, "--status", "todo").Count)
	assert.Equal(t, 3, listTasks(t, db, "--status", "Tất cả").Count)
	assert.Equal(t, 1, listTasks(t, db, "--status", "todo", "--search", "store").Count)

	out, err = run(t, db, "", "ls", "--status", "doing")
	require.NoError(t, err)
	assert.Contains(t, out, "No tasks match the current filter.")

	_, err = run(t, db, "", "ls", "--status", "later")
	assert.Error(t, err)
}

func TestStats(t *testing.T) {
	db := newDB(t)
	addTask(t, db, "Buy milk", "At the store")
	_, err := run(t, db, "", "add", "Pay rent +done", "-d", "Bank transfer")
	require.NoError(t, err)
	_, err = run(t, db, "", "add", "Water plants +doing due:2001-01-01", "-d", "Balcony")
	require.NoError(t, err)

	out, err := run(t, db, "", "stats", "--json")
	require.NoError(t, err)
	var stats models.Stats
	require.NoError(t, json.Unmarshal([]byte(out), &stats))
	assert.Equal(t, models.Stats{Total: 3, Completed: 1, InProgress: 1, NotStarted: 1}, stats)

	out, err = run(t, db, "", "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Total")
	assert.Contains(t, out, "33%")
	assert.Contains(t, out, "1 overdue")
	assert.Contains(t, out, "Water plants")

	assert.Equal(t, "0%", percent(0, 0))
	assert.Equal(t, "50%", percent(1, 2))
}

func TestReport(t *testing.T) {
	db := newDB(t)
	addTask(t, db, "Buy milk", "At the store")

	path := filepath.Join(t.TempDir(), "report.csv")
	out, err := run(t, db, "", "report", "-f", "csv", "-o", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote csv report to "+path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "id,title,description,status"))
	assert.Contains(t, string(data), "Buy milk")

	out, err = run(t, db, "", "report")
	require.NoError(t, err)
	assert.Contains(t, out, `"total": 1`)

	_, err = run(t, db, "", "report", "-f", "pdf")
	assert.ErrorContains(t, err, "pdf output needs --output")

	_, err = run(t, db, "", "report", "-f", "xlsx")
	assert.ErrorContains(t, err, "unknown format")
}

func TestTheme(t *testing.T) {
	db := newDB(t)

	out, err := run(t, db, "", "theme")
	require.NoError(t, err)
	assert.Equal(t, "Theme: light\n", out)

	_, err = run(t, db, "", "theme", "toggle")
	require.NoError(t, err)

	out, err = run(t, db, "", "theme")
	require.NoError(t, err)
	assert.Equal(t, "Theme: dark\n", out)

	_, err = run(t, db, "", "theme", "LIGHT")
	require.NoError(t, err)
	out, err = run(t, db, "", "theme")
	require.NoError(t, err)
	assert.Equal(t, "Theme: light\n", out)

	_, err = run(t, db, "", "theme", "blue")
	assert.ErrorContains(t, err, "unknown theme")
}

func TestPersistsAcrossSessions(t *testing.T) {
	db := newDB(t)
	first := addTask(t, db, "Buy milk", "At the store")
	second := addTask(t, db, "Pay rent", "Bank transfer")

	list := listTasks(t, db)
	require.Equal(t, 2, list.Count)
	assert.Equal(t, []int64{first.ID, second.ID}, []int64{list.Tasks[0].ID, list.Tasks[1].ID})
	assert.Greater(t, second.ID, first.ID)
}

func TestHelpAndVersion(t *testing.T) {
	db := newDB(t)

	out, err := run(t, db, "", "help")
	require.NoError(t, err)
	assert.Contains(t, out, "COMMANDS:")
	assert.Contains(t, out, "taskdash add")

	out, err = run(t, db, "", "help", "rm")
	require.NoError(t, err)
	assert.Contains(t, out, "Delete a task")

	SetVersion("1.2.3", "abc", "today")
	out, err = run(t, db, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "taskdash 1.2.3 (commit abc, built today)\n", out)
}

func TestParseTaskID(t *testing.T) {
	tests := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{"1730535330120", 1730535330120, false},
		{"#42", 42, false},
		{" 7 ", 7, false},
		{"abc", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseTaskID(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "Buy milk", truncate("Buy milk", 10))
	assert.Equal(t, "Học t...", truncate("Học tiếng Việt", 8))
}

func fmtID(id int64) string {
	return strconv.FormatInt(id, 10)
}
