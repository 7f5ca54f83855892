package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/balkashynov/taskdash/internal/models"
	"github.com/balkashynov/taskdash/internal/parser"
	"github.com/balkashynov/taskdash/internal/taskstore"
)

// ThemeStore reads and persists the dashboard theme
type ThemeStore interface {
	ReadTheme() models.Theme
	WriteTheme(theme models.Theme) error
}

// ListModel is the dashboard: stats header, filtered task table and details
type ListModel struct {
	store   *taskstore.Store
	themes  ThemeStore
	theme   models.Theme
	palette Palette

	width  int
	height int

	// Task data, re-queried after every mutation
	tasks        []models.Task
	stats        models.Stats
	selectedTask int // index in tasks slice

	// Filters
	filter      models.Filter
	search      textinput.Model
	searchQuery string

	// UI state
	focus         Focus
	form          AddTaskModel
	pendingDelete models.Task
	flash         string
	flashIsError  bool

	// Pagination
	currentPage  int
	tasksPerPage int
}

// Focus represents what UI element has focus
type Focus int

const (
	FocusTable Focus = iota
	FocusSearch
	FocusModal
	FocusForm
)

// NewListModel creates the dashboard over a loaded store
func NewListModel(store *taskstore.Store, themes ThemeStore) ListModel {
	theme := themes.ReadTheme()
	palette := PaletteFor(theme)

	search := textinput.New()
	search.Placeholder = "title, description or status"
	search.Prompt = "Search: "
	search.CharLimit = 100

	m := ListModel{
		store:        store,
		themes:       themes,
		theme:        theme,
		palette:      palette,
		filter:       models.FilterAll,
		search:       search,
		focus:        FocusTable,
		tasksPerPage: 10,
	}
	return m.refresh()
}

// Init initializes the model
func (m ListModel) Init() tea.Cmd {
	return nil
}

// refresh re-runs the query and keeps the selection in range
func (m ListModel) refresh() ListModel {
	m.tasks = m.store.Query(m.filter, m.searchQuery)
	m.stats = m.store.Stats()

	if m.selectedTask >= len(m.tasks) {
		m.selectedTask = len(m.tasks) - 1
	}
	if m.selectedTask < 0 {
		m.selectedTask = 0
	}
	m.currentPage = m.selectedTask / m.tasksPerPage
	return m
}

// selectID moves the selection to task id if it is visible
func (m ListModel) selectID(id int64) ListModel {
	for i, t := range m.tasks {
		if t.ID == id {
			m.selectedTask = i
			m.currentPage = i / m.tasksPerPage
			break
		}
	}
	return m
}

func (m ListModel) selected() (models.Task, bool) {
	if m.selectedTask < 0 || m.selectedTask >= len(m.tasks) {
		return models.Task{}, false
	}
	return m.tasks[m.selectedTask], true
}

func (m ListModel) setFlash(text string, isError bool) ListModel {
	m.flash = text
	m.flashIsError = isError
	return m
}

// Update handles messages
func (m ListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		// Height - stats(2) - header(4) - pagination(2) - help(2) - borders(2) = rows
		availableHeight := m.height - 12
		if availableHeight < 3 {
			availableHeight = 3
		}
		m.tasksPerPage = availableHeight
		m.currentPage = m.selectedTask / m.tasksPerPage
		m.form = m.form.setSize(msg.Width, msg.Height)
		return m, nil

	case formDoneMsg:
		m.focus = FocusTable
		m = m.refresh()
		if msg.task != nil {
			verb := "Created"
			if m.form.isEditMode {
				verb = "Updated"
			}
			m = m.setFlash(fmt.Sprintf("%s task #%d: %s", verb, msg.task.ID, msg.task.Title), false)
			m = m.selectID(msg.task.ID)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.focus {
		case FocusForm:
			var cmd tea.Cmd
			m.form, cmd = m.form.update(msg)
			return m, cmd
		case FocusSearch:
			return m.handleSearchKeys(msg)
		case FocusModal:
			return m.handleModalKeys(msg)
		}
		return m.handleTableKeys(msg)
	}

	if m.focus == FocusForm {
		var cmd tea.Cmd
		m.form, cmd = m.form.update(msg)
		return m, cmd
	}
	return m, nil
}

// handleTableKeys handles key input when the table has focus
func (m ListModel) handleTableKeys(msg tea.KeyMsg) (ListModel, tea.Cmd) {
	m.flash = ""

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "esc":
		// Clear an applied search first, otherwise quit
		if m.searchQuery != "" {
			m.searchQuery = ""
			m.search.SetValue("")
			return m.refresh(), nil
		}
		return m, tea.Quit

	case "up", "k":
		return m.moveSelectionUp(), nil

	case "down", "j":
		return m.moveSelectionDown(), nil

	case "left", "h":
		return m.prevPage(), nil

	case "right", "l":
		return m.nextPage(), nil

	case "tab":
		m.filter = m.filter.Next()
		m.selectedTask = 0
		return m.refresh(), nil

	case "/":
		m.focus = FocusSearch
		m.search.SetValue(m.searchQuery)
		m.search.CursorEnd()
		return m, m.search.Focus()

	case "a":
		m.form = NewAddTaskModel(m.store, m.palette, models.Draft{})
		return m.openForm()

	case "e":
		task, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.form = NewEditTaskModel(m.store, m.palette, task)
		return m.openForm()

	case "d":
		task, ok := m.selected()
		if !ok {
			return m, nil
		}
		done, err := m.store.Complete(task.ID)
		if err != nil {
			return m.setFlash(err.Error(), true), nil
		}
		m = m.refresh().selectID(done.ID)
		return m.setFlash(fmt.Sprintf("✅ Marked task #%d as done", done.ID), false), nil

	case "x":
		task, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.pendingDelete = task
		m.focus = FocusModal
		return m, nil

	case "t":
		next := m.theme.Toggle()
		if err := m.themes.WriteTheme(next); err != nil {
			return m.setFlash(err.Error(), true), nil
		}
		m.theme = next
		m.palette = PaletteFor(next)
		return m.setFlash("Theme: "+string(next), false), nil
	}

	return m, nil
}

func (m ListModel) openForm() (ListModel, tea.Cmd) {
	m.form.embedded = true
	m.form = m.form.setSize(m.width, m.height)
	m.focus = FocusForm
	return m, m.form.Init()
}

// handleSearchKeys handles key input when in search mode; the table follows as you type
func (m ListModel) handleSearchKeys(msg tea.KeyMsg) (ListModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		// Exit search and drop the term
		m.focus = FocusTable
		m.search.Blur()
		m.search.SetValue("")
		m.searchQuery = ""
		return m.refresh(), nil

	case "enter":
		// Keep the term and return to table
		m.focus = FocusTable
		m.search.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != m.searchQuery {
		m.searchQuery = m.search.Value()
		m.selectedTask = 0
		m = m.refresh()
	}
	return m, cmd
}

// handleModalKeys handles the delete confirmation
func (m ListModel) handleModalKeys(msg tea.KeyMsg) (ListModel, tea.Cmd) {
	switch msg.String() {
	case "y", "Y", "enter":
		m.focus = FocusTable
		task := m.pendingDelete
		if err := m.store.Delete(task.ID); err != nil {
			return m.setFlash(err.Error(), true), nil
		}
		m = m.refresh()
		return m.setFlash(fmt.Sprintf("🗑️  Deleted task #%d: %s", task.ID, task.Title), false), nil

	case "n", "N", "esc", "q":
		m.focus = FocusTable
		return m, nil

	case "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

// moveSelectionUp moves the selection up
func (m ListModel) moveSelectionUp() ListModel {
	if m.selectedTask > 0 {
		m.selectedTask--

		// Auto-pagination: if we scrolled above current page, go to previous page
		if m.selectedTask < m.currentPage*m.tasksPerPage && m.currentPage > 0 {
			m.currentPage--
		}
	}
	return m
}

// moveSelectionDown moves the selection down
func (m ListModel) moveSelectionDown() ListModel {
	if m.selectedTask < len(m.tasks)-1 {
		m.selectedTask++

		// Auto-pagination: if we scrolled below current page, go to next page
		currentPageEnd := min((m.currentPage+1)*m.tasksPerPage-1, len(m.tasks)-1)
		if m.selectedTask > currentPageEnd && m.currentPage < m.pageCount()-1 {
			m.currentPage++
		}
	}
	return m
}

func (m ListModel) pageCount() int {
	return (len(m.tasks) + m.tasksPerPage - 1) / m.tasksPerPage
}

// prevPage goes to previous page
func (m ListModel) prevPage() ListModel {
	if m.currentPage > 0 {
		m.currentPage--
		m.selectedTask = m.currentPage * m.tasksPerPage
	}
	return m
}

// nextPage goes to next page
func (m ListModel) nextPage() ListModel {
	if m.currentPage < m.pageCount()-1 {
		m.currentPage++
		m.selectedTask = m.currentPage * m.tasksPerPage
	}
	return m
}

// View renders the TUI
func (m ListModel) View() string {
	if m.focus == FocusForm {
		return m.form.View()
	}
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}
	if m.focus == FocusModal {
		return m.renderDeleteModal()
	}

	leftWidth := m.width * 60 / 100
	rightWidth := m.width - leftWidth - 5

	content := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.renderTaskTable(leftWidth),
		" ",
		m.renderTaskDetails(rightWidth),
	)

	var bottom string
	switch {
	case m.focus == FocusSearch:
		bottom = m.renderSearchBar()
	case m.flash != "":
		color := m.palette.Success
		if m.flashIsError {
			color = m.palette.Error
		}
		bottom = m.palette.fg(color).Width(m.width).Align(lipgloss.Center).Render(m.flash)
	default:
		bottom = m.renderHelpBar()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderStatsBar(),
		content,
		"",
		bottom,
	)
}

// renderStatsBar renders the counters and active filters
func (m ListModel) renderStatsBar() string {
	p := m.palette
	sep := p.fg(p.DisabledText).Render(" · ")

	parts := []string{
		p.fg(p.AccentBright).Bold(true).Render("taskdash"),
		p.fg(p.PrimaryText).Render(fmt.Sprintf("Total %d", m.stats.Total)),
		lipgloss.NewStyle().Foreground(p.StatusColor(models.StatusDone)).Render(fmt.Sprintf("Done %d", m.stats.Completed)),
		lipgloss.NewStyle().Foreground(p.StatusColor(models.StatusInProgress)).Render(fmt.Sprintf("In progress %d", m.stats.InProgress)),
		lipgloss.NewStyle().Foreground(p.StatusColor(models.StatusNotStarted)).Render(fmt.Sprintf("Not started %d", m.stats.NotStarted)),
	}

	filters := "Filter: " + m.filter.Label()
	if m.searchQuery != "" {
		filters += fmt.Sprintf(" · Search: %q", m.searchQuery)
	}

	return lipgloss.NewStyle().Padding(0, 1).Render(
		strings.Join(parts, sep) + "\n" + p.fg(p.SecondaryText).Italic(true).Render(filters),
	)
}

// renderTaskTable renders the left panel with the task table
func (m ListModel) renderTaskTable(width int) string {
	var b strings.Builder
	p := m.palette

	b.WriteString(p.fg(p.AccentBright).Bold(true).Render("📋 Tasks"))
	b.WriteString("\n\n")

	if len(m.tasks) == 0 {
		empty := "No tasks yet. Press a to add one."
		if m.stats.Total > 0 {
			empty = "No tasks match the current filter"
		}
		b.WriteString(p.fg(p.SecondaryText).Italic(true).Render(empty))
		return lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(p.Border)).
			Width(width).
			Render(b.String())
	}

	availableWidth := width - 4
	statusWidth := 12
	dueWidth := 10
	titleWidth := availableWidth - statusWidth - dueWidth - 4
	if titleWidth < 20 {
		titleWidth = 20
	}

	headers := fmt.Sprintf("%-*s %-*s %-*s", titleWidth, "TITLE", statusWidth, "STATUS", dueWidth, "DUE")
	b.WriteString(p.fg(p.AccentBright).Bold(true).Padding(0, 1).Render(headers))
	b.WriteString("\n\n")

	startIndex := m.currentPage * m.tasksPerPage
	endIndex := min(startIndex+m.tasksPerPage, len(m.tasks))
	now := time.Now()
	policy := m.store.Policy()

	for i := startIndex; i < endIndex; i++ {
		task := m.tasks[i]

		title := fmt.Sprintf("%-*s", titleWidth, truncate(task.Title, titleWidth))
		status := lipgloss.NewStyle().Foreground(p.StatusColor(task.Status)).Render(fmt.Sprintf("%-*s", statusWidth, task.Status.Label()))
		dueText, dueColor := m.dueCell(task, policy, now)
		due := p.fg(dueColor).Render(fmt.Sprintf("%-*s", dueWidth, dueText))

		row := title + " " + status + " " + due

		if i == m.selectedTask {
			b.WriteString(lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color(p.AccentMain)).
				Bold(true).
				Padding(0, 1).
				Render(row))
		} else {
			b.WriteString("  " + row)
		}
		b.WriteString("\n")
	}

	if m.tasksPerPage < len(m.tasks) {
		pageInfo := fmt.Sprintf("Page %d/%d (%d tasks)", m.currentPage+1, m.pageCount(), len(m.tasks))
		b.WriteString(p.fg(p.HelpText).Align(lipgloss.Center).Width(width - 2).MarginTop(1).Render(pageInfo))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(p.Border)).
		Width(width).
		Render(b.String())
}

// dueCell returns the short due label and its colour
func (m ListModel) dueCell(task models.Task, policy parser.DatePolicy, now time.Time) (string, string) {
	p := m.palette
	if !task.HasDueDate() {
		return "-", p.DisabledText
	}

	due, err := policy.Parse(task.DueDate)
	if err != nil {
		return task.DueDate, p.SecondaryText
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	days := int(due.Sub(today).Hours() / 24)
	switch {
	case task.Status == models.StatusDone:
		return task.DueDate, p.DisabledText
	case days < 0:
		return "OVERDUE", p.Error
	case days == 0:
		return "TODAY", p.Warning
	case days == 1:
		return "TOMORROW", p.Warning
	case days <= 7:
		return fmt.Sprintf("%dd", days), p.AccentBright
	}
	return task.DueDate, p.SecondaryText
}

// renderTaskDetails renders the right panel with task details
func (m ListModel) renderTaskDetails(width int) string {
	var b strings.Builder
	p := m.palette

	task, ok := m.selected()
	if !ok {
		b.WriteString(p.fg(p.AccentMain).Bold(true).Align(lipgloss.Center).Width(width).Render("taskdash"))
		b.WriteString("\n")
		b.WriteString(p.fg(p.SecondaryText).Italic(true).Align(lipgloss.Center).Width(width).MarginTop(2).Render("Select a task to view details"))
	} else {
		b.WriteString(p.fg(p.PrimaryText).Bold(true).Width(width).Render("📋 " + task.Title))
		b.WriteString("\n\n")

		b.WriteString("Status: ")
		b.WriteString(lipgloss.NewStyle().Foreground(p.StatusColor(task.Status)).Bold(true).Render(task.Status.Label()))
		b.WriteString("\n")

		if task.HasDueDate() {
			b.WriteString("Due: ")
			b.WriteString(p.fg(p.Warning).Render(parser.FormatDueDate(m.store.Policy(), task.DueDate, time.Now())))
			b.WriteString("\n")
		}

		b.WriteString(p.fg(p.DisabledText).Render(fmt.Sprintf("ID #%d · created %s · updated %s",
			task.ID,
			task.CreatedAt.Local().Format("02/01 15:04"),
			task.UpdatedAt.Local().Format("02/01 15:04"))))
		b.WriteString("\n")

		b.WriteString("\nDescription:\n")
		b.WriteString(p.fg(p.SecondaryText).Italic(true).Width(width - 2).Render(task.Description))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(p.Border)).
		Width(width).
		Render(b.String())
}

// renderSearchBar renders the search bar when active
func (m ListModel) renderSearchBar() string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.palette.PrimaryText)).
		Background(lipgloss.Color(m.palette.Border)).
		Padding(0, 1).
		Width(m.width - 2).
		Render(m.search.View())
}

// renderHelpBar renders the help bar with hotkey hints
func (m ListModel) renderHelpBar() string {
	helpText := "↑/↓ nav · ←/→ page · tab filter · / search · a add · e edit · d done · x delete · t theme · q quit"
	return m.palette.fg(m.palette.HelpText).Italic(true).Align(lipgloss.Center).Width(m.width).Render(helpText)
}

// renderDeleteModal asks for confirmation before deleting
func (m ListModel) renderDeleteModal() string {
	content := fmt.Sprintf("Delete task #%d?\n\n%s\n\ny: delete · n/esc: keep",
		m.pendingDelete.ID, truncate(m.pendingDelete.Title, 40))
	return placeModal(m.width, m.height, m.palette, content)
}

// truncate shortens s to max runes
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}
