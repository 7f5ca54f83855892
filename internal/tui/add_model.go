package tui

import (
	"errors"
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

// Step represents the current step in the wizard
type Step int

const (
	StepTitle Step = iota
	StepDescription
	StepStatus
	StepDueDate
	StepSave
)

// input indexes; the status step uses a selector instead of a text input
const (
	inputTitle = iota
	inputDescription
	inputDueDate
)

// formDoneMsg is sent by an embedded form when it closes; task is nil on cancel
type formDoneMsg struct {
	task *models.Task
}

// AddTaskModel is the add/edit task form
type AddTaskModel struct {
	store   *taskstore.Store
	palette Palette
	now     func() time.Time

	currentStep Step
	inputs      []textinput.Model
	status      models.Status
	width       int
	height      int

	// Values the form opened with
	prefilled models.Draft

	// Edit mode
	isEditMode bool
	editTask   models.Task

	// Embedded forms report back to the dashboard instead of quitting
	embedded bool

	// State
	completed     bool
	cancelled     bool
	validationErr string
	saved         *models.Task

	// Save confirmation modal
	showSaveModal   bool
	saveModalChoice bool // true for Yes, false for No
}

// NewAddTaskModel creates a form for a new task, pre-filled from prefilled
func NewAddTaskModel(store *taskstore.Store, palette Palette, prefilled models.Draft) AddTaskModel {
	inputs := make([]textinput.Model, 3)
	for i := range inputs {
		inputs[i] = textinput.New()
		inputs[i].Width = 60
		inputs[i].TextStyle = palette.fg(palette.PrimaryText)
		inputs[i].PlaceholderStyle = palette.fg(palette.Placeholder)
		inputs[i].Cursor.Style = palette.fg(palette.AccentBright)
	}

	inputs[inputTitle].Placeholder = "Enter task title... (required)"
	inputs[inputTitle].CharLimit = 200
	inputs[inputTitle].Focus()

	inputs[inputDescription].Placeholder = "What needs to be done... (required)"
	inputs[inputDescription].CharLimit = 1000

	policy := store.Policy()
	inputs[inputDueDate].Placeholder = fmt.Sprintf("Due: %s, today, tomorrow, 3 days, 2 weeks (Enter to skip)", policy.Example)
	inputs[inputDueDate].CharLimit = 50

	inputs[inputTitle].SetValue(prefilled.Title)
	inputs[inputDescription].SetValue(prefilled.Description)
	inputs[inputDueDate].SetValue(prefilled.DueDate)

	status := prefilled.Status
	if !status.Valid() {
		status = models.StatusNotStarted
	}
	prefilled.Status = status

	return AddTaskModel{
		store:       store,
		palette:     palette,
		now:         time.Now,
		currentStep: StepTitle,
		inputs:      inputs,
		status:      status,
		prefilled:   prefilled,
	}
}

// NewEditTaskModel creates a form pre-populated with an existing task
func NewEditTaskModel(store *taskstore.Store, palette Palette, task models.Task) AddTaskModel {
	m := NewAddTaskModel(store, palette, models.DraftOf(task))
	m.isEditMode = true
	m.editTask = task
	return m
}

// Init initializes the model
func (m AddTaskModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (m AddTaskModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return m.update(msg)
}

func (m AddTaskModel) update(msg tea.Msg) (AddTaskModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.setSize(msg.Width, msg.Height), nil

	case tea.KeyMsg:
		// Handle save modal keys if modal is shown
		if m.showSaveModal {
			switch msg.String() {
			case "left", "right":
				m.saveModalChoice = !m.saveModalChoice
				return m, nil
			case "y", "Y":
				m.saveModalChoice = true
				return m.handleSaveChoice()
			case "n", "N":
				m.saveModalChoice = false
				return m.handleSaveChoice()
			case "enter":
				return m.handleSaveChoice()
			case "esc":
				// Close modal and go back to editing
				m.showSaveModal = false
				return m, nil
			case "ctrl+c":
				return m.cancel()
			}
			return m, nil
		}

		switch msg.String() {
		case "ctrl+c":
			return m.cancel()

		case "esc":
			if m.currentStep == StepSave {
				return m.prevStep()
			}
			if !m.hasChanges() {
				return m.cancel()
			}
			m.showSaveModal = true
			m.saveModalChoice = true
			return m, nil

		case "enter":
			return m.handleEnter()

		case "tab", "down":
			if err := m.checkStep(); err != "" {
				m.validationErr = err
				return m, nil
			}
			m.validationErr = ""
			return m.nextStep()

		case "shift+tab", "up":
			m.validationErr = ""
			return m.prevStep()
		}

		if m.currentStep == StepStatus {
			switch msg.String() {
			case "left", "h":
				m.status = cycleStatus(m.status, -1)
			case "right", "l", " ":
				m.status = cycleStatus(m.status, 1)
			}
			return m, nil
		}
	}

	// Update the current input
	var cmd tea.Cmd
	if idx := stepInput(m.currentStep); idx >= 0 {
		m.inputs[idx], cmd = m.inputs[idx].Update(msg)
	}
	return m, cmd
}

// setSize resizes the inputs to the terminal
func (m AddTaskModel) setSize(width, height int) AddTaskModel {
	m.width = width
	m.height = height

	maxInputWidth := (m.width * 2 / 3) - 10
	if maxInputWidth < 30 {
		maxInputWidth = 30
	}
	if maxInputWidth > 80 {
		maxInputWidth = 80
	}
	for i := range m.inputs {
		m.inputs[i].Width = maxInputWidth
	}
	return m
}

// stepInput maps a step to its text input, -1 for steps without one
func stepInput(step Step) int {
	switch step {
	case StepTitle:
		return inputTitle
	case StepDescription:
		return inputDescription
	case StepDueDate:
		return inputDueDate
	}
	return -1
}

func cycleStatus(s models.Status, delta int) models.Status {
	n := len(models.Statuses)
	for i, st := range models.Statuses {
		if st == s {
			return models.Statuses[((i+delta)%n+n)%n]
		}
	}
	return models.StatusNotStarted
}

func (m AddTaskModel) value(idx int) string {
	return strings.TrimSpace(m.inputs[idx].Value())
}

// checkStep validates the current step, returning a message or ""
func (m AddTaskModel) checkStep() string {
	switch m.currentStep {
	case StepTitle:
		if m.value(inputTitle) == "" {
			return "Task title is required"
		}
	case StepDescription:
		if m.value(inputDescription) == "" {
			return "Task description is required"
		}
	case StepDueDate:
		if _, err := parser.ResolveDueDate(m.store.Policy(), m.value(inputDueDate), m.now()); err != nil {
			return err.Error()
		}
	}
	return ""
}

// handleEnter processes the Enter key
func (m AddTaskModel) handleEnter() (AddTaskModel, tea.Cmd) {
	m.validationErr = ""

	if m.currentStep == StepSave {
		return m.createTask()
	}

	if err := m.checkStep(); err != "" {
		m.validationErr = err
		return m, nil
	}
	return m.nextStep()
}

// nextStep moves to the next step
func (m AddTaskModel) nextStep() (AddTaskModel, tea.Cmd) {
	if m.currentStep < StepSave {
		m = m.goTo(m.currentStep + 1)
	}
	return m, textinput.Blink
}

// prevStep moves to the previous step
func (m AddTaskModel) prevStep() (AddTaskModel, tea.Cmd) {
	if m.currentStep > StepTitle {
		m = m.goTo(m.currentStep - 1)
	}
	return m, textinput.Blink
}

func (m AddTaskModel) goTo(step Step) AddTaskModel {
	if idx := stepInput(m.currentStep); idx >= 0 {
		m.inputs[idx].Blur()
	}
	m.currentStep = step
	if idx := stepInput(m.currentStep); idx >= 0 {
		m.inputs[idx].Focus()
	}
	return m
}

// draft collects the form values, resolving relative due dates
func (m AddTaskModel) draft() (models.Draft, error) {
	due, err := parser.ResolveDueDate(m.store.Policy(), m.value(inputDueDate), m.now())
	if err != nil {
		return models.Draft{}, &models.ValidationError{Field: "due date", Reason: err.Error()}
	}
	return models.Draft{
		Title:       m.value(inputTitle),
		Description: m.value(inputDescription),
		Status:      m.status,
		DueDate:     due,
	}, nil
}

// hasChanges checks if the form differs from what it opened with
func (m AddTaskModel) hasChanges() bool {
	return m.value(inputTitle) != strings.TrimSpace(m.prefilled.Title) ||
		m.value(inputDescription) != strings.TrimSpace(m.prefilled.Description) ||
		m.value(inputDueDate) != strings.TrimSpace(m.prefilled.DueDate) ||
		m.status != m.prefilled.Status
}

// createTask saves the form through the store
func (m AddTaskModel) createTask() (AddTaskModel, tea.Cmd) {
	draft, err := m.draft()
	if err == nil {
		var task models.Task
		if m.isEditMode {
			task, err = m.store.Update(m.editTask.ID, draft)
		} else {
			task, err = m.store.Create(draft)
		}
		if err == nil {
			m.completed = true
			m.saved = &task
			return m, m.finish()
		}
	}

	m.validationErr = err.Error()
	var verr *models.ValidationError
	if errors.As(err, &verr) {
		m = m.goTo(fieldStep(verr.Field))
	}
	return m, nil
}

// fieldStep maps a validation error field to the step that edits it
func fieldStep(field string) Step {
	switch field {
	case "title":
		return StepTitle
	case "description":
		return StepDescription
	case "status":
		return StepStatus
	case "due date":
		return StepDueDate
	}
	return StepSave
}

func (m AddTaskModel) cancel() (AddTaskModel, tea.Cmd) {
	m.cancelled = true
	return m, m.finish()
}

// finish closes the form: quit when standalone, notify the dashboard when embedded
func (m AddTaskModel) finish() tea.Cmd {
	if !m.embedded {
		return tea.Quit
	}
	saved := m.saved
	return func() tea.Msg { return formDoneMsg{task: saved} }
}

// handleSaveChoice handles the save confirmation modal response
func (m AddTaskModel) handleSaveChoice() (AddTaskModel, tea.Cmd) {
	m.showSaveModal = false
	if m.saveModalChoice {
		return m.createTask()
	}
	return m.cancel()
}

// View renders the form
func (m AddTaskModel) View() string {
	if m.cancelled || m.completed {
		return ""
	}

	// Handle very small terminals
	if m.width < 85 {
		return m.renderSmallLayout()
	}

	rightWidth := 50
	leftWidth := m.width - rightWidth - 4

	leftStyle := lipgloss.NewStyle().
		Width(leftWidth).
		Height(m.height - 2).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.palette.Border)).
		Padding(1)

	rightStyle := lipgloss.NewStyle().
		Width(rightWidth).
		Height(m.height - 2).
		Padding(1)

	mainView := lipgloss.JoinHorizontal(
		lipgloss.Top,
		leftStyle.Render(m.renderWizard()),
		" ",
		rightStyle.Render(m.renderPreview()),
	)

	if m.showSaveModal {
		return m.renderSaveModal()
	}
	return mainView
}

var stepLabels = []string{"Title", "Description", "Status", "Due Date", "Save"}

// renderWizard renders the step-by-step wizard
func (m AddTaskModel) renderWizard() string {
	var b strings.Builder
	p := m.palette

	titleText := "📝 Create New Task"
	if m.isEditMode {
		titleText = fmt.Sprintf("📝 Edit Task #%d", m.editTask.ID)
	}
	b.WriteString(p.fg(p.AccentBright).Bold(true).Render(titleText))
	b.WriteString("\n\n")

	for i, label := range stepLabels {
		step := Step(i)
		if step == StepSave {
			b.WriteString("\n")
			label = "💾 " + label
		}

		switch {
		case step == m.currentStep:
			b.WriteString(p.fg(p.AccentBright).Render("▶ " + label))
		case m.stepHasValue(step) && (step < m.currentStep || m.isEditMode):
			b.WriteString(p.fg(p.Success).Render("✓ " + label))
		case step < m.currentStep:
			b.WriteString(p.fg(p.DisabledText).Render("  " + label))
		default:
			b.WriteString(p.fg(p.SecondaryText).Render("  " + label))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch m.currentStep {
	case StepTitle:
		b.WriteString("📋 Task Title\n")
		b.WriteString(m.inputs[inputTitle].View())
	case StepDescription:
		b.WriteString("📝 Description\n")
		b.WriteString(m.inputs[inputDescription].View())
	case StepStatus:
		b.WriteString("⚡ Status\n")
		b.WriteString(m.renderStatusSelector())
	case StepDueDate:
		b.WriteString("📅 Due Date\n")
		b.WriteString(m.inputs[inputDueDate].View())
	case StepSave:
		b.WriteString("💾 Save Task\n")
		b.WriteString("Press Enter to save task")
	}

	if m.validationErr != "" {
		b.WriteString("\n")
		b.WriteString(p.fg(p.Error).Bold(true).MarginTop(1).Render("❌ " + m.validationErr))
	}

	b.WriteString("\n\n")
	b.WriteString(p.fg(p.HelpText).Italic(true).Render("Enter: Next | Tab/↓: Next | Shift+Tab/↑: Back | ←/→: Status | Esc: Cancel"))

	return b.String()
}

func (m AddTaskModel) renderStatusSelector() string {
	var parts []string
	for _, s := range models.Statuses {
		style := lipgloss.NewStyle().Padding(0, 1)
		if s == m.status {
			style = style.Bold(true).Foreground(lipgloss.Color("#000000")).Background(m.palette.StatusColor(s))
		} else {
			style = style.Foreground(lipgloss.Color(m.palette.SecondaryText))
		}
		parts = append(parts, style.Render(s.Label()))
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, parts...)
}

// stepHasValue checks if a step has been filled with a value (not skipped)
func (m AddTaskModel) stepHasValue(step Step) bool {
	switch step {
	case StepTitle:
		return m.value(inputTitle) != ""
	case StepDescription:
		return m.value(inputDescription) != ""
	case StepStatus:
		return true
	case StepDueDate:
		return m.value(inputDueDate) != ""
	}
	return false
}

// renderPreview renders the live task card
func (m AddTaskModel) renderPreview() string {
	p := m.palette
	var card strings.Builder

	card.WriteString(p.fg(p.AccentMain).Bold(true).Render("taskdash"))
	card.WriteString("\n\n")

	title := m.value(inputTitle)
	if title == "" {
		title = "Untitled task"
	}
	card.WriteString(p.fg(p.PrimaryText).Bold(true).Render(title))
	card.WriteString("\n\n")

	card.WriteString(lipgloss.NewStyle().Foreground(p.StatusColor(m.status)).Render("● " + m.status.Label()))
	card.WriteString("\n")

	if due := m.value(inputDueDate); due != "" {
		if resolved, err := parser.ResolveDueDate(m.store.Policy(), due, m.now()); err == nil {
			due = parser.FormatDueDate(m.store.Policy(), resolved, m.now())
		}
		card.WriteString(p.fg(p.Warning).Render("📅 " + due))
		card.WriteString("\n")
	}

	if desc := m.value(inputDescription); desc != "" {
		card.WriteString("\n")
		card.WriteString(p.fg(p.SecondaryText).Italic(true).Width(40).Render(desc))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(p.AccentMain)).
		Padding(1, 2).
		Width(44).
		Render(card.String())
}

// renderSmallLayout renders the form for very small terminals
func (m AddTaskModel) renderSmallLayout() string {
	width := m.width - 2
	if width < 20 {
		width = 20
	}
	style := lipgloss.NewStyle().
		Width(width).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.palette.Border)).
		Padding(1)

	if m.showSaveModal {
		return m.renderSaveModal()
	}
	return style.Render(m.renderWizard())
}

// renderSaveModal renders the save confirmation modal overlay
func (m AddTaskModel) renderSaveModal() string {
	p := m.palette
	var content strings.Builder
	content.WriteString("Save changes?\n\n")

	yesStyle := lipgloss.NewStyle().Padding(0, 2)
	noStyle := lipgloss.NewStyle().Padding(0, 2)
	if m.saveModalChoice {
		yesStyle = yesStyle.Background(lipgloss.Color(p.AccentBright)).Foreground(lipgloss.Color("#000000")).Bold(true)
	} else {
		noStyle = noStyle.Background(lipgloss.Color(p.Error)).Foreground(lipgloss.Color("#FFFFFF")).Bold(true)
	}

	content.WriteString(lipgloss.JoinHorizontal(lipgloss.Center, yesStyle.Render("Yes"), "   ", noStyle.Render("No")))
	content.WriteString("\n\n")
	content.WriteString("← → or Y/N to choose, Enter to confirm\nEsc to cancel")

	return placeModal(m.width, m.height, p, content.String())
}

// placeModal centres a bordered box on the screen
func placeModal(width, height int, p Palette, content string) string {
	modal := lipgloss.NewStyle().
		Width(50).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(p.AccentBright)).
		Background(lipgloss.Color(p.CardBackground)).
		Foreground(lipgloss.Color(p.PrimaryText)).
		Padding(1).
		Align(lipgloss.Center).
		Render(content)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, modal)
}
