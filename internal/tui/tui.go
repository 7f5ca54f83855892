package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/balkashynov/taskdash/internal/models"
	"github.com/balkashynov/taskdash/internal/taskstore"
)

// RunDashboard starts the interactive dashboard
func RunDashboard(store *taskstore.Store, themes ThemeStore) error {
	p := tea.NewProgram(NewListModel(store, themes), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// RunTaskForm starts the add form, or the edit form when editing is set.
// It returns the saved task, or nil when the form was cancelled.
func RunTaskForm(store *taskstore.Store, theme models.Theme, editing *models.Task, prefilled models.Draft) (*models.Task, error) {
	model := NewAddTaskModel(store, PaletteFor(theme), prefilled)
	if editing != nil {
		model = NewEditTaskModel(store, PaletteFor(theme), *editing)
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}

	if m, ok := finalModel.(AddTaskModel); ok && m.completed {
		return m.saved, nil
	}
	return nil, nil
}
