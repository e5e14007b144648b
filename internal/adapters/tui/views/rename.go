package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"promptdeck/internal/adapters/tui/styles"
	"promptdeck/internal/application/commands"
	"promptdeck/internal/domain"
	"promptdeck/internal/ports"
)

// RenameModel is the model for the rename-project view
type RenameModel struct {
	ViewState
	repo      ports.ProjectRepository
	target    domain.ProjectSummary
	nameInput textinput.Model
}

// NewRenameModel creates a new rename view model
func NewRenameModel(repo ports.ProjectRepository) *RenameModel {
	nameInput := textinput.New()
	nameInput.Placeholder = "New name"
	nameInput.CharLimit = 100

	return &RenameModel{
		repo:      repo,
		nameInput: nameInput,
	}
}

// SetTarget sets the project being renamed and prefills its name
func (m *RenameModel) SetTarget(s domain.ProjectSummary) {
	m.target = s
	m.nameInput.SetValue(s.Name)
	m.nameInput.CursorEnd()
	m.nameInput.Focus()
	m.ClearMessage()
}

// Init initializes the rename view
func (m *RenameModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the rename view
func (m *RenameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, CreateKeys.Cancel):
			return m, func() tea.Msg {
				return SwitchToBrowserMsg{}
			}

		case key.Matches(msg, CreateKeys.Submit):
			return m, m.rename()
		}
	}

	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return m, cmd
}

func (m *RenameModel) rename() tea.Cmd {
	return func() tea.Msg {
		name := strings.TrimSpace(m.nameInput.Value())
		if name == "" {
			return errMsg{fmt.Errorf("project name is required")}
		}

		cmd := commands.NewRenameProjectCommand(m.repo, m.target.ID, name)
		result, err := cmd.Execute(context.Background())
		if err != nil {
			return errMsg{err}
		}
		return successMsg{result.Message}
	}
}

// View renders the rename view
func (m *RenameModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Rename Project"))
	b.WriteString("\n\n")

	b.WriteString(styles.Subtitle.Render(m.target.Name))
	b.WriteString("\n\n")

	b.WriteString(styles.InputLabel.Render("New name:"))
	b.WriteString("\n")
	b.WriteString(styles.InputFocused.Render(m.nameInput.View()))
	b.WriteString("\n\n")

	if m.Message != "" && m.MessageErr {
		b.WriteString(styles.ErrorMsg.Render(m.Message))
		b.WriteString("\n\n")
	}

	b.WriteString(fmt.Sprintf("%s %s  %s %s",
		styles.HelpKey.Render("enter"),
		styles.HelpDesc.Render("rename"),
		styles.HelpKey.Render("esc"),
		styles.HelpDesc.Render("cancel"),
	))

	return styles.App.Render(b.String())
}
