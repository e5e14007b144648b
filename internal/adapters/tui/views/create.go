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
	"promptdeck/internal/ports"
)

// CreateKeyMap defines key bindings for the create view
type CreateKeyMap struct {
	Submit key.Binding
	Cancel key.Binding
}

var CreateKeys = CreateKeyMap{
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "create"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
}

// CreateModel is the model for the new-project view
type CreateModel struct {
	ViewState
	repo      ports.ProjectRepository
	nameInput textinput.Model
}

// NewCreateModel creates a new create view model
func NewCreateModel(repo ports.ProjectRepository) *CreateModel {
	nameInput := textinput.New()
	nameInput.Placeholder = "Project name"
	nameInput.CharLimit = 100

	return &CreateModel{
		repo:      repo,
		nameInput: nameInput,
	}
}

// Reset clears the form for a fresh entry
func (m *CreateModel) Reset() {
	m.nameInput.SetValue("")
	m.nameInput.Focus()
	m.ClearMessage()
}

// Init initializes the create view
func (m *CreateModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the create view
func (m *CreateModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			return m, m.create()
		}
	}

	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return m, cmd
}

func (m *CreateModel) create() tea.Cmd {
	return func() tea.Msg {
		name := strings.TrimSpace(m.nameInput.Value())
		if name == "" {
			return CreateErrMsg{Err: fmt.Errorf("project name is required")}
		}

		cmd := commands.NewCreateProjectCommand(m.repo, name)
		result, err := cmd.Execute(context.Background())
		if err != nil {
			return CreateErrMsg{Err: err}
		}
		return CreateSuccessMsg{Message: result.Message, ProjectID: result.Project.ID}
	}
}

// CreateSuccessMsg indicates successful creation
type CreateSuccessMsg struct {
	Message   string
	ProjectID string
}

// CreateErrMsg indicates an error during creation
type CreateErrMsg struct {
	Err error
}

// View renders the create view
func (m *CreateModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("New Project"))
	b.WriteString("\n\n")

	b.WriteString(styles.InputLabel.Render("Name:"))
	b.WriteString("\n")
	b.WriteString(styles.InputFocused.Render(m.nameInput.View()))
	b.WriteString("\n\n")

	if m.Message != "" {
		if m.MessageErr {
			b.WriteString(styles.ErrorMsg.Render(m.Message))
		} else {
			b.WriteString(styles.Success.Render(m.Message))
		}
		b.WriteString("\n\n")
	}

	b.WriteString(fmt.Sprintf("%s %s  %s %s",
		styles.HelpKey.Render("enter"),
		styles.HelpDesc.Render("create"),
		styles.HelpKey.Render("esc"),
		styles.HelpDesc.Render("cancel"),
	))

	return styles.App.Render(b.String())
}
