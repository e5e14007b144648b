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

// BrowserKeyMap defines key bindings for the project browser
type BrowserKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Open      key.Binding
	Edit      key.Binding
	New       key.Binding
	Rename    key.Binding
	Duplicate key.Binding
	Delete    key.Binding
	Filter    key.Binding
	Help      key.Binding
	Quit      key.Binding
}

var BrowserKeys = BrowserKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Open: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "open"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "edit"),
	),
	New: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "new"),
	),
	Rename: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "rename"),
	),
	Duplicate: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "duplicate"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "delete"),
	),
	Filter: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "filter"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// BrowserModel is the model for the project list view
type BrowserModel struct {
	ViewState
	repo      ports.ProjectRepository
	summaries []domain.ProjectSummary
	visible   []domain.ProjectSummary
	cursor    int
	loaded    bool

	filtering bool
	filter    textinput.Model
}

// NewBrowserModel creates a new browser model
func NewBrowserModel(repo ports.ProjectRepository) *BrowserModel {
	filter := textinput.New()
	filter.Placeholder = "Filter projects..."
	filter.CharLimit = 60

	return &BrowserModel{
		repo:   repo,
		filter: filter,
	}
}

// Init initializes the browser
func (m *BrowserModel) Init() tea.Cmd {
	return m.loadProjects
}

func (m *BrowserModel) loadProjects() tea.Msg {
	summaries, err := commands.NewListProjectsCommand(m.repo).Execute(context.Background())
	if err != nil {
		return errMsg{err}
	}
	return projectsLoadedMsg{summaries}
}

type projectsLoadedMsg struct {
	summaries []domain.ProjectSummary
}

// Update handles messages for the browser
func (m *BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case projectsLoadedMsg:
		m.summaries = msg.summaries
		m.loaded = true
		m.applyFilter()
		return m, nil

	case errMsg:
		m.SetMessage(msg.err.Error(), true)
		return m, nil

	case successMsg:
		m.SetMessage(msg.message, false)
		return m, m.loadProjects

	case tea.KeyMsg:
		if m.filtering {
			return m.updateFiltering(msg)
		}

		m.ClearMessage()

		switch {
		case key.Matches(msg, BrowserKeys.Quit):
			return m, tea.Quit

		case key.Matches(msg, BrowserKeys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil

		case key.Matches(msg, BrowserKeys.Down):
			if m.cursor < len(m.visible)-1 {
				m.cursor++
			}
			return m, nil

		case key.Matches(msg, BrowserKeys.Open):
			if s, ok := m.selected(); ok {
				return m, func() tea.Msg {
					return OpenProjectMsg{ProjectID: s.ID}
				}
			}
			return m, nil

		case key.Matches(msg, BrowserKeys.Edit):
			if s, ok := m.selected(); ok {
				return m, func() tea.Msg {
					return OpenProjectMsg{ProjectID: s.ID, Edit: true}
				}
			}
			return m, nil

		case key.Matches(msg, BrowserKeys.New):
			return m, func() tea.Msg {
				return SwitchToCreateMsg{}
			}

		case key.Matches(msg, BrowserKeys.Rename):
			if s, ok := m.selected(); ok {
				return m, func() tea.Msg {
					return SwitchToRenameMsg{Summary: s}
				}
			}
			return m, nil

		case key.Matches(msg, BrowserKeys.Duplicate):
			if s, ok := m.selected(); ok {
				return m, m.duplicateProject(s)
			}
			return m, nil

		case key.Matches(msg, BrowserKeys.Delete):
			if s, ok := m.selected(); ok {
				return m, func() tea.Msg {
					return SwitchToDeleteMsg{Summary: s}
				}
			}
			return m, nil

		case key.Matches(msg, BrowserKeys.Filter):
			m.filtering = true
			m.filter.SetValue("")
			m.filter.Focus()
			return m, textinput.Blink

		case key.Matches(msg, BrowserKeys.Help):
			return m, func() tea.Msg {
				return SwitchToHelpMsg{}
			}
		}
	}

	return m, nil
}

func (m *BrowserModel) updateFiltering(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.filtering = false
		m.filter.SetValue("")
		m.applyFilter()
		return m, nil
	case "enter":
		m.filtering = false
		return m, nil
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.applyFilter()
	return m, cmd
}

func (m *BrowserModel) applyFilter() {
	query := strings.ToLower(strings.TrimSpace(m.filter.Value()))
	if query == "" {
		m.visible = m.summaries
	} else {
		m.visible = nil
		for _, s := range m.summaries {
			if strings.Contains(strings.ToLower(s.Name), query) {
				m.visible = append(m.visible, s)
			}
		}
	}
	if m.cursor >= len(m.visible) {
		m.cursor = len(m.visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *BrowserModel) duplicateProject(s domain.ProjectSummary) tea.Cmd {
	return func() tea.Msg {
		cmd := commands.NewDuplicateProjectCommand(m.repo, s.ID, s.Name+" (copy)")
		result, err := cmd.Execute(context.Background())
		if err != nil {
			return errMsg{err}
		}
		return successMsg{result.Message}
	}
}

func (m *BrowserModel) selected() (domain.ProjectSummary, bool) {
	if m.cursor >= 0 && m.cursor < len(m.visible) {
		return m.visible[m.cursor], true
	}
	return domain.ProjectSummary{}, false
}

// View renders the browser
func (m *BrowserModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("PromptDeck"))
	b.WriteString("\n")
	b.WriteString(styles.Subtitle.Render("Teleprompter Projects"))
	b.WriteString("\n\n")

	if m.filtering || m.filter.Value() != "" {
		b.WriteString(m.filter.View())
		b.WriteString("\n\n")
	}

	switch {
	case !m.loaded:
		b.WriteString("Loading...")
		b.WriteString("\n")
	case len(m.visible) == 0:
		b.WriteString(styles.MutedText.Render("No projects. Press n to create one."))
		b.WriteString("\n")
	default:
		for i, s := range m.visible {
			b.WriteString(m.renderProject(s, i == m.cursor))
			b.WriteString("\n")
		}
	}

	if m.Message != "" {
		b.WriteString("\n")
		if m.MessageErr {
			b.WriteString(styles.ErrorMsg.Render(m.Message))
		} else {
			b.WriteString(styles.Success.Render(m.Message))
		}
	}

	b.WriteString("\n")
	b.WriteString(m.renderHelpLine())

	return styles.App.Render(b.String())
}

func (m *BrowserModel) renderProject(s domain.ProjectSummary, selected bool) string {
	meta := fmt.Sprintf("%d segments · %s", s.SegmentCount, s.ModifiedAt.Format("2006-01-02 15:04"))

	if selected {
		return styles.ProjectSelected.Render(s.Name) + "  " + styles.ProjectMeta.Render(meta)
	}
	return styles.ProjectRow.Render(s.Name) + "  " + styles.ProjectMeta.Render(meta)
}

func (m *BrowserModel) renderHelpLine() string {
	keys := []struct {
		key  string
		desc string
	}{
		{"j/k", "navigate"},
		{"enter", "prompt"},
		{"e", "edit"},
		{"n", "new"},
		{"d", "delete"},
		{"/", "filter"},
		{"?", "help"},
		{"q", "quit"},
	}

	var parts []string
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s %s",
			styles.HelpKey.Render(k.key),
			styles.HelpDesc.Render(k.desc),
		))
	}

	return strings.Join(parts, styles.HelpSeparator.String())
}

// Reload reloads the project list from storage
func (m *BrowserModel) Reload() tea.Cmd {
	m.loaded = false
	return m.loadProjects
}
