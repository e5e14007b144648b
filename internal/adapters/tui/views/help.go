package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"promptdeck/internal/adapters/tui/styles"
)

// HelpKeyMap defines key bindings for the help view
type HelpKeyMap struct {
	Close key.Binding
}

var HelpKeys = HelpKeyMap{
	Close: key.NewBinding(
		key.WithKeys("esc", "q", "?"),
		key.WithHelp("esc/q/?", "close"),
	),
}

// HelpModel is the model for the help view
type HelpModel struct {
	width  int
	height int
}

// NewHelpModel creates a new help view model
func NewHelpModel() *HelpModel {
	return &HelpModel{}
}

// Init initializes the help view
func (m *HelpModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the help view
func (m *HelpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, HelpKeys.Close) {
			return m, func() tea.Msg {
				return SwitchToBrowserMsg{}
			}
		}
	}

	return m, nil
}

// View renders the help view
func (m *HelpModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("PromptDeck Help"))
	b.WriteString("\n\n")

	b.WriteString(styles.Subtitle.Render("Terminal Teleprompter"))
	b.WriteString("\n\n")

	b.WriteString(styles.InputLabel.Render("Projects"))
	b.WriteString("\n")
	b.WriteString(helpLine("j / k / ↑ / ↓", "Move up/down"))
	b.WriteString(helpLine("Enter", "Open in prompter"))
	b.WriteString(helpLine("e", "Edit segments"))
	b.WriteString(helpLine("n", "New project"))
	b.WriteString(helpLine("r", "Rename project"))
	b.WriteString(helpLine("c", "Duplicate project"))
	b.WriteString(helpLine("d", "Delete project"))
	b.WriteString(helpLine("/", "Filter list"))
	b.WriteString("\n")

	b.WriteString(styles.InputLabel.Render("Prompter"))
	b.WriteString("\n")
	b.WriteString(helpLine("Space", "Play / pause"))
	b.WriteString(helpLine("s", "Stop"))
	b.WriteString(helpLine("h / l / ← / →", "Previous / next segment"))
	b.WriteString(helpLine("+ / -", "Speed up / down"))
	b.WriteString(helpLine("m", "Toggle mirror"))
	b.WriteString(helpLine("r", "Reset position"))
	b.WriteString(helpLine("g", "Go live / exit live"))
	b.WriteString("\n")

	b.WriteString(styles.InputLabel.Render("General"))
	b.WriteString("\n")
	b.WriteString(helpLine("?", "Toggle help"))
	b.WriteString(helpLine("q / Ctrl+C", "Quit"))
	b.WriteString("\n\n")

	b.WriteString(styles.InputLabel.Render("Remote Control"))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("  Run `promptdeck-cli serve` and open the printed URL"))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("  on a phone in the same network to control playback."))
	b.WriteString("\n\n")

	b.WriteString(styles.HelpDesc.Render("Press "))
	b.WriteString(styles.HelpKey.Render("esc"))
	b.WriteString(styles.HelpDesc.Render(" or "))
	b.WriteString(styles.HelpKey.Render("?"))
	b.WriteString(styles.HelpDesc.Render(" to close"))

	return styles.App.Render(b.String())
}

func helpLine(key, desc string) string {
	return "  " + styles.HelpKey.Render(padRight(key, 20)) + styles.HelpDesc.Render(desc) + "\n"
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}

// SetSize updates the view dimensions
func (m *HelpModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}
