package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"promptdeck/internal/adapters/tui/styles"
	"promptdeck/internal/domain"
	"promptdeck/internal/playback"
)

// EditorKeyMap defines key bindings for the segment editor
type EditorKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	MoveUp   key.Binding
	MoveDown key.Binding
	Add      key.Binding
	Delete   key.Binding
	Edit     key.Binding
	Prompt   key.Binding
	Back     key.Binding
}

var EditorKeys = EditorKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	MoveUp: key.NewBinding(
		key.WithKeys("K", "shift+up"),
		key.WithHelp("K", "move up"),
	),
	MoveDown: key.NewBinding(
		key.WithKeys("J", "shift+down"),
		key.WithHelp("J", "move down"),
	),
	Add: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "add segment"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "delete segment"),
	),
	Edit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "edit text"),
	),
	Prompt: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "prompt"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
}

// EditorModel is the model for the segment editor view. Edits go
// through the playback store so the prompter and remote surfaces see
// them immediately and the project autosaves.
type EditorModel struct {
	ViewState
	store   *playback.Store
	cursor  int
	editing bool
	content textarea.Model
}

// NewEditorModel creates a new editor view model
func NewEditorModel(store *playback.Store) *EditorModel {
	content := textarea.New()
	content.Placeholder = "Script text..."
	content.CharLimit = 0

	return &EditorModel{
		store:   store,
		content: content,
	}
}

// Init initializes the editor view
func (m *EditorModel) Init() tea.Cmd {
	m.cursor = 0
	m.editing = false
	m.ClearMessage()
	return nil
}

func (m *EditorModel) segments() []domain.Segment {
	p := m.store.Project()
	if p == nil {
		return nil
	}
	return p.Segments
}

// Update handles messages for the editor view
func (m *EditorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		m.content.SetWidth(msg.Width - 8)
		m.content.SetHeight(msg.Height - 12)
		return m, nil

	case tea.KeyMsg:
		if m.editing {
			return m.updateEditing(msg)
		}
		return m.updateList(msg)
	}

	return m, nil
}

func (m *EditorModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	segs := m.segments()
	m.ClearMessage()

	switch {
	case key.Matches(msg, EditorKeys.Back):
		return m, func() tea.Msg {
			return SwitchToBrowserMsg{}
		}

	case key.Matches(msg, EditorKeys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, EditorKeys.Down):
		if m.cursor < len(segs)-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, EditorKeys.MoveUp):
		if m.cursor > 0 && m.cursor < len(segs) {
			from := m.cursor
			m.store.EditSegments(func(p *domain.Project) {
				p.Segments[from-1], p.Segments[from] = p.Segments[from], p.Segments[from-1]
			})
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, EditorKeys.MoveDown):
		if m.cursor >= 0 && m.cursor < len(segs)-1 {
			from := m.cursor
			m.store.EditSegments(func(p *domain.Project) {
				p.Segments[from], p.Segments[from+1] = p.Segments[from+1], p.Segments[from]
			})
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, EditorKeys.Add):
		m.store.EditSegments(func(p *domain.Project) {
			p.AddSegment(domain.Segment{
				ID:   uuid.NewString(),
				Kind: domain.SegmentText,
			})
		})
		m.cursor = len(m.segments()) - 1
		return m, m.startEditing()

	case key.Matches(msg, EditorKeys.Delete):
		if m.cursor >= 0 && m.cursor < len(segs) {
			id := segs[m.cursor].ID
			m.store.EditSegments(func(p *domain.Project) {
				p.RemoveSegment(id)
			})
			if m.cursor >= len(m.segments()) {
				m.cursor = len(m.segments()) - 1
			}
			if m.cursor < 0 {
				m.cursor = 0
			}
		}
		return m, nil

	case key.Matches(msg, EditorKeys.Edit):
		if m.cursor >= 0 && m.cursor < len(segs) {
			if segs[m.cursor].Kind != domain.SegmentText {
				m.SetMessage("only text segments are editable here", true)
				return m, nil
			}
			return m, m.startEditing()
		}
		return m, nil

	case key.Matches(msg, EditorKeys.Prompt):
		p := m.store.Project()
		if p != nil {
			return m, func() tea.Msg {
				return OpenProjectMsg{ProjectID: p.ID}
			}
		}
		return m, nil
	}

	return m, nil
}

func (m *EditorModel) startEditing() tea.Cmd {
	segs := m.segments()
	if m.cursor < 0 || m.cursor >= len(segs) {
		return nil
	}
	m.editing = true
	m.content.SetValue(segs[m.cursor].Content)
	m.content.Focus()
	return textarea.Blink
}

func (m *EditorModel) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "esc" {
		m.editing = false
		m.content.Blur()

		idx := m.cursor
		text := m.content.Value()
		m.store.EditSegments(func(p *domain.Project) {
			if idx >= 0 && idx < len(p.Segments) {
				p.Segments[idx].Content = text
			}
		})
		return m, nil
	}

	var cmd tea.Cmd
	m.content, cmd = m.content.Update(msg)
	return m, cmd
}

// View renders the editor view
func (m *EditorModel) View() string {
	p := m.store.Project()
	if p == nil {
		return styles.App.Render("No project loaded")
	}

	var b strings.Builder

	b.WriteString(styles.Title.Render("Edit: " + p.Name))
	b.WriteString("\n\n")

	if m.editing {
		b.WriteString(styles.InputLabel.Render(fmt.Sprintf("Segment %d text:", m.cursor+1)))
		b.WriteString("\n")
		b.WriteString(m.content.View())
		b.WriteString("\n\n")
		b.WriteString(fmt.Sprintf("%s %s",
			styles.HelpKey.Render("esc"),
			styles.HelpDesc.Render("save and close"),
		))
		return styles.App.Render(b.String())
	}

	segs := p.Segments
	if len(segs) == 0 {
		b.WriteString(styles.MutedText.Render("No segments. Press n to add one."))
		b.WriteString("\n")
	}
	for i, seg := range segs {
		b.WriteString(m.renderSegment(seg, i, i == m.cursor))
		b.WriteString("\n")
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

func (m *EditorModel) renderSegment(seg domain.Segment, index int, selected bool) string {
	label := segmentLabel(seg)
	text := fmt.Sprintf("%2d. [%s] %s", index+1, seg.Kind, label)

	if selected {
		return styles.SegmentSelected.Render(text)
	}
	return styles.SegmentRow.Render(text)
}

func segmentLabel(seg domain.Segment) string {
	if seg.Kind == domain.SegmentText {
		line := seg.Content
		if i := strings.IndexByte(line, '\n'); i >= 0 {
			line = line[:i]
		}
		if line == "" {
			return "(empty)"
		}
		if len(line) > 50 {
			return line[:50] + "…"
		}
		return line
	}
	if seg.AssetPath != "" {
		return seg.AssetPath
	}
	return "(no asset)"
}

func (m *EditorModel) renderHelpLine() string {
	keys := []struct {
		key  string
		desc string
	}{
		{"j/k", "navigate"},
		{"J/K", "reorder"},
		{"n", "add"},
		{"d", "delete"},
		{"enter", "edit text"},
		{"p", "prompt"},
		{"esc", "back"},
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
