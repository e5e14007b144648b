package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"promptdeck/internal/adapters/tui/styles"
	"promptdeck/internal/domain"
	"promptdeck/internal/playback"
	"promptdeck/internal/render"
)

// PrompterKeyMap defines key bindings for the prompter view
type PrompterKeyMap struct {
	PlayPause key.Binding
	Stop      key.Binding
	Next      key.Binding
	Prev      key.Binding
	Faster    key.Binding
	Slower    key.Binding
	Mirror    key.Binding
	Reset     key.Binding
	Live      key.Binding
	Back      key.Binding
}

var PrompterKeys = PrompterKeyMap{
	PlayPause: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("space", "play/pause"),
	),
	Stop: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "stop"),
	),
	Next: key.NewBinding(
		key.WithKeys("l", "right"),
		key.WithHelp("l/→", "next segment"),
	),
	Prev: key.NewBinding(
		key.WithKeys("h", "left"),
		key.WithHelp("h/←", "prev segment"),
	),
	Faster: key.NewBinding(
		key.WithKeys("+", "="),
		key.WithHelp("+", "faster"),
	),
	Slower: key.NewBinding(
		key.WithKeys("-"),
		key.WithHelp("-", "slower"),
	),
	Mirror: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "mirror"),
	),
	Reset: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reset"),
	),
	Live: key.NewBinding(
		key.WithKeys("g"),
		key.WithHelp("g", "go/exit live"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
}

const speedStep = 0.1

// SnapshotMsg carries a playback snapshot into the view loop.
type SnapshotMsg struct {
	Snapshot playback.Snapshot
}

// PrompterModel is the model for the live prompter view. It holds no
// playback state of its own: keys dispatch to the store and the view
// renders whatever snapshot last arrived.
type PrompterModel struct {
	ViewState
	store    *playback.Store
	snapshot playback.Snapshot
}

// NewPrompterModel creates a new prompter view model
func NewPrompterModel(store *playback.Store) *PrompterModel {
	return &PrompterModel{store: store}
}

// Init initializes the prompter view
func (m *PrompterModel) Init() tea.Cmd {
	m.snapshot = playback.Snapshot{Status: m.store.Status(), Offset: m.store.Offset()}
	return nil
}

// Update handles messages for the prompter view
func (m *PrompterModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case SnapshotMsg:
		m.snapshot = msg.Snapshot
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, PrompterKeys.Back):
			return m, func() tea.Msg {
				return SwitchToBrowserMsg{}
			}

		case key.Matches(msg, PrompterKeys.PlayPause):
			if m.snapshot.Status.IsPlaying && !m.snapshot.Status.IsPaused {
				m.store.Pause()
			} else {
				m.store.Play()
			}
			return m, nil

		case key.Matches(msg, PrompterKeys.Stop):
			m.store.Stop()
			return m, nil

		case key.Matches(msg, PrompterKeys.Next):
			m.store.NextSegment()
			return m, nil

		case key.Matches(msg, PrompterKeys.Prev):
			m.store.PrevSegment()
			return m, nil

		case key.Matches(msg, PrompterKeys.Faster):
			m.store.SetSpeed(m.snapshot.Status.Speed + speedStep)
			return m, nil

		case key.Matches(msg, PrompterKeys.Slower):
			m.store.SetSpeed(m.snapshot.Status.Speed - speedStep)
			return m, nil

		case key.Matches(msg, PrompterKeys.Mirror):
			m.store.ToggleMirror()
			return m, nil

		case key.Matches(msg, PrompterKeys.Reset):
			m.store.ResetPosition()
			return m, nil

		case key.Matches(msg, PrompterKeys.Live):
			if m.snapshot.Status.IsLive {
				m.store.ExitLive()
			} else {
				m.store.GoLive()
			}
			return m, nil
		}
	}

	return m, nil
}

// View renders the prompter view
func (m *PrompterModel) View() string {
	p := m.store.Project()
	if p == nil {
		return styles.App.Render("No project loaded")
	}

	st := m.snapshot.Status

	var b strings.Builder
	b.WriteString(m.renderHeader(p, st))
	b.WriteString("\n")
	b.WriteString(m.renderBody(p, st))
	b.WriteString("\n")
	b.WriteString(m.renderStatusBar(st))

	return b.String()
}

func (m *PrompterModel) renderHeader(p *domain.Project, st domain.PlaybackStatus) string {
	left := styles.Title.Render(p.Name)
	if st.IsLive {
		left += "  " + styles.LiveBadge.Render("LIVE")
	}

	right := styles.MutedText.Render(fmt.Sprintf("segment %d/%d · %.1fx",
		st.CurrentSegment+1, st.TotalSegments, st.Speed))

	return left + "  " + right
}

func (m *PrompterModel) renderBody(p *domain.Project, st domain.PlaybackStatus) string {
	width := m.Width
	height := m.Height - 4
	if width <= 0 {
		width = 80
	}
	if height <= 0 {
		height = 20
	}

	var seg *domain.Segment
	if st.CurrentSegment >= 0 && st.CurrentSegment < len(p.Segments) {
		seg = &p.Segments[st.CurrentSegment]
	}

	var lines []string
	if seg != nil && seg.Kind == domain.SegmentText {
		lines = m.scrolledText(seg, p.Settings, width, height)
	} else {
		lines = render.Frame(seg, width, height, st.Mirror)
	}

	guide := height / 3
	var b strings.Builder
	for i, line := range lines {
		if p.Settings.GuideLine && i == guide {
			b.WriteString(styles.PrompterGuide.Render("▶"))
			if len(line) > 1 {
				line = line[1:]
			}
		}
		b.WriteString(styles.PrompterText.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}

// scrolledText converts the pixel offset into a line offset using the
// same line height the engine uses for its scroll target, so the view
// reaches the last line exactly when the engine completes the segment.
func (m *PrompterModel) scrolledText(seg *domain.Segment, settings domain.Settings, width, height int) []string {
	all := strings.Split(seg.Content, "\n")

	lineHeight := float64(settings.FontSize) * 1.25
	if lineHeight <= 0 {
		lineHeight = 1
	}
	skip := int(m.snapshot.Offset / lineHeight)
	if skip > len(all) {
		skip = len(all)
	}
	visible := all[skip:]

	if st := m.snapshot.Status; st.Mirror {
		mirrored := make([]string, len(visible))
		for i, line := range visible {
			mirrored[i] = render.MirrorLine(line)
		}
		visible = mirrored
	}

	return render.FitBox(visible, width, height)
}

func (m *PrompterModel) renderStatusBar(st domain.PlaybackStatus) string {
	state := "stopped"
	switch {
	case st.IsPlaying && st.IsPaused:
		state = "paused"
	case st.IsPlaying:
		state = "playing"
	}

	parts := []string{
		styles.StatusKey.Render(state),
		styles.StatusText.Render(fmt.Sprintf("%d connected", st.ConnectedClients)),
	}
	if st.Mirror {
		parts = append(parts, styles.StatusText.Render("mirror"))
	}
	parts = append(parts, styles.StatusText.Render("space play · h/l segment · +/- speed · m mirror · g live · esc back"))

	return styles.StatusBar.Render(strings.Join(parts, "  "))
}
