package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"promptdeck/internal/adapters/tui/views"
	"promptdeck/internal/domain"
	"promptdeck/internal/playback"
	"promptdeck/internal/ports"
)

// ViewState represents the current view
type ViewState int

const (
	ViewBrowser ViewState = iota
	ViewCreate
	ViewRename
	ViewDelete
	ViewEditor
	ViewPrompter
	ViewHelp
)

// App is the main TUI application model. Playback state lives in the
// store; the app forwards store snapshots into the bubbletea loop so
// remote-driven changes repaint the prompter too.
type App struct {
	repo   ports.ProjectRepository
	assets ports.AssetStore
	store  *playback.Store

	snapshots   chan playback.Snapshot
	unsubscribe func()

	state    ViewState
	browser  *views.BrowserModel
	create   *views.CreateModel
	rename   *views.RenameModel
	delete   *views.DeleteModel
	editor   *views.EditorModel
	prompter *views.PrompterModel
	help     *views.HelpModel

	width  int
	height int
}

// NewApp creates a new TUI application
func NewApp(repo ports.ProjectRepository, assets ports.AssetStore, store *playback.Store) *App {
	a := &App{
		repo:      repo,
		assets:    assets,
		store:     store,
		snapshots: make(chan playback.Snapshot, 16),
		state:     ViewBrowser,
		browser:   views.NewBrowserModel(repo),
		create:    views.NewCreateModel(repo),
		rename:    views.NewRenameModel(repo),
		delete:    views.NewDeleteModel(repo, assets),
		editor:    views.NewEditorModel(store),
		prompter:  views.NewPrompterModel(store),
		help:      views.NewHelpModel(),
	}

	// Drop snapshots the UI has not consumed yet; the next one
	// supersedes them anyway.
	a.unsubscribe = store.Subscribe(func(snap playback.Snapshot) {
		select {
		case a.snapshots <- snap:
		default:
		}
	})

	return a
}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.browser.Init(), a.waitForSnapshot())
}

func (a *App) waitForSnapshot() tea.Cmd {
	return func() tea.Msg {
		return views.SnapshotMsg{Snapshot: <-a.snapshots}
	}
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.browser.SetSize(msg.Width, msg.Height)
		a.create.SetSize(msg.Width, msg.Height)
		a.rename.SetSize(msg.Width, msg.Height)
		a.delete.SetSize(msg.Width, msg.Height)
		a.help.SetSize(msg.Width, msg.Height)
		_, _ = a.editor.Update(msg)
		_, _ = a.prompter.Update(msg)
		return a, nil

	case views.SnapshotMsg:
		// Only the prompter renders live playback, but keep the pump
		// running regardless of the current view.
		_, cmd := a.prompter.Update(msg)
		return a, tea.Batch(cmd, a.waitForSnapshot())

	// View switching messages
	case views.SwitchToCreateMsg:
		a.state = ViewCreate
		a.create.Reset()
		return a, a.create.Init()

	case views.SwitchToRenameMsg:
		a.state = ViewRename
		a.rename.SetTarget(msg.Summary)
		return a, a.rename.Init()

	case views.SwitchToDeleteMsg:
		a.state = ViewDelete
		a.delete.SetTarget(msg.Summary)
		return a, a.delete.Init()

	case views.SwitchToHelpMsg:
		a.state = ViewHelp
		return a, nil

	case views.SwitchToBrowserMsg:
		a.state = ViewBrowser
		return a, a.browser.Reload()

	case views.OpenProjectMsg:
		return a, a.openProject(msg)

	case projectOpenedMsg:
		a.store.SetProject(msg.project)
		if msg.edit {
			a.state = ViewEditor
			return a, a.editor.Init()
		}
		a.state = ViewPrompter
		return a, a.prompter.Init()

	case projectOpenErrMsg:
		a.state = ViewBrowser
		a.browser.SetMessage(msg.err.Error(), true)
		return a, nil

	// Create view messages
	case views.CreateSuccessMsg:
		// Jump straight into the editor of the fresh project.
		return a, a.openProject(views.OpenProjectMsg{ProjectID: msg.ProjectID, Edit: true})

	case views.CreateErrMsg:
		a.create.SetMessage(msg.Err.Error(), true)
		return a, nil

	// Delete view messages
	case views.DeleteSuccessMsg:
		a.state = ViewBrowser
		a.browser.SetMessage(msg.Message, false)
		return a, a.browser.Reload()

	case views.DeleteErrMsg:
		a.state = ViewBrowser
		a.browser.SetMessage(msg.Err.Error(), true)
		return a, nil
	}

	// Delegate to current view
	var cmd tea.Cmd
	switch a.state {
	case ViewBrowser:
		_, cmd = a.browser.Update(msg)
	case ViewCreate:
		_, cmd = a.create.Update(msg)
	case ViewRename:
		_, cmd = a.rename.Update(msg)
	case ViewDelete:
		_, cmd = a.delete.Update(msg)
	case ViewEditor:
		_, cmd = a.editor.Update(msg)
	case ViewPrompter:
		_, cmd = a.prompter.Update(msg)
	case ViewHelp:
		_, cmd = a.help.Update(msg)
	}

	return a, cmd
}

type projectOpenedMsg struct {
	project *domain.Project
	edit    bool
}

type projectOpenErrMsg struct {
	err error
}

func (a *App) openProject(msg views.OpenProjectMsg) tea.Cmd {
	return func() tea.Msg {
		project, err := a.repo.Load(msg.ProjectID)
		if err != nil {
			return projectOpenErrMsg{err: err}
		}
		return projectOpenedMsg{project: project, edit: msg.Edit}
	}
}

// Close detaches the app from the playback store.
func (a *App) Close() {
	if a.unsubscribe != nil {
		a.unsubscribe()
	}
}

// View renders the current view
func (a *App) View() string {
	switch a.state {
	case ViewCreate:
		return a.create.View()
	case ViewRename:
		return a.rename.View()
	case ViewDelete:
		return a.delete.View()
	case ViewEditor:
		return a.editor.View()
	case ViewPrompter:
		return a.prompter.View()
	case ViewHelp:
		return a.help.View()
	default:
		return a.browser.View()
	}
}
