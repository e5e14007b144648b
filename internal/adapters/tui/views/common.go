package views

import "promptdeck/internal/domain"

// ViewState contains common state shared by all view models.
// Embed this struct in view models to get width/height and message handling.
type ViewState struct {
	Width      int
	Height     int
	Message    string
	MessageErr bool
}

// SetSize updates the view dimensions
func (s *ViewState) SetSize(width, height int) {
	s.Width = width
	s.Height = height
}

// SetMessage sets a message to display in the view
func (s *ViewState) SetMessage(msg string, isErr bool) {
	s.Message = msg
	s.MessageErr = isErr
}

// ClearMessage clears the current message
func (s *ViewState) ClearMessage() {
	s.Message = ""
	s.MessageErr = false
}

// Messages for view switching
type SwitchToBrowserMsg struct{}

type SwitchToCreateMsg struct{}

type SwitchToRenameMsg struct {
	Summary domain.ProjectSummary
}

type SwitchToDeleteMsg struct {
	Summary domain.ProjectSummary
}

type SwitchToHelpMsg struct{}

// OpenProjectMsg asks the app to load a project into the live session.
type OpenProjectMsg struct {
	ProjectID string
	Edit      bool
}

// errMsg carries a failure from an async command back to a view.
type errMsg struct {
	err error
}

// successMsg carries a user-facing confirmation back to the browser.
type successMsg struct {
	message string
}
