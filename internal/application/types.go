package application

import "promptdeck/internal/domain"

// Re-export domain types for use by adapters
type (
	Project        = domain.Project
	Segment        = domain.Segment
	Settings       = domain.Settings
	ProjectSummary = domain.ProjectSummary
	PlaybackStatus = domain.PlaybackStatus
	Command        = domain.Command
)
