package commands

import (
	"context"
	"fmt"

	"promptdeck/internal/domain"
	"promptdeck/internal/ports"
)

// ListProjectsCommand lists all stored projects
type ListProjectsCommand struct {
	repo ports.ProjectRepository
}

// NewListProjectsCommand creates a new ListProjectsCommand
func NewListProjectsCommand(repo ports.ProjectRepository) *ListProjectsCommand {
	return &ListProjectsCommand{repo: repo}
}

// Execute runs the list command, newest first
func (c *ListProjectsCommand) Execute(ctx context.Context) ([]domain.ProjectSummary, error) {
	summaries, err := c.repo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	domain.SortSummaries(summaries)
	return summaries, nil
}
