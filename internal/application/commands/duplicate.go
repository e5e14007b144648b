package commands

import (
	"context"
	"fmt"

	"promptdeck/internal/application"
	"promptdeck/internal/domain"
	"promptdeck/internal/ports"
)

// DuplicateProjectResult contains the result of duplicating a project
type DuplicateProjectResult struct {
	Project *domain.Project
	Message string
}

// DuplicateProjectCommand copies a project under a new name
type DuplicateProjectCommand struct {
	repo      ports.ProjectRepository
	ProjectID string
	NewName   string
}

// NewDuplicateProjectCommand creates a new DuplicateProjectCommand
func NewDuplicateProjectCommand(repo ports.ProjectRepository, projectID, newName string) *DuplicateProjectCommand {
	return &DuplicateProjectCommand{repo: repo, ProjectID: projectID, NewName: newName}
}

// Validate checks if the duplicate operation is valid
func (c *DuplicateProjectCommand) Validate() error {
	if err := application.ValidateRequired("projectID", c.ProjectID); err != nil {
		return err
	}
	return application.ValidateRequired("name", c.NewName)
}

// Execute runs the duplicate command
func (c *DuplicateProjectCommand) Execute(ctx context.Context) (*DuplicateProjectResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	copy, err := c.repo.Duplicate(c.ProjectID, c.NewName)
	if err != nil {
		return nil, fmt.Errorf("failed to duplicate project: %w", err)
	}

	return &DuplicateProjectResult{
		Project: copy,
		Message: fmt.Sprintf("Duplicated project as: %s (%s)", copy.Name, copy.ID),
	}, nil
}
