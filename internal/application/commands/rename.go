package commands

import (
	"context"
	"fmt"

	"promptdeck/internal/application"
	"promptdeck/internal/ports"
)

// RenameProjectResult contains the result of renaming a project
type RenameProjectResult struct {
	Message string
}

// RenameProjectCommand renames a stored project
type RenameProjectCommand struct {
	repo      ports.ProjectRepository
	ProjectID string
	NewName   string
}

// NewRenameProjectCommand creates a new RenameProjectCommand
func NewRenameProjectCommand(repo ports.ProjectRepository, projectID, newName string) *RenameProjectCommand {
	return &RenameProjectCommand{repo: repo, ProjectID: projectID, NewName: newName}
}

// Validate checks if the rename operation is valid
func (c *RenameProjectCommand) Validate() error {
	if err := application.ValidateRequired("projectID", c.ProjectID); err != nil {
		return err
	}
	return application.ValidateRequired("name", c.NewName)
}

// Execute runs the rename command
func (c *RenameProjectCommand) Execute(ctx context.Context) (*RenameProjectResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	project, err := c.repo.Load(c.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to load project: %w", err)
	}

	oldName := project.Name
	project.Name = c.NewName
	project.Touch()

	if err := c.repo.Save(project); err != nil {
		return nil, fmt.Errorf("failed to save project: %w", err)
	}

	return &RenameProjectResult{
		Message: fmt.Sprintf("Renamed %q to %q", oldName, c.NewName),
	}, nil
}
