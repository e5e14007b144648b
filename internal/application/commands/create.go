package commands

import (
	"context"
	"fmt"

	"promptdeck/internal/application"
	"promptdeck/internal/domain"
	"promptdeck/internal/ports"
)

// CreateProjectResult contains the result of creating a project
type CreateProjectResult struct {
	Project *domain.Project
	Message string
}

// CreateProjectCommand creates a new empty project
type CreateProjectCommand struct {
	repo ports.ProjectRepository
	Name string
}

// NewCreateProjectCommand creates a new CreateProjectCommand
func NewCreateProjectCommand(repo ports.ProjectRepository, name string) *CreateProjectCommand {
	return &CreateProjectCommand{repo: repo, Name: name}
}

// Validate checks if the create operation is valid
func (c *CreateProjectCommand) Validate() error {
	return application.ValidateRequired("name", c.Name)
}

// Execute runs the create project command
func (c *CreateProjectCommand) Execute(ctx context.Context) (*CreateProjectResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	project, err := c.repo.Create(c.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	return &CreateProjectResult{
		Project: project,
		Message: fmt.Sprintf("Created project: %s (%s)", project.Name, project.ID),
	}, nil
}
