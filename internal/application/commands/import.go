package commands

import (
	"context"
	"fmt"
	"os"

	"promptdeck/internal/application"
	"promptdeck/internal/domain"
	"promptdeck/internal/ports"
)

// ImportProjectResult contains the result of importing a project
type ImportProjectResult struct {
	Project *domain.Project
	Message string
}

// ImportProjectCommand reads a portable JSON export, de-duplicates its
// embedded assets into the content-addressed store, and persists the
// project under fresh IDs.
type ImportProjectCommand struct {
	repo   ports.ProjectRepository
	assets ports.AssetStore
	Path   string
}

// NewImportProjectCommand creates a new ImportProjectCommand
func NewImportProjectCommand(repo ports.ProjectRepository, assets ports.AssetStore, path string) *ImportProjectCommand {
	return &ImportProjectCommand{repo: repo, assets: assets, Path: path}
}

// Validate checks if the import operation is valid
func (c *ImportProjectCommand) Validate() error {
	return application.ValidateRequired("path", c.Path)
}

// Execute runs the import command
func (c *ImportProjectCommand) Execute(ctx context.Context) (*ImportProjectResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(c.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read project file: %w", err)
	}

	var writer domain.AssetWriter
	if c.assets != nil {
		writer = c.assets
	}
	project, err := domain.ImportPortable(data, writer)
	if err != nil {
		return nil, fmt.Errorf("failed to import project: %w", err)
	}

	if err := c.repo.Save(project); err != nil {
		return nil, fmt.Errorf("failed to save imported project: %w", err)
	}

	return &ImportProjectResult{
		Project: project,
		Message: fmt.Sprintf("Imported project: %s (%s)", project.Name, project.ID),
	}, nil
}
