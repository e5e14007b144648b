package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"promptdeck/internal/application"
	"promptdeck/internal/domain"
	"promptdeck/internal/ports"
)

// ExportProjectResult contains the result of exporting a project
type ExportProjectResult struct {
	Path    string
	Message string
}

// ExportProjectCommand writes a project to its portable JSON form with
// embedded asset data.
type ExportProjectCommand struct {
	repo      ports.ProjectRepository
	assets    ports.AssetStore
	ProjectID string
	OutPath   string
}

// NewExportProjectCommand creates a new ExportProjectCommand
func NewExportProjectCommand(repo ports.ProjectRepository, assets ports.AssetStore, projectID, outPath string) *ExportProjectCommand {
	return &ExportProjectCommand{repo: repo, assets: assets, ProjectID: projectID, OutPath: outPath}
}

// Validate checks if the export operation is valid
func (c *ExportProjectCommand) Validate() error {
	return application.ValidateRequired("projectID", c.ProjectID)
}

// Execute runs the export command
func (c *ExportProjectCommand) Execute(ctx context.Context) (*ExportProjectResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	project, err := c.repo.Load(c.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to load project: %w", err)
	}

	var reader domain.AssetReader
	if c.assets != nil {
		reader = c.assets
	}
	data, err := domain.ExportPortable(project, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to export project: %w", err)
	}

	outPath := c.OutPath
	if outPath == "" {
		outPath = safeFileName(project.Name) + ".json"
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil && filepath.Dir(outPath) != "." {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(outPath, data, 0644); err != nil {
		return nil, fmt.Errorf("failed to write export: %w", err)
	}

	return &ExportProjectResult{
		Path:    outPath,
		Message: fmt.Sprintf("Exported %q to %s", project.Name, outPath),
	}, nil
}

func safeFileName(name string) string {
	out := []rune(name)
	for i, r := range out {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			out[i] = '_'
		}
	}
	return string(out)
}
