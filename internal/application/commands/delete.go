package commands

import (
	"context"
	"fmt"

	"promptdeck/internal/application"
	"promptdeck/internal/ports"
)

// DeleteProjectResult contains the result of deleting a project
type DeleteProjectResult struct {
	Message      string
	AssetsSwept  int
	SweepSkipped bool
}

// DeleteProjectCommand deletes a project and sweeps assets no longer
// referenced by any remaining project. The sweep is a background-style
// pass over the content-addressed store, not atomic with the delete.
type DeleteProjectCommand struct {
	repo      ports.ProjectRepository
	assets    ports.AssetStore
	ProjectID string
}

// NewDeleteProjectCommand creates a new DeleteProjectCommand
func NewDeleteProjectCommand(repo ports.ProjectRepository, assets ports.AssetStore, projectID string) *DeleteProjectCommand {
	return &DeleteProjectCommand{repo: repo, assets: assets, ProjectID: projectID}
}

// Validate checks if the delete operation is valid
func (c *DeleteProjectCommand) Validate() error {
	return application.ValidateRequired("projectID", c.ProjectID)
}

// Execute runs the delete command
func (c *DeleteProjectCommand) Execute(ctx context.Context) (*DeleteProjectResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	if err := c.repo.Delete(c.ProjectID); err != nil {
		return nil, fmt.Errorf("failed to delete project: %w", err)
	}

	result := &DeleteProjectResult{
		Message: fmt.Sprintf("Deleted project %s", c.ProjectID),
	}

	if c.assets == nil {
		result.SweepSkipped = true
		return result, nil
	}

	active, err := activeAssets(c.repo)
	if err != nil {
		// The project itself is gone; a failed sweep only leaves
		// orphans behind for the next pass.
		result.SweepSkipped = true
		return result, nil
	}

	swept, err := c.assets.Cleanup(active)
	if err != nil {
		result.SweepSkipped = true
		return result, nil
	}
	result.AssetsSwept = swept

	return result, nil
}

// activeAssets collects every asset reference still held by any
// stored project.
func activeAssets(repo ports.ProjectRepository) ([]string, error) {
	summaries, err := repo.List()
	if err != nil {
		return nil, err
	}

	var active []string
	seen := map[string]bool{}
	for _, s := range summaries {
		p, err := repo.Load(s.ID)
		if err != nil {
			return nil, err
		}
		for _, ref := range p.AssetPaths() {
			if !seen[ref] {
				seen[ref] = true
				active = append(active, ref)
			}
		}
	}
	return active, nil
}
