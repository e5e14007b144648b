package ports

import "promptdeck/internal/domain"

// ProjectRepository defines the storage contract for projects. The
// SQLite and JSON-file adapters implement the identical contract and
// are selected by configuration.
type ProjectRepository interface {
	// Create persists a new empty project with the given name.
	Create(name string) (*domain.Project, error)

	// Save overwrites the stored document for the project.
	Save(p *domain.Project) error

	// Load fetches a project by ID. Missing projects return
	// application.ErrNotFound.
	Load(id string) (*domain.Project, error)

	// List returns summaries of all stored projects, newest first.
	List() ([]domain.ProjectSummary, error)

	// Delete removes a project. Deleting an unknown ID is an error.
	Delete(id string) error

	// Duplicate copies a project under a new name with fresh IDs.
	Duplicate(id, name string) (*domain.Project, error)

	// Close releases the underlying storage.
	Close() error
}
