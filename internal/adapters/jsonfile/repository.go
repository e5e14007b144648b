// Package jsonfile stores each project as a standalone JSON document,
// the portability-first alternative to the SQLite adapter. Both
// implement the identical ports.ProjectRepository contract.
package jsonfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"promptdeck/internal/application"
	"promptdeck/internal/domain"
	"promptdeck/internal/ports"
)

// Repository implements ports.ProjectRepository on a directory of
// <project-id>.json documents.
type Repository struct {
	dir string
}

// Ensure Repository implements ProjectRepository
var _ ports.ProjectRepository = (*Repository)(nil)

// Open creates a repository rooted at dir.
func Open(dir string) (*Repository, error) {
	if strings.HasPrefix(dir, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		dir = filepath.Join(home, dir[1:])
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create projects directory: %w", err)
	}
	return &Repository{dir: dir}, nil
}

// Close is a no-op for the file-backed repository.
func (r *Repository) Close() error { return nil }

// Create persists a new empty project with the given name.
func (r *Repository) Create(name string) (*domain.Project, error) {
	p := domain.NewProject(name)
	if err := r.Save(p); err != nil {
		return nil, err
	}
	return p, nil
}

// Save writes the project document atomically: write to a temp file,
// then rename over the destination, so a crash never leaves a partial
// document behind.
func (r *Repository) Save(p *domain.Project) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return &application.StorageError{Op: "save", Err: err}
	}

	path := r.path(p.ID)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return &application.StorageError{Op: "save", Err: err}
	}
	if err := os.Rename(tmp, path); err != nil {
		return &application.StorageError{Op: "save", Err: err}
	}
	return nil
}

// Load fetches a project by ID.
func (r *Repository) Load(id string) (*domain.Project, error) {
	data, err := os.ReadFile(r.path(id))
	if os.IsNotExist(err) {
		return nil, &application.NotFoundError{Kind: "project", ID: id}
	}
	if err != nil {
		return nil, &application.StorageError{Op: "load", Err: err}
	}

	var p domain.Project
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, &application.StorageError{Op: "load", Err: err}
	}
	return &p, nil
}

// List returns summaries of all stored projects.
func (r *Repository) List() ([]domain.ProjectSummary, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return nil, &application.StorageError{Op: "list", Err: err}
	}

	var summaries []domain.ProjectSummary
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		p, err := r.Load(strings.TrimSuffix(entry.Name(), ".json"))
		if err != nil {
			// Skip unreadable documents rather than failing the listing.
			continue
		}
		summaries = append(summaries, domain.ProjectSummary{
			ID:           p.ID,
			Name:         p.Name,
			SegmentCount: len(p.Segments),
			ModifiedAt:   p.ModifiedAt,
		})
	}

	domain.SortSummaries(summaries)
	return summaries, nil
}

// Delete removes a project document.
func (r *Repository) Delete(id string) error {
	err := os.Remove(r.path(id))
	if os.IsNotExist(err) {
		return &application.NotFoundError{Kind: "project", ID: id}
	}
	if err != nil {
		return &application.StorageError{Op: "delete", Err: err}
	}
	return nil
}

// Duplicate copies a project under a new name with fresh IDs.
func (r *Repository) Duplicate(id, name string) (*domain.Project, error) {
	src, err := r.Load(id)
	if err != nil {
		return nil, err
	}

	copy := src.Clone()
	copy.ID = uuid.NewString()
	copy.Name = name
	now := time.Now().UTC()
	copy.CreatedAt = now
	copy.ModifiedAt = now
	for i := range copy.Segments {
		copy.Segments[i].ID = uuid.NewString()
	}

	if err := r.Save(copy); err != nil {
		return nil, err
	}
	return copy, nil
}

func (r *Repository) path(id string) string {
	return filepath.Join(r.dir, id+".json")
}
