package commands

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"promptdeck/internal/application"
	"promptdeck/internal/domain"
)

// memRepo is an in-memory ProjectRepository for command tests.
type memRepo struct {
	projects map[string]*domain.Project
	failSave bool
}

func newMemRepo() *memRepo {
	return &memRepo{projects: map[string]*domain.Project{}}
}

func (r *memRepo) Create(name string) (*domain.Project, error) {
	p := domain.NewProject(name)
	r.projects[p.ID] = p.Clone()
	return p, nil
}

func (r *memRepo) Save(p *domain.Project) error {
	if r.failSave {
		return fmt.Errorf("disk full")
	}
	r.projects[p.ID] = p.Clone()
	return nil
}

func (r *memRepo) Load(id string) (*domain.Project, error) {
	p, ok := r.projects[id]
	if !ok {
		return nil, &application.NotFoundError{Kind: "project", ID: id}
	}
	return p.Clone(), nil
}

func (r *memRepo) List() ([]domain.ProjectSummary, error) {
	var out []domain.ProjectSummary
	for _, p := range r.projects {
		out = append(out, domain.ProjectSummary{
			ID:           p.ID,
			Name:         p.Name,
			SegmentCount: len(p.Segments),
			ModifiedAt:   p.ModifiedAt,
		})
	}
	return out, nil
}

func (r *memRepo) Delete(id string) error {
	if _, ok := r.projects[id]; !ok {
		return &application.NotFoundError{Kind: "project", ID: id}
	}
	delete(r.projects, id)
	return nil
}

func (r *memRepo) Duplicate(id, name string) (*domain.Project, error) {
	src, ok := r.projects[id]
	if !ok {
		return nil, &application.NotFoundError{Kind: "project", ID: id}
	}
	copy := src.Clone()
	copy.ID = uuid.NewString()
	copy.Name = name
	copy.CreatedAt = time.Now().UTC()
	copy.ModifiedAt = copy.CreatedAt
	for i := range copy.Segments {
		copy.Segments[i].ID = uuid.NewString()
	}
	r.projects[copy.ID] = copy.Clone()
	return copy, nil
}

func (r *memRepo) Close() error { return nil }

func contains(s, substr string) bool {
	return len(s) >= len(substr) && searchString(s, substr)
}

func searchString(s, substr string) bool {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}
