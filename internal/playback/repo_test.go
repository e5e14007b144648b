package playback

import (
	"sync/atomic"

	"promptdeck/internal/domain"
)

// recordingRepo counts Save calls for autosave tests.
type recordingRepo struct {
	saves atomic.Int64
}

func (r *recordingRepo) Create(name string) (*domain.Project, error) {
	return domain.NewProject(name), nil
}

func (r *recordingRepo) Save(p *domain.Project) error {
	r.saves.Add(1)
	return nil
}

func (r *recordingRepo) Load(id string) (*domain.Project, error) { return nil, nil }

func (r *recordingRepo) List() ([]domain.ProjectSummary, error) { return nil, nil }

func (r *recordingRepo) Delete(id string) error { return nil }

func (r *recordingRepo) Duplicate(id, name string) (*domain.Project, error) { return nil, nil }

func (r *recordingRepo) Close() error { return nil }
