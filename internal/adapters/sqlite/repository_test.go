package sqlite

import (
	"errors"
	"path/filepath"
	"testing"

	"promptdeck/internal/application"
	"promptdeck/internal/domain"
)

func openTestRepo(t *testing.T) *Repository {
	t.Helper()
	repo, err := Open(filepath.Join(t.TempDir(), "projects.db"))
	if err != nil {
		t.Fatalf("failed to open repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestCreateAndLoad(t *testing.T) {
	repo := openTestRepo(t)

	created, err := repo.Create("Morning Brief")
	if err != nil {
		t.Fatal(err)
	}

	loaded, err := repo.Load(created.ID)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Name != "Morning Brief" {
		t.Errorf("expected name Morning Brief, got %q", loaded.Name)
	}
	if loaded.Settings != domain.DefaultSettings() {
		t.Errorf("default settings not persisted: %+v", loaded.Settings)
	}
}

func TestSaveRoundTripsSegments(t *testing.T) {
	repo := openTestRepo(t)

	p, _ := repo.Create("Segments")
	p.AddSegment(domain.NewTextSegment("first cue"))
	p.AddSegment(domain.NewImageSegment("global_assets/abc.png", 0, 5))
	p.Segments[1].Region = &domain.CropRect{X: 0.1, Y: 0.2, Width: 0.5, Height: 0.5}
	if err := repo.Save(p); err != nil {
		t.Fatal(err)
	}

	loaded, err := repo.Load(p.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(loaded.Segments) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(loaded.Segments))
	}
	if loaded.Segments[0].Content != "first cue" {
		t.Errorf("text segment content lost: %+v", loaded.Segments[0])
	}
	if loaded.Segments[1].Region == nil || loaded.Segments[1].Region.Width != 0.5 {
		t.Errorf("crop region lost: %+v", loaded.Segments[1].Region)
	}
}

func TestLoadMissingProject(t *testing.T) {
	repo := openTestRepo(t)
	_, err := repo.Load("does-not-exist")
	if !errors.Is(err, application.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestListNewestFirst(t *testing.T) {
	repo := openTestRepo(t)

	a, _ := repo.Create("Older")
	b, _ := repo.Create("Newer")
	b.Touch()
	if err := repo.Save(b); err != nil {
		t.Fatal(err)
	}

	summaries, err := repo.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(summaries) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(summaries))
	}
	if summaries[0].ID != b.ID || summaries[1].ID != a.ID {
		t.Errorf("listing not newest first: %+v", summaries)
	}
}

func TestDelete(t *testing.T) {
	repo := openTestRepo(t)

	p, _ := repo.Create("Doomed")
	if err := repo.Delete(p.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := repo.Load(p.ID); !errors.Is(err, application.ErrNotFound) {
		t.Errorf("deleted project still loadable: %v", err)
	}
	if err := repo.Delete(p.ID); !errors.Is(err, application.ErrNotFound) {
		t.Errorf("expected ErrNotFound on double delete, got %v", err)
	}
}

func TestDuplicateAssignsFreshIDs(t *testing.T) {
	repo := openTestRepo(t)

	p, _ := repo.Create("Original")
	p.AddSegment(domain.NewTextSegment("cue"))
	if err := repo.Save(p); err != nil {
		t.Fatal(err)
	}

	copy, err := repo.Duplicate(p.ID, "Copy")
	if err != nil {
		t.Fatal(err)
	}
	if copy.ID == p.ID {
		t.Error("duplicate kept the project ID")
	}
	if copy.Segments[0].ID == p.Segments[0].ID {
		t.Error("duplicate kept the segment ID")
	}
	if copy.Segments[0].Content != "cue" {
		t.Error("duplicate lost segment content")
	}

	summaries, _ := repo.List()
	if len(summaries) != 2 {
		t.Errorf("expected both projects stored, got %d", len(summaries))
	}
}
