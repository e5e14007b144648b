package jsonfile

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"promptdeck/internal/application"
	"promptdeck/internal/domain"
)

func openTestRepo(t *testing.T) *Repository {
	t.Helper()
	repo, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("failed to open repository: %v", err)
	}
	return repo
}

func TestCreateLoadDelete(t *testing.T) {
	repo := openTestRepo(t)

	p, err := repo.Create("Standup Notes")
	if err != nil {
		t.Fatal(err)
	}

	loaded, err := repo.Load(p.ID)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Name != "Standup Notes" {
		t.Errorf("expected name Standup Notes, got %q", loaded.Name)
	}

	if err := repo.Delete(p.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := repo.Load(p.ID); !errors.Is(err, application.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestSaveIsAtomic(t *testing.T) {
	repo := openTestRepo(t)

	p, _ := repo.Create("Atomic")
	p.AddSegment(domain.NewTextSegment("cue"))
	if err := repo.Save(p); err != nil {
		t.Fatal(err)
	}

	// No temp file left behind after the rename.
	entries, err := os.ReadDir(repo.dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if filepath.Ext(e.Name()) == ".tmp" {
			t.Errorf("temp file left behind: %s", e.Name())
		}
	}
}

func TestListSkipsForeignFiles(t *testing.T) {
	repo := openTestRepo(t)

	repo.Create("Visible")
	if err := os.WriteFile(filepath.Join(repo.dir, "notes.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(repo.dir, "broken.json"), []byte("{nope"), 0644); err != nil {
		t.Fatal(err)
	}

	summaries, err := repo.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(summaries) != 1 {
		t.Errorf("expected 1 summary, got %d: %+v", len(summaries), summaries)
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
	if copy.ID == p.ID || copy.Segments[0].ID == p.Segments[0].ID {
		t.Error("duplicate kept original IDs")
	}

	if _, err := repo.Load(copy.ID); err != nil {
		t.Errorf("duplicate not persisted: %v", err)
	}
}

func TestDeleteMissing(t *testing.T) {
	repo := openTestRepo(t)
	if err := repo.Delete("ghost"); !errors.Is(err, application.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
