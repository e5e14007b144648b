package commands

import (
	"context"
	"errors"
	"testing"

	"promptdeck/internal/adapters/assets"
	"promptdeck/internal/application"
	"promptdeck/internal/domain"
)

func TestDeleteProjectCommand_SweepsOrphanedAssets(t *testing.T) {
	store := assets.NewStore(t.TempDir())
	shared, _ := store.StoreAsset([]byte("shared"), "png")
	orphan, _ := store.StoreAsset([]byte("only in deleted"), "png")

	repo := newMemRepo()

	keep, _ := repo.Create("Keep")
	keep.AddSegment(domain.NewImageSegment(shared, 0, 3))
	if err := repo.Save(keep); err != nil {
		t.Fatal(err)
	}

	doomed, _ := repo.Create("Doomed")
	doomed.AddSegment(domain.NewImageSegment(shared, 0, 3))
	doomed.AddSegment(domain.NewImageSegment(orphan, 3, 6))
	if err := repo.Save(doomed); err != nil {
		t.Fatal(err)
	}

	result, err := NewDeleteProjectCommand(repo, store, doomed.ID).Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.AssetsSwept != 1 {
		t.Errorf("expected 1 swept asset, got %d", result.AssetsSwept)
	}
	// The asset still referenced by the surviving project remains.
	if _, err := store.ReadAsset(shared); err != nil {
		t.Errorf("shared asset was swept: %v", err)
	}
	if _, err := store.ReadAsset(orphan); err == nil {
		t.Error("orphaned asset survived the sweep")
	}
}

func TestDeleteProjectCommand_NotFound(t *testing.T) {
	_, err := NewDeleteProjectCommand(newMemRepo(), nil, "missing").Execute(context.Background())
	if !errors.Is(err, application.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteProjectCommand_Validate(t *testing.T) {
	cmd := NewDeleteProjectCommand(newMemRepo(), nil, "")
	if err := cmd.Validate(); err == nil || !contains(err.Error(), "project ID is required") {
		t.Errorf("expected project ID validation error, got %v", err)
	}
}
