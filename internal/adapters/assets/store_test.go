package assets

import (
	"errors"
	"strings"
	"testing"

	"promptdeck/internal/application"
)

func TestStoreAssetDeduplicates(t *testing.T) {
	store := NewStore(t.TempDir())

	first, err := store.StoreAsset([]byte("same bytes"), "png")
	if err != nil {
		t.Fatal(err)
	}
	second, err := store.StoreAsset([]byte("same bytes"), "png")
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Errorf("identical content produced different references: %q vs %q", first, second)
	}

	other, err := store.StoreAsset([]byte("different bytes"), "png")
	if err != nil {
		t.Fatal(err)
	}
	if other == first {
		t.Error("different content produced the same reference")
	}
}

func TestStoreAssetRejectsInvalidInput(t *testing.T) {
	store := NewStore(t.TempDir())

	if _, err := store.StoreAsset(nil, "png"); err == nil {
		t.Error("expected error for empty bytes")
	}
	if _, err := store.StoreAsset([]byte("x"), ""); err == nil {
		t.Error("expected error for empty extension")
	}
	if _, err := store.StoreAsset([]byte("x"), "."); err == nil {
		t.Error("expected error for bare dot extension")
	}
}

func TestStoreAssetNormalizesExtension(t *testing.T) {
	store := NewStore(t.TempDir())
	ref, err := store.StoreAsset([]byte("x"), ".PNG")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(ref, ".png") {
		t.Errorf("expected lowercase extension, got %q", ref)
	}
}

func TestResolvePathMissingAsset(t *testing.T) {
	store := NewStore(t.TempDir())
	_, err := store.ResolvePath("global_assets/missing.png")
	if !errors.Is(err, application.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestCleanup(t *testing.T) {
	store := NewStore(t.TempDir())

	keep, _ := store.StoreAsset([]byte("keep me"), "png")
	_, _ = store.StoreAsset([]byte("orphan one"), "png")
	_, _ = store.StoreAsset([]byte("orphan two"), "jpg")

	deleted, err := store.Cleanup([]string{keep})
	if err != nil {
		t.Fatal(err)
	}
	if deleted != 2 {
		t.Errorf("expected 2 deleted, got %d", deleted)
	}
	if _, err := store.ReadAsset(keep); err != nil {
		t.Errorf("active asset was deleted: %v", err)
	}
}

func TestCleanupNoDirectory(t *testing.T) {
	store := NewStore(t.TempDir())
	deleted, err := store.Cleanup(nil)
	if err != nil {
		t.Fatal(err)
	}
	if deleted != 0 {
		t.Errorf("expected 0 deleted, got %d", deleted)
	}
}
