package assets

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"promptdeck/internal/application"
	"promptdeck/internal/ports"
)

const assetsDirName = "global_assets"

// Store implements ports.AssetStore on the filesystem, keyed by the
// sha256 of the asset bytes. Two concurrent saves of identical content
// converge on the same key; the rare duplicate write is wasted work,
// not corruption.
type Store struct {
	baseDir string
}

// Ensure Store implements AssetStore
var _ ports.AssetStore = (*Store)(nil)

// NewStore creates an asset store rooted at baseDir.
func NewStore(baseDir string) *Store {
	if strings.HasPrefix(baseDir, "~") {
		home, _ := os.UserHomeDir()
		baseDir = filepath.Join(home, baseDir[1:])
	}
	return &Store{baseDir: baseDir}
}

// StoreAsset writes the bytes under their content hash and returns the
// relative reference. Empty bytes and empty extensions are rejected.
func (s *Store) StoreAsset(data []byte, ext string) (string, error) {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	if ext == "" {
		return "", fmt.Errorf("invalid file extension")
	}
	if len(data) == 0 {
		return "", fmt.Errorf("cannot store empty asset")
	}

	sum := sha256.Sum256(data)
	name := hex.EncodeToString(sum[:]) + "." + ext

	dir := filepath.Join(s.baseDir, assetsDirName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create assets directory: %w", err)
	}

	path := filepath.Join(dir, name)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := os.WriteFile(path, data, 0644); err != nil {
			return "", fmt.Errorf("failed to write asset: %w", err)
		}
	}

	return assetsDirName + "/" + name, nil
}

// ReadAsset returns the bytes for a stored reference.
func (s *Store) ReadAsset(rel string) ([]byte, error) {
	path, err := s.ResolvePath(rel)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read asset: %w", err)
	}
	return data, nil
}

// ResolvePath maps a stored reference to an absolute path. Missing
// assets return application.ErrNotFound.
func (s *Store) ResolvePath(rel string) (string, error) {
	rel = strings.ReplaceAll(rel, "\\", "/")
	path := filepath.Join(s.baseDir, filepath.FromSlash(rel))
	if _, err := os.Stat(path); err != nil {
		return "", &application.NotFoundError{Kind: "asset", ID: rel}
	}
	return path, nil
}

// Cleanup removes every stored asset not named in active, returning
// the number deleted. Failures on individual files are tolerated; the
// next sweep picks them up.
func (s *Store) Cleanup(active []string) (int, error) {
	activeSet := make(map[string]bool, len(active))
	for _, ref := range active {
		activeSet[ref] = true
	}

	dir := filepath.Join(s.baseDir, assetsDirName)
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read assets directory: %w", err)
	}

	deleted := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ref := assetsDirName + "/" + entry.Name()
		if activeSet[ref] {
			continue
		}
		if err := os.Remove(filepath.Join(dir, entry.Name())); err == nil {
			deleted++
		}
	}

	return deleted, nil
}
