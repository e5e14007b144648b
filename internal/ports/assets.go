package ports

// AssetStore is a content-addressed blob store. Keys derive from the
// asset bytes, so concurrent saves of identical content converge on
// the same reference.
type AssetStore interface {
	// StoreAsset writes the bytes under their content hash and returns
	// the relative reference ("global_assets/<hash>.<ext>"). Storing
	// existing content is a de-duplicated no-op.
	StoreAsset(data []byte, ext string) (string, error)

	// ReadAsset returns the bytes for a stored reference.
	ReadAsset(rel string) ([]byte, error)

	// ResolvePath maps a stored reference to an absolute path.
	ResolvePath(rel string) (string, error)

	// Cleanup removes every stored asset not named in active and
	// returns the number deleted. Per-file failures are tolerated.
	Cleanup(active []string) (int, error)
}
