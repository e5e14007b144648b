package domain

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

// AssetReader resolves a stored asset reference to its bytes.
type AssetReader interface {
	ReadAsset(rel string) ([]byte, error)
}

// AssetWriter stores asset bytes and returns the content-addressed
// reference.
type AssetWriter interface {
	StoreAsset(data []byte, ext string) (string, error)
}

// ExportPortable serializes a project to its standalone JSON form with
// asset bytes embedded as base64, suitable for moving between
// machines. Assets that cannot be read are exported by reference only.
func ExportPortable(p *Project, assets AssetReader) ([]byte, error) {
	out := p.Clone()
	if assets != nil {
		for i := range out.Segments {
			s := &out.Segments[i]
			if s.AssetPath == "" {
				continue
			}
			data, err := assets.ReadAsset(s.AssetPath)
			if err != nil {
				continue
			}
			s.AssetData = base64.StdEncoding.EncodeToString(data)
		}
	}
	return json.MarshalIndent(out, "", "  ")
}

// ImportPortable reconstructs a project from its portable JSON form.
// The project and every segment receive fresh IDs; embedded asset data
// is de-duplicated back into the content-addressed store.
func ImportPortable(data []byte, assets AssetWriter) (*Project, error) {
	var p Project
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("malformed project file: %w", err)
	}
	if p.Name == "" {
		return nil, fmt.Errorf("malformed project file: missing name")
	}

	now := time.Now().UTC()
	p.ID = uuid.NewString()
	p.CreatedAt = now
	p.ModifiedAt = now

	for i := range p.Segments {
		s := &p.Segments[i]
		s.ID = uuid.NewString()
		if s.AssetData == "" {
			continue
		}
		raw, err := base64.StdEncoding.DecodeString(s.AssetData)
		if err != nil {
			return nil, fmt.Errorf("segment %d: bad asset data: %w", i, err)
		}
		if assets != nil {
			ref, err := assets.StoreAsset(raw, assetExt(s))
			if err != nil {
				return nil, fmt.Errorf("segment %d: %w", i, err)
			}
			s.AssetPath = ref
		}
		s.AssetData = ""
	}

	return &p, nil
}

func assetExt(s *Segment) string {
	if ext := strings.TrimPrefix(path.Ext(s.AssetPath), "."); ext != "" {
		return ext
	}
	if s.Kind == SegmentPDFPage {
		return "pdf"
	}
	return "png"
}
