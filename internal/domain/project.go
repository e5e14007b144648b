package domain

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// SegmentKind identifies the content variant of a segment.
type SegmentKind string

const (
	SegmentText        SegmentKind = "text"
	SegmentImage       SegmentKind = "image"
	SegmentImageRegion SegmentKind = "image-region"
	SegmentPDFPage     SegmentKind = "pdf-page"
)

// CropRect is a crop region in normalized [0,1] coordinates of the
// source image.
type CropRect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Segment is a unit of teleprompter content. IDs are assigned at
// creation and never reused.
type Segment struct {
	ID      string      `json:"id"`
	Kind    SegmentKind `json:"kind"`
	Content string      `json:"content,omitempty"`

	// AssetPath references a file in the content-addressed asset
	// store (e.g. "global_assets/<hash>.png") for image and pdf
	// segments. AssetData carries the embedded base64 payload only
	// inside portable exports.
	AssetPath string    `json:"assetPath,omitempty"`
	AssetData string    `json:"assetData,omitempty"`
	Region    *CropRect `json:"region,omitempty"`
	Page      int       `json:"page,omitempty"`

	// StartTime and EndTime bound the segment's display window in
	// seconds for time-boxed playback. Duration drives the countdown
	// for static segments that have no scroll target.
	StartTime float64 `json:"startTime,omitempty"`
	EndTime   float64 `json:"endTime,omitempty"`
	Duration  float64 `json:"duration,omitempty"`
}

// NewTextSegment creates a text segment with a fresh ID.
func NewTextSegment(content string) Segment {
	return Segment{
		ID:      uuid.NewString(),
		Kind:    SegmentText,
		Content: content,
	}
}

// NewImageSegment creates an image segment referencing a stored asset.
func NewImageSegment(assetPath string, start, end float64) Segment {
	return Segment{
		ID:        uuid.NewString(),
		Kind:      SegmentImage,
		AssetPath: assetPath,
		StartTime: start,
		EndTime:   end,
	}
}

// Settings holds per-project display and playback configuration.
// ScrollSpeed is in pixels per second; the normalized playback speed
// multiplier lives in PlaybackStatus.
type Settings struct {
	FontSize    int     `json:"fontSize"`
	TextColor   string  `json:"textColor"`
	ScrollSpeed float64 `json:"scrollSpeed"`
	Mirror      bool    `json:"mirror"`
	GuideLine   bool    `json:"guideLine"`
}

// DefaultSettings returns the settings applied to new projects.
func DefaultSettings() Settings {
	return Settings{
		FontSize:    48,
		TextColor:   "#FFFFFF",
		ScrollSpeed: 100,
		Mirror:      false,
		GuideLine:   true,
	}
}

// Project owns an ordered sequence of segments plus settings. It is
// the unit of persistence.
type Project struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	CreatedAt  time.Time `json:"createdAt"`
	ModifiedAt time.Time `json:"modifiedAt"`
	Segments   []Segment `json:"segments"`
	Settings   Settings  `json:"settings"`
	AudioFile  string    `json:"audioFile,omitempty"`
}

// NewProject creates an empty project with default settings.
func NewProject(name string) *Project {
	now := time.Now().UTC()
	return &Project{
		ID:         uuid.NewString(),
		Name:       name,
		CreatedAt:  now,
		ModifiedAt: now,
		Settings:   DefaultSettings(),
	}
}

// Touch updates the modification timestamp.
func (p *Project) Touch() {
	p.ModifiedAt = time.Now().UTC()
}

// Clone returns a deep copy with the same IDs.
func (p *Project) Clone() *Project {
	c := *p
	c.Segments = slices.Clone(p.Segments)
	for i := range c.Segments {
		if r := c.Segments[i].Region; r != nil {
			rc := *r
			c.Segments[i].Region = &rc
		}
	}
	return &c
}

// AddSegment appends a segment.
func (p *Project) AddSegment(s Segment) {
	p.Segments = append(p.Segments, s)
	p.Touch()
}

// RemoveSegment deletes the segment with the given ID and compacts the
// order. Unknown IDs are ignored.
func (p *Project) RemoveSegment(id string) {
	p.Segments = slices.DeleteFunc(p.Segments, func(s Segment) bool {
		return s.ID == id
	})
	p.Touch()
}

// AssetPaths returns the distinct asset references held by the project,
// used by the asset store's orphan sweep.
func (p *Project) AssetPaths() []string {
	var paths []string
	for _, s := range p.Segments {
		if s.AssetPath != "" && !slices.Contains(paths, s.AssetPath) {
			paths = append(paths, s.AssetPath)
		}
	}
	if p.AudioFile != "" && !slices.Contains(paths, p.AudioFile) {
		paths = append(paths, p.AudioFile)
	}
	return paths
}

// ProjectSummary is the listing view of a stored project.
type ProjectSummary struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	SegmentCount int       `json:"segmentCount"`
	ModifiedAt   time.Time `json:"modifiedAt"`
}

// SortSummaries orders summaries by modification time, newest first.
func SortSummaries(summaries []ProjectSummary) {
	slices.SortFunc(summaries, func(a, b ProjectSummary) int {
		return b.ModifiedAt.Compare(a.ModifiedAt)
	})
}
