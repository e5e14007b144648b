// Package render lays out the active segment for a satellite display
// surface: fit to the target box, centered, optionally mirrored for
// beam-splitter glass.
package render

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"promptdeck/internal/domain"
)

// mirrorPairs maps asymmetric glyphs to their horizontal reflections.
var mirrorPairs = map[rune]rune{
	'(': ')', ')': '(',
	'[': ']', ']': '[',
	'{': '}', '}': '{',
	'<': '>', '>': '<',
	'/': '\\', '\\': '/',
}

// MirrorLine reverses a line rune-wise and swaps direction-sensitive
// glyphs, producing the horizontally flipped rendition.
func MirrorLine(s string) string {
	runes := []rune(s)
	out := make([]rune, len(runes))
	for i, r := range runes {
		if m, ok := mirrorPairs[r]; ok {
			r = m
		}
		out[len(runes)-1-i] = r
	}
	return string(out)
}

// FitBox centers the lines in a width×height cell box, cropping
// vertically around the middle when the content is taller than the
// box. Lines wider than the box are cropped at the right edge.
func FitBox(lines []string, width, height int) []string {
	if width <= 0 || height <= 0 {
		return nil
	}

	if len(lines) > height {
		start := (len(lines) - height) / 2
		lines = lines[start : start+height]
	}

	out := make([]string, 0, height)
	topPad := (height - len(lines)) / 2
	for i := 0; i < topPad; i++ {
		out = append(out, strings.Repeat(" ", width))
	}
	for _, line := range lines {
		out = append(out, padCenter(line, width))
	}
	for len(out) < height {
		out = append(out, strings.Repeat(" ", width))
	}
	return out
}

func padCenter(line string, width int) string {
	w := runewidth.StringWidth(line)
	if w > width {
		return runewidth.Truncate(line, width, "")
	}
	left := (width - w) / 2
	right := width - w - left
	return strings.Repeat(" ", left) + line + strings.Repeat(" ", right)
}

// Frame renders a segment into a width×height box. Text segments show
// their content; visual segments show a placeholder naming the asset
// and the active crop region, since a terminal cannot decode the
// bitmap itself. A nil segment renders as an empty frame.
func Frame(seg *domain.Segment, width, height int, mirror bool) []string {
	if seg == nil {
		return FitBox(nil, width, height)
	}

	var lines []string
	switch seg.Kind {
	case domain.SegmentText:
		lines = strings.Split(seg.Content, "\n")
	case domain.SegmentImage, domain.SegmentImageRegion:
		lines = visualPlaceholder(seg)
	case domain.SegmentPDFPage:
		lines = []string{
			fmt.Sprintf("[ %s — page %d ]", assetName(seg), seg.Page),
		}
	default:
		lines = nil
	}

	if mirror {
		for i := range lines {
			lines[i] = MirrorLine(lines[i])
		}
	}
	return FitBox(lines, width, height)
}

func visualPlaceholder(seg *domain.Segment) []string {
	lines := []string{fmt.Sprintf("[ %s ]", assetName(seg))}
	if r := seg.Region; r != nil {
		lines = append(lines, fmt.Sprintf("crop %.0f%%x%.0f%% @ %.0f%%,%.0f%%",
			r.Width*100, r.Height*100, r.X*100, r.Y*100))
	}
	if seg.EndTime > seg.StartTime {
		lines = append(lines, fmt.Sprintf("%.1fs – %.1fs", seg.StartTime, seg.EndTime))
	}
	return lines
}

func assetName(seg *domain.Segment) string {
	if seg.AssetPath == "" {
		return "no asset"
	}
	if i := strings.LastIndexByte(seg.AssetPath, '/'); i >= 0 {
		return seg.AssetPath[i+1:]
	}
	return seg.AssetPath
}

// Cache memoizes rendered frames keyed by segment identity and target
// geometry, so repeated status updates for the same segment skip the
// layout work.
type Cache struct {
	frames map[cacheKey][]string
}

type cacheKey struct {
	segmentID string
	width     int
	height    int
	mirror    bool
}

// NewCache creates an empty frame cache.
func NewCache() *Cache {
	return &Cache{frames: map[cacheKey][]string{}}
}

// Frame returns the cached rendition of the segment, rendering on
// first use.
func (c *Cache) Frame(seg *domain.Segment, width, height int, mirror bool) []string {
	if seg == nil {
		return Frame(nil, width, height, mirror)
	}
	key := cacheKey{seg.ID, width, height, mirror}
	if frame, ok := c.frames[key]; ok {
		return frame
	}
	frame := Frame(seg, width, height, mirror)
	c.frames[key] = frame
	return frame
}

// Invalidate drops every cached frame for the segment, e.g. after an
// edit.
func (c *Cache) Invalidate(segmentID string) {
	for key := range c.frames {
		if key.segmentID == segmentID {
			delete(c.frames, key)
		}
	}
}
