package render

import (
	"strings"
	"testing"

	"promptdeck/internal/domain"
)

func TestMirrorLine(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain word", input: "abc", want: "cba"},
		{name: "parens swap", input: "(a)", want: "(a)"},
		{name: "brackets swap", input: "[x>", want: "<x]"},
		{name: "slashes swap", input: "a/b\\c", want: "c/b\\a"},
		{name: "empty", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MirrorLine(tt.input); got != tt.want {
				t.Errorf("MirrorLine(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestMirrorLineInvolution(t *testing.T) {
	inputs := []string{"hello (world)", "[a]{b}<c>", "mixed / and \\"}
	for _, in := range inputs {
		if got := MirrorLine(MirrorLine(in)); got != in {
			t.Errorf("double mirror of %q = %q, want original", in, got)
		}
	}
}

func TestFitBoxDimensions(t *testing.T) {
	lines := []string{"one", "two", "three", "four", "five"}

	out := FitBox(lines, 10, 3)
	if len(out) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(out))
	}
	for i, line := range out {
		if len([]rune(line)) != 10 {
			t.Errorf("line %d width = %d, want 10", i, len([]rune(line)))
		}
	}
	// Vertical crop keeps the middle of the content.
	if !strings.Contains(out[0], "two") {
		t.Errorf("expected middle crop starting at 'two', got %q", out[0])
	}
}

func TestFitBoxPadsShortContent(t *testing.T) {
	out := FitBox([]string{"hi"}, 6, 3)
	if len(out) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(out))
	}
	if strings.TrimSpace(out[0]) != "" {
		t.Errorf("expected blank top padding, got %q", out[0])
	}
	if strings.TrimSpace(out[1]) != "hi" {
		t.Errorf("expected centered content, got %q", out[1])
	}
}

func TestFitBoxDegenerateBox(t *testing.T) {
	if out := FitBox([]string{"x"}, 0, 5); out != nil {
		t.Errorf("expected nil for zero width, got %v", out)
	}
	if out := FitBox([]string{"x"}, 5, 0); out != nil {
		t.Errorf("expected nil for zero height, got %v", out)
	}
}

func TestFrameText(t *testing.T) {
	seg := &domain.Segment{ID: "s1", Kind: domain.SegmentText, Content: "line a\nline b"}

	out := Frame(seg, 12, 4, false)
	joined := strings.Join(out, "\n")
	if !strings.Contains(joined, "line a") || !strings.Contains(joined, "line b") {
		t.Errorf("expected text content in frame, got %q", joined)
	}
}

func TestFrameMirrored(t *testing.T) {
	seg := &domain.Segment{ID: "s1", Kind: domain.SegmentText, Content: "abc"}

	out := Frame(seg, 5, 1, true)
	if !strings.Contains(out[0], "cba") {
		t.Errorf("expected mirrored text, got %q", out[0])
	}
}

func TestFrameVisualPlaceholder(t *testing.T) {
	seg := &domain.Segment{
		ID:        "s2",
		Kind:      domain.SegmentImageRegion,
		AssetPath: "global_assets/abc123.png",
		Region:    &domain.CropRect{X: 0.1, Y: 0.2, Width: 0.5, Height: 0.5},
	}

	out := Frame(seg, 40, 4, false)
	joined := strings.Join(out, "\n")
	if !strings.Contains(joined, "abc123.png") {
		t.Errorf("expected asset name in placeholder, got %q", joined)
	}
	if !strings.Contains(joined, "crop 50%x50%") {
		t.Errorf("expected crop info in placeholder, got %q", joined)
	}
}

func TestFrameNilSegment(t *testing.T) {
	out := Frame(nil, 8, 2, false)
	if len(out) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(out))
	}
	for _, line := range out {
		if strings.TrimSpace(line) != "" {
			t.Errorf("expected blank frame, got %q", line)
		}
	}
}

func TestCacheInvalidate(t *testing.T) {
	cache := NewCache()
	seg := &domain.Segment{ID: "s1", Kind: domain.SegmentText, Content: "before"}

	first := cache.Frame(seg, 10, 1, false)

	// Without invalidation the stale frame is served.
	seg.Content = "changed"
	cached := cache.Frame(seg, 10, 1, false)
	if cached[0] != first[0] {
		t.Errorf("expected cached frame, got %q", cached[0])
	}

	cache.Invalidate("s1")
	fresh := cache.Frame(seg, 10, 1, false)
	if !strings.Contains(fresh[0], "changed") {
		t.Errorf("expected re-rendered frame after invalidate, got %q", fresh[0])
	}
}
