package main

import (
	"testing"

	"promptdeck/internal/domain"
)

func timedProject() *domain.Project {
	p := domain.NewProject("Timed Show")
	p.AddSegment(domain.Segment{ID: "a", Kind: domain.SegmentImage, StartTime: 0, EndTime: 5})
	p.AddSegment(domain.Segment{ID: "b", Kind: domain.SegmentImage, StartTime: 5, EndTime: 12})
	p.AddSegment(domain.Segment{ID: "c", Kind: domain.SegmentImage, StartTime: 12, EndTime: 20})
	return p
}

func TestActiveSegmentRecomputedFromPlaybackClock(t *testing.T) {
	p := timedProject()

	tests := []struct {
		name   string
		status domain.PlaybackStatus
		wantID string
	}{
		{"inside second window", domain.PlaybackStatus{PlaybackTime: 7, CurrentSegment: 0}, "b"},
		{"inside third window", domain.PlaybackStatus{PlaybackTime: 13, CurrentSegment: 0}, "c"},
		{"past all windows falls back to first", domain.PlaybackStatus{PlaybackTime: 25, CurrentSegment: 2}, "a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seg := activeSegment(p, tt.status)
			if seg == nil {
				t.Fatal("expected a segment")
			}
			if seg.ID != tt.wantID {
				t.Errorf("expected segment %q, got %q", tt.wantID, seg.ID)
			}
		})
	}
}

func TestActiveSegmentFollowsIndexWithoutWindows(t *testing.T) {
	p := domain.NewProject("Plain Show")
	p.AddSegment(domain.NewTextSegment("one"))
	p.AddSegment(domain.NewTextSegment("two"))

	seg := activeSegment(p, domain.PlaybackStatus{CurrentSegment: 1, PlaybackTime: 99})
	if seg == nil || seg.Content != "two" {
		t.Errorf("expected index-driven selection, got %+v", seg)
	}

	if seg := activeSegment(p, domain.PlaybackStatus{CurrentSegment: 5}); seg != nil {
		t.Errorf("expected nil for out-of-range index, got %+v", seg)
	}
	if seg := activeSegment(nil, domain.PlaybackStatus{}); seg != nil {
		t.Errorf("expected nil without a project, got %+v", seg)
	}
}

func TestStaleDetectsEditsAndProjectSwitches(t *testing.T) {
	p := timedProject()
	d := &display{project: p, revision: p.ModifiedAt.UnixMilli()}

	current := domain.PlaybackStatus{
		ProjectID:       p.ID,
		ProjectRevision: p.ModifiedAt.UnixMilli(),
	}
	if d.stale(current) {
		t.Error("matching id and revision reported stale")
	}

	edited := current
	edited.ProjectRevision++
	if !d.stale(edited) {
		t.Error("bumped revision not reported stale")
	}

	other := current
	other.ProjectID = "someone-else"
	if !d.stale(other) {
		t.Error("different project id not reported stale")
	}

	if !(&display{}).stale(current) {
		t.Error("missing project not reported stale")
	}
}
