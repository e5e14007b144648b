package domain

import (
	"fmt"
	"time"
)

// Speed bounds. Speed in PlaybackStatus is a normalized multiplier;
// ScrollSpeed in Settings is in pixels per second and is converted at
// the engine boundary (effective px/s = ScrollSpeed * Speed).
const (
	MinSpeed = 0.5
	MaxSpeed = 2.0

	MinScrollSpeed = 20.0
	MaxScrollSpeed = 500.0
)

// ClampSpeed bounds a normalized speed multiplier.
func ClampSpeed(v float64) float64 {
	return min(max(v, MinSpeed), MaxSpeed)
}

// ClampScrollSpeed bounds a pixels-per-second scroll speed.
func ClampScrollSpeed(v float64) float64 {
	return min(max(v, MinScrollSpeed), MaxScrollSpeed)
}

// PlaybackStatus is a snapshot of what the teleprompter is currently
// doing. It is a value type, copied on every change; the timestamp is
// display-only and never used for ordering.
type PlaybackStatus struct {
	IsPlaying        bool    `json:"is_playing"`
	IsPaused         bool    `json:"is_paused"`
	Speed            float64 `json:"current_speed"`
	CurrentSegment   int     `json:"current_segment"`
	TotalSegments    int     `json:"total_segments"`
	ProjectName      string  `json:"project_name"`
	ProjectID        string  `json:"project_id,omitempty"`
	ProjectRevision  int64   `json:"project_revision,omitempty"` // epoch millis of the last edit
	PlaybackTime     float64 `json:"playback_time"`              // seconds of playback into the project
	Timestamp        int64   `json:"timestamp"`
	ConnectedClients int     `json:"connected_clients"`
	IsLive           bool    `json:"is_live"`
	Mirror           bool    `json:"mirror"`
}

// InitialStatus returns the status of an idle player with no project.
func InitialStatus() PlaybackStatus {
	return PlaybackStatus{
		Speed:     1.0,
		Timestamp: NowMillis(),
	}
}

// Stamped returns a copy with a fresh timestamp.
func (s PlaybackStatus) Stamped() PlaybackStatus {
	s.Timestamp = NowMillis()
	return s
}

// Validate checks the status invariants: paused implies playing, the
// segment index stays inside [0, total).
func (s PlaybackStatus) Validate() error {
	if s.IsPaused && !s.IsPlaying {
		return fmt.Errorf("invalid status: paused while stopped")
	}
	if s.CurrentSegment < 0 {
		return fmt.Errorf("invalid status: segment index %d < 0", s.CurrentSegment)
	}
	if s.TotalSegments > 0 && s.CurrentSegment >= s.TotalSegments {
		return fmt.Errorf("invalid status: segment index %d >= total %d",
			s.CurrentSegment, s.TotalSegments)
	}
	return nil
}

// NowMillis returns the current time as epoch milliseconds.
func NowMillis() int64 {
	return time.Now().UnixMilli()
}
