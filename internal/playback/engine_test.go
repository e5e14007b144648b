package playback

import (
	"testing"
	"time"
)

func TestEngineAdvancesOffset(t *testing.T) {
	e := NewEngine()
	e.SetSpeed(100)
	e.SetTarget(1000)
	e.Play()

	e.Advance(500 * time.Millisecond)
	if got := e.CurrentOffset(); got != 50 {
		t.Errorf("expected offset 50, got %v", got)
	}

	e.Advance(250 * time.Millisecond)
	if got := e.CurrentOffset(); got != 75 {
		t.Errorf("expected offset 75, got %v", got)
	}
}

func TestEngineDoesNotAdvanceWhenPausedOrStopped(t *testing.T) {
	e := NewEngine()
	e.SetSpeed(100)
	e.SetTarget(1000)

	e.Advance(time.Second)
	if e.CurrentOffset() != 0 {
		t.Error("stopped engine advanced")
	}

	e.Play()
	e.Advance(time.Second)
	e.Pause()
	e.Advance(time.Second)
	if got := e.CurrentOffset(); got != 100 {
		t.Errorf("paused engine advanced: offset %v", got)
	}
}

func TestEngineCompletionResetsOffset(t *testing.T) {
	e := NewEngine()
	e.SetSpeed(100)
	e.SetTarget(100)
	completions := 0
	e.OnComplete(func() {
		completions++
		e.SetTarget(200) // next segment's height
	})
	e.Play()

	e.Advance(time.Second)
	if completions != 1 {
		t.Fatalf("expected 1 completion, got %d", completions)
	}
	if e.CurrentOffset() != 0 {
		t.Errorf("offset not reset after completion: %v", e.CurrentOffset())
	}
}

func TestEngineCountdownMode(t *testing.T) {
	e := NewEngine()
	e.SetTarget(0)
	e.SetCountdown(2)
	completions := 0
	e.OnComplete(func() { completions++ })
	e.Play()

	e.Advance(time.Second)
	if completions != 0 {
		t.Fatal("countdown completed early")
	}
	e.Advance(1500 * time.Millisecond)
	if completions != 1 {
		t.Errorf("expected 1 completion, got %d", completions)
	}

	// Exhausted countdown: further frames are no-ops.
	e.Advance(time.Second)
	if completions != 1 {
		t.Errorf("exhausted countdown fired again: %d", completions)
	}
}

func TestEngineNoTargetNoCountdownIsNoop(t *testing.T) {
	e := NewEngine()
	e.OnComplete(func() { t.Error("unexpected completion") })
	e.Play()
	e.Advance(time.Second)
	if e.CurrentOffset() != 0 {
		t.Errorf("expected offset 0, got %v", e.CurrentOffset())
	}
}

func TestEngineSeekClamps(t *testing.T) {
	e := NewEngine()
	e.SetTarget(100)

	e.Seek(250)
	if e.CurrentOffset() != 100 {
		t.Errorf("seek past target not clamped: %v", e.CurrentOffset())
	}
	e.Seek(-10)
	if e.CurrentOffset() != 0 {
		t.Errorf("negative seek not clamped: %v", e.CurrentOffset())
	}
}

func TestEngineStopReturnsToSegmentStart(t *testing.T) {
	e := NewEngine()
	e.SetSpeed(100)
	e.SetTarget(1000)
	e.Play()
	e.Advance(time.Second)
	e.Stop()

	if e.CurrentOffset() != 0 {
		t.Errorf("expected offset 0 after stop, got %v", e.CurrentOffset())
	}
	if e.Playing() {
		t.Error("engine still playing after stop")
	}
}
