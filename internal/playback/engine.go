package playback

import "time"

// Engine converts elapsed wall-clock time and a speed setting into a
// scroll offset each tick. Segments with no scroll target (images,
// static frames) are driven by a countdown instead. The engine is not
// safe for concurrent use; the Store serializes access to it.
type Engine struct {
	speed     float64 // effective pixels per second
	target    float64 // scroll height of the current segment, 0 for static
	offset    float64
	countdown float64 // remaining seconds for static segments
	playing   bool
	paused    bool

	onComplete func()
}

// NewEngine creates a stopped engine.
func NewEngine() *Engine {
	return &Engine{}
}

// OnComplete registers the callback fired when the current segment
// finishes (scroll target reached or countdown exhausted).
func (e *Engine) OnComplete(fn func()) {
	e.onComplete = fn
}

// SetSpeed sets the effective scroll speed in pixels per second.
func (e *Engine) SetSpeed(pxPerSec float64) {
	e.speed = pxPerSec
}

// SetTarget sets the scroll height of the current segment and resets
// the offset. A zero target switches the engine to countdown mode.
func (e *Engine) SetTarget(height float64) {
	e.target = height
	e.offset = 0
}

// SetCountdown arms the static-segment countdown in seconds.
func (e *Engine) SetCountdown(seconds float64) {
	e.countdown = seconds
}

// Play starts or resumes advancing.
func (e *Engine) Play() {
	e.playing = true
	e.paused = false
}

// Pause suspends advancing without resetting position.
func (e *Engine) Pause() {
	if e.playing {
		e.paused = true
	}
}

// Stop halts the engine and returns to the segment start.
func (e *Engine) Stop() {
	e.playing = false
	e.paused = false
	e.offset = 0
}

// Playing reports whether the engine is advancing.
func (e *Engine) Playing() bool {
	return e.playing && !e.paused
}

// CurrentOffset returns the scroll offset in pixels.
func (e *Engine) CurrentOffset() float64 {
	return e.offset
}

// Seek moves the offset, clamped to [0, target].
func (e *Engine) Seek(offset float64) {
	e.offset = min(max(offset, 0), e.target)
}

// Advance moves the engine by dt. When the current segment completes
// the completion callback fires once and the offset resets to 0; the
// callback installs the next segment's target. A missed or long frame
// only scrolls further, never errors.
func (e *Engine) Advance(dt time.Duration) {
	if !e.playing || e.paused {
		return
	}

	if e.target > 0 {
		e.offset += e.speed * dt.Seconds()
		if e.offset >= e.target {
			e.offset = 0
			e.complete()
		}
		return
	}

	if e.countdown > 0 {
		e.countdown -= dt.Seconds()
		if e.countdown <= 0 {
			e.countdown = 0
			e.complete()
		}
	}
	// No target and no countdown: rendering is a no-op each frame.
}

func (e *Engine) complete() {
	if e.onComplete != nil {
		e.onComplete()
	}
}
