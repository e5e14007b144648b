package playback

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"promptdeck/internal/domain"
	"promptdeck/internal/ports"
)

// lineHeightFactor converts a font size to the pixel height of one
// rendered text line.
const lineHeightFactor = 1.25

// defaultSaveDelay debounces persistence writes behind editor and
// transport activity.
const defaultSaveDelay = 500 * time.Millisecond

// Snapshot is the immutable view handed to subscribers after every
// mutation. Receivers treat it as a full replacement, never a delta.
type Snapshot struct {
	Status domain.PlaybackStatus
	Offset float64
}

// Store is the sole mutable owner of the live project and playback
// status. Every mutation is serialized, produces a consistent snapshot
// for subscribers, and schedules a debounced fire-and-forget
// persistence write.
type Store struct {
	mu      sync.Mutex
	project *domain.Project
	status  domain.PlaybackStatus
	engine  *Engine

	subs   map[int]func(Snapshot)
	nextID int

	repo      ports.ProjectRepository
	saveDelay time.Duration
	saveTimer *time.Timer

	lastCmd domain.Command

	logger *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithRepository enables debounced persistence of the live project.
func WithRepository(repo ports.ProjectRepository) Option {
	return func(s *Store) { s.repo = repo }
}

// WithSaveDelay overrides the persistence debounce window.
func WithSaveDelay(d time.Duration) Option {
	return func(s *Store) { s.saveDelay = d }
}

// WithLogger sets the logger for persistence failures.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// NewStore creates an idle store with no project loaded.
func NewStore(opts ...Option) *Store {
	s := &Store{
		status:    domain.InitialStatus(),
		engine:    NewEngine(),
		subs:      map[int]func(Snapshot){},
		saveDelay: defaultSaveDelay,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.engine.OnComplete(s.segmentComplete)
	return s
}

// Subscribe registers a listener invoked with a snapshot after every
// mutation. The returned function cancels the subscription.
func (s *Store) Subscribe(fn func(Snapshot)) (cancel func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// SetProject installs the project as the live document and resets
// playback to the first segment.
func (s *Store) SetProject(p *domain.Project) {
	s.mu.Lock()
	defer s.unlockAndNotify()

	s.project = p
	s.status.ProjectName = ""
	s.status.ProjectID = ""
	s.status.ProjectRevision = 0
	s.status.TotalSegments = 0
	if p != nil {
		s.status.ProjectName = p.Name
		s.status.ProjectID = p.ID
		s.status.ProjectRevision = p.ModifiedAt.UnixMilli()
		s.status.TotalSegments = len(p.Segments)
	}
	s.status.CurrentSegment = 0
	s.status.IsPlaying = false
	s.status.IsPaused = false
	s.status.PlaybackTime = 0
	s.installSegment(0)
	s.engine.Stop()
}

// Project returns a copy of the live project, or nil.
func (s *Store) Project() *domain.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.project == nil {
		return nil
	}
	return s.project.Clone()
}

// Status returns the current playback status with a fresh timestamp.
func (s *Store) Status() domain.PlaybackStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status.Stamped()
}

// Offset returns the current scroll offset in pixels.
func (s *Store) Offset() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.CurrentOffset()
}

// Play starts playback. With zero segments it is a no-op.
func (s *Store) Play() {
	s.mu.Lock()
	defer s.unlockAndNotify()
	s.play()
}

func (s *Store) play() {
	if s.project == nil || len(s.project.Segments) == 0 {
		return
	}
	s.status.IsPlaying = true
	s.status.IsPaused = false
	s.engine.Play()
}

// Pause suspends playback without resetting position.
func (s *Store) Pause() {
	s.mu.Lock()
	defer s.unlockAndNotify()
	s.pause()
}

func (s *Store) pause() {
	if !s.status.IsPlaying {
		return
	}
	s.status.IsPaused = true
	s.engine.Pause()
}

// Stop halts playback and returns to the start of the current
// segment, not the project start.
func (s *Store) Stop() {
	s.mu.Lock()
	defer s.unlockAndNotify()
	s.stop()
}

func (s *Store) stop() {
	s.status.IsPlaying = false
	s.status.IsPaused = false
	s.engine.Stop()
	s.installSegment(s.status.CurrentSegment)
}

// NextSegment advances to the next segment, clamped at the end. No
// wraparound; playback state is unaffected.
func (s *Store) NextSegment() {
	s.mu.Lock()
	defer s.unlockAndNotify()
	s.moveTo(s.status.CurrentSegment + 1)
}

// PrevSegment moves to the previous segment, clamped at 0.
func (s *Store) PrevSegment() {
	s.mu.Lock()
	defer s.unlockAndNotify()
	s.moveTo(s.status.CurrentSegment - 1)
}

func (s *Store) moveTo(index int) {
	total := s.status.TotalSegments
	if total == 0 {
		return
	}
	index = min(max(index, 0), total-1)
	if index == s.status.CurrentSegment {
		return
	}
	s.status.CurrentSegment = index
	s.installSegment(index)
}

// SetSpeed sets the normalized speed multiplier, clamped to the
// configured bounds.
func (s *Store) SetSpeed(v float64) {
	s.mu.Lock()
	defer s.unlockAndNotify()
	s.setSpeed(v)
}

func (s *Store) setSpeed(v float64) {
	s.status.Speed = domain.ClampSpeed(v)
	s.applyEngineSpeed()
}

// Seek moves the scroll offset within the current segment.
func (s *Store) Seek(offset float64) {
	s.mu.Lock()
	defer s.unlockAndNotify()
	s.engine.Seek(offset)
}

// ResetPosition returns to the start of the current segment.
func (s *Store) ResetPosition() {
	s.mu.Lock()
	defer s.unlockAndNotify()
	s.engine.Seek(0)
}

// ToggleMirror flips the mirror flag on the project settings and the
// mirrored status.
func (s *Store) ToggleMirror() {
	s.mu.Lock()
	defer s.unlockAndNotify()
	s.toggleMirror()
}

func (s *Store) toggleMirror() {
	s.status.Mirror = !s.status.Mirror
	if s.project != nil {
		s.project.Settings.Mirror = s.status.Mirror
		s.scheduleSave()
	}
}

// GoLive marks the prompter as live.
func (s *Store) GoLive() {
	s.mu.Lock()
	defer s.unlockAndNotify()
	s.status.IsLive = true
}

// ExitLive clears the live flag.
func (s *Store) ExitLive() {
	s.mu.Lock()
	defer s.unlockAndNotify()
	s.status.IsLive = false
}

// SyncStatus replaces the status wholesale with a snapshot received
// from a controlling surface, preserving the locally tracked client
// count. Stale snapshots simply get overwritten by fresher ones.
func (s *Store) SyncStatus(st domain.PlaybackStatus) {
	s.mu.Lock()
	defer s.unlockAndNotify()
	clients := s.status.ConnectedClients
	s.status = st
	s.status.ConnectedClients = clients
}

// SetConnectedClients records the bridge's client count in the status.
func (s *Store) SetConnectedClients(n int) {
	s.mu.Lock()
	defer s.unlockAndNotify()
	s.status.ConnectedClients = n
}

// Apply dispatches a remote command through the same handlers used for
// local input. An envelope identical to the previously applied one
// (same type, value, and non-zero timestamp) is treated as a duplicate
// delivery from the second relay path and dropped, which keeps even
// the toggle command idempotent under double delivery.
func (s *Store) Apply(cmd domain.Command) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.unlockAndNotify()

	if cmd.Timestamp != 0 && cmd == s.lastCmd {
		return nil
	}
	s.lastCmd = cmd

	switch cmd.Type {
	case domain.CommandPlay:
		s.play()
	case domain.CommandPause:
		s.pause()
	case domain.CommandStop:
		s.stop()
	case domain.CommandNextSegment:
		s.moveTo(s.status.CurrentSegment + 1)
	case domain.CommandPrevSegment:
		s.moveTo(s.status.CurrentSegment - 1)
	case domain.CommandSetSpeed:
		s.setSpeed(cmd.Value)
	case domain.CommandSeek:
		s.engine.Seek(cmd.Value)
	case domain.CommandToggleMirror:
		s.toggleMirror()
	case domain.CommandResetPosition:
		s.engine.Seek(0)
	case domain.CommandGoLive:
		s.status.IsLive = true
	case domain.CommandExitLive:
		s.status.IsLive = false
	}
	return nil
}

// EditSegments applies fn to the live project and schedules a
// debounced save. Used by the editor surface.
func (s *Store) EditSegments(fn func(p *domain.Project)) {
	s.mu.Lock()
	defer s.unlockAndNotify()

	if s.project == nil {
		return
	}
	fn(s.project)
	s.project.Touch()
	s.status.ProjectRevision = s.project.ModifiedAt.UnixMilli()
	s.status.TotalSegments = len(s.project.Segments)
	if s.status.TotalSegments == 0 {
		s.status.CurrentSegment = 0
		s.stop()
	} else if s.status.CurrentSegment >= s.status.TotalSegments {
		s.status.CurrentSegment = s.status.TotalSegments - 1
		s.installSegment(s.status.CurrentSegment)
	}
	s.scheduleSave()
}

// Tick advances the engine and the playback clock by dt. While the
// engine is stopped or paused nothing changes and subscribers are not
// disturbed, so an idle session's frame loop stays silent.
func (s *Store) Tick(dt time.Duration) {
	s.mu.Lock()
	if !s.engine.Playing() {
		s.mu.Unlock()
		return
	}
	s.status.PlaybackTime += dt.Seconds()
	s.engine.Advance(dt)
	s.unlockAndNotify()
}

// Run drives the engine at roughly display refresh rate until the
// context is cancelled. A missed frame only means a visually slower
// scroll.
func (s *Store) Run(ctx context.Context, frame time.Duration) {
	if frame <= 0 {
		frame = time.Second / 60
	}
	ticker := time.NewTicker(frame)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			s.Tick(now.Sub(last))
			last = now
		}
	}
}

// segmentComplete fires inside Tick with the lock held: advance to the
// next segment, or stop at the end of the last one.
func (s *Store) segmentComplete() {
	total := s.status.TotalSegments
	if s.status.CurrentSegment+1 < total {
		s.status.CurrentSegment++
		s.installSegment(s.status.CurrentSegment)
		return
	}
	s.status.IsPlaying = false
	s.status.IsPaused = false
	s.engine.Stop()
}

// installSegment loads the segment's scroll target or countdown into
// the engine.
func (s *Store) installSegment(index int) {
	if s.project == nil || index < 0 || index >= len(s.project.Segments) {
		s.engine.SetTarget(0)
		s.engine.SetCountdown(0)
		return
	}
	seg := s.project.Segments[index]
	if seg.EndTime > seg.StartTime {
		// Keep the playback clock aligned with the segment's window so
		// satellites recomputing the active segment from it agree.
		s.status.PlaybackTime = seg.StartTime
	}
	if seg.Kind == domain.SegmentText {
		s.engine.SetTarget(textHeight(seg.Content, s.project.Settings.FontSize))
		s.engine.SetCountdown(0)
	} else {
		s.engine.SetTarget(0)
		duration := seg.Duration
		if duration == 0 && seg.EndTime > seg.StartTime {
			duration = seg.EndTime - seg.StartTime
		}
		s.engine.SetCountdown(duration)
	}
	s.applyEngineSpeed()
}

func (s *Store) applyEngineSpeed() {
	scroll := domain.MinScrollSpeed
	if s.project != nil {
		scroll = domain.ClampScrollSpeed(s.project.Settings.ScrollSpeed)
	}
	s.engine.SetSpeed(scroll * s.status.Speed)
}

// textHeight computes the scroll target of a text segment from its
// line count and the configured font size.
func textHeight(content string, fontSize int) float64 {
	if content == "" {
		return 0
	}
	lines := 1
	for _, r := range content {
		if r == '\n' {
			lines++
		}
	}
	if fontSize <= 0 {
		fontSize = 48
	}
	return float64(lines) * float64(fontSize) * lineHeightFactor
}

// unlockAndNotify releases the lock and delivers the post-mutation
// snapshot to subscribers outside of it.
func (s *Store) unlockAndNotify() {
	snap := Snapshot{
		Status: s.status.Stamped(),
		Offset: s.engine.CurrentOffset(),
	}
	subs := make([]func(Snapshot), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(snap)
	}
}

// scheduleSave arms the debounced, fire-and-forget persistence write.
// Must be called with the lock held.
func (s *Store) scheduleSave() {
	if s.repo == nil || s.project == nil {
		return
	}
	snapshot := s.project.Clone()
	if s.saveTimer != nil {
		s.saveTimer.Stop()
	}
	s.saveTimer = time.AfterFunc(s.saveDelay, func() {
		if err := s.repo.Save(snapshot); err != nil {
			s.logger.Warn("autosave failed", "project", snapshot.ID, "error", err)
		}
	})
}
