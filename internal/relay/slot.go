package relay

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"promptdeck/internal/ports"
)

// Slot is the fallback delivery path: a single shared file holding the
// most recent envelope, written atomically and picked up by polling.
// It is last-write-wins and can race with the live relay path, so the
// same logical message may be delivered via both.
type Slot struct {
	path string
}

// NewSlot creates a slot backed by the given file path.
func NewSlot(path string) *Slot {
	return &Slot{path: path}
}

// Write replaces the slot content. Write-to-temp-then-rename keeps
// readers from observing a partial envelope.
func (s *Slot) Write(env ports.Envelope) error {
	data, err := json.Marshal(env)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

// Read returns the current slot content. A missing or malformed slot
// reads as empty.
func (s *Slot) Read() (ports.Envelope, bool) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return ports.Envelope{}, false
	}
	var env ports.Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return ports.Envelope{}, false
	}
	return env, true
}

// Watch polls the slot and invokes fn for every observed change until
// the context is cancelled. Changes that happen between polls are
// coalesced; only the latest envelope is ever seen.
func (s *Slot) Watch(ctx context.Context, interval time.Duration, fn func(ports.Envelope)) {
	if interval <= 0 {
		interval = 250 * time.Millisecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var lastMod time.Time
	if info, err := os.Stat(s.path); err == nil {
		lastMod = info.ModTime()
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			info, err := os.Stat(s.path)
			if err != nil || !info.ModTime().After(lastMod) {
				continue
			}
			lastMod = info.ModTime()
			if env, ok := s.Read(); ok {
				fn(env)
			}
		}
	}
}
