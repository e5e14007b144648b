package relay

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"promptdeck/internal/domain"
	"promptdeck/internal/ports"
)

func TestSlotWriteRead(t *testing.T) {
	slot := NewSlot(filepath.Join(t.TempDir(), "slot.json"))

	cmd := domain.NewCommand(domain.CommandPlay)
	env := ports.Envelope{
		Type:      ports.EnvelopeCommand,
		Command:   &cmd,
		Timestamp: 42,
		Source:    "panel",
	}
	if err := slot.Write(env); err != nil {
		t.Fatal(err)
	}

	got, ok := slot.Read()
	if !ok {
		t.Fatal("slot read failed")
	}
	if got.Command == nil || got.Command.Type != domain.CommandPlay {
		t.Errorf("unexpected envelope: %+v", got)
	}
}

func TestSlotLastWriteWins(t *testing.T) {
	slot := NewSlot(filepath.Join(t.TempDir(), "slot.json"))

	for _, typ := range []domain.CommandType{domain.CommandPlay, domain.CommandPause, domain.CommandStop} {
		cmd := domain.NewCommand(typ)
		if err := slot.Write(ports.Envelope{Type: ports.EnvelopeCommand, Command: &cmd}); err != nil {
			t.Fatal(err)
		}
	}

	got, ok := slot.Read()
	if !ok {
		t.Fatal("slot read failed")
	}
	if got.Command.Type != domain.CommandStop {
		t.Errorf("expected last write to win, got %q", got.Command.Type)
	}
}

func TestSlotReadMissingOrMalformed(t *testing.T) {
	dir := t.TempDir()

	slot := NewSlot(filepath.Join(dir, "absent.json"))
	if _, ok := slot.Read(); ok {
		t.Error("missing slot read as present")
	}

	path := filepath.Join(dir, "garbage.json")
	if err := os.WriteFile(path, []byte("{nope"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, ok := NewSlot(path).Read(); ok {
		t.Error("malformed slot read as present")
	}
}

func TestSlotWatchObservesChanges(t *testing.T) {
	slot := NewSlot(filepath.Join(t.TempDir(), "slot.json"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	got := make(chan ports.Envelope, 4)
	go slot.Watch(ctx, 5*time.Millisecond, func(env ports.Envelope) {
		got <- env
	})

	time.Sleep(20 * time.Millisecond)
	cmd := domain.NewCommand(domain.CommandPause)
	if err := slot.Write(ports.Envelope{Type: ports.EnvelopeCommand, Command: &cmd, Timestamp: 7}); err != nil {
		t.Fatal(err)
	}

	select {
	case env := <-got:
		if env.Command == nil || env.Command.Type != domain.CommandPause {
			t.Errorf("unexpected envelope: %+v", env)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("watcher never observed the write")
	}
}
