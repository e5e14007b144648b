package relay

import (
	"testing"

	"promptdeck/internal/domain"
	"promptdeck/internal/playback"
	"promptdeck/internal/ports"
)

func TestPublishReachesAllSubscribers(t *testing.T) {
	r := New()
	defer r.Close()

	var a, b int
	r.Subscribe("ch", func(ports.Envelope) { a++ })
	r.Subscribe("ch", func(ports.Envelope) { b++ })
	r.Subscribe("other", func(ports.Envelope) { t.Error("wrong channel delivered") })

	r.Publish("ch", ports.Envelope{Type: ports.EnvelopeStatus})
	if a != 1 || b != 1 {
		t.Errorf("expected both subscribers notified once, got a=%d b=%d", a, b)
	}
}

func TestPublishWithNoListenerIsDropped(t *testing.T) {
	r := New()
	defer r.Close()
	// No panic, no queueing.
	r.Publish("empty", ports.Envelope{Type: ports.EnvelopeCommand})
}

func TestCancelledSubscriberStopsReceiving(t *testing.T) {
	r := New()
	defer r.Close()

	count := 0
	cancel := r.Subscribe("ch", func(ports.Envelope) { count++ })
	r.Publish("ch", ports.Envelope{})
	cancel()
	r.Publish("ch", ports.Envelope{})

	if count != 1 {
		t.Errorf("expected 1 delivery, got %d", count)
	}
}

func TestClosedRelayDropsEverything(t *testing.T) {
	r := New()
	count := 0
	r.Subscribe("ch", func(ports.Envelope) { count++ })
	r.Close()
	r.Publish("ch", ports.Envelope{})
	if count != 0 {
		t.Error("closed relay still delivered")
	}
	if cancel := r.Subscribe("ch", func(ports.Envelope) {}); cancel == nil {
		t.Error("subscribe on closed relay returned nil cancel")
	}
}

func TestPlayerAnswersPingWithStatus(t *testing.T) {
	r := New()
	defer r.Close()

	store := playback.NewStore()
	p := domain.NewProject("Ping Show")
	p.AddSegment(domain.NewTextSegment("hello"))
	store.SetProject(p)

	player := NewPlayer(r, store, "main")
	defer player.Close()

	ctl := NewController(r, "panel")
	defer ctl.Close()

	if ctl.Connected() {
		t.Error("controller connected before any answer")
	}

	ctl.Ping()

	if !ctl.Connected() {
		t.Fatal("controller not connected after pong")
	}
	if got := ctl.Status().ProjectName; got != "Ping Show" {
		t.Errorf("expected status for Ping Show, got %q", got)
	}
}

func TestControllerCommandDrivesPlayer(t *testing.T) {
	r := New()
	defer r.Close()

	store := playback.NewStore()
	p := domain.NewProject("Driven")
	p.AddSegment(domain.NewTextSegment("a"))
	p.AddSegment(domain.NewTextSegment("b"))
	store.SetProject(p)

	player := NewPlayer(r, store, "main")
	defer player.Close()
	ctl := NewController(r, "panel")
	defer ctl.Close()

	ctl.Send(domain.NewCommand(domain.CommandPlay))
	if !store.Status().IsPlaying {
		t.Fatal("play command did not reach the store")
	}

	// The state change was mirrored back to the controller.
	if !ctl.Status().IsPlaying {
		t.Error("status mirror did not reach the controller")
	}

	// Duplicate delivery via the second path leaves the state alone.
	cmd := domain.NewCommand(domain.CommandNextSegment)
	ctl.Send(cmd)
	ctl.Send(cmd)
	if got := store.Status().CurrentSegment; got != 1 {
		t.Errorf("expected segment 1 after duplicate next, got %d", got)
	}
}

func TestPlayerIgnoresMalformedEnvelopes(t *testing.T) {
	r := New()
	defer r.Close()

	store := playback.NewStore()
	player := NewPlayer(r, store, "main")
	defer player.Close()

	// Command envelope without a command: dropped, never a crash.
	r.Publish(ChannelControl, ports.Envelope{Type: ports.EnvelopeCommand})
	r.Publish(ChannelControl, ports.Envelope{Type: "mystery"})
}
