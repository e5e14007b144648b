package relay

import (
	"context"
	"sync"
	"time"

	"promptdeck/internal/domain"
	"promptdeck/internal/playback"
	"promptdeck/internal/ports"
)

// connectivityWindow is how long after the last pong the controller
// still reports the player as connected.
const connectivityWindow = 3 * time.Second

// Player attaches the local store to a relay: it answers pings with
// pong plus the current status and applies inbound commands through
// the exact handler used for local input. Any connected surface can
// drive playback; there is no trust distinction.
type Player struct {
	store  *playback.Store
	pub    ports.Publisher
	source string

	cancelSub   func()
	cancelState func()
}

// NewPlayer wires a store to the relay's control channel and mirrors
// every state change out on the status channel.
func NewPlayer(r *Relay, store *playback.Store, source string) *Player {
	p := &Player{store: store, pub: r, source: source}

	p.cancelSub = r.Subscribe(ChannelControl, p.handle)
	p.cancelState = store.Subscribe(func(snap playback.Snapshot) {
		status := snap.Status
		p.pub.Publish(ChannelStatus, ports.Envelope{
			Type:      ports.EnvelopeStatus,
			Status:    &status,
			Timestamp: domain.NowMillis(),
			Source:    p.source,
		})
	})

	return p
}

func (p *Player) handle(env ports.Envelope) {
	switch env.Type {
	case ports.EnvelopePing:
		status := p.store.Status()
		p.pub.Publish(ChannelStatus, ports.Envelope{
			Type:      ports.EnvelopePong,
			Status:    &status,
			Timestamp: env.Timestamp, // echoed for RTT
			Source:    p.source,
		})
	case ports.EnvelopeCommand:
		if env.Command == nil {
			return
		}
		// Duplicate deliveries from the slot path are absorbed by the
		// store's idempotent Apply.
		_ = p.store.Apply(*env.Command)
	}
}

// Close unregisters the player's listeners.
func (p *Player) Close() {
	p.cancelSub()
	p.cancelState()
}

// Controller is the remote-panel side: it sends commands, pings the
// player to measure round-trip time, and tracks connectivity from the
// answers.
type Controller struct {
	pub    ports.Publisher
	source string

	mu       sync.Mutex
	rtt      time.Duration
	lastSeen time.Time
	status   domain.PlaybackStatus

	cancelSub func()
}

// NewController subscribes to the status channel and returns a
// controller ready to send.
func NewController(r *Relay, source string) *Controller {
	c := &Controller{pub: r, source: source}
	c.cancelSub = r.Subscribe(ChannelStatus, c.handle)
	return c
}

func (c *Controller) handle(env ports.Envelope) {
	if env.Status == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.status = *env.Status
	c.lastSeen = time.Now()
	if env.Type == ports.EnvelopePong && env.Timestamp > 0 {
		c.rtt = time.Duration(domain.NowMillis()-env.Timestamp) * time.Millisecond
	}
}

// Send publishes a command to the player.
func (c *Controller) Send(cmd domain.Command) {
	c.pub.Publish(ChannelControl, ports.Envelope{
		Type:      ports.EnvelopeCommand,
		Command:   &cmd,
		Timestamp: domain.NowMillis(),
		Source:    c.source,
	})
}

// Ping requests a pong for round-trip measurement.
func (c *Controller) Ping() {
	c.pub.Publish(ChannelControl, ports.Envelope{
		Type:      ports.EnvelopePing,
		Timestamp: domain.NowMillis(),
		Source:    c.source,
	})
}

// Run pings every interval until the context is cancelled. The 1s
// default matches the while-playing cadence of the main surface.
func (c *Controller) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.Ping()
		}
	}
}

// Status returns the last received snapshot.
func (c *Controller) Status() domain.PlaybackStatus {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// RTT returns the last measured round-trip time.
func (c *Controller) RTT() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rtt
}

// Connected reports whether a status arrived recently. Purely
// presentational; there is no handshake.
func (c *Controller) Connected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.lastSeen.IsZero() && time.Since(c.lastSeen) < connectivityWindow
}

// Close unregisters the controller's listener.
func (c *Controller) Close() {
	c.cancelSub()
}
