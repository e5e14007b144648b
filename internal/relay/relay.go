// Package relay mirrors playback state between surfaces of the same
// process: best-effort, unordered, at-most-once pub/sub over named
// channels, with a last-write-wins file slot as the fallback path for
// surfaces without a live subscription. Handlers must tolerate the
// same logical message arriving once per path.
package relay

import (
	"sync"

	"promptdeck/internal/ports"
)

// Default channel names.
const (
	ChannelControl = "prompter-control"
	ChannelStatus  = "prompter-status"
)

// Relay is an owned in-process pub/sub hub with an explicit lifecycle.
// A closed relay drops every publish.
type Relay struct {
	mu     sync.Mutex
	subs   map[string]map[int]func(ports.Envelope)
	nextID int
	closed bool
}

// Ensure Relay implements the relay ports
var (
	_ ports.Publisher  = (*Relay)(nil)
	_ ports.Subscriber = (*Relay)(nil)
)

// New creates an open relay.
func New() *Relay {
	return &Relay{subs: map[string]map[int]func(ports.Envelope){}}
}

// Subscribe registers a listener on a channel. The returned function
// cancels the subscription; no handshake is needed to disconnect.
func (r *Relay) Subscribe(channel string, fn func(ports.Envelope)) (cancel func()) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return func() {}
	}
	if r.subs[channel] == nil {
		r.subs[channel] = map[int]func(ports.Envelope){}
	}
	id := r.nextID
	r.nextID++
	r.subs[channel][id] = fn

	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		delete(r.subs[channel], id)
	}
}

// Publish delivers the envelope to every current listener on the
// channel. With no listener the message is silently dropped; this is
// pub/sub, not a queue.
func (r *Relay) Publish(channel string, env ports.Envelope) {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	listeners := make([]func(ports.Envelope), 0, len(r.subs[channel]))
	for _, fn := range r.subs[channel] {
		listeners = append(listeners, fn)
	}
	r.mu.Unlock()

	for _, fn := range listeners {
		fn(env)
	}
}

// Close drops all subscriptions and turns further publishes into
// no-ops.
func (r *Relay) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	r.subs = map[string]map[int]func(ports.Envelope){}
}
