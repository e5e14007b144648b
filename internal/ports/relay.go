package ports

import "promptdeck/internal/domain"

// Envelope is the message shape carried by the broadcast relay and its
// fallback slot. Receivers treat Status as a full snapshot replacement,
// never a delta.
type Envelope struct {
	Type      string                 `json:"type"`
	Command   *domain.Command        `json:"command,omitempty"`
	Status    *domain.PlaybackStatus `json:"status,omitempty"`
	Timestamp int64                  `json:"timestamp"`
	Source    string                 `json:"source"`
}

// Envelope types.
const (
	EnvelopePing    = "ping"
	EnvelopePong    = "pong"
	EnvelopeStatus  = "status"
	EnvelopeCommand = "command"
)

// Publisher delivers envelopes to a named channel, best effort: no
// ordering, no acknowledgement, at most once. With no listener the
// message is dropped.
type Publisher interface {
	Publish(channel string, env Envelope)
}

// Subscriber registers a listener on a named channel. The returned
// function cancels the subscription.
type Subscriber interface {
	Subscribe(channel string, fn func(Envelope)) (cancel func())
}
