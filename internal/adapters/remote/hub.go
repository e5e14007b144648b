package remote

import (
	"sync/atomic"

	"github.com/gorilla/websocket"
)

// client is a single connected peer: either the controlling surface
// ("host") or a phone-style remote. The role is decided by the first
// registration message, not the transport.
type client struct {
	conn *websocket.Conn
	send chan []byte
	host atomic.Bool
}

// hub maintains the set of active clients and routes messages between
// roles: commands from remotes go to hosts, status from hosts goes to
// remotes.
type hub struct {
	clients    map[*client]bool
	register   chan *client
	unregister chan *client
	toHosts    chan []byte
	toRemotes  chan []byte

	// onCount is invoked from the hub goroutine whenever the number
	// of connected clients changes.
	onCount func(int)
}

func newHub(onCount func(int)) *hub {
	return &hub{
		clients:    make(map[*client]bool),
		register:   make(chan *client),
		unregister: make(chan *client),
		toHosts:    make(chan []byte, 16),
		toRemotes:  make(chan []byte, 16),
		onCount:    onCount,
	}
}

// run routes messages until done is closed, then disconnects every
// remaining client.
func (h *hub) run(done <-chan struct{}) {
	for {
		select {
		case <-done:
			for c := range h.clients {
				close(c.send)
				delete(h.clients, c)
			}
			return
		case c := <-h.register:
			h.clients[c] = true
			h.notifyCount()
		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
				h.notifyCount()
			}
		case message := <-h.toHosts:
			h.send(message, true)
		case message := <-h.toRemotes:
			h.send(message, false)
		}
	}
}

func (h *hub) send(message []byte, toHosts bool) {
	for c := range h.clients {
		if c.host.Load() != toHosts {
			continue
		}
		select {
		case c.send <- message:
		default:
			// Slow consumer: drop it rather than block the hub.
			close(c.send)
			delete(h.clients, c)
			h.notifyCount()
		}
	}
}

func (h *hub) notifyCount() {
	if h.onCount != nil {
		h.onCount(len(h.clients))
	}
}
