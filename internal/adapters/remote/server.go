// Package remote is the cross-device bridge: an HTTP + WebSocket
// surface that lets a phone on the same network drive playback when it
// cannot share a process with the main window. It trusts any device
// that can reach the advertised port; this is a local-network
// convenience, not a hardened service.
package remote

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"promptdeck/internal/domain"
	"promptdeck/internal/playback"
)

//go:embed mobile.html
var mobilePage []byte

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// registration is the shape of the special first messages a client may
// send to tag itself.
type registration struct {
	Type   string                 `json:"type"`
	Status *domain.PlaybackStatus `json:"status,omitempty"`
}

// Server bridges the local playback store to remote devices.
type Server struct {
	store  *playback.Store
	hub    *hub
	logger *slog.Logger

	cancelMirror func()
}

// NewServer creates a bridge around the store.
func NewServer(store *playback.Store, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{store: store, logger: logger}
	s.hub = newHub(store.SetConnectedClients)
	return s
}

// Router returns the HTTP surface: the embedded mobile control page,
// the JSON status/command endpoints, and the WebSocket upgrade.
// Unknown paths get a plain 404.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/", s.handleMobilePage).Methods(http.MethodGet)
	r.HandleFunc("/remote", s.handleMobilePage).Methods(http.MethodGet)
	r.HandleFunc("/status", s.handleStatus).Methods(http.MethodGet)
	r.HandleFunc("/project", s.handleProject).Methods(http.MethodGet)
	r.HandleFunc("/command", s.handleCommand).Methods(http.MethodPost)
	r.HandleFunc("/ws", s.handleWS)
	return r
}

// Run serves the bridge on addr until the context is cancelled. The
// hub goroutine and the status mirror live for the duration.
func (s *Server) Run(ctx context.Context, addr string) error {
	hubDone := make(chan struct{})
	defer close(hubDone)
	go s.hub.run(hubDone)

	s.cancelMirror = s.store.Subscribe(func(snap playback.Snapshot) {
		if data, err := json.Marshal(snap.Status); err == nil {
			s.hub.toRemotes <- data
		}
	})
	defer s.cancelMirror()

	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("remote bridge listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (s *Server) handleMobilePage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(mobilePage)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	// Status() stamps a fresh timestamp for client latency display.
	json.NewEncoder(w).Encode(s.store.Status())
}

// handleProject serves the loaded project document so display
// satellites can render segment content, not just status indices.
func (s *Server) handleProject(w http.ResponseWriter, r *http.Request) {
	p := s.store.Project()
	if p == nil {
		http.Error(w, `{"error":"no project loaded"}`, http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(p)
}

func (s *Server) handleCommand(w http.ResponseWriter, r *http.Request) {
	var raw json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		http.Error(w, `{"success":false,"error":"malformed JSON"}`, http.StatusBadRequest)
		return
	}
	cmd, err := domain.ParseCommand(raw)
	if err != nil {
		s.logger.Warn("rejected HTTP command", "error", err)
		http.Error(w, fmt.Sprintf(`{"success":false,"error":%q}`, err.Error()), http.StatusBadRequest)
		return
	}

	s.logger.Info("remote command", "type", cmd.Type, "via", "http")
	_ = s.store.Apply(cmd)
	s.relayToHosts(raw)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"success":   true,
		"message":   "Command executed",
		"command":   cmd.Type,
		"timestamp": domain.NowMillis(),
	})
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	c := &client{conn: conn, send: make(chan []byte, 32)}
	s.hub.register <- c

	// Initial status immediately; no further handshake.
	if data, err := json.Marshal(s.store.Status()); err == nil {
		c.send <- data
	}

	go c.writePump()
	go s.readPump(c)
}

func (s *Server) readPump(c *client) {
	defer func() {
		s.hub.unregister <- c
		c.conn.Close()
	}()

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			return
		}

		// Registration and sync messages first.
		var reg registration
		if err := json.Unmarshal(message, &reg); err == nil {
			switch reg.Type {
			case "browser-register":
				c.host.Store(true)
				s.logger.Info("host registered")
				continue
			case "status-sync":
				if reg.Status != nil {
					c.host.Store(true)
					s.store.SyncStatus(*reg.Status)
				}
				continue
			}
		}

		// Otherwise a command from a remote.
		cmd, err := domain.ParseCommand(message)
		if err != nil {
			s.logger.Debug("dropped malformed message", "error", err)
			continue
		}

		s.logger.Info("remote command", "type", cmd.Type, "via", "websocket")
		_ = s.store.Apply(cmd)
		s.relayToHosts(message)

		// Immediate feedback to the sender.
		if data, err := json.Marshal(s.store.Status()); err == nil {
			select {
			case c.send <- data:
			default:
			}
		}
	}
}

func (s *Server) relayToHosts(message []byte) {
	select {
	case s.hub.toHosts <- message:
	default:
		// Hub congested: best-effort delivery, drop.
	}
}

func (c *client) writePump() {
	defer c.conn.Close()
	for message := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}
	c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}
