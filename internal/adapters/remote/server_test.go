package remote

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"promptdeck/internal/domain"
	"promptdeck/internal/playback"
)

func testServer(t *testing.T) (*Server, *playback.Store) {
	t.Helper()
	store := playback.NewStore()
	p := domain.NewProject("Bridge Show")
	p.AddSegment(domain.NewTextSegment("one"))
	p.AddSegment(domain.NewTextSegment("two"))
	store.SetProject(p)
	return NewServer(store, nil), store
}

func TestStatusEndpoint(t *testing.T) {
	srv, _ := testServer(t)
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/status")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var status domain.PlaybackStatus
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		t.Fatal(err)
	}
	if status.ProjectName != "Bridge Show" {
		t.Errorf("expected project name in status, got %q", status.ProjectName)
	}
	if status.TotalSegments != 2 {
		t.Errorf("expected 2 total segments, got %d", status.TotalSegments)
	}
	if status.Timestamp == 0 {
		t.Error("status timestamp not stamped")
	}
}

func TestProjectEndpoint(t *testing.T) {
	srv, _ := testServer(t)
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/project")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var p domain.Project
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		t.Fatal(err)
	}
	if p.Name != "Bridge Show" || len(p.Segments) != 2 {
		t.Errorf("unexpected project payload: %q with %d segments", p.Name, len(p.Segments))
	}
}

func TestProjectEndpointWithoutProject(t *testing.T) {
	srv := NewServer(playback.NewStore(), nil)
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/project")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 without a project, got %d", resp.StatusCode)
	}
}

func TestCommandEndpoint(t *testing.T) {
	srv, store := testServer(t)
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/command", "application/json",
		strings.NewReader(`{"type":"play","timestamp":1}`))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body["success"] != true {
		t.Errorf("expected success true, got %v", body)
	}
	if !store.Status().IsPlaying {
		t.Error("play command did not reach the store")
	}
}

func TestCommandEndpointRejectsMalformed(t *testing.T) {
	srv, _ := testServer(t)
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	tests := []struct {
		name string
		body string
	}{
		{"invalid json", `{"type":`},
		{"unknown command", `{"type":"levitate"}`},
		{"missing value", `{"type":"set_speed"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Post(ts.URL+"/command", "application/json", strings.NewReader(tt.body))
			if err != nil {
				t.Fatal(err)
			}
			resp.Body.Close()
			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", resp.StatusCode)
			}
		})
	}
}

func TestUnknownPathIs404(t *testing.T) {
	srv, _ := testServer(t)
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/nope")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404, got %d", resp.StatusCode)
	}
}

func TestMobilePageServed(t *testing.T) {
	srv, _ := testServer(t)
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	for _, path := range []string{"/", "/remote"} {
		resp, err := http.Get(ts.URL + path)
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Errorf("GET %s: expected 200, got %d", path, resp.StatusCode)
		}
		if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
			t.Errorf("GET %s: expected html, got %q", path, ct)
		}
	}
}

func startHub(t *testing.T, srv *Server) {
	t.Helper()
	done := make(chan struct{})
	t.Cleanup(func() { close(done) })
	go srv.hub.run(done)
}

func TestHubShutdownDisconnectsClients(t *testing.T) {
	h := newHub(nil)
	done := make(chan struct{})
	go h.run(done)

	c := &client{send: make(chan []byte, 1)}
	h.register <- c
	close(done)

	select {
	case _, open := <-c.send:
		if open {
			t.Error("expected send channel closed on hub shutdown")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("hub never released the client")
	}
}

func dialWS(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("websocket dial failed: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readStatus(t *testing.T, conn *websocket.Conn) domain.PlaybackStatus {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("websocket read failed: %v", err)
	}
	var status domain.PlaybackStatus
	if err := json.Unmarshal(data, &status); err != nil {
		t.Fatalf("non-status frame: %s", data)
	}
	return status
}

func TestWebSocketInitialStatusAndCommand(t *testing.T) {
	srv, store := testServer(t)
	startHub(t, srv)
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	conn := dialWS(t, ts)

	initial := readStatus(t, conn)
	if initial.ProjectName != "Bridge Show" {
		t.Errorf("expected initial status, got %+v", initial)
	}

	if err := conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"play","timestamp":2}`)); err != nil {
		t.Fatal(err)
	}

	feedback := readStatus(t, conn)
	if !feedback.IsPlaying {
		t.Errorf("expected playing feedback status, got %+v", feedback)
	}
	if !store.Status().IsPlaying {
		t.Error("websocket command did not reach the store")
	}
}

func TestWebSocketPhoneCommandRelayedToHost(t *testing.T) {
	srv, _ := testServer(t)
	startHub(t, srv)
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	host := dialWS(t, ts)
	readStatus(t, host) // initial
	if err := host.WriteMessage(websocket.TextMessage, []byte(`{"type":"browser-register"}`)); err != nil {
		t.Fatal(err)
	}
	// Give the role change a moment to land before the phone sends.
	time.Sleep(50 * time.Millisecond)

	phone := dialWS(t, ts)
	readStatus(t, phone) // initial
	if err := phone.WriteMessage(websocket.TextMessage, []byte(`{"type":"next_segment","timestamp":3}`)); err != nil {
		t.Fatal(err)
	}

	host.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := host.ReadMessage()
	if err != nil {
		t.Fatalf("host never received relayed command: %v", err)
	}
	cmd, err := domain.ParseCommand(data)
	if err != nil {
		t.Fatalf("host received non-command frame: %s", data)
	}
	if cmd.Type != domain.CommandNextSegment {
		t.Errorf("expected next_segment, got %q", cmd.Type)
	}
}

func TestWebSocketMalformedMessageDropped(t *testing.T) {
	srv, store := testServer(t)
	startHub(t, srv)
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	conn := dialWS(t, ts)
	readStatus(t, conn)

	if err := conn.WriteMessage(websocket.TextMessage, []byte(`{broken`)); err != nil {
		t.Fatal(err)
	}
	if err := conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"play","timestamp":4}`)); err != nil {
		t.Fatal(err)
	}

	// The malformed frame was dropped, the valid one still applied.
	feedback := readStatus(t, conn)
	if !feedback.IsPlaying {
		t.Errorf("valid command after malformed frame not applied: %+v", feedback)
	}
	_ = store
}

func TestConnectedClientCountTracked(t *testing.T) {
	srv, store := testServer(t)
	startHub(t, srv)
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	a := dialWS(t, ts)
	readStatus(t, a)
	b := dialWS(t, ts)
	readStatus(t, b)

	waitFor(t, func() bool { return store.Status().ConnectedClients == 2 },
		"client count never reached 2")

	b.Close()
	waitFor(t, func() bool { return store.Status().ConnectedClients == 1 },
		"client count never dropped to 1")
}

func waitFor(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal(msg)
}
