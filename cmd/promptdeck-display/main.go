// promptdeck-display is a read-only display satellite. It connects to
// a running prompter's remote bridge over WebSocket, follows the
// playback status stream, and renders the active segment full screen,
// optionally mirrored for beam-splitter glass.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/websocket"

	"promptdeck/internal/config"
	"promptdeck/internal/domain"
	"promptdeck/internal/logging"
	"promptdeck/internal/render"
)

const reconnectDelay = 2 * time.Second

func main() {
	config.Load()

	host := flag.String("host", "127.0.0.1", "prompter host")
	port := flag.Int("port", config.HTTPPort(), "prompter bridge port")
	width := flag.Int("width", 80, "display width in cells")
	height := flag.Int("height", 24, "display height in cells")
	flag.Parse()

	logger, closeLog := logging.New("")
	defer closeLog.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	d := &display{
		base:   fmt.Sprintf("http://%s:%d", *host, *port),
		wsURL:  url.URL{Scheme: "ws", Host: fmt.Sprintf("%s:%d", *host, *port), Path: "/ws"},
		width:  *width,
		height: *height,
		cache:  render.NewCache(),
		client: &http.Client{Timeout: 5 * time.Second},
	}

	for ctx.Err() == nil {
		d.banner("waiting for prompter at " + d.base)
		if err := d.follow(ctx); err != nil && ctx.Err() == nil {
			logger.Warn("connection lost, retrying", "error", err)
			select {
			case <-time.After(reconnectDelay):
			case <-ctx.Done():
			}
		}
	}
}

type display struct {
	base   string
	wsURL  url.URL
	width  int
	height int
	cache  *render.Cache
	client *http.Client

	project  *domain.Project
	revision int64
}

// follow consumes the status stream until the connection drops.
func (d *display) follow(ctx context.Context) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, d.wsURL.String(), nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	d.banner("connected to " + d.base)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return err
		}

		var status domain.PlaybackStatus
		if err := json.Unmarshal(data, &status); err != nil || status.Timestamp == 0 {
			continue
		}

		if d.stale(status) {
			if err := d.fetchProject(ctx); err != nil {
				continue
			}
			d.revision = status.ProjectRevision
			d.cache = render.NewCache()
		}

		d.draw(status)
	}
}

func (d *display) fetchProject(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.base+"/project", nil)
	if err != nil {
		return err
	}
	resp, err := d.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("bridge returned %s", resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	var p domain.Project
	if err := json.Unmarshal(body, &p); err != nil {
		return err
	}
	d.project = &p
	return nil
}

// banner clears the screen and prints a single centered line. Used for
// the waiting/connected state between status frames.
func (d *display) banner(msg string) {
	pad := (d.width - len(msg)) / 2
	if pad < 0 {
		pad = 0
	}
	fmt.Printf("\x1b[2J\x1b[H\x1b[%dB%s%s\n", d.height/2, strings.Repeat(" ", pad), msg)
}

// stale reports whether the cached project no longer matches the
// status stream: never fetched, a different project loaded, or the
// same project edited since the last fetch.
func (d *display) stale(status domain.PlaybackStatus) bool {
	if d.project == nil {
		return true
	}
	return d.project.ID != status.ProjectID || d.revision != status.ProjectRevision
}

// activeSegment resolves the segment to render. Projects timed with
// [start,end) windows are recomputed from the playback clock; projects
// without windows follow the prompter's segment index.
func activeSegment(p *domain.Project, status domain.PlaybackStatus) *domain.Segment {
	if p == nil || len(p.Segments) == 0 {
		return nil
	}
	if hasWindows(p.Segments) {
		if i := domain.ActiveSegmentAt(p.Segments, status.PlaybackTime); i >= 0 {
			return &p.Segments[i]
		}
	}
	if status.CurrentSegment >= 0 && status.CurrentSegment < len(p.Segments) {
		return &p.Segments[status.CurrentSegment]
	}
	return nil
}

func hasWindows(segments []domain.Segment) bool {
	for _, s := range segments {
		if s.EndTime > s.StartTime {
			return true
		}
	}
	return false
}

func (d *display) draw(status domain.PlaybackStatus) {
	seg := activeSegment(d.project, status)

	frame := d.cache.Frame(seg, d.width, d.height, status.Mirror)

	var b strings.Builder
	b.WriteString("\x1b[2J\x1b[H")
	for _, line := range frame {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	os.Stdout.WriteString(b.String())
}
