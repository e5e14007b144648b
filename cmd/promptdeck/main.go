package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"promptdeck/internal/adapters/assets"
	"promptdeck/internal/adapters/jsonfile"
	"promptdeck/internal/adapters/remote"
	"promptdeck/internal/adapters/sqlite"
	"promptdeck/internal/adapters/tui"
	"promptdeck/internal/config"
	"promptdeck/internal/logging"
	"promptdeck/internal/playback"
	"promptdeck/internal/ports"
	"promptdeck/internal/relay"
)

func main() {
	config.Load()

	dataDir := flag.String("data", config.DataDir(), "data directory")
	storeKind := flag.String("store", config.StoreKind(), "project store backend (sqlite or json)")
	port := flag.Int("port", config.HTTPPort(), "remote bridge port")
	noBridge := flag.Bool("no-bridge", false, "do not start the remote bridge")
	flag.Parse()

	// The TUI owns the terminal, so logs go to the session file only.
	logger, closeLog := logging.NewSilent(config.LogPath(*dataDir))
	defer closeLog.Close()

	repo, err := openRepository(*storeKind, *dataDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer repo.Close()

	store := playback.NewStore(
		playback.WithRepository(repo),
		playback.WithLogger(logger),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go store.Run(ctx, time.Second/60)

	// In-process control bus plus a file slot other local processes
	// can read when the bridge is down.
	bus := relay.New()
	defer bus.Close()
	player := relay.NewPlayer(bus, store, "desktop")
	defer player.Close()

	slot := relay.NewSlot(config.SlotPath(*dataDir))
	cancelSlot := store.Subscribe(func(snap playback.Snapshot) {
		st := snap.Status
		_ = slot.Write(ports.Envelope{
			Type:      ports.EnvelopeStatus,
			Status:    &st,
			Timestamp: st.Timestamp,
			Source:    "desktop",
		})
	})
	defer cancelSlot()

	if !*noBridge {
		bridge := remote.NewServer(store, logger)
		go func() {
			if err := bridge.Run(ctx, fmt.Sprintf(":%d", *port)); err != nil {
				logger.Error("remote bridge", "error", err)
			}
		}()
	}

	app := tui.NewApp(repo, assets.NewStore(*dataDir), store)
	defer app.Close()

	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func openRepository(kind, dataDir string) (ports.ProjectRepository, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, err
	}
	switch kind {
	case "json":
		return jsonfile.Open(config.ProjectsDir(dataDir))
	default:
		return sqlite.Open(config.DatabasePath(dataDir))
	}
}
