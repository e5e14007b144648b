package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/atotto/clipboard"
	qrcode "github.com/skip2/go-qrcode"
	"github.com/spf13/cobra"

	"promptdeck/internal/adapters/remote"
	"promptdeck/internal/config"
	"promptdeck/internal/logging"
	"promptdeck/internal/playback"
	"promptdeck/internal/ports"
	"promptdeck/internal/relay"
)

var (
	servePort int
	serveQR   bool
	serveCopy bool
)

var serveCmd = &cobra.Command{
	Use:   "serve [project-id]",
	Short: "Run a headless prompter with the phone remote bridge",
	Long: `Load a project and serve the remote control bridge without the TUI.
Phones on the same network control playback through the printed URL;
display satellites connect to the same port.

Without a project ID the most recently modified project is loaded.

Examples:
  promptdeck-cli serve
  promptdeck-cli serve 3f8a1c2e-... --port 9000 --qr`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, closeLog := logging.New(config.LogPath(dataDir))
		defer closeLog.Close()

		projectID := ""
		if len(args) == 1 {
			projectID = args[0]
		} else {
			summaries, err := GetRepo().List()
			if err != nil {
				return err
			}
			if len(summaries) == 0 {
				return fmt.Errorf("no projects to serve")
			}
			projectID = summaries[0].ID
		}

		project, err := GetRepo().Load(projectID)
		if err != nil {
			return err
		}

		store := playback.NewStore(
			playback.WithRepository(GetRepo()),
			playback.WithLogger(logger),
		)
		store.SetProject(project)

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		go store.Run(ctx, time.Second/60)

		bus := relay.New()
		defer bus.Close()
		player := relay.NewPlayer(bus, store, "serve")
		defer player.Close()

		slot := relay.NewSlot(config.SlotPath(dataDir))
		cancelSlot := store.Subscribe(func(snap playback.Snapshot) {
			st := snap.Status
			_ = slot.Write(ports.Envelope{
				Type:      ports.EnvelopeStatus,
				Status:    &st,
				Timestamp: st.Timestamp,
				Source:    "serve",
			})
		})
		defer cancelSlot()

		url := remote.ConnectionURL(servePort)
		fmt.Printf("Serving %q\n", project.Name)
		fmt.Printf("Remote control: %s\n", url)

		if serveQR {
			qr, err := qrcode.New(url, qrcode.Medium)
			if err != nil {
				logger.Warn("qr code", "error", err)
			} else {
				fmt.Println(qr.ToSmallString(false))
			}
		}
		if serveCopy {
			if err := clipboard.WriteAll(url); err != nil {
				logger.Debug("clipboard unavailable", "error", err)
			} else {
				fmt.Println("URL copied to clipboard")
			}
		}

		bridge := remote.NewServer(store, logger)
		return bridge.Run(ctx, fmt.Sprintf(":%d", servePort))
	},
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", config.HTTPPort(), "bridge port")
	serveCmd.Flags().BoolVar(&serveQR, "qr", false, "print a QR code for the remote URL")
	serveCmd.Flags().BoolVar(&serveCopy, "copy", false, "copy the remote URL to the clipboard")
	rootCmd.AddCommand(serveCmd)
}
