package cmd

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"promptdeck/internal/config"
	"promptdeck/internal/domain"
	"promptdeck/internal/relay"
)

var statusPort int

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the live playback status of a running prompter",
	Long: `Query the remote bridge of a running prompter session and print
its playback status.

Examples:
  promptdeck-cli status
  promptdeck-cli status --port 9000`,
	RunE: func(cmd *cobra.Command, args []string) error {
		status, err := fetchStatus()
		if err != nil {
			return err
		}

		state := "stopped"
		switch {
		case status.IsPlaying && status.IsPaused:
			state = "paused"
		case status.IsPlaying:
			state = "playing"
		}

		fmt.Printf("project:  %s\n", status.ProjectName)
		fmt.Printf("state:    %s\n", state)
		fmt.Printf("segment:  %d/%d\n", status.CurrentSegment+1, status.TotalSegments)
		fmt.Printf("speed:    %.2fx\n", status.Speed)
		fmt.Printf("mirror:   %t\n", status.Mirror)
		fmt.Printf("live:     %t\n", status.IsLive)
		fmt.Printf("clients:  %d\n", status.ConnectedClients)
		return nil
	},
}

// fetchStatus asks the bridge first and falls back to the status slot
// file a local session keeps current, marking the result as stale.
func fetchStatus() (domain.PlaybackStatus, error) {
	client := &http.Client{Timeout: 3 * time.Second}
	resp, err := client.Get(fmt.Sprintf("http://127.0.0.1:%d/status", statusPort))
	if err == nil {
		defer resp.Body.Close()
		var status domain.PlaybackStatus
		if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
			return status, fmt.Errorf("decoding status: %w", err)
		}
		return status, nil
	}

	slot := relay.NewSlot(config.SlotPath(dataDir))
	if env, ok := slot.Read(); ok && env.Status != nil {
		age := time.Since(time.UnixMilli(env.Timestamp)).Round(time.Second)
		fmt.Printf("(bridge unreachable, last known status from %s ago)\n\n", age)
		return *env.Status, nil
	}

	return domain.PlaybackStatus{}, fmt.Errorf("no prompter running on port %d: %w", statusPort, err)
}

func init() {
	statusCmd.Flags().IntVarP(&statusPort, "port", "p", config.HTTPPort(), "bridge port")
	rootCmd.AddCommand(statusCmd)
}
