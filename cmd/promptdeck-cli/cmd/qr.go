package cmd

import (
	"fmt"

	"github.com/atotto/clipboard"
	qrcode "github.com/skip2/go-qrcode"
	"github.com/spf13/cobra"

	"promptdeck/internal/adapters/remote"
	"promptdeck/internal/config"
)

var (
	qrPort int
	qrCopy bool
)

var qrCmd = &cobra.Command{
	Use:   "qr",
	Short: "Print the remote control URL as a QR code",
	Long: `Print the connection URL for the remote control bridge along with a
terminal QR code, without starting a session. Useful for pairing a phone
before launching the prompter.

Examples:
  promptdeck-cli qr
  promptdeck-cli qr --port 9000 --copy`,
	RunE: func(cmd *cobra.Command, args []string) error {
		url := remote.ConnectionURL(qrPort)

		qr, err := qrcode.New(url, qrcode.Medium)
		if err != nil {
			return fmt.Errorf("failed to build QR code: %w", err)
		}

		fmt.Printf("Remote control: %s\n", url)
		fmt.Println(qr.ToSmallString(false))

		if qrCopy {
			if err := clipboard.WriteAll(url); err != nil {
				fmt.Println("Clipboard unavailable")
			} else {
				fmt.Println("URL copied to clipboard")
			}
		}
		return nil
	},
}

func init() {
	qrCmd.Flags().IntVarP(&qrPort, "port", "p", config.HTTPPort(), "bridge port")
	qrCmd.Flags().BoolVar(&qrCopy, "copy", false, "copy the remote URL to the clipboard")
	rootCmd.AddCommand(qrCmd)
}
