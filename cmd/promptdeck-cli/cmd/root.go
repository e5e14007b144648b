package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"promptdeck/internal/adapters/assets"
	"promptdeck/internal/adapters/jsonfile"
	"promptdeck/internal/adapters/sqlite"
	"promptdeck/internal/config"
	"promptdeck/internal/ports"
)

var (
	dataDir    string
	storeKind  string
	repo       ports.ProjectRepository
	assetStore ports.AssetStore
)

var rootCmd = &cobra.Command{
	Use:   "promptdeck-cli",
	Short: "CLI for managing teleprompter projects",
	Long: `promptdeck-cli is a command-line interface for managing PromptDeck
teleprompter projects.

It provides commands to list, create, rename, duplicate, delete, export
and import projects, and to serve the phone remote bridge for a
headless prompter session.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		if err := os.MkdirAll(dataDir, 0o755); err != nil {
			return err
		}

		var err error
		switch storeKind {
		case "json":
			repo, err = jsonfile.Open(config.ProjectsDir(dataDir))
		default:
			repo, err = sqlite.Open(config.DatabasePath(dataDir))
		}
		if err != nil {
			return err
		}

		assetStore = assets.NewStore(dataDir)
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if repo != nil {
			return repo.Close()
		}
		return nil
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Load .env before flag defaults are computed from the env.
	config.Load()
	rootCmd.PersistentFlags().StringVarP(&dataDir, "data", "d", config.DataDir(), "data directory")
	rootCmd.PersistentFlags().StringVarP(&storeKind, "store", "s", config.StoreKind(), "project store backend (sqlite or json)")
}

// GetRepo returns the initialized repository
func GetRepo() ports.ProjectRepository {
	return repo
}

// GetAssets returns the initialized asset store
func GetAssets() ports.AssetStore {
	return assetStore
}
